package synth

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

var (
	xmlDeclaration = regexp.MustCompile(`<\?xml[^>]*\?>`)
	xmlComment     = regexp.MustCompile(`(?s)<!--.*?-->`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// SVGNamespace is added to the root element when a file omits it
const SVGNamespace = `xmlns="http://www.w3.org/2000/svg"`

// OptimizeSVG strips the XML declaration and comments, collapses every
// whitespace run to one space and adds the svg namespace when missing.
// Applying it twice changes nothing.
func OptimizeSVG(content []byte) []byte {
	out := xmlDeclaration.ReplaceAll(content, nil)
	out = xmlComment.ReplaceAll(out, nil)
	out = bytes.TrimSpace(whitespaceRun.ReplaceAll(out, []byte(" ")))
	if !bytes.Contains(out, []byte("xmlns=")) {
		out = bytes.Replace(out, []byte("<svg"), []byte("<svg "+SVGNamespace), 1)
	}
	return out
}

// Optimize returns an optimized copy of every record's file in dir, keyed
// by file name. Nothing is written.
func (s *Synthesizer) Optimize(ctx context.Context, dir string, c *catalog.Catalog) (map[string][]byte, error) {
	files := make(map[string][]byte, c.Len())
	for _, name := range c.Names() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := name + s.opts.Extension
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewMissingInput("icon", path)
			}
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		files[file] = OptimizeSVG(data)
		logger.Output(s.log, logger.OutputDecisions, "Optimized svg",
			logger.FieldIcon, name,
			"before", len(data),
			"after", len(files[file]))
	}
	return files, nil
}
