// Package synth turns a directory of svg files into an icon catalog,
// deriving tags and categories from each file name.
package synth

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// Options configures a Synthesizer
type Options struct {
	Extension string // matched case-sensitively, e.g. ".svg"
	SVGPrefix string // prefix of each record's svg_file
	Workers   int    // concurrent per-file derivations; <= 1 is sequential
	Sidecars  bool   // merge <name>.json next to <name><Extension>
	Version   string // catalog version
}

// Synthesizer scans a source directory into a catalog
type Synthesizer struct {
	rules *Rules
	opts  Options
	log   *zap.SugaredLogger
}

// New creates a synthesizer. A nil logger discards output.
func New(rules *Rules, opts Options, log *zap.SugaredLogger) *Synthesizer {
	if opts.Extension == "" {
		opts.Extension = ".svg"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Synthesizer{rules: rules, opts: opts, log: logger.OrNop(log)}
}

// Scan builds a catalog from the files directly inside dir. A missing
// directory yields an empty catalog and a warning.
func (s *Synthesizer) Scan(ctx context.Context, dir string) (*catalog.Catalog, error) {
	files, err := s.list(dir)
	if err != nil {
		if errors.IsMissingInput(err) {
			s.log.Warnw("Source directory missing, synthesizing an empty catalog",
				logger.FieldDir, dir,
				logger.FieldError, err)
			return catalog.New(s.opts.Version)
		}
		return nil, err
	}

	records := make([]catalog.IconRecord, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := s.derive(dir, file)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := catalog.New(s.opts.Version, records...)
	if err != nil {
		return nil, err
	}

	s.log.Infow("Synthesized catalog",
		logger.FieldDir, dir,
		logger.FieldCount, c.Len(),
		"categories", c.ByCategory().Labels())
	return c, nil
}

// Run scans dir and saves the catalog to store
func (s *Synthesizer) Run(ctx context.Context, dir string, store *catalog.Store) (*catalog.Catalog, error) {
	c, err := s.Scan(ctx, dir)
	if err != nil {
		return nil, err
	}
	if err := store.Save(c); err != nil {
		return nil, err
	}
	s.log.Infow("Wrote metadata store",
		logger.FieldDir, store.Dir,
		logger.FieldCount, c.Len())
	return c, nil
}

// list returns the matching file names in dir, sorted
func (s *Synthesizer) list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInput("source directory", dir)
		}
		return nil, errors.Wrapf(err, "failed to read source directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= len(s.opts.Extension) || !strings.HasSuffix(name, s.opts.Extension) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// derive builds the record for one file; it only reads the sidecar
func (s *Synthesizer) derive(dir, file string) (catalog.IconRecord, error) {
	name := strings.TrimSuffix(file, s.opts.Extension)

	record := catalog.IconRecord{
		Name:         name,
		SourceRef:    path.Join(s.opts.SVGPrefix, file),
		Tags:         s.rules.Tags(name),
		Categories:   s.rules.Categorize(name),
		Contributors: []string{},
	}

	if s.opts.Sidecars {
		side, err := readSidecar(filepath.Join(dir, name+".json"))
		if err != nil {
			return catalog.IconRecord{}, err
		}
		if side != nil {
			record = s.merge(record, side)
		}
	}

	logger.Output(s.log, logger.OutputDecisions, "Derived icon metadata",
		logger.FieldIcon, name,
		"tags", record.Tags,
		"categories", record.Categories)
	return record, nil
}
