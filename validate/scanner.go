package validate

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// Name shape limits for heuristic literals
const (
	MinNameLength = 2
	MaxNameLength = 50
)

var (
	literalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"([a-z][a-z0-9-]*[a-z0-9])"`),
		regexp.MustCompile(`'([a-z][a-z0-9-]*[a-z0-9])'`),
	}
	nameShape = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)
)

// Usage locates one occurrence of a candidate name
type Usage struct {
	File string `json:"file" yaml:"file"` // slash-separated, relative to the project root
	Line int    `json:"line" yaml:"line"`
}

// Occurrence is a candidate name found at a usage
type Occurrence struct {
	Name string
	Usage
}

// ScanOptions configures a Scanner
type ScanOptions struct {
	Extensions   []string // files scanned, e.g. ".cpp"
	Include      []string // doublestar globs on the relative path; empty = everything
	Exclude      []string // doublestar globs on the relative path
	Exclusions   []string // literals never treated as icon names
	CallPatterns []string // regexes with one capture group, checked unconditionally

	Log *zap.SugaredLogger // traces scanned files and candidates at -vvv; nil discards
}

// Scanner finds candidate icon names in source files
type Scanner struct {
	extensions   []string
	include      []string
	exclude      []string
	exclusions   map[string]bool
	callPatterns []*regexp.Regexp
	log          *zap.SugaredLogger
}

// NewScanner validates opts and compiles the call patterns
func NewScanner(opts ScanOptions) (*Scanner, error) {
	s := &Scanner{
		extensions: opts.Extensions,
		include:    opts.Include,
		exclude:    opts.Exclude,
		exclusions: make(map[string]bool, len(opts.Exclusions)),
		log:        logger.OrNop(opts.Log),
	}
	for _, word := range opts.Exclusions {
		s.exclusions[word] = true
	}
	for _, glob := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(glob) {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "bad glob %q", glob)
		}
	}
	for _, p := range opts.CallPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.WithDetail(errors.Wrapf(errors.ErrInvalidConfig, "bad call pattern %q", p), err.Error())
		}
		if re.NumSubexp() != 1 {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "call pattern %q needs exactly one capture group", p)
		}
		s.callPatterns = append(s.callPatterns, re)
	}
	return s, nil
}

// LooksLikeIconName applies the literal heuristic
func (s *Scanner) LooksLikeIconName(literal string) bool {
	if len(literal) < MinNameLength || len(literal) > MaxNameLength {
		return false
	}
	if !nameShape.MatchString(literal) {
		return false
	}
	return !s.exclusions[literal]
}

// ScanLine returns the candidates on one line, each name at most once
func (s *Scanner) ScanLine(line string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, re := range literalPatterns {
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			if s.LooksLikeIconName(m[1]) {
				add(m[1])
			}
		}
	}
	for _, re := range s.callPatterns {
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			add(m[1])
		}
	}
	return names
}

// ScanFile returns the candidates in path, reported as rel
func (s *Scanner) ScanFile(path, rel string) ([]Occurrence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	var found []Occurrence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for lineNum := 1; sc.Scan(); lineNum++ {
		for _, name := range s.ScanLine(sc.Text()) {
			logger.Output(s.log, logger.OutputCandidates, "Candidate literal",
				logger.FieldIcon, name,
				logger.FieldFile, rel,
				logger.FieldLine, lineNum)
			found = append(found, Occurrence{Name: name, Usage: Usage{File: rel, Line: lineNum}})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", path)
	}
	return found, nil
}

// ScanTree walks dir recursively in lexical order. Paths are reported
// relative to root.
func (s *Scanner) ScanTree(ctx context.Context, root, dir string) ([]Occurrence, error) {
	var found []Occurrence
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := relative(root, path)
		if !s.selected(rel) {
			return nil
		}
		logger.Output(s.log, logger.OutputFileScan, "Scanning file", logger.FieldFile, rel)
		occ, err := s.ScanFile(path, rel)
		if err != nil {
			return err
		}
		found = append(found, occ...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}
	return found, nil
}

// selected applies the extension filter and include/exclude globs
func (s *Scanner) selected(rel string) bool {
	if !hasExtension(rel, s.extensions) {
		return false
	}
	if len(s.include) > 0 && !matchAny(s.include, rel) {
		return false
	}
	return !matchAny(s.exclude, rel)
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func matchAny(globs []string, rel string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
