// Package validate checks icon names used in source trees against the names
// the generated artifacts define, and proposes corrections for the unknown ones.
package validate

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// InvalidName is a candidate missing from the available set
type InvalidName struct {
	Name        string   `json:"name" yaml:"name"`
	Usages      []Usage  `json:"usages" yaml:"usages"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// Report is the outcome of one validation run
type Report struct {
	Source       NameSource    `json:"source" yaml:"source"`
	SourcePath   string        `json:"source_path" yaml:"source_path"`
	Available    int           `json:"available" yaml:"available"`
	Checked      int           `json:"checked" yaml:"checked"`             // candidate occurrences
	Unique       int           `json:"unique" yaml:"unique"`               // distinct candidates
	InvalidCount int           `json:"invalid_count" yaml:"invalid_count"` // distinct invalid names
	Invalid      []InvalidName `json:"invalid" yaml:"invalid"`
	Passed       bool          `json:"passed" yaml:"passed"`
}

// Validator scans source trees and reports unknown icon names
type Validator struct {
	root      string
	available *Available
	scanner   *Scanner
	suggester *Suggester
	log       *zap.SugaredLogger
}

// New creates a validator for the project at root. A nil logger discards output.
func New(root string, available *Available, scanner *Scanner, suggester *Suggester, log *zap.SugaredLogger) *Validator {
	return &Validator{
		root:      root,
		available: available,
		scanner:   scanner,
		suggester: suggester,
		log:       logger.OrNop(log),
	}
}

// Run scans dirs (relative to the project root unless absolute) and builds
// the report. Directories that do not exist are skipped. The returned error
// wraps ErrValidationFailed whenever an unknown name was found; the report
// is returned either way.
func (v *Validator) Run(ctx context.Context, dirs []string) (*Report, error) {
	var occurrences []Occurrence
	for _, dir := range dirs {
		abs := dir
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(v.root, dir)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			v.log.Infow("Skipping absent source tree", logger.FieldDir, abs)
			continue
		}

		found, err := v.scanner.ScanTree(ctx, v.root, abs)
		if err != nil {
			return nil, err
		}
		v.log.Debugw("Scanned source tree",
			logger.FieldDir, abs,
			logger.FieldCount, len(found))
		occurrences = append(occurrences, found...)
	}

	report := v.evaluate(occurrences)
	v.log.Infow("Validated icon usage",
		"source", report.Source,
		logger.FieldCount, report.Checked,
		logger.FieldTotalCount, report.Available,
		logger.FieldInvalid, report.InvalidCount)

	if !report.Passed {
		return report, errors.Wrapf(errors.ErrValidationFailed, "%d unknown icon name(s)", report.InvalidCount)
	}
	return report, nil
}

func (v *Validator) evaluate(occurrences []Occurrence) *Report {
	usages := make(map[string][]Usage)
	for _, occ := range occurrences {
		usages[occ.Name] = append(usages[occ.Name], occ.Usage)
	}

	report := &Report{
		Source:     v.available.Source,
		SourcePath: relative(v.root, v.available.Path),
		Available:  v.available.Len(),
		Checked:    len(occurrences),
		Unique:     len(usages),
		Invalid:    []InvalidName{},
	}
	if v.available.Path == "" {
		report.SourcePath = ""
	}

	for name, at := range usages {
		if v.available.Has(name) {
			continue
		}
		suggestions := v.suggester.Suggest(name)
		if suggestions == nil {
			suggestions = []string{}
		}
		report.Invalid = append(report.Invalid, InvalidName{Name: name, Usages: at, Suggestions: suggestions})
	}
	sort.Slice(report.Invalid, func(i, j int) bool {
		return report.Invalid[i].Name < report.Invalid[j].Name
	})

	report.InvalidCount = len(report.Invalid)
	report.Passed = report.InvalidCount == 0
	return report
}
