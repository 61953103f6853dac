package validate

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/iconforge/am"
	"github.com/teranos/iconforge/codegen/cpp"
	"github.com/teranos/iconforge/codegen/golang"
	"github.com/teranos/iconforge/logger"
)

// PathsFor locates the name sources of a configured project
func PathsFor(cfg *am.Config) Paths {
	return Paths{
		StringsHeader: filepath.Join(cfg.IncludeDir(), cpp.StringsHeader),
		GoFile:        filepath.Join(cfg.GoDir(), golang.FileName),
		Metadata:      cfg.MetadataDir(),
		SVGDir:        cfg.SourceDir(),
		Extension:     cfg.Synth.Extension,
	}
}

// NewFromConfig wires a validator for the project: built-in word lists
// extended by [validate], and the first available name source
func NewFromConfig(cfg *am.Config, log *zap.SugaredLogger) (*Validator, error) {
	base, err := DefaultWordlists()
	if err != nil {
		return nil, err
	}
	words := base.Extend(cfg.Validate.Exclusions, cfg.Validate.Synonyms, cfg.Validate.CallPatterns)

	available, err := LoadAvailable(PathsFor(cfg))
	if err != nil {
		return nil, err
	}

	scanner, err := NewScanner(ScanOptions{
		Extensions:   cfg.Validate.Extensions,
		Include:      cfg.Validate.Include,
		Exclude:      cfg.Validate.Exclude,
		Exclusions:   words.Exclusions,
		CallPatterns: words.CallPatterns,
		Log:          logger.OrNop(log).Named("scanner"),
	})
	if err != nil {
		return nil, err
	}

	return New(cfg.Root, available, scanner, NewSuggester(available, words.Synonyms), log), nil
}
