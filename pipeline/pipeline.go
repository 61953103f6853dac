// Package pipeline runs the iconforge stages for a configured project:
// synthesize the catalog, write the metadata store, render the manifest and
// the generated sources, run post-build hooks and touch the completion marker.
//
// Stages run sequentially. Each one after synthesis reads the catalog it is
// handed and nothing else, so generate and manifest can also run on their
// own against a previously written store.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/iconforge/am"
	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/codegen"
	"github.com/teranos/iconforge/codegen/cpp"
	"github.com/teranos/iconforge/codegen/golang"
	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
	"github.com/teranos/iconforge/manifest"
	"github.com/teranos/iconforge/synth"
)

// Stage names, as logged
const (
	StageSynth    = "synth"
	StageManifest = "manifest"
	StageGenerate = "generate"
	StageHooks    = "hooks"
	StageStamp    = "stamp"
)

// LanguageAll selects every known generator
const LanguageAll = "all"

// Pipeline runs stages for one project
type Pipeline struct {
	cfg *am.Config
	log *zap.SugaredLogger
}

// New creates a pipeline for cfg. A nil logger discards output.
func New(cfg *am.Config, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{cfg: cfg, log: logger.OrNop(log)}
}

// Result summarizes a build
type Result struct {
	RunID    string
	Icons    int
	Written  []string
	Duration time.Duration
}

// Build runs every stage. The completion marker is touched only when all of
// them succeed.
func (p *Pipeline) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx, p.log)

	log.Infow("Starting build",
		logger.FieldDir, p.cfg.Root,
		logger.FieldVersion, p.cfg.CatalogVersion())

	result := &Result{RunID: runID}

	c, err := p.Scan(logger.WithStage(ctx, StageSynth))
	if err != nil {
		return nil, errors.Wrap(err, "synth stage failed")
	}
	result.Icons = c.Len()

	// Render every artifact first: a failing stage leaves the tree as it was
	targets, err := p.renderAll(ctx, c, nil)
	if err != nil {
		return nil, errors.Wrap(err, "generate stage failed")
	}
	for _, t := range targets {
		paths, err := codegen.Write(t.dir, t.files)
		if err != nil {
			return nil, err
		}
		logger.Output(log, logger.OutputProgress, "Wrote artifacts",
			logger.FieldStage, t.stage,
			logger.FieldTarget, t.language,
			logger.FieldDir, t.dir,
			logger.FieldCount, len(paths))
		result.Written = append(result.Written, paths...)
	}

	if err := p.RunHooks(logger.WithStage(ctx, StageHooks)); err != nil {
		return nil, err
	}

	if err := Touch(p.cfg.StampPath()); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Infow("Build complete",
		logger.FieldCount, result.Icons,
		logger.FieldStage, StageStamp,
		logger.FieldPath, p.cfg.StampPath(),
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}

// Rules returns the keyword table: the configured override or the built-in one
func (p *Pipeline) Rules() (*synth.Rules, error) {
	if p.cfg.Synth.Rules != "" {
		return synth.LoadRules(p.cfg.Resolve(p.cfg.Synth.Rules))
	}
	return synth.DefaultRules()
}

func (p *Pipeline) synthesizer(ctx context.Context) (*synth.Synthesizer, error) {
	rules, err := p.Rules()
	if err != nil {
		return nil, err
	}
	return synth.New(rules, synth.Options{
		Extension: p.cfg.Synth.Extension,
		SVGPrefix: p.cfg.Synth.SVGPrefix,
		Workers:   p.cfg.Synth.Workers,
		Sidecars:  p.cfg.Synth.Sidecars,
		Version:   p.cfg.CatalogVersion(),
	}, logger.FromContext(ctx, p.log.Named("synth"))), nil
}

// Synth scans the source directory and writes the metadata store
func (p *Pipeline) Synth(ctx context.Context) (*catalog.Catalog, error) {
	syn, err := p.synthesizer(ctx)
	if err != nil {
		return nil, err
	}
	return syn.Run(ctx, p.cfg.SourceDir(), catalog.NewStore(p.cfg.MetadataDir()))
}

// Scan synthesizes the catalog without writing anything
func (p *Pipeline) Scan(ctx context.Context) (*catalog.Catalog, error) {
	syn, err := p.synthesizer(ctx)
	if err != nil {
		return nil, err
	}
	return syn.Scan(ctx, p.cfg.SourceDir())
}

// LoadCatalog reads the metadata store. A missing store is ErrMissingInput.
func (p *Pipeline) LoadCatalog() (*catalog.Catalog, error) {
	return catalog.NewStore(p.cfg.MetadataDir()).Load()
}

// Manifest writes the resource manifest for c and returns its path
func (p *Pipeline) Manifest(ctx context.Context, c *catalog.Catalog) (string, error) {
	path := p.cfg.ManifestPath()
	if err := manifest.Write(path, c, p.manifestOptions()); err != nil {
		return "", err
	}
	logger.FromContext(ctx, p.log).Infow("Wrote resource manifest",
		logger.FieldPath, path,
		logger.FieldCount, c.Len())
	return path, nil
}

func (p *Pipeline) manifestOptions() manifest.Options {
	return manifest.Options{Prefix: p.cfg.Manifest.Prefix}
}

// Generate renders c with each generator for languages (nil = configured
// languages) and writes the files. Every generator renders before anything
// is written, so a collision leaves the output directories untouched.
func (p *Pipeline) Generate(ctx context.Context, c *catalog.Catalog, languages []string) ([]string, error) {
	log := logger.FromContext(ctx, p.log)

	targets, err := p.render(c, languages)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, t := range targets {
		paths, err := codegen.Write(t.dir, t.files)
		if err != nil {
			return written, err
		}
		log.Infow("Wrote generated sources",
			logger.FieldTarget, t.language,
			logger.FieldDir, t.dir,
			logger.FieldCount, c.Len())
		written = append(written, paths...)
	}
	return written, nil
}

type target struct {
	stage    string
	language string
	dir      string
	files    map[string][]byte
}

// renderAll renders the metadata store, the optimized svg copies when
// enabled, the manifest and the sources of every generator for languages,
// in that order, without writing anything
func (p *Pipeline) renderAll(ctx context.Context, c *catalog.Catalog, languages []string) ([]target, error) {
	storeFiles, err := catalog.Render(c)
	if err != nil {
		return nil, err
	}
	targets := []target{{stage: StageSynth, dir: p.cfg.MetadataDir(), files: storeFiles}}

	if dir := p.cfg.OptimizedDir(); dir != "" {
		syn, err := p.synthesizer(ctx)
		if err != nil {
			return nil, err
		}
		svgs, err := syn.Optimize(ctx, p.cfg.SourceDir(), c)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target{stage: StageSynth, dir: dir, files: svgs})
	}

	qrc, err := manifest.Render(c, p.manifestOptions())
	if err != nil {
		return nil, err
	}
	manifestPath := p.cfg.ManifestPath()

	sources, err := p.render(c, languages)
	if err != nil {
		return nil, err
	}
	targets = append(targets, target{stage: StageManifest, dir: filepath.Dir(manifestPath), files: map[string][]byte{filepath.Base(manifestPath): qrc}})
	return append(targets, sources...), nil
}

func (p *Pipeline) render(c *catalog.Catalog, languages []string) ([]target, error) {
	gens, err := p.Generators(languages)
	if err != nil {
		return nil, err
	}
	var targets []target
	for _, gen := range gens {
		files, err := codegen.Generate(gen, c)
		if err != nil {
			return nil, errors.Wrapf(err, "%s generator", gen.Language())
		}
		targets = append(targets, target{stage: StageGenerate, language: gen.Language(), dir: p.OutputDir(gen), files: files})
	}
	return targets, nil
}

// Generators returns the generators for languages; nil selects the
// configured ones and LanguageAll every known one
func (p *Pipeline) Generators(languages []string) ([]codegen.Generator, error) {
	if languages == nil {
		languages = p.cfg.Languages()
	}
	if len(languages) == 1 && languages[0] == LanguageAll {
		languages = am.KnownLanguages
	}

	var gens []codegen.Generator
	for _, lang := range languages {
		switch lang {
		case "cpp":
			gens = append(gens, cpp.NewGenerator(cpp.Config{
				Namespace:     p.cfg.Generate.Namespace,
				DigitPrefix:   p.cfg.Generate.DigitPrefix,
				KeywordPrefix: p.cfg.Generate.KeywordPrefix,
			}))
		case "go":
			gens = append(gens, golang.NewGenerator(p.cfg.Generate.GoPackage))
		default:
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrInvalidConfig, "unknown language %q", lang),
				"known languages: %v", am.KnownLanguages)
		}
	}
	return gens, nil
}

// OutputDir returns where gen's files are written
func (p *Pipeline) OutputDir(gen codegen.Generator) string {
	if gen.Language() == "go" {
		return p.cfg.GoDir()
	}
	return p.cfg.IncludeDir()
}
