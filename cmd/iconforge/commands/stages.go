package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
	"github.com/teranos/iconforge/pipeline"
)

// SynthCmd synthesizes the metadata store
var SynthCmd = &cobra.Command{
	Use:   "synth [root]",
	Short: "Synthesize the metadata store from the svg directory",
	Long: `Scan the svg directory (non-recursive) and write icons.json,
categories.json and tags.json to the metadata directory.

A missing svg directory is not an error: the store is written empty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSynth,
}

// GenerateCmd generates identifiers and lookup tables
var GenerateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Generate identifiers and lookup tables from the metadata store",
	Long: `Read the metadata store and write the generated sources for each
target language. Requires a store written by synth or build.

Examples:
  iconforge generate               # Configured languages (default: cpp)
  iconforge generate --lang go     # Go target only
  iconforge generate --lang all    # Every target`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

// ManifestCmd renders the resource manifest
var ManifestCmd = &cobra.Command{
	Use:   "manifest [root]",
	Short: "Render the resource manifest from the metadata store",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifest,
}

var generateLang string

func init() {
	GenerateCmd.Flags().StringVarP(&generateLang, "lang", "l", "", "Target language: cpp, go, all (default: generate.languages)")
}

func runSynth(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}
	c, err := p.Synth(cmd.Context())
	if err != nil {
		return err
	}
	pterm.Success.Printf("Synthesized %d icons in %d categories\n", c.Len(), len(c.ByCategory()))
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}
	c, err := p.LoadCatalog()
	if err != nil {
		return err
	}

	var languages []string
	if generateLang != "" {
		languages = strings.Split(generateLang, ",")
	}
	written, err := p.Generate(cmd.Context(), c, languages)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Generated %d identifiers\n", c.Len())
	printArtifacts(cmd, written)
	return nil
}

func runManifest(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}
	c, err := p.LoadCatalog()
	if err != nil {
		return err
	}
	path, err := p.Manifest(cmd.Context(), c)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s with %d icons\n", path, c.Len())
	return nil
}

// BuildCmd runs the whole pipeline
var BuildCmd = &cobra.Command{
	Use:   "build [root]",
	Short: "Run every stage and touch the completion marker",
	Long: `Run synth, manifest and generate, then the post-build hooks from
build.hooks. The completion marker is touched only when everything succeeds,
so build systems can use it as the output of this step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

// CheckCmd verifies generated artifacts
var CheckCmd = &cobra.Command{
	Use:   "check [root]",
	Short: "Verify generated artifacts are up to date",
	Long: `Synthesize the catalog in memory and compare the metadata store, the
manifest and the generated sources with what is on disk. Nothing is written.

Exit codes:
  0 - Everything is up to date
  1 - Something is stale or missing (listed)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// WatchCmd rebuilds on change
var WatchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Rebuild whenever an icon changes",
	Long: `Build once, then watch the svg directory and rebuild after changes.
Bursts are debounced (watch.debounce_ms) and rebuilds are rate limited
(watch.max_rebuilds_per_minute). Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var buildStamp string

func init() {
	BuildCmd.Flags().StringVar(&buildStamp, "stamp", "", "Completion marker path (default: paths.stamp)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}
	if buildStamp != "" {
		cfg.Paths.Stamp = buildStamp
	}

	result, err := p.Build(cmd.Context())
	if err != nil {
		return err
	}

	pterm.Success.Printf("Built %d icons in %dms\n", result.Icons, result.Duration.Milliseconds())
	printArtifacts(cmd, result.Written)
	return nil
}

// printArtifacts lists written files from -v up
func printArtifacts(cmd *cobra.Command, paths []string) {
	if !showOutput(cmd, logger.OutputArtifacts) {
		return
	}
	for _, path := range paths {
		pterm.Printf("  %s %s\n", pterm.Gray("→"), path)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}

	result, err := p.Check(cmd.Context())
	if err != nil {
		return err
	}

	if result.UpToDate {
		fmt.Println("✓ Generated artifacts are up to date")
		return nil
	}

	fmt.Println("✗ Generated artifacts are out of date.")
	for _, path := range result.Stale {
		fmt.Printf("  stale:   %s\n", path)
	}
	for _, path := range result.Missing {
		fmt.Printf("  missing: %s\n", path)
	}
	return errors.WithHint(
		errors.Newf("%d stale and %d missing artifact(s)", len(result.Stale), len(result.Missing)),
		"run iconforge build to update them")
}

func runWatch(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd, args)
	if err != nil {
		return err
	}

	pterm.Info.Println("Watching for icon changes (Ctrl-C to stop)")
	return p.Watch(cmd.Context(), func(result *pipeline.Result, err error) {
		if err != nil {
			pterm.Error.Printf("Build failed: %v\n", err)
			return
		}
		pterm.Success.Printf("Built %d icons in %dms\n", result.Icons, result.Duration.Milliseconds())
	})
}
