// Package commands holds the iconforge subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/iconforge/am"
	"github.com/teranos/iconforge/logger"
	"github.com/teranos/iconforge/pipeline"
)

// projectRoot returns the positional project root, defaulting to "."
func projectRoot(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

// showOutput reports whether category is shown at the -v count of cmd
func showOutput(cmd *cobra.Command, category logger.OutputCategory) bool {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	return logger.ShouldOutput(verbosity, category)
}

// loadConfig loads the project configuration honouring --config
func loadConfig(cmd *cobra.Command, args []string) (*am.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := am.Load(projectRoot(args), configPath)
	if err != nil {
		return nil, err
	}
	logger.Output(nil, logger.OutputConfig, "Loaded configuration",
		logger.FieldDir, cfg.Root,
		logger.FieldFile, cfg.File,
		"sources", cfg.Summary())
	return cfg, nil
}

// newPipeline loads the configuration and wires a pipeline for it
func newPipeline(cmd *cobra.Command, args []string) (*am.Config, *pipeline.Pipeline, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pipeline.New(cfg, logger.ComponentLogger("pipeline")), nil
}
