package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/iconforge/cmd/iconforge/commands"
	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

var rootCmd = &cobra.Command{
	Use:   "iconforge",
	Short: "iconforge - icon asset to code pipeline",
	Long: `iconforge - turn a directory of svg icons into typed source code.

The pipeline scans the icon directory, synthesizes tags and categories,
writes the metadata store, renders the Qt resource manifest and emits the
identifier enumeration with its lookup tables. The validator then checks
the icon names used in source trees against what was generated.

Every command takes the project root as its first argument (default: .)
and reads iconforge.toml from it.

Available commands:
  synth     - Synthesize the metadata store from the svg directory
  generate  - Generate identifiers and lookup tables from the store
  manifest  - Render the resource manifest from the store
  validate  - Check icon names used in source trees
  build     - Run every stage and touch the completion marker
  check     - Verify generated artifacts are up to date
  watch     - Rebuild whenever an icon changes
  am        - Manage project configuration

Examples:
  iconforge build                   # Full pipeline in the current directory
  iconforge generate --lang all     # C++ and Go targets
  iconforge validate . src          # Validate the src tree
  iconforge am init                 # Write a default iconforge.toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs on stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: <root>/iconforge.toml)")

	rootCmd.AddCommand(commands.SynthCmd)
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ManifestCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.BuildCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
