package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/iconforge/am"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage project configuration",
	Long: `am - Manage iconforge project configuration ("I am")

Configuration sources (later overrides earlier):
1. Built-in defaults
2. Project config (<root>/iconforge.toml, or --config)
3. .env in the project root (never overrides the real environment)
4. Environment variables (ICONFORGE_* prefix, e.g. ICONFORGE_PATHS_SOURCE)

Examples:
  iconforge am show                    # Effective configuration as TOML
  iconforge am show --format json      # ... as JSON
  iconforge am show --sources          # Where each setting comes from
  iconforge am validate                # Validate the configuration
  iconforge am init                    # Write a default iconforge.toml`,
}

var amShowCmd = &cobra.Command{
	Use:   "show [root]",
	Short: "Show the effective configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate [root]",
	Short: "Validate the configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init [root]",
	Short: "Write a default iconforge.toml",
	Long: `Write the default configuration to <root>/iconforge.toml.
An existing file is only replaced with --force, after being rotated into
.back1 (previous backups move to .back2 and .back3).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmInit,
}

var (
	configFormat string
	showSources  bool
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", am.FormatTOML, "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&showSources, "sources", false, "Show the source of every setting")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if showSources {
		printSources(cfg)
		return nil
	}

	data, err := am.Render(cfg.Settings(), configFormat)
	if err != nil {
		return err
	}
	if configFormat != am.FormatJSON {
		fmt.Println("# iconforge configuration")
	}
	fmt.Print(string(data))
	return nil
}

func printSources(cfg *am.Config) {
	intro := cfg.Introspect()

	if intro.ConfigFile != "" {
		fmt.Printf("Config file: %s\n\n", intro.ConfigFile)
	} else {
		fmt.Printf("Config file: none (defaults)\n\n")
	}

	for _, s := range intro.Settings {
		source := strings.ToUpper(string(s.Source))
		if s.SourcePath != "" {
			source += " " + s.SourcePath
		}
		fmt.Printf("  %-34s %-40v %s\n", s.Key, s.Value, pterm.Gray("["+source+"]"))
	}

	fmt.Println()
	summary := cfg.Summary()
	for _, source := range []am.ConfigSource{am.SourceDefault, am.SourceProject, am.SourceDotEnv, am.SourceEnvironment} {
		fmt.Printf("  %-12s %d\n", source, summary[source])
	}
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	// Load validates; a config that loads is valid
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		fmt.Printf("✓ %s is valid\n", cfg.File)
	} else {
		fmt.Println("✓ Configuration is valid (no config file, defaults)")
	}
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(projectRoot(args), am.ConfigFileName)
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		path = configPath
	}
	if err := os.MkdirAll(filepath.Dir(path), am.DefaultDirPermissions); err != nil {
		return err
	}
	if err := am.WriteDefault(path, initForce); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
