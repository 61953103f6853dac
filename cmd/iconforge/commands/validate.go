package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/iconforge/logger"
	"github.com/teranos/iconforge/validate"
)

// ValidateCmd checks icon names used in source trees
var ValidateCmd = &cobra.Command{
	Use:   "validate [root] [dirs...]",
	Short: "Check icon names used in source trees",
	Long: `Scan source trees for string literals that look like icon names and
check them against the generated lookup table (falling back to the metadata
store, then to the svg directory). Unknown names are reported with their
locations and suggested replacements.

Directories are relative to the project root; without any, validate.dirs
is used (default: examples, tests). Absent directories are skipped.

Exit codes:
  0 - Every icon name is valid
  1 - At least one unknown name, or the check could not run

Examples:
  iconforge validate                     # Default trees of the current project
  iconforge validate . src app           # Scan src and app instead
  iconforge validate --format json       # Machine-readable report
  iconforge validate --reference ICON_NAME_FIXES.md  # Also write a name reference`,
	Args: cobra.ArbitraryArgs,
	RunE: runValidate,
}

var (
	validateFormat    string
	validateReference string
)

func init() {
	ValidateCmd.Flags().StringVarP(&validateFormat, "format", "f", validate.FormatText, "Report format: text, json, yaml")
	ValidateCmd.Flags().StringVar(&validateReference, "reference", "", "Also write a Markdown icon name reference to this path")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	v, err := validate.NewFromConfig(cfg, logger.ComponentLogger("validate"))
	if err != nil {
		return err
	}

	dirs := cfg.Validate.Dirs
	if len(args) > 1 {
		dirs = args[1:]
	}

	if validateReference != "" {
		path, err := v.WriteReference(validateReference)
		if err != nil {
			return err
		}
		logger.Output(nil, logger.OutputArtifacts, "Wrote icon name reference", logger.FieldPath, path)
	}

	report, runErr := v.Run(cmd.Context(), dirs)
	if report != nil {
		if err := report.Render(os.Stdout, validateFormat); err != nil {
			return err
		}
	}
	return runErr
}
