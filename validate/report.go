package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/teranos/iconforge/errors"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes the report to w in format
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case "", FormatText:
		r.renderText(w)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.WithHint(
			errors.Newf("unsupported report format %q", format),
			"use text, json or yaml")
	}
}

func (r *Report) renderText(w io.Writer) {
	fmt.Fprintln(w, pterm.Bold.Sprint("Icon usage validation"))
	source := string(r.Source)
	if r.SourcePath != "" {
		source += " (" + r.SourcePath + ")"
	}
	fmt.Fprintf(w, "  %s %s\n", pterm.Gray("Name source:"), source)
	fmt.Fprintf(w, "  %s %d\n", pterm.Gray("Available icons:"), r.Available)
	fmt.Fprintf(w, "  %s %d (%d distinct)\n", pterm.Gray("Names checked:"), r.Checked, r.Unique)
	fmt.Fprintf(w, "  %s %d\n", pterm.Gray("Invalid names:"), r.InvalidCount)
	fmt.Fprintln(w)

	if r.Passed {
		fmt.Fprintln(w, pterm.LightGreen("✓ All icon names are valid"))
		return
	}

	fmt.Fprintln(w, pterm.Red(fmt.Sprintf("✗ Found %d invalid icon name(s)", r.InvalidCount)))
	for _, inv := range r.Invalid {
		fmt.Fprintf(w, "\n  %s used in:\n", pterm.Yellow(fmt.Sprintf("%q", inv.Name)))
		for _, u := range inv.Usages {
			fmt.Fprintf(w, "    %s:%d\n", u.File, u.Line)
		}
		if len(inv.Suggestions) > 0 {
			fmt.Fprintf(w, "    %s %s\n", pterm.Gray("Suggestions:"), pterm.LightCyan(strings.Join(inv.Suggestions, ", ")))
		}
	}
}
