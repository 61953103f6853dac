package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/iconforge/errors"
)

// ReportError writes err for a terminal user: the message tagged with its
// kind, every detail verbatim (sub-tool output, parse causes), then hints.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error [%s]: %v\n", errors.Kind(err), err)

	// the report listing the unknown names was already printed
	if errors.IsValidationFailure(err) {
		return
	}

	for _, detail := range errors.GetAllDetails(err) {
		for _, line := range strings.Split(strings.TrimRight(detail, "\n"), "\n") {
			fmt.Fprintf(w, "  | %s\n", line)
		}
	}

	hints := errors.GetAllHints(err)
	if errors.IsMalformedMetadata(err) {
		hints = append(hints, "fix or delete the file, then rerun iconforge synth to rewrite the metadata store")
	}
	for _, hint := range hints {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
