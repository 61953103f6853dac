package validate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/iconforge/errors"
)

// ReferenceEntry maps a commonly guessed name to the available icons to
// use instead, best first
type ReferenceEntry struct {
	Guess string
	Names []string
}

// Reference returns the synonym table filtered to available names, sorted
// by guess. Guesses with no available replacement are left out.
func (s *Suggester) Reference() []ReferenceEntry {
	guesses := make([]string, 0, len(s.synonyms))
	for guess := range s.synonyms {
		guesses = append(guesses, guess)
	}
	sort.Strings(guesses)

	var entries []ReferenceEntry
	for _, guess := range guesses {
		var names []string
		for _, alt := range s.synonyms[guess] {
			if s.available.Has(alt) {
				names = append(names, alt)
			}
		}
		if len(names) > 0 {
			entries = append(entries, ReferenceEntry{Guess: guess, Names: names})
		}
	}
	return entries
}

// WriteReference writes a Markdown name reference: the filtered synonym
// table, then every available name
func (s *Suggester) WriteReference(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "# Icon Name Reference\n\n")
	fmt.Fprint(bw, "Common icon names and the available icons to use instead:\n\n")
	for _, e := range s.Reference() {
		fmt.Fprintf(bw, "- `%s` → `%s`", e.Guess, e.Names[0])
		if len(e.Names) > 1 {
			fmt.Fprintf(bw, " (alternatives: %s)", strings.Join(e.Names[1:], ", "))
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "\n## All Available Icons (%d total)\n\n", len(s.sorted))
	fmt.Fprint(bw, "```\n")
	for _, name := range s.sorted {
		fmt.Fprintln(bw, name)
	}
	fmt.Fprint(bw, "```\n")
	return bw.Flush()
}

// WriteReference writes the name reference to path, relative to the
// project root unless absolute
func (v *Validator) WriteReference(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	if err := v.suggester.WriteReference(f); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, f.Close()
}
