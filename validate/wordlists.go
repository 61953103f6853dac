package validate

import (
	_ "embed"

	"github.com/BurntSushi/toml"

	"github.com/teranos/iconforge/errors"
)

//go:embed wordlists.toml
var defaultWordlists string

// Wordlists holds the data the scanner and suggester are driven by
type Wordlists struct {
	Exclusions   []string            `toml:"exclusions"`
	CallPatterns []string            `toml:"call_patterns"`
	Synonyms     map[string][]string `toml:"synonyms"`
}

// DefaultWordlists parses the built-in word lists
func DefaultWordlists() (*Wordlists, error) {
	var w Wordlists
	if _, err := toml.Decode(defaultWordlists, &w); err != nil {
		return nil, errors.NewMalformed("built-in wordlists.toml", err)
	}
	if w.Synonyms == nil {
		w.Synonyms = make(map[string][]string)
	}
	return &w, nil
}

// Extend returns a copy with extra exclusions and call patterns appended.
// A synonym entry for a name already in the table replaces it.
func (w *Wordlists) Extend(exclusions []string, synonyms map[string][]string, callPatterns []string) *Wordlists {
	out := &Wordlists{
		Exclusions:   append(append([]string{}, w.Exclusions...), exclusions...),
		CallPatterns: append(append([]string{}, w.CallPatterns...), callPatterns...),
		Synonyms:     make(map[string][]string, len(w.Synonyms)+len(synonyms)),
	}
	for name, alts := range w.Synonyms {
		out.Synonyms[name] = alts
	}
	for name, alts := range synonyms {
		out.Synonyms[name] = alts
	}
	return out
}
