package synth

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/iconforge/errors"
)

//go:embed keywords.toml
var defaultKeywords string

// KeywordGroup awards Label to any name containing one of Keywords
type KeywordGroup struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
}

// Rules is the keyword table driving tag and category derivation.
// It is plain data; both derivations are pure functions of a name.
type Rules struct {
	Separator  string         `toml:"separator"`
	Fallback   string         `toml:"fallback"`
	TagGroups  []KeywordGroup `toml:"tags"`
	Categories []KeywordGroup `toml:"categories"`
}

// DefaultRules parses the built-in keyword table
func DefaultRules() (*Rules, error) {
	return ParseRules(defaultKeywords, "built-in keywords.toml")
}

// LoadRules reads a keyword table from path. It replaces the built-in table
// entirely; omitted separator and fallback keep their defaults.
func LoadRules(path string) (*Rules, error) {
	var rules Rules
	meta, err := toml.DecodeFile(path, &rules)
	if err != nil {
		return nil, errors.NewMalformed(path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.NewMalformed(path, errors.Newf("unknown keys: %v", undecoded))
	}
	return finish(&rules, path)
}

// ParseRules decodes a keyword table; source names it in errors
func ParseRules(data, source string) (*Rules, error) {
	var rules Rules
	if _, err := toml.Decode(data, &rules); err != nil {
		return nil, errors.NewMalformed(source, err)
	}
	return finish(&rules, source)
}

func finish(r *Rules, source string) (*Rules, error) {
	if r.Separator == "" {
		r.Separator = "-"
	}
	if r.Fallback == "" {
		r.Fallback = "general"
	}

	seen := make(map[string]bool)
	for _, g := range r.Categories {
		if g.Label == "" {
			return nil, errors.NewMalformed(source, errors.New("category without a label"))
		}
		if seen[g.Label] || g.Label == r.Fallback {
			return nil, errors.NewMalformed(source, errors.Newf("category %q defined twice", g.Label))
		}
		seen[g.Label] = true
	}
	for _, g := range r.TagGroups {
		if g.Label == "" {
			return nil, errors.NewMalformed(source, errors.New("tag group without a label"))
		}
	}
	return r, nil
}

// Tags returns the hyphen tokens of name plus every tag group label whose
// keywords occur in name, as a sorted set
func (r *Rules) Tags(name string) []string {
	tags := make(map[string]bool)
	for _, token := range strings.Split(name, r.Separator) {
		if token != "" {
			tags[token] = true
		}
	}
	for _, g := range r.TagGroups {
		if matches(name, g.Keywords) {
			tags[g.Label] = true
		}
	}
	return sortedKeys(tags)
}

// Categorize returns every category whose keywords occur in name, in table
// order, or just the fallback when none does. Never empty.
func (r *Rules) Categorize(name string) []string {
	var categories []string
	for _, g := range r.Categories {
		if matches(name, g.Keywords) {
			categories = append(categories, g.Label)
		}
	}
	if len(categories) == 0 {
		return []string{r.Fallback}
	}
	return categories
}

// Vocabulary returns the closed set of category labels, fallback included
func (r *Rules) Vocabulary() map[string]bool {
	vocab := map[string]bool{r.Fallback: true}
	for _, g := range r.Categories {
		vocab[g.Label] = true
	}
	return vocab
}

// matches is a substring test, not a token test: "bookmark-star" contains "star"
func matches(name string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
