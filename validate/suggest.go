package validate

import (
	"strings"
)

// MaxSuggestions caps the corrections offered per invalid name
const MaxSuggestions = 5

// similarityThreshold is the hyphen-token Jaccard index a name must exceed
const similarityThreshold = 0.5

// Suggester ranks corrections for names missing from the available set
type Suggester struct {
	available *Available
	sorted    []string
	synonyms  map[string][]string
}

// NewSuggester creates a suggester over available
func NewSuggester(available *Available, synonyms map[string][]string) *Suggester {
	return &Suggester{available: available, sorted: available.Names(), synonyms: synonyms}
}

// Suggest returns up to MaxSuggestions available names: synonyms first in
// table order, then names containing or contained in name, then names with
// similar hyphen tokens. Each group after the first is sorted.
func (s *Suggester) Suggest(name string) []string {
	var out []string
	seen := map[string]bool{name: true}
	add := func(candidate string) bool {
		if seen[candidate] || !s.available.Has(candidate) {
			return len(out) < MaxSuggestions
		}
		seen[candidate] = true
		out = append(out, candidate)
		return len(out) < MaxSuggestions
	}

	for _, alt := range s.synonyms[name] {
		if !add(alt) {
			return out
		}
	}
	for _, candidate := range s.sorted {
		if strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			if !add(candidate) {
				return out
			}
		}
	}
	for _, candidate := range s.sorted {
		if jaccard(name, candidate) > similarityThreshold {
			if !add(candidate) {
				return out
			}
		}
	}
	return out
}

// jaccard is the Jaccard index of the hyphen-separated token sets
func jaccard(a, b string) float64 {
	ta := tokens(a)
	tb := tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for t := range ta {
		if tb[t] {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func tokens(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Split(s, "-") {
		set[t] = true
	}
	return set
}
