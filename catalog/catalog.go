// Package catalog holds the icon catalog shared by every pipeline stage:
// the records synthesized from one directory snapshot, the indices derived
// from them, and the metadata store they are persisted to.
package catalog

import (
	"sort"

	"github.com/teranos/iconforge/errors"
)

// DefaultVersion is the catalog version used when none is configured
const DefaultVersion = "1.0.0"

// IconRecord describes one source image
type IconRecord struct {
	Name         string   `json:"name"`
	SourceRef    string   `json:"svg_file"`
	Tags         []string `json:"tags"`
	Categories   []string `json:"categories"`
	Contributors []string `json:"contributors"`
}

// Catalog is the immutable, versioned set of icon records for one run.
// Accessors return copies; nothing can mutate a catalog after New.
type Catalog struct {
	version string
	records map[string]IconRecord
	names   []string
}

// New builds a catalog. Tags and categories are deduplicated and sorted,
// nil lists become empty lists. Two records with the same name are
// rejected with ErrDuplicateName.
func New(version string, records ...IconRecord) (*Catalog, error) {
	if version == "" {
		version = DefaultVersion
	}

	c := &Catalog{
		version: version,
		records: make(map[string]IconRecord, len(records)),
		names:   make([]string, 0, len(records)),
	}

	for _, r := range records {
		if r.Name == "" {
			return nil, errors.AssertionFailedf("icon record with empty name (source %q)", r.SourceRef)
		}
		if existing, ok := c.records[r.Name]; ok {
			return nil, errors.Wrapf(errors.ErrDuplicateName, "%q from %s and %s", r.Name, existing.SourceRef, r.SourceRef)
		}
		c.records[r.Name] = normalize(r)
		c.names = append(c.names, r.Name)
	}

	sort.Strings(c.names)
	return c, nil
}

// MustNew is New for fixtures that are known to be valid
func MustNew(version string, records ...IconRecord) *Catalog {
	c, err := New(version, records...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of records
func (c *Catalog) Len() int { return len(c.names) }

// Version returns the catalog version string
func (c *Catalog) Version() string { return c.version }

// Names returns every icon name in lexicographic (byte) order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Get returns the record for name
func (c *Catalog) Get(name string) (IconRecord, bool) {
	r, ok := c.records[name]
	if !ok {
		return IconRecord{}, false
	}
	return r.clone(), true
}

// Has reports whether name is in the catalog
func (c *Catalog) Has(name string) bool {
	_, ok := c.records[name]
	return ok
}

// Records returns every record sorted by name
func (c *Catalog) Records() []IconRecord {
	out := make([]IconRecord, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.records[name].clone())
	}
	return out
}

func (r IconRecord) clone() IconRecord {
	r.Tags = append([]string{}, r.Tags...)
	r.Categories = append([]string{}, r.Categories...)
	r.Contributors = append([]string{}, r.Contributors...)
	return r
}

func normalize(r IconRecord) IconRecord {
	r.Tags = SortedSet(r.Tags)
	r.Categories = SortedSet(r.Categories)
	r.Contributors = append([]string{}, r.Contributors...)
	return r
}

// SortedSet returns the distinct non-empty values of in, sorted
func SortedSet(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
