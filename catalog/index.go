package catalog

import "sort"

// Index maps a label (category or tag) to the sorted names carrying it
type Index map[string][]string

// Labels returns the index labels, sorted
func (idx Index) Labels() []string {
	labels := make([]string, 0, len(idx))
	for label := range idx {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ByCategory derives the category index
func (c *Catalog) ByCategory() Index {
	return c.index(func(r IconRecord) []string { return r.Categories })
}

// ByTag derives the tag index
func (c *Catalog) ByTag() Index {
	return c.index(func(r IconRecord) []string { return r.Tags })
}

// index walks names in sorted order, so every label's list comes out sorted
func (c *Catalog) index(labels func(IconRecord) []string) Index {
	idx := make(Index)
	for _, name := range c.names {
		for _, label := range labels(c.records[name]) {
			idx[label] = append(idx[label], name)
		}
	}
	return idx
}
