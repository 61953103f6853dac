package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/teranos/iconforge/errors"
)

// Metadata store file names
const (
	IconsFile      = "icons.json"
	CategoriesFile = "categories.json"
	TagsFile       = "tags.json"
)

// Store reads and writes the metadata store directory
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// iconsDocument is the on-disk shape of icons.json
type iconsDocument struct {
	Icons   map[string]IconRecord `json:"icons"`
	Count   *int                  `json:"count"`
	Version string                `json:"version"`
}

// IconsPath returns the path of icons.json
func (s *Store) IconsPath() string { return filepath.Join(s.Dir, IconsFile) }

// Exists reports whether icons.json is present
func (s *Store) Exists() bool {
	info, err := os.Stat(s.IconsPath())
	return err == nil && info.Mode().IsRegular()
}

// Render returns the three store files keyed by name. Output is
// byte-stable for a given catalog.
func Render(c *Catalog) (map[string][]byte, error) {
	icons := make(map[string]IconRecord, c.Len())
	for _, r := range c.Records() {
		icons[r.Name] = r
	}
	count := c.Len()

	docs := map[string]interface{}{
		IconsFile:      iconsDocument{Icons: icons, Count: &count, Version: c.Version()},
		CategoriesFile: c.ByCategory(),
		TagsFile:       c.ByTag(),
	}

	files := make(map[string][]byte, len(docs))
	for name, doc := range docs {
		data, err := encode(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s", name)
		}
		files[name] = data
	}
	return files, nil
}

// Save writes icons.json, categories.json and tags.json, replacing any
// previous content
func (s *Store) Save(c *Catalog) error {
	files, err := Render(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create metadata directory %s", s.Dir)
	}
	for _, name := range []string{IconsFile, CategoriesFile, TagsFile} {
		path := filepath.Join(s.Dir, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}
	return nil
}

// Load reads icons.json back into a catalog. A missing file is
// ErrMissingInput; anything that does not parse or disagrees with itself
// is ErrMalformedMetadata. The derived index files are not read.
func (s *Store) Load() (*Catalog, error) {
	path := s.IconsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInput("metadata store", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var doc iconsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformed(path, err)
	}
	if doc.Icons == nil {
		return nil, errors.NewMalformed(path, errors.New(`missing "icons" object`))
	}
	if doc.Count != nil && *doc.Count != len(doc.Icons) {
		return nil, errors.NewMalformed(path,
			errors.Newf("count is %d but %d icons are listed", *doc.Count, len(doc.Icons)))
	}

	records := make([]IconRecord, 0, len(doc.Icons))
	for key, r := range doc.Icons {
		if r.Name != key {
			return nil, errors.NewMalformed(path,
				errors.Newf("icon %q has name %q", key, r.Name))
		}
		records = append(records, r)
	}

	c, err := New(doc.Version, records...)
	if err != nil {
		return nil, errors.NewMalformed(path, err)
	}
	return c, nil
}

// LoadNames returns the sorted icon names of the stored catalog
func (s *Store) LoadNames() ([]string, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}
	return c.Names(), nil
}

// encode renders v as 2-space indented JSON with a trailing newline
func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
