// Package manifest renders the Qt resource collection (.qrc) that maps each
// icon's svg file to its logical name.
package manifest

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/errors"
)

// DefaultPrefix is the resource prefix used when Options.Prefix is empty
const DefaultPrefix = "/icons"

// Options configures manifest rendering
type Options struct {
	Prefix string
}

// RCC is the root element of a .qrc document
type RCC struct {
	XMLName   xml.Name    `xml:"RCC"`
	Resources []QResource `xml:"qresource"`
}

// QResource groups files under one prefix
type QResource struct {
	Prefix string `xml:"prefix,attr"`
	Files  []File `xml:"file"`
}

// File maps a path relative to the .qrc to its alias
type File struct {
	Alias string `xml:"alias,attr"`
	Path  string `xml:",chardata"`
}

// Build maps every record to a file entry, sorted by name. It reads the
// catalog only; svg files are never touched.
func Build(c *catalog.Catalog, opts Options) *RCC {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}

	res := QResource{Prefix: opts.Prefix}
	for _, record := range c.Records() {
		res.Files = append(res.Files, File{Alias: record.Name, Path: record.SourceRef})
	}
	return &RCC{Resources: []QResource{res}}
}

// Render returns the .qrc document with a trailing newline
func Render(c *catalog.Catalog, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(Build(c, opts)); err != nil {
		return nil, errors.Wrap(err, "failed to encode resource manifest")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write renders the manifest to path, creating parent directories
func Write(path string, c *catalog.Catalog, opts Options) error {
	data, err := Render(c, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create manifest directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %s", path)
	}
	return nil
}
