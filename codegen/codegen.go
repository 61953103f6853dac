// Package codegen turns a catalog into typed source artifacts: an
// enumeration of icon identifiers and the name <-> identifier lookup tables.
//
// # Architecture
//
// Generation is split in two layers:
//  1. Language-agnostic assignment (symbol.go) derives a symbol and an
//     ordinal for every catalog name and rejects collisions
//  2. Language-specific generators (cpp/, golang/) format the resulting Set
//
// Both tables of a target are written from the same ordered []Identifier,
// so the two directions always agree. Output never embeds timestamps;
// regenerating from an unchanged catalog is byte-identical, which is what
// Check relies on.
//
// # Implementing a New Generator
//
//	type Generator struct{ ... }
//
//	func (g *Generator) Language() string               { return "rust" }
//	func (g *Generator) Files() []string                { return []string{"icons.rs"} }
//	func (g *Generator) SymbolOptions() codegen.Options { return codegen.Options{...} }
//	func (g *Generator) Generate(set *codegen.Set) (map[string][]byte, error) { ... }
package codegen

import (
	"github.com/teranos/iconforge/catalog"
)

// Generator defines the interface for language-specific table generators.
type Generator interface {
	// Language returns the target name used in configuration (e.g. "cpp", "go")
	Language() string

	// Files returns the file names Generate produces, relative to the output directory
	Files() []string

	// SymbolOptions returns the prefixes and reserved words of the target
	SymbolOptions() Options

	// Generate renders every file of the target from one identifier set
	Generate(set *Set) (map[string][]byte, error)
}

// Identifier is the generated constant for one catalog name
type Identifier struct {
	Name    string
	Symbol  string
	Ordinal int
}

// Set is what generators render: the catalog version and its identifiers
// in ordinal order
type Set struct {
	Version     string
	Identifiers []Identifier
}

// Len returns the number of identifiers
func (s *Set) Len() int { return len(s.Identifiers) }

// NewSet assigns identifiers to every name in c
func NewSet(c *catalog.Catalog, opts Options) (*Set, error) {
	ids, err := Assign(c.Names(), opts)
	if err != nil {
		return nil, err
	}
	return &Set{Version: c.Version(), Identifiers: ids}, nil
}

// Generate assigns identifiers with the generator's options and renders its files
func Generate(gen Generator, c *catalog.Catalog) (map[string][]byte, error) {
	set, err := NewSet(c, gen.SymbolOptions())
	if err != nil {
		return nil, err
	}
	return gen.Generate(set)
}
