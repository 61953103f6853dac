// Package golang generates a Go package holding the icon identifiers and
// an explicitly constructed lookup-table value.
package golang

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/teranos/iconforge/codegen"
	"github.com/teranos/iconforge/errors"
)

// FileName is the single file this target produces
const FileName = "icons.go"

// Identifiers declared by the generated file; an icon symbol equal to one
// of them is escaped.
var declared = map[string]bool{
	"Icon":           true,
	"IconCount":      true,
	"CatalogVersion": true,
	"Tables":         true,
	"NewTables":      true,
}

// Generator implements codegen.Generator for Go
type Generator struct {
	pkg string
}

// NewGenerator creates a Go generator emitting package pkg
func NewGenerator(pkg string) *Generator {
	if pkg == "" {
		pkg = "icons"
	}
	return &Generator{pkg: pkg}
}

// Language returns "go"
func (g *Generator) Language() string {
	return "go"
}

// Files returns the generated file name
func (g *Generator) Files() []string {
	return []string{FileName}
}

// SymbolOptions exports every symbol. Go keywords and predeclared
// identifiers are all lower case, so exported symbols never clash with them.
func (g *Generator) SymbolOptions() codegen.Options {
	return codegen.Options{
		DigitPrefix:   "Icon_",
		KeywordPrefix: "Icon_",
		Reserved:      declared,
		Export:        true,
	}
}

// Generate renders icons.go and formats it (implements codegen.Generator)
func (g *Generator) Generate(set *codegen.Set) (map[string][]byte, error) {
	src := g.render(set)

	formatted, err := imports.Process(FileName, []byte(src), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.WithDetail(
			errors.AssertionFailedf("generated Go source does not parse: %v", err),
			src)
	}
	return map[string][]byte{FileName: formatted}, nil
}

func (g *Generator) render(set *codegen.Set) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("// Code generated by iconforge from catalog version %s. DO NOT EDIT.\n\n",
		strings.ReplaceAll(set.Version, "\n", " ")))
	sb.WriteString(fmt.Sprintf("package %s\n\n", g.pkg))

	sb.WriteString("// Icon identifies an icon by its ordinal in sorted-name order.\n")
	sb.WriteString("type Icon int\n\n")

	sb.WriteString("const (\n")
	for _, id := range set.Identifiers {
		sb.WriteString(fmt.Sprintf("\t%s Icon = %d // %s\n", id.Symbol, id.Ordinal, strconv.Quote(id.Name)))
	}
	sb.WriteString(")\n\n")

	sb.WriteString("// IconCount is the number of icons in the catalog.\n")
	sb.WriteString(fmt.Sprintf("const IconCount = %d\n\n", set.Len()))

	sb.WriteString("// CatalogVersion is the version of the catalog the identifiers were generated from.\n")
	sb.WriteString(fmt.Sprintf("const CatalogVersion = %s\n\n", strconv.Quote(set.Version)))

	sb.WriteString("// Valid reports whether i names an icon.\n")
	sb.WriteString("func (i Icon) Valid() bool { return i >= 0 && i < IconCount }\n\n")

	sb.WriteString(`// Tables holds the name <-> Icon lookup tables. Build it once with
// NewTables and pass it by reference.
type Tables struct {
	names []string
	icons map[string]Icon
}

// NewTables builds both directions from one ordered list.
func NewTables() *Tables {
	names := []string{
`)
	for _, id := range set.Identifiers {
		sb.WriteString(fmt.Sprintf("\t\t%s,\n", strconv.Quote(id.Name)))
	}
	sb.WriteString(`	}
	t := &Tables{names: names, icons: make(map[string]Icon, len(names))}
	for i, name := range names {
		t.icons[name] = Icon(i)
	}
	return t
}

// Name returns the string name of icon.
func (t *Tables) Name(icon Icon) (string, bool) {
	if !icon.Valid() {
		return "", false
	}
	return t.names[icon], true
}

// Lookup returns the Icon called name.
func (t *Tables) Lookup(name string) (Icon, bool) {
	icon, ok := t.icons[name]
	return icon, ok
}

// Len returns the number of icons.
func (t *Tables) Len() int { return len(t.names) }
`)
	return sb.String()
}
