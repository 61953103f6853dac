package golang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/codegen"
)

func render(t *testing.T, pkg string, c *catalog.Catalog) string {
	t.Helper()
	files, err := codegen.Generate(NewGenerator(pkg), c)
	require.NoError(t, err)
	require.Contains(t, files, FileName)
	return string(files[FileName])
}

// parsed is what a consumer sees of the generated file
type parsed struct {
	pkg    string
	consts map[string]int // Icon constants by symbol
	names  []string       // NewTables literal in order
}

func parse(t *testing.T, src string) parsed {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, FileName, src, parser.ParseComments)
	require.NoError(t, err, src)

	out := parsed{pkg: file.Name.Name, consts: make(map[string]int)}
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.ValueSpec:
			ident, ok := node.Type.(*ast.Ident)
			if !ok || ident.Name != "Icon" || len(node.Values) != 1 {
				return true
			}
			lit, ok := node.Values[0].(*ast.BasicLit)
			require.True(t, ok)
			v, err := strconv.Atoi(lit.Value)
			require.NoError(t, err)
			out.consts[node.Names[0].Name] = v
		case *ast.CompositeLit:
			arr, ok := node.Type.(*ast.ArrayType)
			if !ok {
				return true
			}
			if elt, ok := arr.Elt.(*ast.Ident); !ok || elt.Name != "string" {
				return true
			}
			for _, e := range node.Elts {
				lit := e.(*ast.BasicLit)
				s, err := strconv.Unquote(lit.Value)
				require.NoError(t, err)
				out.names = append(out.names, s)
			}
		}
		return true
	})
	return out
}

func TestGenerateArrowsAndZebra(t *testing.T) {
	src := render(t, "", catalog.MustNew("1.0.0",
		catalog.IconRecord{Name: "zebra"},
		catalog.IconRecord{Name: "arrow-right"},
		catalog.IconRecord{Name: "arrow-left"},
	))

	assert.Contains(t, src, "// Code generated by iconforge from catalog version 1.0.0. DO NOT EDIT.")
	assert.Contains(t, src, "const IconCount = 3")
	assert.Contains(t, src, `const CatalogVersion = "1.0.0"`)

	p := parse(t, src)
	assert.Equal(t, "icons", p.pkg)
	assert.Equal(t, map[string]int{"Arrow_left": 0, "Arrow_right": 1, "Zebra": 2}, p.consts)
	assert.Equal(t, []string{"arrow-left", "arrow-right", "zebra"}, p.names)
}

func TestGenerateIsBijective(t *testing.T) {
	c := catalog.MustNew("2.1.0",
		catalog.IconRecord{Name: "1st-place"},
		catalog.IconRecord{Name: "type"},
		catalog.IconRecord{Name: "icon"},
		catalog.IconRecord{Name: "tables"},
		catalog.IconRecord{Name: `quote"d`},
	)
	p := parse(t, render(t, "assets", c))

	assert.Equal(t, "assets", p.pkg)
	require.Len(t, p.consts, c.Len())
	assert.Equal(t, c.Names(), p.names)

	opts := NewGenerator("").SymbolOptions()
	for i, name := range p.names {
		symbol := codegen.SymbolFor(name, opts)
		assert.Equal(t, i, p.consts[symbol], name)
	}
	assert.Contains(t, p.consts, "Icon_1st_place")
	assert.Contains(t, p.consts, "Icon_Icon", "declared identifiers are escaped")
	assert.Contains(t, p.consts, "Type", "exported symbols never clash with keywords")
}

func TestGenerateEmptyCatalog(t *testing.T) {
	src := render(t, "icons", catalog.MustNew("1.0.0"))
	p := parse(t, src)

	assert.Empty(t, p.consts)
	assert.Empty(t, p.names)
	assert.Contains(t, src, "const IconCount = 0")
}

func TestGenerateIsDeterministic(t *testing.T) {
	c := catalog.MustNew("1.0.0",
		catalog.IconRecord{Name: "b"},
		catalog.IconRecord{Name: "a"},
	)
	assert.Equal(t, render(t, "icons", c), render(t, "icons", c))
}

func TestGenerateRejectsCollisions(t *testing.T) {
	_, err := codegen.Generate(NewGenerator(""), catalog.MustNew("1.0.0",
		catalog.IconRecord{Name: "a-b"},
		catalog.IconRecord{Name: "A_b"},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifier collision")
}
