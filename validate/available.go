package validate

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/iconforge/catalog"
	"github.com/teranos/iconforge/codegen/cpp"
	"github.com/teranos/iconforge/errors"
)

// NameSource records where the available name set came from
type NameSource string

// Name sources, in preference order
const (
	SourceLookupTable NameSource = "lookup-table"
	SourceMetadata    NameSource = "metadata"
	SourceSVGListing  NameSource = "svg-listing"
)

// Paths locates the candidate name sources. Empty fields are skipped.
type Paths struct {
	StringsHeader string // generated C++ lookup table
	GoFile        string // generated Go table
	Metadata      string // metadata store directory
	SVGDir        string // raw svg files
	Extension     string // svg file extension (default: .svg)
}

// Available is the set of names the generated artifacts define
type Available struct {
	Source NameSource
	Path   string
	names  map[string]bool
}

func newAvailable(source NameSource, path string, names []string) *Available {
	a := &Available{Source: source, Path: path, names: make(map[string]bool, len(names))}
	for _, name := range names {
		a.names[name] = true
	}
	return a
}

// NewAvailable builds a set from names, for callers that already hold them
func NewAvailable(source NameSource, names ...string) *Available {
	return newAvailable(source, "", names)
}

// Has reports whether name is available
func (a *Available) Has(name string) bool { return a.names[name] }

// Len returns the number of names
func (a *Available) Len() int { return len(a.names) }

// Names returns the names sorted
func (a *Available) Names() []string {
	out := make([]string, 0, len(a.names))
	for name := range a.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadAvailable reads the first name source that exists: the generated
// lookup table (C++ then Go), the metadata store, then the svg listing.
// Finding none is ErrMissingInput; a source that exists but does not parse
// is ErrMalformedMetadata and no later source is tried.
func LoadAvailable(paths Paths) (*Available, error) {
	if exists(paths.StringsHeader) {
		names, err := parseStringsHeader(paths.StringsHeader)
		if err != nil {
			return nil, err
		}
		return newAvailable(SourceLookupTable, paths.StringsHeader, names), nil
	}

	if exists(paths.GoFile) {
		names, err := parseGoTable(paths.GoFile)
		if err != nil {
			return nil, err
		}
		return newAvailable(SourceLookupTable, paths.GoFile, names), nil
	}

	if paths.Metadata != "" {
		store := catalog.NewStore(paths.Metadata)
		if store.Exists() {
			names, err := store.LoadNames()
			if err != nil {
				return nil, err
			}
			return newAvailable(SourceMetadata, store.IconsPath(), names), nil
		}
	}

	if exists(paths.SVGDir) {
		names, err := listSVG(paths.SVGDir, paths.Extension)
		if err != nil {
			return nil, err
		}
		return newAvailable(SourceSVGListing, paths.SVGDir, names), nil
	}

	return nil, errors.WithHint(
		errors.Wrapf(errors.ErrMissingInput, "no icon name source found (tried %s)", strings.Join(nonEmpty(
			paths.StringsHeader, paths.GoFile, paths.Metadata, paths.SVGDir), ", ")),
		"run iconforge build to generate the lookup tables")
}

var headerRow = regexp.MustCompile(`\{Icons::\w+,\s*"((?:[^"\\]|\\.)+)"\}`)

// parseStringsHeader extracts names from the {Icons::sym, "name"} rows
func parseStringsHeader(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	content := string(data)

	var names []string
	for _, m := range headerRow.FindAllStringSubmatch(content, -1) {
		name, err := cpp.Unquote(m[1])
		if err != nil {
			return nil, errors.NewMalformed(path, err)
		}
		names = append(names, name)
	}
	if len(names) == 0 && !strings.Contains(content, "createIconTables()") {
		return nil, errors.NewMalformed(path, errors.New("no lookup table rows found"))
	}
	return names, nil
}

// parseGoTable extracts the names literal from NewTables
func parseGoTable(path string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, errors.NewMalformed(path, err)
	}

	var (
		names []string
		found bool
		bad   error
	)
	ast.Inspect(file, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "NewTables" || fn.Body == nil {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			lit, ok := n.(*ast.CompositeLit)
			if !ok || found {
				return !found
			}
			arr, ok := lit.Type.(*ast.ArrayType)
			if !ok {
				return true
			}
			if elt, ok := arr.Elt.(*ast.Ident); !ok || elt.Name != "string" {
				return true
			}
			found = true
			for _, e := range lit.Elts {
				basic, ok := e.(*ast.BasicLit)
				if !ok || basic.Kind != token.STRING {
					bad = errors.Newf("non-literal entry at %s", fset.Position(e.Pos()))
					return false
				}
				name, err := strconv.Unquote(basic.Value)
				if err != nil {
					bad = err
					return false
				}
				names = append(names, name)
			}
			return false
		})
		return false
	})

	if bad != nil {
		return nil, errors.NewMalformed(path, bad)
	}
	if !found {
		return nil, errors.NewMalformed(path, errors.New("NewTables names literal not found"))
	}
	return names, nil
}

func listSVG(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = ".svg"
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= len(ext) || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	return names, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
