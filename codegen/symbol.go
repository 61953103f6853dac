package codegen

import (
	"sort"

	"github.com/teranos/iconforge/errors"
)

// Options controls symbol derivation for one target
type Options struct {
	DigitPrefix   string          // prepended when the symbol would start with a digit
	KeywordPrefix string          // prepended when the symbol is a reserved word
	Reserved      map[string]bool // reserved words of the target
	Export        bool            // upper-case the first letter (Go visibility)
}

// SymbolFor derives the source-safe symbol for name:
//  1. every character outside [A-Za-z0-9_] becomes "_"
//  2. a leading digit gets DigitPrefix (so does a leading "_" when exporting)
//  3. a reserved word gets KeywordPrefix
//
// Distinct names can map to the same symbol; Assign detects that.
func SymbolFor(name string, opts Options) string {
	buf := make([]byte, 0, len(name))
	for _, r := range name {
		if isSymbolRune(r) {
			buf = append(buf, byte(r))
		} else {
			buf = append(buf, '_')
		}
	}

	if len(buf) > 0 && (isDigit(buf[0]) || (opts.Export && buf[0] == '_')) {
		buf = append([]byte(opts.DigitPrefix), buf...)
	}
	if opts.Export && len(buf) > 0 && buf[0] >= 'a' && buf[0] <= 'z' {
		buf[0] -= 'a' - 'A'
	}

	symbol := string(buf)
	if opts.Reserved[symbol] {
		symbol = opts.KeywordPrefix + symbol
	}
	return symbol
}

// Assign sorts names (byte order), numbers them from zero and derives their
// symbols. Two names sharing a symbol are rejected with
// ErrIdentifierCollision naming both.
func Assign(names []string, opts Options) ([]Identifier, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	ids := make([]Identifier, 0, len(sorted))
	owner := make(map[string]string, len(sorted))
	for i, name := range sorted {
		if i > 0 && sorted[i-1] == name {
			return nil, errors.Wrapf(errors.ErrDuplicateName, "%q", name)
		}

		symbol := SymbolFor(name, opts)
		if first, taken := owner[symbol]; taken {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrIdentifierCollision, "%q and %q both map to symbol %q", first, name, symbol),
				"rename one of the source files")
		}
		owner[symbol] = name

		ids = append(ids, Identifier{Name: name, Symbol: symbol, Ordinal: i})
	}
	return ids, nil
}

func isSymbolRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
