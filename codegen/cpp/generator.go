// Package cpp generates the C++ enumeration and lookup-table headers.
package cpp

import (
	"fmt"
	"strings"

	"github.com/teranos/iconforge/codegen"
	"github.com/teranos/iconforge/errors"
)

// Header file names
const (
	EnumsHeader   = "IconforgeEnums.h"
	StringsHeader = "IconforgeStrings.h"
)

// Config configures the C++ target
type Config struct {
	Namespace     string // may be nested, e.g. "app::icons"
	DigitPrefix   string
	KeywordPrefix string
}

// Generator implements codegen.Generator for C++ with Qt containers
type Generator struct {
	cfg Config
}

// NewGenerator creates a new C++ generator
func NewGenerator(cfg Config) *Generator {
	if cfg.Namespace == "" {
		cfg.Namespace = "icons"
	}
	if cfg.DigitPrefix == "" {
		cfg.DigitPrefix = "Icon_"
	}
	if cfg.KeywordPrefix == "" {
		cfg.KeywordPrefix = "icon_"
	}
	return &Generator{cfg: cfg}
}

// Language returns "cpp"
func (g *Generator) Language() string {
	return "cpp"
}

// Files returns the two header names
func (g *Generator) Files() []string {
	return []string{EnumsHeader, StringsHeader}
}

// SymbolOptions escapes C++ reserved words
func (g *Generator) SymbolOptions() codegen.Options {
	return codegen.Options{
		DigitPrefix:   g.cfg.DigitPrefix,
		KeywordPrefix: g.cfg.KeywordPrefix,
		Reserved:      cppKeywords,
	}
}

// Generate renders both headers (implements codegen.Generator)
func (g *Generator) Generate(set *codegen.Set) (map[string][]byte, error) {
	return map[string][]byte{
		EnumsHeader:   []byte(g.enumsHeader(set)),
		StringsHeader: []byte(g.stringsHeader(set)),
	}, nil
}

// C++ reserved words that get the keyword prefix. The list is fixed:
// changing it renames existing enumerators.
var cppKeywords = map[string]bool{
	"delete": true, "new": true, "class": true, "struct": true, "enum": true,
	"union": true, "typedef": true, "static": true, "const": true, "volatile": true,
	"inline": true, "virtual": true, "explicit": true, "operator": true, "template": true,
	"typename": true, "namespace": true, "using": true, "public": true, "private": true,
	"protected": true, "friend": true, "extern": true, "register": true, "auto": true,
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true, "bool": true,
	"true": true, "false": true, "if": true, "else": true, "for": true,
	"while": true, "do": true, "switch": true, "case": true, "default": true,
	"break": true, "continue": true, "return": true, "goto": true, "try": true,
	"catch": true, "throw": true, "sizeof": true,
}

func (g *Generator) guard(file string) string {
	base := strings.TrimSuffix(file, ".h")
	return strings.ToUpper(base) + "_H"
}

func (g *Generator) writePreamble(sb *strings.Builder, set *codegen.Set, file string) {
	sb.WriteString("/**\n")
	sb.WriteString(" * AUTO-GENERATED FILE - DO NOT EDIT MANUALLY\n")
	sb.WriteString(fmt.Sprintf(" * Generated by iconforge from catalog version %s\n", commentSafe(set.Version)))
	sb.WriteString(" */\n\n")
	sb.WriteString(fmt.Sprintf("#ifndef %s\n#define %s\n\n", g.guard(file), g.guard(file)))
}

func (g *Generator) enumsHeader(set *codegen.Set) string {
	var sb strings.Builder
	g.writePreamble(&sb, set, EnumsHeader)

	sb.WriteString(fmt.Sprintf("namespace %s {\n\n", g.cfg.Namespace))

	sb.WriteString("/**\n * @brief Enumeration of all available icons\n */\n")
	sb.WriteString("enum class Icons {\n")
	for i, id := range set.Identifiers {
		sb.WriteString(fmt.Sprintf("    %s = %d", id.Symbol, id.Ordinal))
		if i < len(set.Identifiers)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("};\n\n")

	sb.WriteString("/**\n * @brief Total number of available icons\n */\n")
	sb.WriteString(fmt.Sprintf("constexpr int ICON_COUNT = %d;\n\n", set.Len()))

	sb.WriteString("/**\n * @brief Version of the catalog the identifiers were generated from\n */\n")
	sb.WriteString(fmt.Sprintf("constexpr const char CATALOG_VERSION[] = %s;\n\n", quote(set.Version)))

	sb.WriteString(fmt.Sprintf("} // namespace %s\n\n", g.cfg.Namespace))
	sb.WriteString(fmt.Sprintf("#endif // %s\n", g.guard(EnumsHeader)))
	return sb.String()
}

func (g *Generator) stringsHeader(set *codegen.Set) string {
	var sb strings.Builder
	g.writePreamble(&sb, set, StringsHeader)

	sb.WriteString(fmt.Sprintf("#include \"%s\"\n", EnumsHeader))
	sb.WriteString("#include <QHash>\n#include <QString>\n#include <initializer_list>\n#include <utility>\n\n")
	sb.WriteString(fmt.Sprintf("namespace %s {\n\n", g.cfg.Namespace))

	sb.WriteString(`/**
 * @brief Immutable name <-> icon lookup tables
 *
 * Build once with createIconTables() and pass by reference.
 */
class IconTables {
public:
    QString name(Icons icon) const { return m_iconToString.value(icon); }

    Icons lookup(const QString &name, bool *ok = nullptr) const {
        const auto it = m_stringToIcon.constFind(name);
        const bool found = it != m_stringToIcon.constEnd();
        if (ok) {
            *ok = found;
        }
        return found ? it.value() : Icons{};
    }

    bool contains(const QString &name) const { return m_stringToIcon.contains(name); }

    int size() const { return m_iconToString.size(); }

private:
    friend IconTables createIconTables();

    QHash<Icons, QString> m_iconToString;
    QHash<QString, Icons> m_stringToIcon;
};

/**
 * @brief Builds both directions from one ordered list
 */
inline IconTables createIconTables() {
    const std::initializer_list<std::pair<Icons, const char *>> entries = {
`)
	for i, id := range set.Identifiers {
		sb.WriteString(fmt.Sprintf("        {Icons::%s, %s}", id.Symbol, quote(id.Name)))
		if i < len(set.Identifiers)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(`    };

    IconTables tables;
    for (const auto &entry : entries) {
        const QString name = QString::fromUtf8(entry.second);
        tables.m_iconToString.insert(entry.first, name);
        tables.m_stringToIcon.insert(name, entry.first);
    }
    return tables;
}

`)
	sb.WriteString(fmt.Sprintf("} // namespace %s\n\n", g.cfg.Namespace))
	sb.WriteString(fmt.Sprintf("#endif // %s\n", g.guard(StringsHeader)))
	return sb.String()
}

// quote renders s as a C++ string literal. Control characters use 3-digit
// octal escapes, which cannot swallow the character that follows.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c < 0x20 || c == 0x7f:
			sb.WriteString(fmt.Sprintf("\\%03o", c))
		case c == '?' && i+1 < len(s) && s[i+1] == '?':
			sb.WriteString("?\\") // no trigraphs
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unquote reverses quote for the body of a string literal (without the
// surrounding quotes): simple escapes and octal escapes of up to 3 digits
func Unquote(body string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", errors.Newf("trailing backslash in %q", body)
		}
		switch e := body[i]; {
		case e == '"' || e == '\\' || e == '?' || e == '\'':
			sb.WriteByte(e)
		case e == 'n':
			sb.WriteByte('\n')
		case e == 't':
			sb.WriteByte('\t')
		case e >= '0' && e <= '7':
			v, n := 0, 0
			for n < 3 && i+n < len(body) && body[i+n] >= '0' && body[i+n] <= '7' {
				v = v*8 + int(body[i+n]-'0')
				n++
			}
			if v > 0xff {
				return "", errors.Newf("octal escape out of range in %q", body)
			}
			sb.WriteByte(byte(v))
			i += n - 1
		default:
			return "", errors.Newf("unsupported escape \\%c in %q", e, body)
		}
	}
	return sb.String(), nil
}

func commentSafe(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "*/", "* /"), "\n", " ")
}
