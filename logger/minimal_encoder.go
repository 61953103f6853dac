package logger

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the colors one theme uses
type palette struct {
	fg        string
	time      string
	component string
	bracket   string
	number    string
	key       string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;108m",
	component: "\x1b[38;5;208m",
	bracket:   "\x1b[38;5;214m",
	number:    "\x1b[38;5;175m",
	key:       "\x1b[38;5;109m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;107m",
	component: "\x1b[38;5;108m",
	bracket:   "\x1b[38;5;208m",
	number:    "\x1b[38;5;108m",
	key:       "\x1b[38;5;65m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for log output
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// colorizeMessage highlights bracketed stage markers like [synth] or [codegen]
func colorizeMessage(msg string) string {
	p := colors()
	var sb strings.Builder
	last := 0
	for _, m := range bracketPattern.FindAllStringIndex(msg, -1) {
		if m[0] > last {
			sb.WriteString(p.fg + msg[last:m[0]] + colorReset)
		}
		sb.WriteString(p.bracket + msg[m[0]:m[1]] + colorReset)
		last = m[1]
	}
	if last < len(msg) {
		sb.WriteString(p.fg + msg[last:] + colorReset)
	}
	return sb.String()
}

// minimalEncoder implements a calm, compact console encoder with theme support.
// Format: "13:04:35  synth  scanned source directory  dir=svg count=1432"
//
// Context fields added through With are kept in the embedded map encoder;
// every field, context or per-entry, is rendered as key=value.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	p := colors()
	final := buffer.NewPool().Get()

	final.AppendString(p.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(p.component)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorizeMessage(ent.Message))

	if rendered := renderFields(enc.Fields, fields); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	p := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + p.warnBg + p.warn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + p.errBg + p.err + "ERROR" + colorReset
	default:
		return colorBold + p.errBg + p.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: validate.scanner -> v.scanner
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// renderFields renders context fields (sorted by key) followed by entry
// fields in call order. No field is ever dropped.
func renderFields(context map[string]interface{}, fields []zapcore.Field) string {
	p := colors()
	var parts []string

	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, formatPair(p, k, context[k]))
	}

	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		v, ok := m.Fields[f.Key]
		if !ok {
			continue // skip fields such as zap.Error(nil)
		}
		parts = append(parts, formatPair(p, f.Key, v))
	}

	return strings.Join(parts, " ")
}

func formatPair(p palette, key string, value interface{}) string {
	var rendered string
	switch v := value.(type) {
	case string:
		rendered = v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		rendered = p.number + fmt.Sprintf("%v", v) + colorReset
	default:
		rendered = fmt.Sprintf("%v", v)
	}
	return p.key + key + colorReset + "=" + rendered
}
