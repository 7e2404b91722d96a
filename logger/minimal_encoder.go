package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI codes for one theme
type palette struct {
	fg        string
	time      string
	component string
	key       string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

var palettes = map[string]palette{
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		fg:        "\x1b[38;5;223m",
		time:      "\x1b[38;5;108m",
		component: "\x1b[38;5;208m",
		key:       "\x1b[38;5;109m",
		warn:      "\x1b[38;5;214m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;88m",
	},
	// Everforest Dark (forest greens)
	"everforest": {
		fg:        "\x1b[38;5;223m",
		time:      "\x1b[38;5;107m",
		component: "\x1b[38;5;108m",
		key:       "\x1b[38;5;109m",
		warn:      "\x1b[38;5;179m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;52m",
	},
}

// Current active theme
var currentTheme = "everforest"

// SetTheme configures the color scheme for console log output.
// Unknown themes are ignored.
func SetTheme(theme string) {
	if _, ok := palettes[theme]; ok {
		currentTheme = theme
	}
}

// Theme returns the active console theme name
func Theme() string {
	return currentTheme
}

// IsTheme reports whether theme names a known palette
func IsTheme(theme string) bool {
	_, ok := palettes[theme]
	return ok
}

func colors() palette {
	return palettes[currentTheme]
}

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder with theme support.
// Format: "13:04:35  WARN  fluffy  anonymous struct  unit=net.yaml symbol=pair"
//
// Fields attached with Logger.With are kept in the embedded map encoder and
// printed before the entry's own fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := bufferPool.Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  DEBUG")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if pairs := enc.encodeFields(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// encodeFields renders context fields (sorted) followed by entry fields in order.
// Every field is kept; nothing is special-cased away.
func (enc *minimalEncoder) encodeFields(fields []zapcore.Field) []string {
	c := colors()
	var pairs []string

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, c.key+k+colorReset+"="+fmt.Sprint(enc.Fields[k]))
	}

	entryEnc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(entryEnc)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		v, ok := entryEnc.Fields[f.Key]
		if !ok || seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		pairs = append(pairs, c.key+f.Key+colorReset+"="+fmt.Sprint(v))
	}

	return pairs
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	default:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: typegen.fluffy -> t.fluffy
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
