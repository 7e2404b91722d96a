package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	return ansiRegex.ReplaceAllString(str, "")
}

func encode(t *testing.T, enc zapcore.Encoder, level zapcore.Level, name, msg string, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:      level,
		Time:       time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: name,
		Message:    msg,
	}, fields)
	require.NoError(t, err)
	return stripANSI(buf.String())
}

// The minimal encoder must never silently discard a field.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String("unit", "net.yaml"), "unit=net.yaml"},
		{zap.String("symbol", "point"), "symbol=point"},
		{zap.String("region", "type"), "region=type"},
		{zap.Bool("skipped", true), "skipped=true"},
		{zap.Int("count", 12), "count=12"},
		{zap.Int64("size", 9999999), "size=9999999"},
		{zap.Float64("ratio", 0.8), "ratio=0.8"},
		{zap.Strings("inputs", []string{"a.yaml", "b.toml"}), "inputs=[a.yaml b.toml]"},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
		{zap.Error(nil), ""},
	}

	var fields []zapcore.Field
	for _, tf := range testFields {
		fields = append(fields, tf.field)
	}

	out := encode(t, newMinimalEncoder(), zapcore.InfoLevel, "export", "Exported unit", fields...)

	for _, tf := range testFields {
		if tf.mustFind != "" {
			assert.Contains(t, out, tf.mustFind)
		}
	}
}

func TestMinimalEncoderLayout(t *testing.T) {
	out := encode(t, newMinimalEncoder(), zapcore.WarnLevel, "typegen.fluffy", "anonymous struct", zap.String("symbol", "pair"))

	assert.True(t, strings.HasPrefix(out, "13:04:35  WARN  t.fluffy  anonymous struct"), out)
	assert.True(t, strings.HasSuffix(out, "symbol=pair\n"), out)
}

func TestMinimalEncoderInfoHasNoLevel(t *testing.T) {
	out := encode(t, newMinimalEncoder(), zapcore.InfoLevel, "", "Exported")

	assert.Equal(t, "13:04:35  Exported\n", out)
}

func TestMinimalEncoderKeepsContextFields(t *testing.T) {
	base := newMinimalEncoder()
	base.AddString("run_id", "r-1")

	clone := base.Clone()
	out := encode(t, clone, zapcore.InfoLevel, "", "Exported", zap.String("unit", "a"))

	assert.Contains(t, out, "run_id=r-1 unit=a")

	// The clone does not leak into the parent
	clone.AddString("extra", "x")
	assert.NotContains(t, encode(t, base, zapcore.InfoLevel, "", "m"), "extra=")
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", Theme())

	SetTheme("solarized")
	assert.Equal(t, "gruvbox", Theme(), "unknown themes are ignored")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "t.fluffy", abbreviateName("typegen.fluffy"))
	assert.Equal(t, "export", abbreviateName("export"))
}
