package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Cleanup()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-1))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestFieldsFromContext(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-42")
	ctx = WithComponent(ctx, "export")

	assert.Equal(t, []interface{}{FieldRunID, "run-42", FieldComponent, "export"}, FieldsFromContext(ctx))
	assert.Empty(t, FieldsFromContext(context.Background()))
	assert.NotNil(t, LoggerFromContext(ctx))
}
