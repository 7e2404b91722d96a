package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	wrapped := Wrapf(ErrUnsupportedExpression, "enum entry %q", "RED")

	assert.Contains(t, wrapped.Error(), "RED")
	assert.Contains(t, wrapped.Error(), "unsupported expression")
	assert.True(t, Is(wrapped, ErrUnsupportedExpression))
	assert.False(t, Is(wrapped, ErrInvalidType))
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrInvalidType, "the front end left an unresolved type behind")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "the front end left an unresolved type behind", hints[0])
	assert.True(t, Is(err, ErrInvalidType))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestIsRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"invalid type", Wrap(ErrInvalidType, "var x"), true},
		{"unsupported atomic", ErrUnsupportedAtomic, true},
		{"unsupported expression", Wrapf(ErrUnsupportedExpression, "entry %s", "A"), true},
		{"load error", ErrTypeCycle, false},
		{"plain", New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRenderError(tt.err))
		})
	}
}

func TestIsLoadError(t *testing.T) {
	assert.True(t, IsLoadError(Wrap(ErrUnknownReference, "type id 7")))
	assert.True(t, IsLoadError(ErrIncompatibleVersion))
	assert.True(t, IsLoadError(ErrUnsupportedFormat))
	assert.False(t, IsLoadError(ErrInvalidType))
	assert.False(t, IsLoadError(nil))
}

func TestNotFound(t *testing.T) {
	err := NewNotFoundError("unit %s", "a.yaml")

	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "a.yaml")
	assert.False(t, IsNotFoundError(New("other")))
	assert.False(t, IsNotFoundError(nil))
}

func TestNewInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("on_error must be abort or skip, got %q", "ignore")

	assert.True(t, Is(err, ErrInvalidRequest))
	assert.Contains(t, err.Error(), "ignore")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, WithHint(nil, "hint"))
}
