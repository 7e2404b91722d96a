package fluffy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/stubgen/cdecl"
	"github.com/teranos/stubgen/errors"
)

func newTestContext(b *cdecl.Builder) *renderContext {
	return newRenderContext(b.Unit(), DefaultOptions())
}

func TestRenderAtomicTable(t *testing.T) {
	tests := []struct {
		kind cdecl.AtomicKind
		want string
	}{
		{cdecl.AtomicVoid, "void"},
		{cdecl.AtomicChar, "byte"},
		{cdecl.AtomicSChar, "byte"},
		{cdecl.AtomicUChar, "unsigned byte"},
		{cdecl.AtomicShort, "short"},
		{cdecl.AtomicUShort, "unsigned short"},
		{cdecl.AtomicInt, "int"},
		{cdecl.AtomicUInt, "unsigned int"},
		{cdecl.AtomicLong, "int"},
		{cdecl.AtomicULong, "unsigned int"},
		{cdecl.AtomicLongLong, "long"},
		{cdecl.AtomicULongLong, "unsigned long"},
		{cdecl.AtomicFloat, "float"},
		{cdecl.AtomicDouble, "double"},
		{cdecl.AtomicLongDouble, "double"},
		{cdecl.AtomicBool, "bool"},
	}

	b := cdecl.NewBuilder("atomic.h")
	c := newTestContext(b)

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := c.renderType(b.Atomic(tt.kind))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnsupportedAtomic(t *testing.T) {
	b := cdecl.NewBuilder("atomic.h")
	c := newTestContext(b)

	_, err := c.renderType(b.Atomic(cdecl.AtomicInvalid))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedAtomic))

	_, err = c.renderType(b.Atomic(cdecl.AtomicKind(99)))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedAtomic))
}

func TestRenderPointerComposition(t *testing.T) {
	b := cdecl.NewBuilder("ptr.h")
	s := b.Struct("S")
	c := newTestContext(b)

	tests := []struct {
		name string
		typ  cdecl.Type
		want string
	}{
		{"pointer to struct", b.Pointer(s), "S*"},
		{"pointer to pointer", b.Pointer(b.Pointer(s)), "S**"},
		{"char pointer", b.Pointer(b.Atomic(cdecl.AtomicChar)), "byte*"},
		{"void pointer", b.Pointer(b.Atomic(cdecl.AtomicVoid)), "void*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.renderType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderCompoundNameResolution(t *testing.T) {
	b := cdecl.NewBuilder("names.h")
	anon := b.Struct("", b.Member("x", b.Atomic(cdecl.AtomicInt)))
	b.Typedef("Foo", anon)
	tagged := b.Struct("bar")
	taggedAndAliased := b.Union("u")
	b.Typedef("U", taggedAndAliased)
	color := b.Enum("color")
	lonely := b.Enum("")
	c := newTestContext(b)

	tests := []struct {
		name string
		typ  cdecl.Type
		want string
	}{
		{"anonymous struct with typedef", anon, "Foo"},
		{"pointer to anonymous struct with typedef", b.Pointer(anon), "Foo*"},
		{"tagged struct", tagged, "bar"},
		{"typedef wins over tag", taggedAndAliased, "U"},
		{"tagged enum", color, "color"},
		{"anonymous enum", lonely, "/* anonymous enum */byte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.renderType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderAnonymousPlaceholderIsFlagged(t *testing.T) {
	b := cdecl.NewBuilder("anon.h")
	anon := b.Union("", b.Member("i", b.Atomic(cdecl.AtomicInt)))
	v := b.Var("blob", anon)
	c := newTestContext(b)

	c.begin(v)
	got, err := c.renderType(anon)
	require.NoError(t, err)
	c.commit()

	assert.Equal(t, "/* anonymous union */byte", got)
	require.Len(t, c.diagnostics, 1)
	assert.Equal(t, "blob", c.diagnostics[0].Symbol)
	assert.Contains(t, c.diagnostics[0].Message, "anonymous union")
}

func TestFindAliasUsesIdentity(t *testing.T) {
	b := cdecl.NewBuilder("alias.h")
	first := b.Struct("", b.Member("x", b.Atomic(cdecl.AtomicInt)))
	twin := b.Struct("", b.Member("x", b.Atomic(cdecl.AtomicInt)))
	firstAlias := b.Typedef("First", first)
	b.Typedef("Again", first)
	c := newTestContext(b)

	assert.Same(t, firstAlias, c.findAlias(first), "earliest typedef wins")
	assert.Nil(t, c.findAlias(twin), "a structurally equal type is not aliased")

	// Misses are memoized too
	_, cached := c.aliases[twin]
	assert.True(t, cached)
}

func TestRenderFunctionType(t *testing.T) {
	b := cdecl.NewBuilder("fn.h")
	i := b.Atomic(cdecl.AtomicInt)
	void := b.Atomic(cdecl.AtomicVoid)
	c := newTestContext(b)

	tests := []struct {
		name string
		typ  cdecl.Type
		want string
	}{
		{"void result is shown", b.FuncType(void, false, i), "(func(_ : int) : void)"},
		{"no params", b.FuncType(i, false), "(func() : int)"},
		{"two params", b.FuncType(i, false, i, b.Pointer(b.Atomic(cdecl.AtomicChar))), "(func(_ : int, _ : byte*) : int)"},
		{"variadic", b.FuncType(i, true, i), "(func(_ : int, ...) : int)"},
		{"only variadic", b.FuncType(i, true), "(func(...) : int)"},
		{"pointer to function", b.Pointer(b.FuncType(void, false)), "(func() : void)*"},
		{"function returning function pointer", b.FuncType(b.Pointer(b.FuncType(i, false)), false), "(func() : (func() : int)*)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.renderType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderInvalidType(t *testing.T) {
	b := cdecl.NewBuilder("bad.h")
	c := newTestContext(b)

	tests := []struct {
		name string
		typ  cdecl.Type
	}{
		{"invalid node", &cdecl.InvalidType{}},
		{"nil", nil},
		{"pointer to invalid", b.Pointer(&cdecl.InvalidType{})},
		{"pointer without pointee", b.Pointer(nil)},
		{"function with invalid param", b.FuncType(b.Atomic(cdecl.AtomicInt), false, &cdecl.InvalidType{})},
		{"function without result", b.FuncType(nil, false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.renderType(tt.typ)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidType), "got %v", err)
		})
	}
}

func TestTypeString(t *testing.T) {
	b := cdecl.NewBuilder("ts.h")
	point := b.Struct("", b.Member("x", b.Atomic(cdecl.AtomicInt)))
	b.Typedef("Point", point)

	got, err := TypeString(b.Unit(), b.Pointer(b.Pointer(point)))
	require.NoError(t, err)
	assert.Equal(t, "Point**", got)

	got, err = TypeString(b.Unit(), b.Union(""))
	require.NoError(t, err)
	assert.Equal(t, "/* anonymous union */byte", got)

	_, err = TypeString(b.Unit(), &cdecl.InvalidType{})
	assert.Error(t, err)
}

func TestHeaderLine(t *testing.T) {
	assert.Equal(t, DefaultHeader, Options{}.HeaderLine())
	assert.Equal(t, "// custom", Options{Header: "// custom"}.HeaderLine())
}
