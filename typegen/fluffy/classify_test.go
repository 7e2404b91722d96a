package fluffy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/stubgen/cdecl"
)

func TestClassify(t *testing.T) {
	b := cdecl.NewBuilder("classify.h")
	i := b.Atomic(cdecl.AtomicInt)
	s := b.Struct("s")
	u := b.Union("u")
	e := b.Enum("e", b.Entry("E0", nil))
	fn := b.FuncType(i, false)

	tests := []struct {
		name string
		decl *cdecl.Declaration
		want Region
	}{
		{"typedef struct", &cdecl.Declaration{Storage: cdecl.StorageTypedef, Type: s}, RegionType},
		{"typedef union", &cdecl.Declaration{Storage: cdecl.StorageTypedef, Type: u}, RegionType},
		{"typedef enum", &cdecl.Declaration{Storage: cdecl.StorageTypedef, Type: e}, RegionType},
		{"typedef atomic", &cdecl.Declaration{Storage: cdecl.StorageTypedef, Type: i}, RegionAlias},
		{"typedef pointer", &cdecl.Declaration{Storage: cdecl.StorageTypedef, Type: b.Pointer(s)}, RegionAlias},
		{"typedef function", &cdecl.Declaration{Storage: cdecl.StorageTypedef, Type: fn}, RegionAlias},
		{"typedef without type", &cdecl.Declaration{Storage: cdecl.StorageTypedef}, RegionSkipped},
		{"struct tag definition", s.Decl, RegionSkipped},
		{"enum entry", e.Entries()[0], RegionSkipped},
		{"label", &cdecl.Declaration{Namespace: cdecl.NamespaceLabel, Type: i}, RegionSkipped},
		{"extern variable", &cdecl.Declaration{Storage: cdecl.StorageExtern, Type: i}, RegionVariable},
		{"static variable", &cdecl.Declaration{Storage: cdecl.StorageStatic, Type: b.Pointer(fn)}, RegionVariable},
		{"function", &cdecl.Declaration{Storage: cdecl.StorageExtern, Type: fn}, RegionFunction},
		{"static function", &cdecl.Declaration{Storage: cdecl.StorageStatic, Type: fn}, RegionFunction},
		{"nil", nil, RegionSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.decl))
		})
	}
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "type", RegionType.String())
	assert.Equal(t, "function", RegionFunction.String())
	assert.Equal(t, "unknown", Region(42).String())
}

func TestInPass(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, inPass(RegionType, RegionType, opts))
	assert.False(t, inPass(RegionType, RegionAlias, opts))
	assert.False(t, inPass(RegionVariable, RegionFunction, opts))

	opts.TypedefAliases = true
	assert.True(t, inPass(RegionType, RegionAlias, opts))
	assert.False(t, inPass(RegionVariable, RegionAlias, opts))
}
