package typegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headerPrefixes = []string{"/* WARNING:"}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCompareOutputIgnoresHeader(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "a.fluffy")
	writeFile(t, existing, "/* WARNING: generated yesterday */\nvar x : int\n")

	differs, err := CompareOutput("/* WARNING: Automatically generated file */\nvar x : int\n", existing, false, headerPrefixes...)
	require.NoError(t, err)
	assert.False(t, differs)

	differs, err = CompareOutput("/* WARNING: Automatically generated file */\nvar x : int\n", existing, false)
	require.NoError(t, err)
	assert.True(t, differs, "without prefixes the header counts")
}

func TestCompareOutputFunctionalChange(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "a.fluffy")
	writeFile(t, existing, "/* WARNING: Automatically generated file */\nvar x : int\n")

	differs, err := CompareOutput("/* WARNING: Automatically generated file */\nvar x : long\n", existing, false, headerPrefixes...)
	require.NoError(t, err)
	assert.True(t, differs)
}

func TestCompareOutputMissingFile(t *testing.T) {
	_, err := CompareOutput("x", filepath.Join(t.TempDir(), "nope.fluffy"), true)
	assert.Error(t, err)
}

func TestCompareDirectories(t *testing.T) {
	generated := t.TempDir()
	existing := t.TempDir()

	writeFile(t, filepath.Join(generated, "same.fluffy"), "/* WARNING: a */\nvar x : int\n")
	writeFile(t, filepath.Join(existing, "same.fluffy"), "/* WARNING: b */\nvar x : int\n")

	writeFile(t, filepath.Join(generated, "changed.fluffy"), "var y : int\n")
	writeFile(t, filepath.Join(existing, "changed.fluffy"), "var y : byte\n")

	writeFile(t, filepath.Join(generated, "nested", "new.fluffy"), "var z : int\n")

	result, err := CompareDirectories(generated, existing, false, headerPrefixes)
	require.NoError(t, err)

	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{"changed.fluffy"}, result.Differences)
	assert.Equal(t, []string{filepath.Join("nested", "new.fluffy")}, result.Missing)
}

func TestCompareDirectoriesUpToDate(t *testing.T) {
	generated := t.TempDir()
	existing := t.TempDir()
	writeFile(t, filepath.Join(generated, "a.fluffy"), "var x : int\n")
	writeFile(t, filepath.Join(existing, "a.fluffy"), "var x : int\n")

	result, err := CompareDirectories(generated, existing, true, nil)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
}

func TestFilterLines(t *testing.T) {
	content := []byte("/* WARNING: x */\n  /* WARNING: indented */\nvar a : int\n")
	assert.Equal(t, "var a : int\n", filterLines(content, false, headerPrefixes))
	assert.Equal(t, string(content), filterLines(content, false, []string{""}))
}

func TestCompareSkipsAnyHeader(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     bool
	}{
		{name: "relabeled header", existing: "/* generated yesterday */\nvar x : int\n"},
		{name: "empty header line", existing: "\nvar x : int\n"},
		{name: "body changed", existing: "/* generated yesterday */\nvar x : long\n", want: true},
		{name: "header only", existing: "/* generated yesterday */\n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := filepath.Join(t.TempDir(), "a.fluffy")
			writeFile(t, existing, tt.existing)

			differs, err := CompareOutput("/* WARNING: Automatically generated file */\nvar x : int\n", existing, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, differs)
		})
	}
}

func TestCompareDirectoriesSkipsHeader(t *testing.T) {
	generated := t.TempDir()
	existing := t.TempDir()
	writeFile(t, filepath.Join(generated, "a.fluffy"), "/* WARNING: Automatically generated file */\nvar x : int\n")
	writeFile(t, filepath.Join(existing, "a.fluffy"), "/* custom */\nvar x : int\n")

	result, err := CompareDirectories(generated, existing, true, nil)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	result, err = CompareDirectories(generated, existing, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.fluffy"}, result.Differences)
}

func TestFilterLinesSkipHeader(t *testing.T) {
	assert.Equal(t, "var a : int\n", filterLines([]byte("anything at all\nvar a : int\n"), true, nil))
	assert.Equal(t, "", filterLines(nil, true, nil))
}
