package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs so no
// real config file leaks into the test
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeTOML(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultHeader, cfg.Export.Header)
	assert.Equal(t, "abort", cfg.Export.OnError)
	assert.Equal(t, "fluffy", cfg.Export.Extension)
	assert.False(t, cfg.Export.TypedefAliases)
	assert.Empty(t, cfg.Export.OutputDir)
	assert.Equal(t, DefaultWorkers, cfg.Batch.Workers)
	assert.Equal(t, "everforest", cfg.Log.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"skip policy", func(c *Config) { c.Export.OnError = "skip" }, false},
		{"bad policy", func(c *Config) { c.Export.OnError = "ignore" }, true},
		{"zero workers falls back to one", func(c *Config) { c.Batch.Workers = 0 }, false},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, true},
		{"empty extension", func(c *Config) { c.Export.Extension = "" }, true},
		{"gruvbox theme", func(c *Config) { c.Log.Theme = "gruvbox" }, false},
		{"unknown theme", func(c *Config) { c.Log.Theme = "solarized" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetters(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "fluffy", cfg.GetExtension())
	assert.Equal(t, 1, cfg.GetWorkers())
	assert.Equal(t, "everforest", cfg.GetLogTheme())

	cfg.Batch.Workers = 8
	assert.Equal(t, 8, cfg.GetWorkers())
}

func TestLoadPrecedence(t *testing.T) {
	home, work := isolate(t)

	writeTOML(t, filepath.Join(home, UserDirName, UserFileName), `
[export]
on_error = "skip"
extension = "stub"

[batch]
workers = 2
`)

	// project file two levels up from the working directory
	nested := filepath.Join(work, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeTOML(t, filepath.Join(work, ProjectFileName), `
[batch]
workers = 6
`)
	t.Chdir(nested)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "skip", cfg.Export.OnError)
	assert.Equal(t, "stub", cfg.Export.Extension)
	assert.Equal(t, 6, cfg.Batch.Workers, "project beats user")
	assert.Equal(t, DefaultHeader, cfg.Export.Header, "untouched keys keep defaults")

	assert.Equal(t, SourceUser, ConfigSources["export.on_error"].Source)
	assert.Equal(t, SourceProject, ConfigSources["batch.workers"].Source)
	assert.Contains(t, ConfigSources["batch.workers"].Path, ProjectFileName)
}

func TestLoadEnvironmentWins(t *testing.T) {
	_, work := isolate(t)
	writeTOML(t, filepath.Join(work, ProjectFileName), `
[export]
output_dir = "from-file"
on_error = "abort"
`)
	t.Setenv("STUBGEN_OUTPUT_DIR", "from-env")
	t.Setenv("STUBGEN_EXPORT_ON_ERROR", "skip")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Export.OutputDir)
	assert.Equal(t, "skip", cfg.Export.OnError)
}

func TestLoadIsCached(t *testing.T) {
	isolate(t)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	Reset()
	third, err := Load()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeTOML(t, path, "[export]\ntypedef_aliases = true\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Export.TypedefAliases)
	assert.Equal(t, "fluffy", cfg.Export.Extension)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "x", "y", "z")
	require.NoError(t, os.MkdirAll(deep, 0755))

	assert.Empty(t, FindProjectConfig(deep))

	writeTOML(t, filepath.Join(root, "x", ProjectFileName), "")
	assert.Equal(t, filepath.Join(root, "x", ProjectFileName), FindProjectConfig(deep))
}

func TestIntrospection(t *testing.T) {
	_, work := isolate(t)
	writeTOML(t, filepath.Join(work, ProjectFileName), "[export]\nextension = \"stub\"\n")
	t.Setenv("STUBGEN_LOG_THEME", "gruvbox")

	in, err := GetIntrospection()
	require.NoError(t, err)
	assert.Contains(t, in.Files, filepath.Join(work, ProjectFileName))

	bySetting := map[string]SettingInfo{}
	for _, s := range in.Settings {
		bySetting[s.Key] = s
	}

	assert.Equal(t, SourceProject, bySetting["export.extension"].Source)
	assert.Equal(t, "stub", bySetting["export.extension"].Value)
	assert.Equal(t, SourceEnvironment, bySetting["log.theme"].Source)
	assert.Equal(t, "STUBGEN_LOG_THEME", bySetting["log.theme"].SourcePath)
	assert.Equal(t, SourceDefault, bySetting["batch.workers"].Source)
}

func TestLookup(t *testing.T) {
	cfg := Default()

	v, err := cfg.Lookup("export.on_error")
	require.NoError(t, err)
	assert.Equal(t, "abort", v)

	v, err = cfg.Lookup("Batch.Workers")
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, v)

	_, err = cfg.Lookup("export.nope")
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ProjectFileName)
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "export")
	assert.Contains(t, raw, "batch")
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectFileName)

	for i := 0; i < 5; i++ {
		require.NoError(t, UpdateSetting(path, "batch.workers", string(rune('1'+i))))
	}

	for n := 1; n <= 3; n++ {
		assert.FileExists(t, backupPath(path, n))
	}
	assert.NoFileExists(t, backupPath(path, 4))

	// .back1 holds the state before the last write
	cfg, err := LoadFromFile(backupPath(path, 1))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Batch.Workers)

	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Batch.Workers)
}

func TestUpdateSetting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectFileName)
	writeTOML(t, path, "[export]\nextension = \"stub\"\n")

	require.NoError(t, UpdateSetting(path, "export.typedef_aliases", "true"))
	require.NoError(t, UpdateSetting(path, "format.command", "fluffyfmt -w"))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stub", cfg.Export.Extension, "existing keys survive")
	assert.True(t, cfg.Export.TypedefAliases)
	assert.Equal(t, "fluffyfmt -w", cfg.Format.Command)

	assert.Error(t, UpdateSetting(path, "export.colour", "red"))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, int64(1), ParseValue("1"))
	assert.Equal(t, int64(0), ParseValue("0"))
	assert.Equal(t, true, ParseValue("true"))
	assert.Equal(t, false, ParseValue("FALSE"))
	assert.Equal(t, "skip", ParseValue("skip"))
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("/x/stubgen.toml.back1"))
	assert.True(t, isBackupFile("config.toml.back3"))
	assert.False(t, isBackupFile("stubgen.toml"))
	assert.False(t, isBackupFile("notes.backup"))
}
