// Package config loads stubgen settings from layered TOML files and
// STUBGEN_* environment variables.
//
// Precedence, lowest to highest: built-in defaults, /etc/stubgen/config.toml,
// ~/.stubgen/config.toml, the nearest stubgen.toml found walking up from the
// working directory, environment variables. Command-line flags are applied
// on top by the CLI.
package config

// Config represents the stubgen configuration
type Config struct {
	Export ExportConfig `mapstructure:"export" toml:"export" json:"export" yaml:"export"`
	Format FormatConfig `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Batch  BatchConfig  `mapstructure:"batch" toml:"batch" json:"batch" yaml:"batch"`
	Log    LogConfig    `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// ExportConfig configures how units are rendered and where the text goes
type ExportConfig struct {
	Header          string `mapstructure:"header" toml:"header" json:"header" yaml:"header"`
	TypedefAliases  bool   `mapstructure:"typedef_aliases" toml:"typedef_aliases" json:"typedef_aliases" yaml:"typedef_aliases"`
	AnonymousParams bool   `mapstructure:"anonymous_params" toml:"anonymous_params" json:"anonymous_params" yaml:"anonymous_params"`
	OnError         string `mapstructure:"on_error" toml:"on_error" json:"on_error" yaml:"on_error"`         // abort | skip
	OutputDir       string `mapstructure:"output_dir" toml:"output_dir" json:"output_dir" yaml:"output_dir"` // empty = stdout
	Extension       string `mapstructure:"extension" toml:"extension" json:"extension" yaml:"extension"`
}

// FormatConfig configures the optional post-format command run on each written file
type FormatConfig struct {
	Command string `mapstructure:"command" toml:"command" json:"command" yaml:"command"` // e.g. "fluffyfmt -w"; the file path is appended
}

// BatchConfig configures multi-unit exports
type BatchConfig struct {
	Workers int `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"`
}

// LogConfig configures diagnostic logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // gruvbox, everforest
}

// Config file names and locations
const (
	ProjectFileName = "stubgen.toml"
	UserDirName     = ".stubgen"
	UserFileName    = "config.toml"
	SystemPath      = "/etc/stubgen/config.toml"
	EnvPrefix       = "STUBGEN"
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
