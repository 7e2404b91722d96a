package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultHeader    = "/* WARNING: Automatically generated file */"
	DefaultOnError   = "abort"
	DefaultExtension = "fluffy"
	DefaultWorkers   = 4
	DefaultTheme     = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("export.header", DefaultHeader)
	v.SetDefault("export.typedef_aliases", false)
	v.SetDefault("export.anonymous_params", false)
	v.SetDefault("export.on_error", DefaultOnError)
	v.SetDefault("export.output_dir", "")
	v.SetDefault("export.extension", DefaultExtension)

	v.SetDefault("format.command", "")

	v.SetDefault("batch.workers", DefaultWorkers)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultTheme)
}

// boundEnv maps settings to the short environment variables that override
// them in addition to the automatic STUBGEN_<SECTION>_<KEY> names
var boundEnv = map[string]string{
	"export.output_dir": "STUBGEN_OUTPUT_DIR",
	"export.on_error":   "STUBGEN_ON_ERROR",
	"format.command":    "STUBGEN_FORMAT_COMMAND",
	"log.theme":         "STUBGEN_LOG_THEME",
}

// BindEnvVars binds the settings most often overridden per invocation
func BindEnvVars(v *viper.Viper) {
	for key, env := range boundEnv {
		v.BindEnv(key, envKey(key), env)
	}
}

// Default returns the built-in configuration
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

// GetExtension returns the output file extension (default: fluffy)
func (c *Config) GetExtension() string {
	if c.Export.Extension == "" {
		return DefaultExtension
	}
	return c.Export.Extension
}

// GetWorkers returns the batch worker count, never less than one
func (c *Config) GetWorkers() int {
	if c.Batch.Workers < 1 {
		return 1
	}
	return c.Batch.Workers
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return DefaultTheme
	}
	return c.Log.Theme
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Export: {OnError: %s, OutputDir: %q}, Batch: {Workers: %d}}",
		c.Export.OnError, c.Export.OutputDir, c.Batch.Workers)
}
