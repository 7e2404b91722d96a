package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

var globalConfig *Config
var viperInstance *viper.Viper

// ConfigSources records which file set each key during the last load
var ConfigSources = map[string]SourceInfo{}

// Load reads the stubgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, on top of the
// defaults but without environment overrides
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)

	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// FindProjectConfig walks up from dir looking for stubgen.toml.
// Returns "" when none is found.
func FindProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// UserConfigPath returns ~/.stubgen/config.toml, or "" without a home directory
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDirName, UserFileName)
}

type configFile struct {
	path   string
	source ConfigSource
}

// ConfigFiles lists the candidate files in precedence order, lowest first.
// Files that do not exist are included; callers check.
func ConfigFiles() []string {
	var paths []string
	for _, f := range candidateFiles() {
		paths = append(paths, f.path)
	}
	return paths
}

func candidateFiles() []configFile {
	files := []configFile{{SystemPath, SourceSystem}}
	if user := UserConfigPath(); user != "" {
		files = append(files, configFile{user, SourceUser})
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			files = append(files, configFile{project, SourceProject})
		}
	}
	return files
}

// mergeConfigFiles merges configuration files in precedence order:
// system < user < project. Files land in viper's config layer, so
// environment variables still override them.
func mergeConfigFiles(v *viper.Viper) {
	for _, f := range candidateFiles() {
		if _, err := os.Stat(f.path); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(f.path)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err != nil {
			logger.Warnw("Skipping unreadable config file",
				logger.FieldFile, f.path,
				logger.FieldError, err)
			continue
		}

		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			logger.Warnw("Skipping config file",
				logger.FieldFile, f.path,
				logger.FieldError, err)
			continue
		}
		for _, key := range tempViper.AllKeys() {
			ConfigSources[key] = SourceInfo{Source: f.source, Path: f.path}
		}
	}
}

// envKey returns the environment variable AutomaticEnv maps key to
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return initViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return initViper().GetString(key)
}
