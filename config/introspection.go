package config

import (
	"os"
	"sort"

	"github.com/teranos/stubgen/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/stubgen/config.toml
	SourceUser        ConfigSource = "user"        // ~/.stubgen/config.toml
	SourceProject     ConfigSource = "project"     // nearest stubgen.toml
	SourceEnvironment ConfigSource = "environment" // STUBGEN_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // file path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// Introspection describes the active configuration, one entry per key
type Introspection struct {
	Files    []string      `json:"files"`
	Settings []SettingInfo `json:"settings"`
}

// GetIntrospection returns every effective setting with the source that set it
func GetIntrospection() (*Introspection, error) {
	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}
	v := GetViper()

	keys := v.AllKeys()
	sort.Strings(keys)

	in := &Introspection{Files: existingFiles()}
	for _, key := range keys {
		in.Settings = append(in.Settings, settingInfo(key, v.Get(key), ConfigSources))
	}
	return in, nil
}

func settingInfo(key string, value interface{}, sources map[string]SourceInfo) SettingInfo {
	info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
	if si, ok := sources[key]; ok {
		info = si
	}

	for _, env := range []string{envKey(key), boundEnv[key]} {
		if env == "" {
			continue
		}
		if _, ok := os.LookupEnv(env); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: env}
			break
		}
	}

	return SettingInfo{
		Key:        key,
		Value:      value,
		Source:     info.Source,
		SourcePath: info.Path,
	}
}

func existingFiles() []string {
	var files []string
	for _, path := range ConfigFiles() {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return files
}
