package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// backupCount is how many rotated copies (.back1 .. .back3) are kept
const backupCount = 3

// createBackup rotates .back1..3 and copies the current file to .back1
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	oldest := backupPath(configPath, backupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", logger.FieldFile, oldest, logger.FieldError, err)
	}

	for i := backupCount - 1; i >= 1; i-- {
		from := backupPath(configPath, i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, backupPath(configPath, i+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", filepath.Base(from))
			}
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupPath(configPath, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

func backupPath(configPath string, n int) string {
	return configPath + ".back" + strconv.Itoa(n)
}

// WriteDefault writes the built-in configuration to path as TOML,
// backing up any existing file first
func WriteDefault(path string) error {
	data, err := toml.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}
	return writeConfig(path, data)
}

// UpdateSetting sets one dotted key (e.g. "batch.workers") in the TOML file
// at path, creating the file if needed. Value text is stored as a bool or
// integer when it parses as one, otherwise as a string.
func UpdateSetting(path, key, value string) error {
	if _, ok := Default().lookup(key); !ok {
		return errors.NewInvalidRequestError("unknown setting %q", key)
	}

	settings := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &settings); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	section, name, _ := strings.Cut(key, ".")
	table, ok := settings[section].(map[string]interface{})
	if !ok {
		table = make(map[string]interface{})
	}
	table[name] = ParseValue(value)
	settings[section] = table

	data, err := toml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return writeConfig(path, data)
}

// ParseValue converts command-line text to the TOML value it most likely means
func ParseValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func writeConfig(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	// Mark this as our own write to prevent reload loops
	globalWatcherMu.Lock()
	if globalWatcher != nil {
		globalWatcher.MarkOwnWrite()
	}
	globalWatcherMu.Unlock()

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// lookup returns the value of a dotted key from c
func (c *Config) lookup(key string) (interface{}, bool) {
	values := map[string]interface{}{
		"export.header":           c.Export.Header,
		"export.typedef_aliases":  c.Export.TypedefAliases,
		"export.anonymous_params": c.Export.AnonymousParams,
		"export.on_error":         c.Export.OnError,
		"export.output_dir":       c.Export.OutputDir,
		"export.extension":        c.Export.Extension,
		"format.command":          c.Format.Command,
		"batch.workers":           c.Batch.Workers,
		"log.json":                c.Log.JSON,
		"log.theme":               c.Log.Theme,
	}
	v, ok := values[key]
	return v, ok
}

// Lookup returns the value of a dotted key, e.g. "export.on_error"
func (c *Config) Lookup(key string) (interface{}, error) {
	v, ok := c.lookup(strings.ToLower(key))
	if !ok {
		return nil, errors.NewNotFoundError("setting %q", key)
	}
	return v, nil
}
