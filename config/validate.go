package config

import (
	"github.com/teranos/stubgen/errors"
	"github.com/teranos/stubgen/logger"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Export.OnError {
	case "", "abort", "skip":
	default:
		return errors.WithHint(
			errors.Newf("export.on_error must be abort or skip, got %q", c.Export.OnError),
			"abort stops at the first failing declaration; skip drops it and continues")
	}

	if c.Export.Extension == "" {
		return errors.New("export.extension cannot be empty")
	}

	// 0 falls back to one worker; negative is a mistake
	if c.Batch.Workers < 0 {
		return errors.Newf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}

	if c.Log.Theme != "" && !logger.IsTheme(c.Log.Theme) {
		return errors.Newf("log.theme must be gruvbox or everforest, got %q", c.Log.Theme)
	}

	return nil
}
