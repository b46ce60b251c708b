package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateHistory()
}

func (c *Config) validateConvert() error {
	switch c.Convert.RemainderPolicy {
	case "truncate", "carry":
	default:
		return fmt.Errorf("convert.remainder_policy: unsupported value %q (want truncate or carry)", c.Convert.RemainderPolicy)
	}
	if c.Convert.Workers < 1 || c.Convert.Workers > maxWorkers {
		return fmt.Errorf("convert.workers: must be between 1 and %d, got %d", maxWorkers, c.Convert.Workers)
	}
	ext := c.Convert.OutputExtension
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("convert.output_extension: invalid value %q", ext)
	}
	if strings.EqualFold(ext, ".ass") {
		return errors.New("convert.output_extension: must differ from the input extension .ass")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.File && strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir: required when logging.file is enabled")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		return errors.New("paths.history_db: required when history is enabled")
	}
	if filepath.Ext(c.Paths.HistoryDB) == "" {
		return fmt.Errorf("paths.history_db: expected a file path, got %q", c.Paths.HistoryDB)
	}
	return nil
}
