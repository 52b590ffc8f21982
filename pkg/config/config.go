// Package config loads and validates the hashcompare configuration file.
package config

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CompareConfig holds comparison settings
type CompareConfig struct {
	Algorithm string `yaml:"algorithm"`  // empty = recommended default
	SizeCheck bool   `yaml:"size_check"` // reject on total size mismatch before hashing
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	ChunkSize      int    `yaml:"chunk_size"`
	BandwidthLimit string `yaml:"bandwidth_limit"` // e.g. "10MB", "1GiB"; empty = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format           string        `yaml:"format"`   // "human" or "json"
	Progress         bool          `yaml:"progress"` // Show progress bars
	ProgressInterval time.Duration `yaml:"progress_interval"`
	Quiet            bool          `yaml:"quiet"` // Suppress non-error output
	Color            bool          `yaml:"color"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"` // "json" or "text"
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	File       string `yaml:"file"`   // Log file path (empty = stderr)
	MaxSize    string `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			Algorithm: "",
			SizeCheck: true,
		},
		Performance: PerformanceConfig{
			ChunkSize:      65536,
			BandwidthLimit: "",
		},
		Output: OutputConfig{
			Format:           "human",
			Progress:         true,
			ProgressInterval: 250 * time.Millisecond,
			Quiet:            false,
			Color:            true,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "json",
			Level:      "info",
			File:       "",
			MaxSize:    "10MiB",
			MaxBackups: 5,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Performance.ChunkSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.chunk_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if _, err := c.BandwidthBytes(); err != nil {
		return &models.ValidationError{
			Field:   "performance.bandwidth_limit",
			Message: err.Error(),
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	if c.Output.ProgressInterval < 10*time.Millisecond {
		return &models.ValidationError{
			Field:   "output.progress_interval",
			Message: "must be at least 10ms",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if _, err := c.LogMaxSizeBytes(); err != nil {
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: err.Error(),
		}
	}

	if c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging.max_backups",
			Message: "must not be negative",
		}
	}

	return nil
}

// BandwidthBytes returns the bandwidth limit in bytes per second, 0 when unlimited
func (c *Config) BandwidthBytes() (int64, error) {
	return parseSize(c.Performance.BandwidthLimit)
}

// LogMaxSizeBytes returns the log rotation threshold in bytes, 0 when disabled
func (c *Config) LogMaxSizeBytes() (int64, error) {
	return parseSize(c.Logging.MaxSize)
}

func parseSize(s string) (int64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}
