// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/roomevents/lib/compress"
	"github.com/bureau-foundation/roomevents/lib/sealed"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "ROOMEVENTS_CONFIG"

// CompressionAuto selects a compression algorithm per record by
// probing the payload.
const CompressionAuto = "auto"

// Config is the configuration for the roomevents tool.
type Config struct {
	// Registry is the path to an event kind table (.yaml, .yml, .json,
	// or .jsonc). Empty uses the embedded default table.
	Registry string `yaml:"registry"`

	// Archive configures the event archive.
	Archive ArchiveConfig `yaml:"archive"`

	// Audit configures sealing of pre-redaction originals.
	Audit AuditConfig `yaml:"audit"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// ArchiveConfig configures the event archive.
type ArchiveConfig struct {
	// Path is the archive file. Commands that take an --archive flag
	// override it.
	Path string `yaml:"path"`

	// Compression is one of none, lz4, zstd, or auto.
	// Default: auto
	Compression string `yaml:"compression"`
}

// AuditConfig configures sealing of redacted originals.
type AuditConfig struct {
	// Recipients are age public keys (age1...). When non-empty, the
	// archive seals the original of every redacted event to them.
	Recipients []string `yaml:"recipients"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Archive: ArchiveConfig{
			Compression: CompressionAuto,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the ROOMEVENTS_CONFIG environment
// variable. There are no fallbacks: if the variable is not set, Load
// fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your roomevents.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their [Default] values. Unknown fields are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration YAML over [Default], expands variables
// in path fields, and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Registry = expandVars(c.Registry, vars)
	c.Archive.Path = expandVars(c.Archive.Path, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Archive.Compression != CompressionAuto {
		if _, err := compress.ParseTag(c.Archive.Compression); err != nil {
			errs = append(errs, fmt.Errorf("archive.compression must be one of none, lz4, zstd, auto: got %q", c.Archive.Compression))
		}
	}

	for index, recipient := range c.Audit.Recipients {
		if err := sealed.ParsePublicKey(recipient); err != nil {
			errs = append(errs, fmt.Errorf("audit.recipients[%d]: %w", index, err))
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error: got %q", c.Log.Level)
	}
	return level, nil
}

// Compression returns the configured fixed compression tag, or auto
// true when the archive should probe each payload.
func (c *Config) Compression() (tag compress.Tag, auto bool, err error) {
	if c.Archive.Compression == CompressionAuto {
		return compress.None, true, nil
	}
	tag, err = compress.ParseTag(c.Archive.Compression)
	if err != nil {
		return 0, false, err
	}
	return tag, false, nil
}
