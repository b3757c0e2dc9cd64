// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "FOLIO_CONFIG"

// Config is the master configuration for folio.
type Config struct {
	// Content selects where projects, pages and site copy come from.
	Content ContentConfig `yaml:"content"`

	// Animation tunes the timelines.
	Animation AnimationConfig `yaml:"animation"`

	// Display configures the terminal program.
	Display DisplayConfig `yaml:"display"`

	// Log configures the optional JSON log file.
	Log LogConfig `yaml:"log"`
}

// ContentConfig configures the content catalog.
type ContentConfig struct {
	// Dir is a content directory overriding the embedded site. Empty
	// means the embedded content.
	Dir string `yaml:"dir"`

	// Watch reloads Dir when its files change. Ignored without Dir.
	Watch bool `yaml:"watch"`
}

// AnimationConfig tunes every delay and speed at once.
type AnimationConfig struct {
	// Scale multiplies every delay. 1 is the designed pace, 0.5 runs
	// twice as fast. Default: 1
	Scale float64 `yaml:"scale"`
}

// DisplayConfig configures the terminal program.
type DisplayConfig struct {
	// Mouse enables click and wheel input. Default: true
	Mouse bool `yaml:"mouse"`

	// AltScreen runs in the alternate screen buffer. Default: true
	AltScreen bool `yaml:"alt_screen"`
}

// LogConfig configures logging.
type LogConfig struct {
	// File receives JSON log records in addition to the status line.
	// Empty disables file logging.
	File string `yaml:"file"`

	// Level is the minimum level: debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. A config file is merged
// over it.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{Scale: 1},
		Display: DisplayConfig{
			Mouse:     true,
			AltScreen: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Resolve loads the file at path, or the file named by FOLIO_CONFIG
// when path is empty. With neither, it returns [Default].
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path and validates
// it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Content.Dir = expandVars(c.Content.Dir, vars)
	vars["FOLIO_CONTENT"] = c.Content.Dir
	c.Log.File = expandVars(c.Log.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
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

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Animation.Scale <= 0 {
		errs = append(errs, fmt.Errorf("animation.scale must be positive, got %v", c.Animation.Scale))
	}

	if c.Content.Watch && c.Content.Dir == "" {
		errs = append(errs, errors.New("content.watch requires content.dir"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Log.Level. Empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	if strings.TrimSpace(c.Log.Level) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error: got %q", c.Log.Level)
	}
	return level, nil
}
