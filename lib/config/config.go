// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"github.com/alecthomas/chroma/v2/styles"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "LECTERN_CONFIG"

// ErrNotConfigured is returned by [Load] when LECTERN_CONFIG is unset.
var ErrNotConfigured = errors.New(EnvironmentVariable + " environment variable not set")

// Theme selects the terminal palette.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// View selects the screen a presentation opens on.
type View string

const (
	Slides  View = "slides"
	Article View = "article"
)

// Generator names accepted by the ids field.
var idKinds = []string{"uuid7", "counter", "legacy"}

// Config is the complete Lectern configuration.
type Config struct {
	// Theme is dark or light. Default: dark.
	Theme Theme `yaml:"theme"`

	// View is the screen `lectern present` opens on. Default: slides.
	View View `yaml:"view"`

	// IDs names the slide and block id generator: uuid7, counter, or
	// legacy. Default: uuid7.
	IDs string `yaml:"ids"`

	// ExportDir is where the editor writes slides.json and where
	// `lectern export` writes when --output is absent. Default: the
	// working directory.
	ExportDir string `yaml:"export_dir"`

	// SwipeThreshold is the horizontal mouse drag, in cells, that
	// counts as a swipe. Default: 6.
	SwipeThreshold int `yaml:"swipe_threshold"`

	// Watch reloads the deck file when it changes on disk.
	Watch bool `yaml:"watch"`

	// CodeStyleDark and CodeStyleLight are chroma style names used to
	// highlight code blocks under each theme.
	CodeStyleDark  string `yaml:"code_style_dark"`
	CodeStyleLight string `yaml:"code_style_light"`
}

// Default returns the built-in configuration. A config file is merged
// over it.
func Default() *Config {
	return &Config{
		Theme:          Dark,
		View:           Slides,
		IDs:            "uuid7",
		ExportDir:      ".",
		SwipeThreshold: 6,
		CodeStyleDark:  "monokai",
		CodeStyleLight: "github",
	}
}

// Load loads configuration from the file named by LECTERN_CONFIG. It
// returns [ErrNotConfigured] when the variable is unset; callers that
// can run without a file use [Default] in that case.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, ErrNotConfigured
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// [Default], then expands variables and validates.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML merged over [Default]. Unknown keys are rejected
// so that a misspelled setting is not silently ignored.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dark reports whether the dark palette is selected.
func (c *Config) Dark() bool {
	return c.Theme != Light
}

// CodeStyle returns the chroma style for the selected theme.
func (c *Config) CodeStyle() string {
	if c.Dark() {
		return c.CodeStyleDark
	}
	return c.CodeStyleLight
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.ExportDir = expandVars(c.ExportDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. The provided
// vars are consulted before the environment.
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

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Theme != Dark && c.Theme != Light {
		errs = append(errs, fmt.Errorf("theme must be dark or light, got %q", c.Theme))
	}
	if c.View != Slides && c.View != Article {
		errs = append(errs, fmt.Errorf("view must be slides or article, got %q", c.View))
	}
	if !slices.Contains(idKinds, c.IDs) {
		errs = append(errs, fmt.Errorf("ids must be one of %v, got %q", idKinds, c.IDs))
	}
	if c.ExportDir == "" {
		errs = append(errs, errors.New("export_dir is required"))
	}
	if c.SwipeThreshold < 1 {
		errs = append(errs, fmt.Errorf("swipe_threshold must be positive, got %d", c.SwipeThreshold))
	}
	for _, codeStyle := range []struct{ field, name string }{
		{"code_style_dark", c.CodeStyleDark},
		{"code_style_light", c.CodeStyleLight},
	} {
		if _, ok := styles.Registry[codeStyle.name]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown chroma style %q", codeStyle.field, codeStyle.name))
		}
	}

	return errors.Join(errs...)
}

// EnsureExportDir creates the export directory if it does not exist.
func (c *Config) EnsureExportDir() error {
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", c.ExportDir, err)
	}
	return nil
}
