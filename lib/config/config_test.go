// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Theme != Dark {
		t.Errorf("expected theme=dark, got %s", cfg.Theme)
	}
	if cfg.View != Slides {
		t.Errorf("expected view=slides, got %s", cfg.View)
	}
	if cfg.IDs != "uuid7" {
		t.Errorf("expected ids=uuid7, got %s", cfg.IDs)
	}
	if cfg.SwipeThreshold != 6 {
		t.Errorf("expected swipe_threshold=6, got %d", cfg.SwipeThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresLecternConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoad_WithLecternConfig(t *testing.T) {
	configPath := writeConfig(t, `
theme: light
view: article
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Theme != Light {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
	if cfg.View != Article {
		t.Errorf("expected view=article, got %s", cfg.View)
	}
	if cfg.Dark() {
		t.Error("Dark() = true for a light theme")
	}
	if cfg.CodeStyle() != "github" {
		t.Errorf("expected light code style github, got %s", cfg.CodeStyle())
	}
}

func TestLoadFile(t *testing.T) {
	configPath := writeConfig(t, `
theme: dark
ids: counter
export_dir: /custom/exports
swipe_threshold: 10
watch: true
code_style_dark: dracula
code_style_light: friendly
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.IDs != "counter" {
		t.Errorf("expected ids=counter, got %s", cfg.IDs)
	}
	if cfg.ExportDir != "/custom/exports" {
		t.Errorf("expected export_dir=/custom/exports, got %s", cfg.ExportDir)
	}
	if cfg.SwipeThreshold != 10 {
		t.Errorf("expected swipe_threshold=10, got %d", cfg.SwipeThreshold)
	}
	if !cfg.Watch {
		t.Error("expected watch=true")
	}
	if cfg.CodeStyle() != "dracula" {
		t.Errorf("expected dark code style dracula, got %s", cfg.CodeStyle())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestParse_EmptyFileIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty config = %+v, want defaults", cfg)
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("theem: light\n"))
	if err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"theme", "theme: sepia", "theme must be dark or light"},
		{"view", "view: grid", "view must be slides or article"},
		{"ids", "ids: snowflake", "ids must be one of"},
		{"swipe", "swipe_threshold: 0", "swipe_threshold must be positive"},
		{"export dir", `export_dir: ""`, "export_dir is required"},
		{"code style", "code_style_dark: no-such-style", "unknown chroma style"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.content))
			if err == nil {
				t.Fatalf("expected validation error containing %q", test.want)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want it to contain %q", err, test.want)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	_, err := Parse([]byte("theme: sepia\nview: grid\n"))
	if err == nil {
		t.Fatal("expected errors")
	}
	message := err.Error()
	if !strings.Contains(message, "theme") || !strings.Contains(message, "view") {
		t.Errorf("expected both errors to be reported, got %q", message)
	}
}

func TestValidate_CodeStyleErrorsInFieldOrder(t *testing.T) {
	config := Default()
	config.CodeStyleDark = "no-such-dark"
	config.CodeStyleLight = "no-such-light"
	want := `code_style_dark: unknown chroma style "no-such-dark"` + "\n" +
		`code_style_light: unknown chroma style "no-such-light"`
	for range 20 {
		err := config.Validate()
		if err == nil {
			t.Fatal("expected errors")
		}
		if err.Error() != want {
			t.Fatalf("Validate() = %q, want %q", err.Error(), want)
		}
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("LECTERN_TEST_DIR", "/from/env")
	vars := map[string]string{"HOME": "/home/test"}

	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/decks", "/home/test/decks"},
		{"${LECTERN_TEST_DIR}/out", "/from/env/out"},
		{"${LECTERN_UNSET_VARIABLE:-/fallback}", "/fallback"},
		{"${LECTERN_UNSET_VARIABLE}", ""},
		{"/plain/path", "/plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadFile_ExpandsExportDir(t *testing.T) {
	t.Setenv("LECTERN_TEST_EXPORTS", "/srv/exports")
	configPath := writeConfig(t, "export_dir: ${LECTERN_TEST_EXPORTS}/talks\n")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ExportDir != "/srv/exports/talks" {
		t.Errorf("expected expanded export_dir, got %s", cfg.ExportDir)
	}
}

func TestEnsureExportDir(t *testing.T) {
	cfg := Default()
	cfg.ExportDir = filepath.Join(t.TempDir(), "nested", "exports")
	if err := cfg.EnsureExportDir(); err != nil {
		t.Fatalf("EnsureExportDir: %v", err)
	}
	info, err := os.Stat(cfg.ExportDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("export dir not created: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "lectern.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}
