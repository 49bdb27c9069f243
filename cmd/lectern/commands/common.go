// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"
	"os"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/lib/clock"
	"github.com/bureau-foundation/lectern/lib/config"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/idgen"
	"github.com/bureau-foundation/lectern/lib/session"
)

// commonParams are the flags every deck command accepts. Flags that
// are set override the config file.
type commonParams struct {
	Config    string `flag:"config" desc:"configuration file (default: $LECTERN_CONFIG)"`
	Theme     string `flag:"theme" desc:"terminal palette: dark or light"`
	IDs       string `flag:"ids" desc:"id generator for new slides and blocks: uuid7, counter or legacy"`
	ExportDir string `flag:"export-dir" desc:"directory for exported files"`
	LogOutput string `flag:"log-output" desc:"also write debug-level JSON logs to this file"`
}

// loadConfig reads the configuration file, applies flag overrides and
// validates the result. Without --config or LECTERN_CONFIG the
// built-in defaults apply.
func (params commonParams) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if params.Config != "" {
		cfg, err = config.LoadFile(params.Config)
	} else {
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNotConfigured) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("config file: %w", err)
		}
		return nil, cli.Validation("config: %w", err)
	}

	if params.Theme != "" {
		cfg.Theme = config.Theme(params.Theme)
	}
	if params.IDs != "" {
		cfg.IDs = params.IDs
	}
	if params.ExportDir != "" {
		cfg.ExportDir = params.ExportDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("%w", err)
	}
	return cfg, nil
}

func idGenerator(cfg *config.Config) (idgen.Generator, error) {
	generator, err := idgen.New(idgen.Kind(cfg.IDs), clock.Real())
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return generator, nil
}

// readInput reads a file named on the command line.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("%s does not exist", path)
	}
	if err != nil {
		return nil, cli.Internal("reading %s: %w", path, err)
	}
	return data, nil
}

// loadDeck reads and imports the deck at path.
func loadDeck(path string) (deck.Presentation, error) {
	data, err := readInput(path)
	if err != nil {
		var toolError *cli.ToolError
		if errors.As(err, &toolError) && toolError.Category == cli.CategoryNotFound {
			toolError.WithHint("Create a deck with 'lectern edit' (Ctrl+S exports slides.json) or 'lectern convert talk.md --output talk.json'.")
		}
		return deck.Presentation{}, err
	}
	document, err := deck.Import(data)
	if err != nil {
		return deck.Presentation{}, cli.Validation("%s: %w", path, err)
	}
	return document, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(streams Streams, path string, data []byte) error {
	if path == "-" {
		if _, err := streams.Stdout.Write(data); err != nil {
			return cli.Internal("writing output: %w", err)
		}
		return nil
	}
	if err := session.WriteFileAtomic(path, data); err != nil {
		return cli.Internal("%w", err)
	}
	return nil
}
