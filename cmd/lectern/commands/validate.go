// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/lib/codec"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/session"
)

type validateParams struct {
	Verbose bool `flag:"verbose,v" desc:"print each deck's canonical CBOR encoding in diagnostic notation"`
}

func validateCommand(streams Streams) *cli.Command {
	var params validateParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Check deck files for import errors and duplicate ids",
		Description: `Check deck files.

A deck fails validation when it cannot be imported or when an id is
used twice. Unknown block types and out-of-range heading levels are
reported as warnings: they import and render, but the editor cannot
change them meaningfully. Exits 1 when any deck fails.`,
		Usage: "lectern validate <deck.json>... [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) == 0 {
				return cli.Validation("expected at least one deck file")
			}
			failed := 0
			for _, path := range args {
				if !validateDeck(streams.Stdout, path, params.Verbose) {
					failed++
				}
			}
			if failed > 0 {
				fmt.Fprintf(streams.Stdout, "%d of %d decks failed validation\n", failed, len(args))
				return &cli.ExitError{Code: cli.ExitFailure}
			}
			return nil
		},
	}
}

// validateDeck prints the report for one file and reports whether it
// passed.
func validateDeck(w io.Writer, path string, verbose bool) bool {
	document, err := loadDeck(path)
	if err != nil {
		fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
		return false
	}

	problems := 0
	for _, id := range document.DuplicateIDs() {
		fmt.Fprintf(w, "  error: id %q is used more than once\n", id)
		problems++
	}
	blocks := 0
	for slideIndex, slide := range document.Slides {
		if slide.ID == "" {
			fmt.Fprintf(w, "  error: slide %d has no id\n", slideIndex+1)
			problems++
		}
		for _, block := range slide.Blocks {
			blocks++
			if block.ID == "" {
				fmt.Fprintf(w, "  error: a block on slide %d has no id\n", slideIndex+1)
				problems++
			}
			for _, warning := range blockWarnings(block) {
				fmt.Fprintf(w, "  warning: slide %d block %q: %s\n", slideIndex+1, block.ID, warning)
			}
		}
	}

	status := "ok"
	if problems > 0 {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s %s: %d slides, %d blocks, fingerprint %s\n",
		status, path, len(document.Slides), blocks, session.FingerprintOf(document))

	if verbose {
		encoded, err := codec.Marshal(document)
		if err == nil {
			var notation string
			if notation, err = codec.Diagnose(encoded); err == nil {
				fmt.Fprintf(w, "%s\n", notation)
			}
		}
		if err != nil {
			fmt.Fprintf(w, "  error: encoding %s: %v\n", path, err)
			problems++
		}
	}
	return problems == 0
}

func blockWarnings(block *deck.Block) []string {
	var warnings []string
	switch content := block.Content.(type) {
	case deck.Unknown:
		warnings = append(warnings, fmt.Sprintf("unknown block type %q", content.Tag))
	case deck.Heading:
		if content.Level != deck.ClampLevel(content.Level) {
			warnings = append(warnings, fmt.Sprintf("heading level %d is outside 1-3", content.Level))
		}
	case deck.Image:
		if content.Src == "" {
			warnings = append(warnings, "image has no src")
		}
	case deck.Embed:
		if content.URL == "" {
			warnings = append(warnings, "embed has no url")
		}
	}
	return warnings
}
