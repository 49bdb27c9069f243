// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the lectern command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/lib/deckui"
	"github.com/bureau-foundation/lectern/lib/version"
)

// Streams are the process's output streams and base logger. Tests
// substitute buffers.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer

	// Logger is the base command logger. Defaults to
	// cli.NewCommandLogger.
	Logger *slog.Logger
}

// OSStreams returns the real standard streams.
func OSStreams() Streams {
	return Streams{Stdout: os.Stdout, Stderr: os.Stderr, Logger: cli.NewCommandLogger()}
}

func (streams Streams) logger() *slog.Logger {
	if streams.Logger == nil {
		return cli.NewCommandLogger()
	}
	return streams.Logger
}

// Root builds the complete lectern command tree.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name: "lectern",
		Description: `Lectern: terminal presentations.

Present a JSON slide deck one slide at a time, read it as a long-form
article, or edit it and export slides.json again.`,
		HelpOutput: streams.Stderr,
		Subcommands: []*cli.Command{
			presentCommand(streams, "present", "Present a deck one slide at a time", nil),
			presentCommand(streams, "article", "Read a deck as a scrolling article", screenPointer(deckui.ScreenArticle)),
			presentCommand(streams, "edit", "Edit a deck and export slides.json", screenPointer(deckui.ScreenEditor)),
			exportCommand(streams),
			convertCommand(streams),
			validateCommand(streams),
			versionCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Present a deck, reloading when the file changes",
				Command:     "lectern present talk.json --watch",
			},
			{
				Description: "Start a new deck from the built-in sample",
				Command:     "lectern edit --export-dir ./talk",
			},
			{
				Description: "Turn Markdown notes into a deck",
				Command:     "lectern convert talk.md --output talk.json",
			},
			{
				Description: "Publish the article as standalone HTML",
				Command:     "lectern export talk.json --format html --output talk.html",
			},
		},
	}
}

func screenPointer(screen deckui.Screen) *deckui.Screen {
	return &screen
}

type versionParams struct {
	Short bool `flag:"short" desc:"print only the version number"`
}

func versionCommand(streams Streams) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "lectern version [--short]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			if params.Short {
				fmt.Fprintln(streams.Stdout, version.Short())
				return nil
			}
			fmt.Fprintf(streams.Stdout, "lectern %s\n", version.Full())
			return nil
		},
	}
}
