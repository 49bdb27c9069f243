// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/mdimport"
)

type convertParams struct {
	commonParams
	Output string `flag:"output,o" desc:"deck file to write, or - for standard output" default:"-"`
	Title  string `flag:"title" desc:"presentation title (default: the first heading)"`
	Author string `flag:"author" desc:"presentation author"`
	Date   string `flag:"date" desc:"presentation date"`
}

func convertCommand(streams Streams) *cli.Command {
	var params convertParams
	return &cli.Command{
		Name:    "convert",
		Summary: "Build a deck from a Markdown document",
		Description: `Build a deck from a Markdown document.

Thematic breaks (---) start a new slide and the first heading of each
slide becomes its title. Lists become bullets, fenced code becomes code
blocks, images become image blocks and blockquotes become speaker
notes.`,
		Usage: "lectern convert <talk.md> [flags]",
		Examples: []cli.Example{
			{
				Description: "Convert and present",
				Command:     "lectern convert talk.md --output talk.json && lectern present talk.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("convert", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected one Markdown file, got %d arguments", len(args))
			}
			cfg, err := params.loadConfig()
			if err != nil {
				return err
			}
			generator, err := idGenerator(cfg)
			if err != nil {
				return err
			}
			logger, closeLog, err := cli.TeeToFile(streams.logger().Handler(), params.LogOutput)
			if err != nil {
				return err
			}
			defer closeLog()

			source, err := readInput(args[0])
			if err != nil {
				return err
			}
			document, err := mdimport.Convert(source, mdimport.Options{
				NewID:  generator,
				Title:  params.Title,
				Author: params.Author,
				Date:   params.Date,
			})
			if errors.Is(err, mdimport.ErrNoSlides) {
				return cli.Validation("%s: %w", args[0], err)
			}
			if err != nil {
				return cli.Internal("converting %s: %w", args[0], err)
			}
			data, err := deck.Export(document)
			if err != nil {
				return cli.Internal("encoding deck: %w", err)
			}
			if err := writeOutput(streams, params.Output, data); err != nil {
				return err
			}
			logger.Info("converted", "source", args[0], "output", params.Output, "slides", len(document.Slides))
			return nil
		},
	}
}
