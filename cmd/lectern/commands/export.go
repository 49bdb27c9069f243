// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/lib/config"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/export"
)

type exportParams struct {
	commonParams
	Format string `flag:"format,f" desc:"output format: json, html or markdown" default:"json"`
	Output string `flag:"output,o" desc:"output file, or - for standard output (default: the format's file name in the export directory)"`
}

func exportCommand(streams Streams) *cli.Command {
	var params exportParams
	return &cli.Command{
		Name:    "export",
		Summary: "Write a deck as JSON, an HTML article or a Markdown article",
		Description: `Write a deck as normalized JSON (slides.json), a standalone HTML
article (article.html) or a Markdown article (article.md).

HTML output highlights code inline and is sanitized: embeds are kept
only as http and https iframes.`,
		Usage: "lectern export <deck.json> [flags]",
		Examples: []cli.Example{
			{
				Description: "Write article.html into the export directory",
				Command:     "lectern export talk.json --format html",
			},
			{
				Description: "Print the Markdown article",
				Command:     "lectern export talk.json --format markdown --output -",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("export", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected one deck file, got %d arguments", len(args))
			}
			cfg, err := params.loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := cli.TeeToFile(streams.logger().Handler(), params.LogOutput)
			if err != nil {
				return err
			}
			defer closeLog()

			document, err := loadDeck(args[0])
			if err != nil {
				return err
			}
			data, fileName, err := renderExport(document, params.Format, cfg)
			if err != nil {
				return err
			}

			output := params.Output
			if output == "" {
				if err := cfg.EnsureExportDir(); err != nil {
					return cli.Internal("%w", err)
				}
				output = filepath.Join(cfg.ExportDir, fileName)
			}
			if err := writeOutput(streams, output, data); err != nil {
				return err
			}
			logger.Info("exported", "deck", args[0], "format", params.Format, "output", output, "slides", len(document.Slides))
			return nil
		},
	}
}

// renderExport encodes document in format and returns the default
// file name for it.
func renderExport(document deck.Presentation, format string, cfg *config.Config) ([]byte, string, error) {
	switch format {
	case "json":
		data, err := deck.Export(document)
		if err != nil {
			return nil, "", cli.Internal("encoding deck: %w", err)
		}
		return data, deck.ExportFileName, nil
	case "html":
		data, err := export.HTML(document, export.HTMLOptions{Dark: cfg.Dark(), CodeStyle: cfg.CodeStyle()})
		if err != nil {
			return nil, "", cli.Internal("rendering HTML: %w", err)
		}
		return data, export.HTMLFileName, nil
	case "markdown", "md":
		return export.Markdown(document), export.MarkdownFileName, nil
	default:
		return nil, "", cli.Validation("unknown format %q", format).WithHint("Use --format json, html or markdown.")
	}
}
