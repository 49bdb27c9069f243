// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lectern/cmd/lectern/cli"
	"github.com/bureau-foundation/lectern/lib/config"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/deckui"
	"github.com/bureau-foundation/lectern/lib/deckwatch"
	"github.com/bureau-foundation/lectern/lib/session"
)

type presentParams struct {
	commonParams
	Watch bool `flag:"watch,w" desc:"reload the deck file when it changes on disk"`
}

// presentCommand builds one of the interactive commands. A nil screen
// opens the screen named by the config's view setting.
func presentCommand(streams Streams, name, summary string, screen *deckui.Screen) *cli.Command {
	var params presentParams
	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: summary + `.

Without a deck file the built-in sample deck is loaded. Press ? inside
the program for the key bindings; s, a and e switch between the slide,
article and editor screens.`,
		Usage: "lectern " + name + " [deck.json] [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(name, &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 1 {
				return cli.Validation("expected at most one deck file, got %d arguments", len(args))
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := params.loadConfig()
			if err != nil {
				return err
			}
			startScreen := startupScreen(cfg, screen)

			setup, err := preparePresentation(streams, params, cfg, path, startScreen)
			if err != nil {
				return err
			}
			defer setup.close()
			return setup.run(ctx, streams)
		},
	}
}

func startupScreen(cfg *config.Config, screen *deckui.Screen) deckui.Screen {
	if screen != nil {
		return *screen
	}
	if cfg.View == config.Article {
		return deckui.ScreenArticle
	}
	return deckui.ScreenSlides
}

// presentation is everything an interactive run needs, assembled
// before the terminal is taken over.
type presentation struct {
	session    *session.Session
	options    deckui.Options
	handler    *deckui.TUILogHandler
	logger     *slog.Logger
	watcher    *deckwatch.Watcher
	closeFuncs []func() error
}

func preparePresentation(streams Streams, params presentParams, cfg *config.Config, path string, screen deckui.Screen) (*presentation, error) {
	watch := params.Watch || cfg.Watch
	if watch && path == "" {
		return nil, cli.Validation("--watch needs a deck file")
	}
	generator, err := idGenerator(cfg)
	if err != nil {
		return nil, err
	}
	document := deck.Default()
	if path != "" {
		if document, err = loadDeck(path); err != nil {
			return nil, err
		}
	}
	if screen == deckui.ScreenEditor {
		if err := cfg.EnsureExportDir(); err != nil {
			return nil, cli.Internal("%w", err)
		}
	}

	// The terminal belongs to the program: records at Info and above go
	// to the status bar, and --log-output gets everything.
	handler := deckui.NewTUILogHandler(slog.LevelInfo)
	logger, closeLog, err := cli.TeeToFile(handler, params.LogOutput)
	if err != nil {
		return nil, err
	}
	setup := &presentation{handler: handler, closeFuncs: []func() error{closeLog}}
	setup.logger = logger.With("command", screen.String())
	setup.session = session.New(document, session.Config{IDs: generator, Logger: setup.logger, Source: path})
	setup.options = deckui.Options{
		Dark:           cfg.Dark(),
		CodeStyle:      cfg.CodeStyle(),
		Screen:         screen,
		ExportDir:      cfg.ExportDir,
		SwipeThreshold: cfg.SwipeThreshold,
		Logger:         setup.logger,
	}

	if watch {
		watcher, err := deckwatch.Watch(path, deckwatch.Options{Logger: setup.logger})
		if err != nil {
			setup.close()
			if errors.Is(err, deckwatch.ErrUnsupported) {
				return nil, cli.Validation("%w", err).WithHint("Run without --watch.")
			}
			return nil, cli.Internal("watching %s: %w", path, err)
		}
		setup.watcher = watcher
		setup.closeFuncs = append(setup.closeFuncs, func() error {
			watcher.Close()
			<-watcher.Done()
			return nil
		})
	}
	return setup, nil
}

func (setup *presentation) run(ctx context.Context, streams Streams) error {
	program := tea.NewProgram(deckui.New(setup.session, setup.options),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	setup.handler.SetProgram(program)
	if setup.watcher != nil {
		go forwardReloads(setup.watcher, program, setup.logger)
	}

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return cli.Internal("terminal: %w", err)
	}
	if setup.session.Dirty() {
		fmt.Fprintln(streams.Stderr, "lectern: unsaved changes were discarded (Ctrl+S in the editor exports slides.json)")
	}
	return nil
}

// close releases the watcher and the log file, in reverse order of
// acquisition.
func (setup *presentation) close() {
	for index := len(setup.closeFuncs) - 1; index >= 0; index-- {
		setup.closeFuncs[index]()
	}
}

// reloadSource is the part of a deckwatch.Watcher that forwardReloads
// reads.
type reloadSource interface {
	Path() string
	Changes() <-chan []byte
	Done() <-chan struct{}
}

// forwardReloads delivers each change of the watched file to the
// program until the watcher stops.
func forwardReloads(source reloadSource, program deckui.Sender, logger *slog.Logger) {
	for {
		select {
		case content := <-source.Changes():
			logger.Info("deck changed on disk", "path", source.Path(), "bytes", len(content))
			program.Send(deckui.ReloadMsg{Content: content, Source: source.Path()})
		case <-source.Done():
			return
		}
	}
}
