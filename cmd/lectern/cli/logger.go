// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations. When stderr is a terminal it uses slog.TextHandler for
// human-readable output; when stderr is piped or redirected it uses
// slog.JSONHandler.
//
// Callers scope the logger with command context via With():
//
//	logger := cli.NewCommandLogger().With("command", "export", "deck", path)
func NewCommandLogger() *slog.Logger {
	return slog.New(newStreamHandler(os.Stderr, term.IsTerminal(int(os.Stderr.Fd()))))
}

func newStreamHandler(w io.Writer, terminal bool) slog.Handler {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if terminal {
		return slog.NewTextHandler(w, options)
	}
	return slog.NewJSONHandler(w, options)
}

// TeeToFile returns a logger that sends every record to handler and
// additionally writes debug-level JSON records to the file at path,
// appending. An empty path returns a logger over handler alone. The
// returned close function closes the file.
func TeeToFile(handler slog.Handler, path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(handler), func() error { return nil }, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, Internal("opening log output: %w", err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(Fanout(handler, fileHandler)), file.Close, nil
}

// fanoutHandler delivers each record to every handler that accepts
// its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

// Fanout returns a handler that forwards records to all of handlers.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return &fanoutHandler{handlers: handlers}
}

func (handler *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, inner := range handler.handlers {
		if inner.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handler *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, inner := range handler.handlers {
		if !inner.Enabled(ctx, record.Level) {
			continue
		}
		if err := inner.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", inner, err))
		}
	}
	return errors.Join(errs...)
}

func (handler *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make([]slog.Handler, len(handler.handlers))
	for index, inner := range handler.handlers {
		derived[index] = inner.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: derived}
}

func (handler *fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make([]slog.Handler, len(handler.handlers))
	for index, inner := range handler.handlers {
		derived[index] = inner.WithGroup(name)
	}
	return &fanoutHandler{handlers: derived}
}
