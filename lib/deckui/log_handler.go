// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// statusFadeMsg clears the status bar message it names, unless a newer
// message has replaced it.
type statusFadeMsg struct {
	sequence uint64
}

// statusFadeDelay is how long status messages stay visible before the
// bar returns to the key help line.
const statusFadeDelay = 5 * time.Second

// Sender is the part of tea.Program the handler needs.
type Sender interface {
	Send(message tea.Msg)
}

// TUILogHandler is a slog.Handler that routes records into a running
// bubbletea program, where they appear in the status bar. Records
// below the configured level are dropped.
//
// Create the handler before the program, then call SetProgram once the
// tea.Program exists. Records arriving before that are dropped. All
// handlers derived via WithAttrs/WithGroup share the program pointer,
// so one SetProgram call reaches every derived handler.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	prefix  string
}

// NewTUILogHandler creates a handler delivering records at or above
// level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[Sender]{},
	}
}

// SetProgram sets the program that receives records. Safe to call from
// any goroutine.
func (handler *TUILogHandler) SetProgram(program Sender) {
	handler.program.Store(&program)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record as "message (key=value, ...)" and sends it
// to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	parts := make([]string, 0, len(handler.attrs)+record.NumAttrs())
	for _, attr := range handler.attrs {
		parts = append(parts, formatAttr(attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(slog.Attr{Key: handler.prefix + attr.Key, Value: attr.Value}))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	(*program).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

func formatAttr(attr slog.Attr) string {
	return fmt.Sprintf("%s=%s", attr.Key, attr.Value.Resolve())
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs, slog.Attr{Key: handler.prefix + attr.Key, Value: attr.Value})
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys with
// name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	derived.prefix = handler.prefix + name + "."
	return &derived
}
