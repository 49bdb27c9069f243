// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package deckwatch reloads a deck file when it changes on disk.
//
// A [Watcher] delivers the full file content on [Watcher.Changes]
// whenever the file is rewritten in place or replaced by rename.
// Rewrites that leave the content byte-identical are suppressed by
// comparing BLAKE3 digests. Only the most recent content is kept when
// the reader falls behind.
package deckwatch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/lectern/lib/clock"
)

// ErrUnsupported is returned by [Watch] on platforms without a file
// notification backend.
var ErrUnsupported = errors.New("deckwatch: file watching is not supported on this platform")

// DefaultDebounce is how long the watcher waits after the first event
// before re-reading, coalescing editors that write in several steps.
const DefaultDebounce = 50 * time.Millisecond

// Options configures a [Watcher].
type Options struct {
	// Clock drives the debounce delay. Defaults to the real clock.
	Clock clock.Clock

	// Debounce overrides [DefaultDebounce].
	Debounce time.Duration

	// Logger receives read failures. Defaults to discarding.
	Logger *slog.Logger
}

// Watcher follows one file. Create with [Watch]; stop with
// [Watcher.Close].
type Watcher struct {
	path     string
	clock    clock.Clock
	debounce time.Duration
	logger   *slog.Logger

	changes chan []byte
	stop    chan struct{}
	done    chan struct{}

	closeOnce sync.Once
	digest    [32]byte
}

// Watch starts watching path. The file must exist; its current content
// becomes the baseline and is not delivered.
func Watch(path string, options Options) (*Watcher, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	watcher := &Watcher{
		path:     absolutePath,
		clock:    options.Clock,
		debounce: options.Debounce,
		logger:   options.Logger,
		changes:  make(chan []byte, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		digest:   blake3.Sum256(content),
	}
	if watcher.clock == nil {
		watcher.clock = clock.Real()
	}
	if watcher.debounce <= 0 {
		watcher.debounce = DefaultDebounce
	}
	if watcher.logger == nil {
		watcher.logger = slog.New(slog.DiscardHandler)
	}

	if err := watcher.start(); err != nil {
		return nil, err
	}
	return watcher, nil
}

// Path returns the absolute path being watched.
func (watcher *Watcher) Path() string { return watcher.path }

// Changes delivers the new content of the file after each change.
func (watcher *Watcher) Changes() <-chan []byte { return watcher.changes }

// Done is closed once the watch loop has exited, either after Close or
// on a fatal notification error.
func (watcher *Watcher) Done() <-chan struct{} { return watcher.done }

// Close stops the watcher. Safe to call more than once.
func (watcher *Watcher) Close() {
	watcher.closeOnce.Do(func() { close(watcher.stop) })
}

// reload re-reads the file and publishes it when the content differs
// from the last published (or baseline) content.
func (watcher *Watcher) reload() {
	content, err := os.ReadFile(watcher.path)
	if err != nil {
		// Mid-replace or briefly absent; the completing write sends
		// another event.
		watcher.logger.Debug("deck reload skipped", "path", watcher.path, "error", err)
		return
	}
	digest := blake3.Sum256(content)
	if digest == watcher.digest {
		return
	}
	watcher.digest = digest
	watcher.publish(content)
}

func (watcher *Watcher) publish(content []byte) {
	for {
		select {
		case watcher.changes <- content:
			return
		default:
		}
		// Replace a stale undelivered value with the newer one.
		select {
		case <-watcher.changes:
		default:
		}
	}
}
