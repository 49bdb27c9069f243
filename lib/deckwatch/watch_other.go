// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package deckwatch

func (watcher *Watcher) start() error {
	close(watcher.done)
	return ErrUnsupported
}
