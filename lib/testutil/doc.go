// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Lectern packages.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern used when a test waits on a channel fed by another
// goroutine, such as the file watcher's reload callback. They are the
// only place in the test suite where real wall-clock timeouts are
// used.
//
// [WriteDeck] writes a deck file into a per-test temporary directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Lectern-internal dependencies.
package testutil
