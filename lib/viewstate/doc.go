// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewstate holds the ephemeral per-view state of the viewer:
// which slide is showing, which panels are open, and in-progress swipe
// gestures. None of it is part of the document and none of it is
// exported.
//
// The types here are plain values with no I/O, so the TUI model can
// embed them and tests can drive them directly.
package viewstate
