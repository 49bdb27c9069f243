// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal user interface building blocks
// shared by Lectern's screens. Built on bubbletea (Elm architecture),
// these components handle dropdown menus, the multi-line text editing
// modal, change highlighting, scrollbars, and ANSI-aware overlay
// splicing.
//
// The screens in deckui own layout and document rendering; this
// package owns only chrome, so every screen gets the same theme, the
// same keyboard conventions and the same overlay mechanics.
package tui
