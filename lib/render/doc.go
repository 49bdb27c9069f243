// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package render turns deck blocks into styled terminal text.
//
// The same functions serve the slide view, the article view and the
// editor preview:
//
//   - [Block] renders one block at a given width.
//   - [Slide] renders a slide's blocks, skipping article-only blocks in
//     the slide view.
//   - [Article] renders the whole presentation as one long document and
//     reports where each slide's section starts.
//   - [Notes] renders speaker notes, which are Markdown.
//
// Output always uses the ANSI 256-color profile regardless of what the
// process's stderr is connected to, so rendering is stable in tests and
// when the TUI runs under a pipe-wrapped terminal.
package render
