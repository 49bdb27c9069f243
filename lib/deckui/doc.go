// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package deckui implements Lectern's terminal user interface. Built
// on bubbletea (Elm architecture), one [Model] hosts three screens
// over a shared [session.Session]:
//
//   - Slides: one slide at a time with a header counter, a notes
//     panel, a fuzzy-filtered navigator drawer, an image lightbox,
//     a shortcuts modal, fullscreen, and mouse swipes.
//   - Article: the whole deck as one scrolling document with speaker
//     notes as callouts.
//   - Editor: slide list, slide fields, block list with per-type
//     forms, and a live preview; import and export of slides.json.
//
// Keyboard input is routed by precedence: a blocking notice first,
// then the open modal or drawer, then an active text field, and only
// then the screen's own bindings. Slide navigation is suppressed while
// anything above the screen holds focus.
//
// Background work (file reloads from the watcher, export results) is
// delivered as messages. Log records routed through [TUILogHandler]
// appear briefly in the status bar.
//
// Data flow:
//
//	[watcher / import / export]
//	        | (tea messages)
//	    [Model] <- bubbletea event loop
//	        | (deck mutations)
//	   [session.Session]
package deckui
