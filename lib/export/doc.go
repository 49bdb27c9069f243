// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package export renders a presentation as a standalone article in
// formats other than the deck JSON: [HTML] and [Markdown].
//
// Both follow the article view: every block including article-only
// ones, one numbered section per slide, speaker notes as callouts.
//
// The HTML body is built from deck content the user controls (notes
// are Markdown and may carry raw HTML), so it is passed through a
// bluemonday policy before it is placed in the page. Code is
// highlighted by chroma with inline styles so the file has no external
// assets. Embeds become sandboxed iframes and only http and https
// sources survive sanitization.
package export
