// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the one authoritative presentation of a running
// Lectern process.
//
// A [Session] wraps the pure mutation API of lib/deck with the rules
// that belong to an interactive editor rather than to the document:
//
//   - The last slide cannot be removed ([ErrLastSlide]).
//   - New ids are drawn from an injected generator and re-drawn until
//     they are unused in the current document, so ids stay unique even
//     after importing a file whose ids came from another generator.
//   - Every change bumps [Session.Revision]; a no-op does not.
//   - Import replaces the document only on success. A failed import
//     leaves the previous state in place.
//
// [Session.Fingerprint] hashes the canonical CBOR encoding of the
// document with BLAKE3. The UI compares it against the fingerprint
// recorded at the last export to show an unsaved-changes marker.
//
// A Session is not safe for concurrent use. The TUI touches it only
// from its Update loop; background commands receive the immutable
// [deck.Presentation] snapshot instead.
package session
