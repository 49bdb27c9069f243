// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds Lectern's canonical CBOR encoding.
//
// Decks travel as JSON. CBOR is used only where Lectern needs a
// byte-exact canonical form of a deck, which today means the content
// fingerprint the session uses for dirty tracking. JSON is unsuitable
// for that: member order follows struct order and unknown block
// payloads keep whatever whitespace the source file had.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Equal values always produce identical bytes.
//
//	data, err := codec.Marshal(value)
//
// or, to feed a hash without an intermediate buffer:
//
//	err := codec.NewEncoder(hasher).Encode(value)
//
// Types carrying `json` tags encode under those names; fxamacker/cbor
// falls back to json tags when no cbor tag is present.
package codec
