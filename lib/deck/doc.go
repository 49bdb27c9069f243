// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package deck defines the presentation document model and the pure
// mutation API over it.
//
// A [Presentation] is an ordered list of [Slide] values, each holding
// an ordered list of [Block] values. A block's payload is one of the
// [BlockContent] variants ([Heading], [Bullets], [Code], [Image],
// [Embed], [Paragraph]); blocks of a type this package does not know
// are carried as [Unknown] so that import/export round-trips them
// untouched.
//
// Every mutation ([AddSlide], [RemoveSlide], [MoveSlide],
// [UpdateSlide], [AddBlock], [RemoveBlock], [MoveBlock],
// [UpdateBlock]) takes a Presentation value and returns a new one. The
// input is never modified: slides and blocks are held by pointer and
// unchanged ones are shared between the old and new trees, so
// [Identical] can detect "nothing happened" by pointer comparison.
//
// Mutations addressed by id are total. An id that no longer exists
// (a stale reference from a view that has not re-rendered yet) makes
// the call a no-op and returns the input unchanged. Callers that need
// stronger guarantees, such as never removing the last slide, enforce
// them before calling into this package.
//
// [Import] and [Export] convert between a Presentation and its JSON
// file format. Import is the only fallible entry point.
//
// This package depends on no other Lectern packages except
// lib/codec.
package deck
