// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import "slices"

// Equal reports whether two presentations hold the same content. Unlike
// [Identical] it compares by value, treats nil and empty slices alike,
// and compares unknown block payloads as compacted JSON.
func Equal(a, b Presentation) bool {
	if a.Title != b.Title || a.Author != b.Author || a.Date != b.Date {
		return false
	}
	return slices.EqualFunc(a.Slides, b.Slides, SlideEqual)
}

// SlideEqual reports whether two slides hold the same content, ids
// included.
func SlideEqual(a, b *Slide) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.SpeakerNotes == b.SpeakerNotes &&
		slices.EqualFunc(a.Blocks, b.Blocks, blockEqual)
}

func blockEqual(a, b *Block) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ID != b.ID || a.ArticleOnly != b.ArticleOnly {
		return false
	}
	switch content := a.Content.(type) {
	case Bullets:
		other, ok := b.Content.(Bullets)
		return ok && slices.Equal(content.Items, other.Items)
	case Unknown:
		other, ok := b.Content.(Unknown)
		if !ok || content.Tag != other.Tag || len(content.Fields) != len(other.Fields) {
			return false
		}
		for name, raw := range content.Fields {
			otherRaw, present := other.Fields[name]
			if !present || compactJSON(raw) != compactJSON(otherRaw) {
				return false
			}
		}
		return true
	default:
		return contentEqual(a.Content, b.Content)
	}
}
