// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package viewstate

// Navigator tracks the current slide index within a deck of Count
// slides. The index is always within [0, Count-1], or 0 when the deck
// is empty. The zero value is an empty deck.
type Navigator struct {
	index int
	count int
}

// NewNavigator returns a navigator on the first of count slides.
func NewNavigator(count int) Navigator {
	return Navigator{count: max(0, count)}
}

// Index returns the current slide index.
func (navigator Navigator) Index() int { return navigator.index }

// Count returns the number of slides.
func (navigator Navigator) Count() int { return navigator.count }

// AtFirst reports whether there is no previous slide.
func (navigator Navigator) AtFirst() bool { return navigator.index == 0 }

// AtLast reports whether there is no next slide.
func (navigator Navigator) AtLast() bool { return navigator.index >= navigator.count-1 }

// Next advances one slide, stopping at the last.
func (navigator Navigator) Next() Navigator {
	if !navigator.AtLast() {
		navigator.index++
	}
	return navigator
}

// Prev goes back one slide, stopping at the first.
func (navigator Navigator) Prev() Navigator {
	if !navigator.AtFirst() {
		navigator.index--
	}
	return navigator
}

// First jumps to the first slide.
func (navigator Navigator) First() Navigator { return navigator.JumpTo(0) }

// Last jumps to the last slide.
func (navigator Navigator) Last() Navigator { return navigator.JumpTo(navigator.count - 1) }

// JumpTo moves to index, clamped to the deck.
func (navigator Navigator) JumpTo(index int) Navigator {
	navigator.index = clampIndex(index, navigator.count)
	return navigator
}

// Resize sets the slide count. When the deck shrinks below the current
// position, the index moves to the new last slide.
func (navigator Navigator) Resize(count int) Navigator {
	navigator.count = max(0, count)
	navigator.index = clampIndex(navigator.index, navigator.count)
	return navigator
}

func clampIndex(index, count int) int {
	if count == 0 {
		return 0
	}
	return max(0, min(index, count-1))
}
