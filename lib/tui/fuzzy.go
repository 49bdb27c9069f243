// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the pattern does not match. Positions holds the
// rune indexes of matched characters, ascending, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// Matched reports whether the pattern matched.
func (result FuzzyResult) Matched() bool {
	return result.Score > 0
}

// NewSlab allocates scratch space for [FuzzyMatch]. Reusing one slab
// across a filtering pass avoids an allocation per candidate.
func NewSlab() *util.Slab {
	return util.MakeSlab(16*1024, 2048)
}

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. An empty pattern scores zero. slab may be nil.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 || text == "" {
		return FuzzyResult{}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}
	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = slices.Clone(*positions)
		slices.Sort(matched.Positions)
	}
	return matched
}
