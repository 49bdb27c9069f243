// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import "slices"

// AddSlide inserts a default slide at position and returns the new
// presentation with the ids of the slide and of its heading block.
// newID is called once for the slide and once for the block.
func AddSlide(presentation Presentation, newID func() string, at Position) (Presentation, string, string) {
	slideID := newID()
	blockID := newID()
	slide := &Slide{
		ID:    slideID,
		Title: DefaultSlideTitle,
		Blocks: []*Block{{
			ID:      blockID,
			Content: Heading{Level: 2, Text: DefaultSlideTitle},
		}},
	}
	index := at.resolve(len(presentation.Slides))
	presentation.Slides = slices.Insert(slices.Clone(presentation.Slides), index, slide)
	return presentation, slideID, blockID
}

// RemoveSlide removes the slide with the given id. An absent id returns
// the presentation unchanged. Removing the last remaining slide is
// allowed here; the session refuses it.
func RemoveSlide(presentation Presentation, id string) Presentation {
	_, index := presentation.SlideByID(id)
	if index < 0 {
		return presentation
	}
	presentation.Slides = slices.Delete(slices.Clone(presentation.Slides), index, index+1)
	return presentation
}

// MoveSlide swaps the slide with its neighbour in the given direction.
// Moving past either end, or an absent id, is a no-op.
func MoveSlide(presentation Presentation, id string, direction Direction) Presentation {
	_, index := presentation.SlideByID(id)
	slides, moved := swapNeighbour(presentation.Slides, index, direction)
	if !moved {
		return presentation
	}
	presentation.Slides = slides
	return presentation
}

// UpdateSlide merges the non-nil fields of patch into the slide with
// the given id. An absent id, or a patch that changes nothing, returns
// the presentation unchanged.
func UpdateSlide(presentation Presentation, id string, patch SlidePatch) Presentation {
	slide, index := presentation.SlideByID(id)
	if index < 0 {
		return presentation
	}
	updated, changed := patch.apply(slide)
	if !changed {
		return presentation
	}
	return replaceSlide(presentation, index, updated)
}

// AddBlock inserts a default block of type blockType into the slide
// with the given id. It returns the new presentation and the block id.
// An unknown type or an absent slide is a no-op returning "".
func AddBlock(presentation Presentation, slideID string, blockType BlockType, newID func() string, at Position) (Presentation, string) {
	slide, index := presentation.SlideByID(slideID)
	if index < 0 {
		return presentation, ""
	}
	content, ok := DefaultContent(blockType)
	if !ok {
		return presentation, ""
	}
	block := &Block{ID: newID(), Content: content}
	updated := *slide
	updated.Blocks = slices.Insert(slices.Clone(slide.Blocks), at.resolve(len(slide.Blocks)), block)
	return replaceSlide(presentation, index, &updated), block.ID
}

// RemoveBlock removes a block from a slide. Removing the only block
// leaves the slide with an empty block list. Absent ids are a no-op.
func RemoveBlock(presentation Presentation, slideID, blockID string) Presentation {
	slide, index := presentation.SlideByID(slideID)
	if index < 0 {
		return presentation
	}
	_, blockIndex := slide.BlockByID(blockID)
	if blockIndex < 0 {
		return presentation
	}
	updated := *slide
	updated.Blocks = slices.Delete(slices.Clone(slide.Blocks), blockIndex, blockIndex+1)
	return replaceSlide(presentation, index, &updated)
}

// MoveBlock swaps a block with its neighbour within its slide. Moving
// past either end, or absent ids, is a no-op.
func MoveBlock(presentation Presentation, slideID, blockID string, direction Direction) Presentation {
	slide, index := presentation.SlideByID(slideID)
	if index < 0 {
		return presentation
	}
	_, blockIndex := slide.BlockByID(blockID)
	blocks, moved := swapNeighbour(slide.Blocks, blockIndex, direction)
	if !moved {
		return presentation
	}
	updated := *slide
	updated.Blocks = blocks
	return replaceSlide(presentation, index, &updated)
}

// UpdateBlock merges patch into a block. The patch cannot express an id
// or a type, so both are preserved. Fields that do not apply to the
// block's variant are ignored. Absent ids are a no-op.
func UpdateBlock(presentation Presentation, slideID, blockID string, patch BlockPatch) Presentation {
	slide, index := presentation.SlideByID(slideID)
	if index < 0 {
		return presentation
	}
	block, blockIndex := slide.BlockByID(blockID)
	if blockIndex < 0 {
		return presentation
	}
	updatedBlock, changed := patch.apply(block)
	if !changed {
		return presentation
	}
	updated := *slide
	updated.Blocks = slices.Clone(slide.Blocks)
	updated.Blocks[blockIndex] = updatedBlock
	return replaceSlide(presentation, index, &updated)
}

// Identical reports whether two presentations are the same value as far
// as the mutation functions are concerned: equal metadata and the same
// slide pointers in the same order. Every mutation that changes
// something replaces at least one slide pointer.
func Identical(a, b Presentation) bool {
	return a.Title == b.Title &&
		a.Author == b.Author &&
		a.Date == b.Date &&
		slices.Equal(a.Slides, b.Slides)
}

func replaceSlide(presentation Presentation, index int, slide *Slide) Presentation {
	presentation.Slides = slices.Clone(presentation.Slides)
	presentation.Slides[index] = slide
	return presentation
}

func swapNeighbour[T any](items []T, index int, direction Direction) ([]T, bool) {
	if index < 0 {
		return items, false
	}
	target := index - 1
	if direction == Down {
		target = index + 1
	}
	if target < 0 || target >= len(items) {
		return items, false
	}
	result := slices.Clone(items)
	result[index], result[target] = result[target], result[index]
	return result, true
}
