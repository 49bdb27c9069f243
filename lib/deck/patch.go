// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import "slices"

// SlidePatch is a partial update to a slide. Nil fields are left
// unchanged. Setting SpeakerNotes to "" clears the notes.
type SlidePatch struct {
	Title        *string
	SpeakerNotes *string
}

func (patch SlidePatch) apply(slide *Slide) (*Slide, bool) {
	updated := *slide
	setString(&updated.Title, patch.Title)
	setString(&updated.SpeakerNotes, patch.SpeakerNotes)
	if updated.Title == slide.Title && updated.SpeakerNotes == slide.SpeakerNotes {
		return slide, false
	}
	return &updated, true
}

// BlockPatch is a partial update to a block's payload. There is no id or
// type field. Each field applies only to the variants that carry it:
//
//   - Level, Text: heading
//   - Items: bullets
//   - Language, Source: code
//   - Src, Alt, Caption: image
//   - URL: embed
//   - Content: paragraph
//
// ArticleOnly applies to every variant, including unknown ones.
type BlockPatch struct {
	Level       *int
	Text        *string
	Items       *[]string
	Language    *string
	Source      *string
	Src         *string
	Alt         *string
	Caption     *string
	URL         *string
	Content     *string
	ArticleOnly *bool
}

// ClampLevel limits a heading level to 1..3.
func ClampLevel(level int) int {
	return max(1, min(level, 3))
}

func (patch BlockPatch) apply(block *Block) (*Block, bool) {
	updated := *block
	if patch.ArticleOnly != nil {
		updated.ArticleOnly = *patch.ArticleOnly
	}

	switch content := block.Content.(type) {
	case Heading:
		if patch.Level != nil {
			content.Level = ClampLevel(*patch.Level)
		}
		setString(&content.Text, patch.Text)
		updated.Content = content
	case Bullets:
		if patch.Items != nil {
			content.Items = slices.Clone(*patch.Items)
			if content.Items == nil {
				content.Items = []string{}
			}
		}
		updated.Content = content
	case Code:
		setString(&content.Language, patch.Language)
		setString(&content.Source, patch.Source)
		updated.Content = content
	case Image:
		setString(&content.Src, patch.Src)
		setString(&content.Alt, patch.Alt)
		setString(&content.Caption, patch.Caption)
		updated.Content = content
	case Embed:
		setString(&content.URL, patch.URL)
		updated.Content = content
	case Paragraph:
		setString(&content.Content, patch.Content)
		updated.Content = content
	}

	if updated.ArticleOnly == block.ArticleOnly && contentEqual(updated.Content, block.Content) {
		return block, false
	}
	return &updated, true
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

// contentEqual compares two payloads field by field.
func contentEqual(a, b BlockContent) bool {
	switch a := a.(type) {
	case Bullets:
		b, ok := b.(Bullets)
		return ok && slices.Equal(a.Items, b.Items) && (a.Items == nil) == (b.Items == nil)
	case Unknown:
		b, ok := b.(Unknown)
		if !ok || a.Tag != b.Tag || len(a.Fields) != len(b.Fields) {
			return false
		}
		for key, value := range a.Fields {
			other, present := b.Fields[key]
			if !present || string(value) != string(other) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return a == b
	}
}
