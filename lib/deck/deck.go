// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"encoding/json"
	"fmt"
	"slices"
)

// BlockType is the wire tag identifying a block variant.
type BlockType string

const (
	TypeHeading   BlockType = "heading"
	TypeBullets   BlockType = "bullets"
	TypeCode      BlockType = "code"
	TypeImage     BlockType = "image"
	TypeEmbed     BlockType = "embed"
	TypeParagraph BlockType = "paragraph"
)

// BlockTypes lists the known block variants in the order the editor
// offers them.
var BlockTypes = []BlockType{
	TypeHeading,
	TypeParagraph,
	TypeBullets,
	TypeCode,
	TypeImage,
	TypeEmbed,
}

// Known reports whether t is one of the six block variants.
func (t BlockType) Known() bool {
	return slices.Contains(BlockTypes, t)
}

// Label returns the human-readable name used in menus.
func (t BlockType) Label() string {
	switch t {
	case TypeHeading:
		return "Heading"
	case TypeParagraph:
		return "Paragraph"
	case TypeBullets:
		return "Bullet List"
	case TypeCode:
		return "Code Block"
	case TypeImage:
		return "Image"
	case TypeEmbed:
		return "Embed"
	default:
		return string(t)
	}
}

// Presentation is the root document: metadata plus ordered slides.
type Presentation struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Date   string   `json:"date"`
	Slides []*Slide `json:"slides"`
}

// Slide is one page of the deck. The ID is stable for the lifetime of
// the document and never reused.
type Slide struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	SpeakerNotes string   `json:"speakerNotes,omitempty"`
	Blocks       []*Block `json:"blocks"`
}

// Block is one content unit within a slide. ArticleOnly blocks appear
// in the long-form article view and are hidden in the slide view.
type Block struct {
	ID          string
	ArticleOnly bool
	Content     BlockContent
}

// Type returns the wire tag of the block's content, or "" for a block
// without content.
func (block *Block) Type() BlockType {
	if block.Content == nil {
		return ""
	}
	return block.Content.Type()
}

// BlockContent is the closed set of block payloads. The unexported
// method keeps the set closed to this package.
type BlockContent interface {
	Type() BlockType
	isBlockContent()
}

// Heading is a title line. Level is 1, 2, or 3.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Bullets is an unordered list.
type Bullets struct {
	Items []string `json:"items"`
}

// Code is a source listing highlighted for Language.
type Code struct {
	Language string `json:"language"`
	Source   string `json:"code"`
}

// Image references a picture by URL or path.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// Embed references external content shown in a frame.
type Embed struct {
	URL string `json:"url"`
}

// Paragraph is running text.
type Paragraph struct {
	Content string `json:"content"`
}

// Unknown preserves a block whose type tag is not one of the known
// variants. Fields holds every JSON member except id, type and
// articleOnly, verbatim.
type Unknown struct {
	Tag    BlockType
	Fields map[string]json.RawMessage
}

func (Heading) Type() BlockType   { return TypeHeading }
func (Bullets) Type() BlockType   { return TypeBullets }
func (Code) Type() BlockType      { return TypeCode }
func (Image) Type() BlockType     { return TypeImage }
func (Embed) Type() BlockType     { return TypeEmbed }
func (Paragraph) Type() BlockType { return TypeParagraph }
func (u Unknown) Type() BlockType { return u.Tag }

func (Heading) isBlockContent()   {}
func (Bullets) isBlockContent()   {}
func (Code) isBlockContent()      {}
func (Image) isBlockContent()     {}
func (Embed) isBlockContent()     {}
func (Paragraph) isBlockContent() {}
func (Unknown) isBlockContent()   {}

// DefaultContent returns the empty payload the editor inserts for a
// new block of type t. The second result is false for unknown types.
func DefaultContent(t BlockType) (BlockContent, bool) {
	switch t {
	case TypeHeading:
		return Heading{Level: 2}, true
	case TypeBullets:
		return Bullets{Items: []string{""}}, true
	case TypeCode:
		return Code{Language: DefaultCodeLanguage}, true
	case TypeImage:
		return Image{}, true
	case TypeEmbed:
		return Embed{}, true
	case TypeParagraph:
		return Paragraph{}, true
	default:
		return nil, false
	}
}

// DefaultCodeLanguage is the language of a freshly added code block.
const DefaultCodeLanguage = "typescript"

// CodeLanguages is the set of languages offered by the editor. Blocks
// may carry any other string; rendering falls back to plain text.
var CodeLanguages = []string{
	"typescript",
	"javascript",
	"tsx",
	"jsx",
	"python",
	"go",
	"bash",
	"json",
	"css",
	"markdown",
	"plaintext",
}

// DefaultSlideTitle is used for both the title and the heading block of
// a slide created by [AddSlide].
const DefaultSlideTitle = "New Slide"

// Direction is the way [MoveSlide] and [MoveBlock] shift an element.
type Direction int

const (
	// Up moves toward the start of the sequence.
	Up Direction = iota
	// Down moves toward the end of the sequence.
	Down
)

func (direction Direction) String() string {
	if direction == Up {
		return "up"
	}
	return "down"
}

// ParseDirection accepts "up" or "down".
func ParseDirection(value string) (Direction, error) {
	switch value {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("invalid direction %q (want up or down)", value)
	}
}

// Position is an optional insertion point: either [End] or [After] an
// index.
type Position struct {
	after int
	set   bool
}

// End inserts after the last element.
var End = Position{}

// After inserts at index+1. Indexes outside the sequence clamp to its
// bounds, so After(-1) inserts at the front.
func After(index int) Position {
	return Position{after: index, set: true}
}

// resolve returns the insertion index for a sequence of the given
// length.
func (position Position) resolve(length int) int {
	if !position.set {
		return length
	}
	return max(0, min(position.after+1, length))
}

// SlideByID returns the slide with the given id and its index, or
// (nil, -1).
func (presentation Presentation) SlideByID(id string) (*Slide, int) {
	for index, slide := range presentation.Slides {
		if slide.ID == id {
			return slide, index
		}
	}
	return nil, -1
}

// BlockByID returns the block with the given id and its index, or
// (nil, -1).
func (slide *Slide) BlockByID(id string) (*Block, int) {
	for index, block := range slide.Blocks {
		if block.ID == id {
			return block, index
		}
	}
	return nil, -1
}

// UsedIDs returns the set of slide and block ids in the presentation.
func (presentation Presentation) UsedIDs() map[string]bool {
	used := make(map[string]bool)
	for _, slide := range presentation.Slides {
		used[slide.ID] = true
		for _, block := range slide.Blocks {
			used[block.ID] = true
		}
	}
	return used
}

// DuplicateIDs returns every slide or block id that occurs more than
// once, in first-seen order. Imported files are not required to have
// unique ids; the validator reports them.
func (presentation Presentation) DuplicateIDs() []string {
	seen := make(map[string]int)
	var duplicates []string
	record := func(id string) {
		seen[id]++
		if seen[id] == 2 {
			duplicates = append(duplicates, id)
		}
	}
	for _, slide := range presentation.Slides {
		record(slide.ID)
		for _, block := range slide.Blocks {
			record(block.ID)
		}
	}
	return duplicates
}

// Ptr returns a pointer to v. Patch fields are pointers so that "leave
// unchanged" and "set to the zero value" are distinguishable.
func Ptr[T any](v T) *T {
	return &v
}
