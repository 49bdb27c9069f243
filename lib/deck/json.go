// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ErrInvalidFormat is returned by [Import] when the payload is not a
// JSON object with a "slides" array.
var ErrInvalidFormat = errors.New("invalid presentation format: slides must be an array")

// ExportFileName is the file name offered for exported decks.
const ExportFileName = "slides.json"

// Import parses a presentation from JSON. Comments and trailing commas
// are accepted. Beyond the slides array check, content is not
// validated: unknown block types are preserved as [Unknown] and ids
// are taken as given.
func Import(data []byte) (Presentation, error) {
	data = jsonc.ToJSON(data)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Presentation{}, fmt.Errorf("%w (%v)", ErrInvalidFormat, err)
	}
	slides := bytes.TrimSpace(probe["slides"])
	if len(slides) == 0 || slides[0] != '[' {
		return Presentation{}, ErrInvalidFormat
	}

	var presentation Presentation
	if err := json.Unmarshal(data, &presentation); err != nil {
		return Presentation{}, fmt.Errorf("%w (%v)", ErrInvalidFormat, err)
	}
	return normalize(presentation), nil
}

// Export serializes a presentation as pretty-printed JSON with two-space
// indentation and a trailing newline.
func Export(presentation Presentation) ([]byte, error) {
	data, err := json.MarshalIndent(presentation, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding presentation: %w", err)
	}
	return append(data, '\n'), nil
}

// normalize drops null slide and block entries and replaces nil slices
// with empty ones, so that the rest of the program never sees a nil
// pointer inside the tree.
func normalize(presentation Presentation) Presentation {
	slides := make([]*Slide, 0, len(presentation.Slides))
	for _, slide := range presentation.Slides {
		if slide == nil {
			continue
		}
		blocks := make([]*Block, 0, len(slide.Blocks))
		for _, block := range slide.Blocks {
			if block != nil {
				blocks = append(blocks, block)
			}
		}
		slide.Blocks = blocks
		slides = append(slides, slide)
	}
	presentation.Slides = slides
	return presentation
}

type presentationJSON Presentation

// MarshalJSON writes an empty slides array rather than null.
func (presentation Presentation) MarshalJSON() ([]byte, error) {
	if presentation.Slides == nil {
		presentation.Slides = []*Slide{}
	}
	return json.Marshal(presentationJSON(presentation))
}

type slideJSON Slide

// MarshalJSON writes an empty blocks array rather than null.
func (slide Slide) MarshalJSON() ([]byte, error) {
	if slide.Blocks == nil {
		slide.Blocks = []*Block{}
	}
	return json.Marshal(slideJSON(slide))
}

// Reserved block members. Everything else belongs to the variant.
const (
	memberID          = "id"
	memberType        = "type"
	memberArticleOnly = "articleOnly"
)

// MarshalJSON writes the block as a flat object: id, type, the variant
// fields, then articleOnly when set.
func (block Block) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	if err := writeMember(&buffer, memberID, block.ID); err != nil {
		return nil, err
	}
	buffer.WriteByte(',')
	if err := writeMember(&buffer, memberType, block.Type()); err != nil {
		return nil, err
	}

	var payload any
	switch content := block.Content.(type) {
	case Bullets:
		if content.Items == nil {
			content.Items = []string{}
		}
		payload = content
	case Unknown:
		payload = content.Fields
	default:
		payload = content
	}
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s block %q: %w", block.Type(), block.ID, err)
		}
		// Splice the variant object's members into this one.
		inner := bytes.TrimSpace(encoded)
		if len(inner) >= 2 && inner[0] == '{' {
			inner = bytes.TrimSpace(inner[1 : len(inner)-1])
		} else {
			inner = nil
		}
		if len(inner) > 0 {
			buffer.WriteByte(',')
			buffer.Write(inner)
		}
	}

	if block.ArticleOnly {
		buffer.WriteByte(',')
		if err := writeMember(&buffer, memberArticleOnly, true); err != nil {
			return nil, err
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func writeMember(buffer *bytes.Buffer, name string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding block member %q: %w", name, err)
	}
	fmt.Fprintf(buffer, "%q:", name)
	buffer.Write(encoded)
	return nil
}

// UnmarshalJSON reads a flat block object. Unrecognized type tags
// become [Unknown] and keep their remaining members verbatim.
func (block *Block) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	var decoded Block
	if raw, ok := members[memberID]; ok {
		if err := json.Unmarshal(raw, &decoded.ID); err != nil {
			return fmt.Errorf("block id: %w", err)
		}
	}
	var blockType BlockType
	if raw, ok := members[memberType]; ok {
		if err := json.Unmarshal(raw, &blockType); err != nil {
			return fmt.Errorf("block %q type: %w", decoded.ID, err)
		}
	}
	if raw, ok := members[memberArticleOnly]; ok {
		if err := json.Unmarshal(raw, &decoded.ArticleOnly); err != nil {
			return fmt.Errorf("block %q articleOnly: %w", decoded.ID, err)
		}
	}

	content, err := decodeContent(blockType, data, members)
	if err != nil {
		return fmt.Errorf("%s block %q: %w", blockType, decoded.ID, err)
	}
	decoded.Content = content
	*block = decoded
	return nil
}

func decodeContent(blockType BlockType, data []byte, members map[string]json.RawMessage) (BlockContent, error) {
	switch blockType {
	case TypeHeading:
		return decodeInto[Heading](data)
	case TypeBullets:
		content, err := decodeInto[Bullets](data)
		if err == nil && content.Items == nil {
			content.Items = []string{}
		}
		return content, err
	case TypeCode:
		return decodeInto[Code](data)
	case TypeImage:
		return decodeInto[Image](data)
	case TypeEmbed:
		return decodeInto[Embed](data)
	case TypeParagraph:
		return decodeInto[Paragraph](data)
	}

	fields := make(map[string]json.RawMessage, len(members))
	for name, raw := range members {
		switch name {
		case memberID, memberType, memberArticleOnly:
			continue
		}
		fields[name] = raw
	}
	return Unknown{Tag: blockType, Fields: fields}, nil
}

func decodeInto[T BlockContent](data []byte) (T, error) {
	var content T
	err := json.Unmarshal(data, &content)
	return content, err
}
