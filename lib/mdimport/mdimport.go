// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package mdimport converts a Markdown document into a deck.
//
// The document is split into slides at thematic breaks (---). Within a
// slide, top-level Markdown blocks map onto deck blocks:
//
//   - headings become heading blocks (levels deeper than 3 clamp to 3),
//     and the first one also names the slide
//   - lists become bullet blocks, one item per list item
//   - fenced and indented code become code blocks
//   - a paragraph holding only an image becomes an image block, with
//     the image title as caption
//   - a paragraph holding only a bare URL becomes an embed block
//   - other paragraphs become paragraph blocks
//   - blockquotes become the slide's speaker notes
//
// Inline formatting is flattened to plain text, except in speaker
// notes, which keep their Markdown source.
package mdimport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/lectern/lib/deck"
)

// ErrNoSlides is returned for a document with no content.
var ErrNoSlides = errors.New("markdown document has no slide content")

// Options controls conversion.
type Options struct {
	// NewID generates slide and block ids.
	NewID func() string

	// Title, Author and Date fill the presentation metadata. An empty
	// Title falls back to the first heading in the document.
	Title  string
	Author string
	Date   string
}

var markdown = goldmark.New(goldmark.WithExtensions(
	extension.Strikethrough,
	extension.Linkify,
))

// Convert parses source and builds a presentation.
func Convert(source []byte, options Options) (deck.Presentation, error) {
	if options.NewID == nil {
		return deck.Presentation{}, errors.New("mdimport: Options.NewID is required")
	}
	document := markdown.Parser().Parse(text.NewReader(source))
	converter := &converter{source: source, newID: options.NewID}
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		converter.topLevel(node)
	}
	converter.finishSlide()

	if len(converter.slides) == 0 {
		return deck.Presentation{}, ErrNoSlides
	}
	title := options.Title
	if title == "" {
		title = converter.firstHeading
	}
	return deck.Presentation{
		Title:  title,
		Author: options.Author,
		Date:   options.Date,
		Slides: converter.slides,
	}, nil
}

type converter struct {
	source []byte
	newID  func() string

	slides       []*deck.Slide
	current      *deck.Slide
	notes        []string
	firstHeading string
}

func (converter *converter) slide() *deck.Slide {
	if converter.current == nil {
		converter.current = &deck.Slide{ID: converter.newID(), Blocks: []*deck.Block{}}
	}
	return converter.current
}

func (converter *converter) add(content deck.BlockContent) {
	slide := converter.slide()
	slide.Blocks = append(slide.Blocks, &deck.Block{ID: converter.newID(), Content: content})
}

// finishSlide closes the current slide. Slides with neither blocks nor
// notes are dropped, so repeated breaks do not produce empty slides.
func (converter *converter) finishSlide() {
	slide := converter.current
	converter.current = nil
	notes := strings.Join(converter.notes, "\n\n")
	converter.notes = nil
	if slide == nil {
		return
	}
	if len(slide.Blocks) == 0 && notes == "" {
		return
	}
	slide.SpeakerNotes = notes
	if slide.Title == "" {
		slide.Title = fmt.Sprintf("Slide %d", len(converter.slides)+1)
	}
	converter.slides = append(converter.slides, slide)
}

func (converter *converter) topLevel(node ast.Node) {
	switch node := node.(type) {
	case *ast.ThematicBreak:
		converter.finishSlide()

	case *ast.Heading:
		content := converter.plainText(node)
		if converter.firstHeading == "" {
			converter.firstHeading = content
		}
		slide := converter.slide()
		if slide.Title == "" {
			slide.Title = content
		}
		converter.add(deck.Heading{Level: deck.ClampLevel(node.Level), Text: content})

	case *ast.List:
		items := []string{}
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, converter.plainText(item))
		}
		converter.add(deck.Bullets{Items: items})

	case *ast.FencedCodeBlock:
		converter.add(deck.Code{
			Language: string(node.Language(converter.source)),
			Source:   converter.lines(node),
		})

	case *ast.CodeBlock:
		converter.add(deck.Code{Language: "plaintext", Source: converter.lines(node)})

	case *ast.Paragraph:
		converter.paragraph(node)

	case *ast.Blockquote:
		if notes := converter.blockquoteSource(node); notes != "" {
			converter.slide()
			converter.notes = append(converter.notes, notes)
		}

	case *ast.HTMLBlock:
		if content := strings.TrimSpace(converter.lines(node)); content != "" {
			converter.add(deck.Paragraph{Content: content})
		}
	}
}

func (converter *converter) paragraph(paragraph *ast.Paragraph) {
	if paragraph.ChildCount() == 1 {
		switch only := paragraph.FirstChild().(type) {
		case *ast.Image:
			converter.add(deck.Image{
				Src:     string(only.Destination),
				Alt:     converter.plainText(only),
				Caption: string(only.Title),
			})
			return
		case *ast.AutoLink:
			if only.AutoLinkType == ast.AutoLinkURL {
				converter.add(deck.Embed{URL: string(only.URL(converter.source))})
				return
			}
		}
	}
	if content := converter.plainText(paragraph); content != "" {
		converter.add(deck.Paragraph{Content: content})
	}
}

// plainText flattens the inline content under node. Soft line breaks
// become spaces; hard breaks and paragraph boundaries become newlines.
func (converter *converter) plainText(node ast.Node) string {
	var builder strings.Builder
	ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if child != node && child.Type() == ast.TypeBlock && child.NextSibling() != nil {
				builder.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}
		switch child := child.(type) {
		case *ast.Text:
			builder.Write(child.Segment.Value(converter.source))
			if child.HardLineBreak() {
				builder.WriteString("\n")
			} else if child.SoftLineBreak() {
				builder.WriteString(" ")
			}
		case *ast.String:
			builder.Write(child.Value)
		case *ast.AutoLink:
			builder.Write(child.URL(converter.source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(builder.String())
}

func (converter *converter) lines(node ast.Node) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(converter.source))
	}
	return strings.TrimRight(builder.String(), "\n")
}

// blockquoteSource returns the Markdown source of a blockquote's
// children with the quote markers removed.
func (converter *converter) blockquoteSource(quote *ast.Blockquote) string {
	var paragraphs []string
	for child := quote.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Lines().Len() > 0 {
			paragraphs = append(paragraphs, strings.TrimSpace(converter.lines(child)))
			continue
		}
		if content := converter.plainText(child); content != "" {
			paragraphs = append(paragraphs, content)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
