// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/render"
)

// MarkdownFileName is the file name offered for Markdown exports.
const MarkdownFileName = "article.md"

// Markdown renders presentation as a Markdown article. Slides become
// numbered second-level sections; block headings start at level three.
func Markdown(presentation deck.Presentation) []byte {
	var builder strings.Builder
	title := presentation.Title
	if title == "" {
		title = "Untitled presentation"
	}
	fmt.Fprintf(&builder, "# %s\n", title)
	if byline := render.Byline(presentation); byline != "" {
		fmt.Fprintf(&builder, "\n*%s*\n", byline)
	}

	for index, slide := range presentation.Slides {
		fmt.Fprintf(&builder, "\n## %d. %s\n", index+1, slide.Title)
		for _, block := range slide.Blocks {
			if text := markdownBlock(block); text != "" {
				builder.WriteString("\n")
				builder.WriteString(text)
				builder.WriteString("\n")
			}
		}
		if notes := strings.TrimSpace(slide.SpeakerNotes); notes != "" {
			builder.WriteString("\n> **Speaker notes**\n>\n")
			for _, line := range strings.Split(notes, "\n") {
				builder.WriteString(strings.TrimRight("> "+line, " "))
				builder.WriteString("\n")
			}
		}
	}
	return []byte(builder.String())
}

func markdownBlock(block *deck.Block) string {
	switch content := block.Content.(type) {
	case deck.Heading:
		return strings.Repeat("#", deck.ClampLevel(content.Level)+2) + " " + content.Text
	case deck.Bullets:
		lines := make([]string, len(content.Items))
		for index, item := range content.Items {
			lines[index] = "- " + item
		}
		return strings.Join(lines, "\n")
	case deck.Code:
		fence := codeFence(content.Source)
		return fence + content.Language + "\n" + strings.TrimRight(content.Source, "\n") + "\n" + fence
	case deck.Image:
		text := fmt.Sprintf("![%s](%s)", content.Alt, content.Src)
		if content.Caption != "" {
			text += "\n\n*" + content.Caption + "*"
		}
		return text
	case deck.Embed:
		if content.URL == "" {
			return ""
		}
		return fmt.Sprintf("[Embedded content](%s)", content.URL)
	case deck.Paragraph:
		return content.Content
	default:
		return ""
	}
}

// codeFence returns a backtick fence longer than any run of backticks
// in source.
func codeFence(source string) string {
	longest, run := 0, 0
	for _, character := range source {
		if character == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}
