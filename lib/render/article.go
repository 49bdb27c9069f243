// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/lectern/lib/deck"
)

// ArticleLayout is a rendered article plus the line on which each
// slide's section begins, for jumping the viewport to a slide.
type ArticleLayout struct {
	Content        string
	SectionOffsets []int
}

// Byline formats the author and date line, omitting whichever is empty.
func Byline(presentation deck.Presentation) string {
	var parts []string
	for _, part := range []string{presentation.Author, presentation.Date} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " — ")
}

// Article renders the whole presentation as a long-form document:
// a header, then one numbered section per slide with every block
// (article-only ones included) and the speaker notes as a callout.
func Article(presentation deck.Presentation, options Options) ArticleLayout {
	painter := newPainter(options)
	var builder strings.Builder
	lines := 0
	emit := func(content string) {
		builder.WriteString(content)
		builder.WriteString("\n")
		lines += strings.Count(content, "\n") + 1
	}

	title := presentation.Title
	if title == "" {
		title = "Untitled presentation"
	}
	emit(painter.heading(deck.Heading{Level: 1, Text: title}))
	if byline := Byline(presentation); byline != "" {
		emit(painter.faint().Render(byline))
	}
	emit("")

	offsets := make([]int, 0, len(presentation.Slides))
	for index, slide := range presentation.Slides {
		offsets = append(offsets, lines)
		emit(painter.sectionHeader(index, slide))
		if body := painter.slide(slide, ViewArticle); body != "" {
			emit(body)
		}
		if slide.SpeakerNotes != "" {
			emit("")
			emit(painter.notesCallout(slide.SpeakerNotes))
		}
		emit("")
	}

	if len(presentation.Slides) == 0 {
		emit(painter.faint().Render("This presentation has no slides."))
	}

	return ArticleLayout{
		Content:        strings.TrimRight(builder.String(), "\n"),
		SectionOffsets: offsets,
	}
}

func (painter *painter) sectionHeader(index int, slide *deck.Slide) string {
	number := painter.style().Foreground(painter.theme.FaintText).Render(fmt.Sprintf("%d.", index+1))
	title := painter.style().Bold(true).Foreground(painter.theme.HeadingColor(2)).Render(slide.Title)
	rule := painter.style().Foreground(painter.theme.BorderColor).Render(strings.Repeat("─", painter.width))
	return painter.wrap(number+" "+title, painter.width) + "\n" + rule
}

// notesCallout frames rendered speaker notes with a label.
func (painter *painter) notesCallout(notes string) string {
	inner := painter.width - 4
	label := painter.style().Bold(true).Foreground(painter.theme.NotesLabel).Render("Speaker notes")
	body := Notes(notes, Options{Dark: painter.theme.Name == DarkTheme.Name, Width: inner, CodeStyle: painter.codeStyle})
	return painter.style().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(painter.theme.NotesBorder).
		PaddingLeft(1).
		Render(label + "\n" + body)
}

// NotesPanel renders the notes panel of the slide view. Slides without
// notes show a placeholder.
func NotesPanel(notes string, options Options) string {
	painter := newPainter(options)
	if strings.TrimSpace(notes) == "" {
		return painter.faint().Italic(true).Render("No notes for this slide.")
	}
	return painter.notesCallout(notes)
}
