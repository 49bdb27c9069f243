// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lectern/lib/deck"
)

// PlaintextLanguage is the label shown for code whose language chroma
// does not know.
const PlaintextLanguage = "plaintext"

// Lexer returns the chroma lexer for language and whether one was
// found. Unknown languages get the plain-text fallback lexer.
func Lexer(language string) (chroma.Lexer, bool) {
	if language != "" && language != PlaintextLanguage {
		if lexer := lexers.Get(language); lexer != nil {
			return chroma.Coalesce(lexer), true
		}
	}
	return lexers.Fallback, false
}

// Highlight returns source highlighted for a 256-color terminal. On any
// chroma failure the source is returned unchanged.
func Highlight(source, language, styleName string) string {
	lexer, _ := Lexer(language)
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}
	var buffer strings.Builder
	if err := formatters.Get("terminal256").Format(&buffer, styles.Get(styleName), iterator); err != nil {
		return source
	}
	return buffer.String()
}

func (painter *painter) code(code deck.Code) string {
	label := code.Language
	if _, known := Lexer(code.Language); !known {
		label = PlaintextLanguage
	}

	var body string
	if code.Source == "" {
		body = painter.faint().Render("(empty)")
	} else {
		highlighted := strings.TrimRight(Highlight(code.Source, code.Language, painter.codeStyle), "\n")
		lines := strings.Split(highlighted, "\n")
		for index, line := range lines {
			lines[index] = ansi.Truncate(strings.ReplaceAll(line, "\t", "    "), painter.width-2, "…")
		}
		body = strings.Join(lines, "\n")
	}

	header := painter.faint().Italic(true).Render(label)
	gutter := painter.style().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(painter.theme.BorderColor).
		PaddingLeft(1)
	return header + "\n" + gutter.Render(body)
}
