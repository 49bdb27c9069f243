// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// notesMarkdown is shared; goldmark parsers keep per-call state in the
// reader.
var (
	notesMarkdown     goldmark.Markdown
	notesMarkdownOnce sync.Once
)

func notesParser() goldmark.Markdown {
	notesMarkdownOnce.Do(func() {
		notesMarkdown = goldmark.New(goldmark.WithExtensions(
			extension.Strikethrough,
			extension.TaskList,
			extension.Linkify,
		))
	})
	return notesMarkdown
}

// Notes renders speaker notes written in Markdown. Soft line breaks
// become spaces so notes reflow to the available width.
func Notes(notes string, options Options) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	source := []byte(notes)
	document := notesParser().Parser().Parse(text.NewReader(source))
	writer := &notesWriter{painter: newPainter(options), source: source}
	ast.Walk(document, writer.walk)
	return strings.TrimRight(writer.output.String(), "\n")
}

// notesWriter walks the Markdown AST directly. Inline content gathers
// in a buffer and is wrapped as a unit when its block closes.
type notesWriter struct {
	*painter
	source []byte

	output strings.Builder
	inline strings.Builder

	// prefix is written before every line; pendingBullet replaces it
	// for the first line of a list item.
	prefix        string
	prefixWidths  []int
	pendingBullet string

	bold, italic, strike int

	lists []listState

	trailingNewlines int
}

type listState struct {
	ordered bool
	next    int
	tight   bool
}

func (writer *notesWriter) write(content string) {
	if content == "" {
		return
	}
	writer.output.WriteString(content)
	trimmed := strings.TrimRight(content, "\n")
	added := len(content) - len(trimmed)
	if trimmed == "" {
		writer.trailingNewlines += added
	} else {
		writer.trailingNewlines = added
	}
}

func (writer *notesWriter) newline() {
	if writer.trailingNewlines < 1 {
		writer.write("\n")
	}
}

func (writer *notesWriter) blankLine() {
	if writer.output.Len() == 0 {
		return
	}
	for writer.trailingNewlines < 2 {
		writer.write("\n")
	}
}

func (writer *notesWriter) pushPrefix(prefix string, width int) {
	writer.prefix += prefix
	writer.prefixWidths = append(writer.prefixWidths, len(prefix), width)
}

func (writer *notesWriter) popPrefix() {
	count := len(writer.prefixWidths)
	if count < 2 {
		return
	}
	byteLength := writer.prefixWidths[count-2]
	writer.prefix = writer.prefix[:len(writer.prefix)-byteLength]
	writer.prefixWidths = writer.prefixWidths[:count-2]
}

func (writer *notesWriter) available() int {
	used := 0
	for index := 1; index < len(writer.prefixWidths); index += 2 {
		used += writer.prefixWidths[index]
	}
	return max(writer.width-used, minimumWidth)
}

func (writer *notesWriter) tight() bool {
	return len(writer.lists) > 0 && writer.lists[len(writer.lists)-1].tight
}

// prefixed applies the line prefix to every line of content.
func (writer *notesWriter) prefixed(content string) string {
	lines := strings.Split(content, "\n")
	for index := range lines {
		prefix := writer.prefix
		if index == 0 && writer.pendingBullet != "" {
			prefix = writer.pendingBullet
			writer.pendingBullet = ""
		}
		lines[index] = prefix + lines[index]
	}
	return strings.Join(lines, "\n")
}

func (writer *notesWriter) flushInline() {
	content := writer.inline.String()
	writer.inline.Reset()
	if content == "" {
		return
	}
	writer.write(writer.prefixed(writer.wrap(content, writer.available())))
	writer.newline()
	if !writer.tight() {
		writer.blankLine()
	}
}

func (writer *notesWriter) styled(content string) string {
	style := writer.style().Foreground(writer.theme.NormalText)
	if writer.bold > 0 {
		style = style.Bold(true)
	}
	if writer.italic > 0 {
		style = style.Italic(true)
	}
	if writer.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (writer *notesWriter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			writer.inline.Reset()
		} else {
			writer.flushInline()
		}

	case ast.KindHeading:
		if entering {
			writer.inline.Reset()
		} else {
			// Headings in notes are emphasis, not structure.
			content := ansi.Strip(writer.inline.String())
			writer.inline.Reset()
			if content != "" {
				style := writer.style().Bold(true).Foreground(writer.theme.HeaderForeground)
				writer.blankLine()
				writer.write(writer.prefixed(writer.wrap(style.Render(content), writer.available())))
				writer.newline()
			}
		}

	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			writer.codeBlock(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			writer.pushPrefix(writer.faint().Render("│ "), 2)
		} else {
			writer.popPrefix()
			writer.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			writer.lists = append(writer.lists, listState{ordered: list.IsOrdered(), next: list.Start, tight: list.IsTight})
		} else {
			writer.lists = writer.lists[:len(writer.lists)-1]
			if !writer.tight() {
				writer.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			writer.enterItem()
		} else {
			writer.popPrefix()
			writer.newline()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := writer.style().Foreground(writer.theme.BorderColor).Render(strings.Repeat("─", writer.available()))
			writer.blankLine()
			writer.write(writer.prefixed(rule))
			writer.newline()
		}

	case ast.KindHTMLBlock, ast.KindRawHTML:
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			writer.inline.WriteString(writer.styled(string(textNode.Segment.Value(writer.source))))
			if textNode.SoftLineBreak() {
				writer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				writer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			writer.inline.WriteString(writer.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.(*ast.Emphasis).Level >= 2 {
			writer.bold += delta
		} else {
			writer.italic += delta
		}

	case extast.KindStrikethrough:
		if entering {
			writer.strike++
		} else {
			writer.strike--
		}

	case extast.KindTaskCheckBox:
		if entering {
			box := "[ ] "
			if node.(*extast.TaskCheckBox).IsChecked {
				box = "[x] "
			}
			writer.inline.WriteString(writer.styled(box))
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(writer.source))
				}
			}
			writer.inline.WriteString(writer.style().Foreground(writer.theme.HeadingColor(3)).Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if !entering {
			destination := string(node.(*ast.Link).Destination)
			if destination != "" {
				writer.inline.WriteString(" " + writer.faint().Render("("+destination+")"))
			}
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(writer.source))
			writer.inline.WriteString(writer.style().Foreground(writer.theme.LinkForeground).Render(url))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			writer.inline.WriteString(writer.faint().Render("[image: " + string(image.Destination) + "]"))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (writer *notesWriter) enterItem() {
	if len(writer.lists) == 0 {
		return
	}
	list := &writer.lists[len(writer.lists)-1]
	bullet := "• "
	if list.ordered {
		bullet = fmt.Sprintf("%d. ", list.next)
		list.next++
	}
	width := ansi.StringWidth(bullet)
	writer.pendingBullet = writer.prefix + bullet
	writer.pushPrefix(strings.Repeat(" ", width), width)
}

func (writer *notesWriter) codeBlock(node ast.Node) {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(writer.source))
	}
	language := ""
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		language = string(fenced.Language(writer.source))
	}
	highlighted := strings.TrimRight(Highlight(code.String(), language, writer.codeStyle), "\n")
	writer.blankLine()
	for _, line := range strings.Split(highlighted, "\n") {
		writer.write(writer.prefixed(line))
		writer.newline()
	}
	writer.blankLine()
}
