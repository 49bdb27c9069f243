// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/lectern/lib/deck"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 80

// minimumWidth keeps wrapping from degenerating in very narrow panes.
const minimumWidth = 10

// wrapBreakpoints are the characters ansi.Wrap may break after in
// addition to spaces.
const wrapBreakpoints = " ,.;-+|"

// Options controls rendering.
type Options struct {
	// Dark selects DarkTheme; otherwise LightTheme.
	Dark bool

	// Width is the number of terminal cells available.
	Width int

	// CodeStyle overrides the theme's chroma style when set.
	CodeStyle string
}

// View selects which blocks a slide shows.
type View int

const (
	// ViewSlides hides article-only blocks.
	ViewSlides View = iota
	// ViewArticle shows every block.
	ViewArticle
)

// painter carries the resolved options and a lipgloss renderer forced
// to the ANSI 256-color profile.
type painter struct {
	theme     Theme
	width     int
	codeStyle string
	lip       *lipgloss.Renderer
}

func newPainter(options Options) *painter {
	// lipgloss.Renderer.ColorProfile re-detects from the environment
	// unless the profile is set explicitly, which would produce
	// uncolored output without a TTY.
	lip := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lip.SetColorProfile(termenv.ANSI256)

	theme := ThemeFor(options.Dark)
	codeStyle := theme.CodeStyle
	if options.CodeStyle != "" {
		codeStyle = options.CodeStyle
	}
	width := options.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return &painter{
		theme:     theme,
		width:     max(width, minimumWidth),
		codeStyle: codeStyle,
		lip:       lip,
	}
}

func (painter *painter) style() lipgloss.Style {
	return painter.lip.NewStyle()
}

func (painter *painter) faint() lipgloss.Style {
	return painter.style().Foreground(painter.theme.FaintText)
}

func (painter *painter) wrap(text string, width int) string {
	return ansi.Wrap(text, max(width, minimumWidth), wrapBreakpoints)
}

// Block renders one block. Unknown blocks render as "".
func Block(block *deck.Block, options Options) string {
	return newPainter(options).block(block)
}

// Slide renders the blocks of a slide separated by blank lines.
func Slide(slide *deck.Slide, options Options, view View) string {
	return newPainter(options).slide(slide, view)
}

func (painter *painter) slide(slide *deck.Slide, view View) string {
	var parts []string
	for _, block := range slide.Blocks {
		if view == ViewSlides && block.ArticleOnly {
			continue
		}
		if rendered := painter.block(block); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (painter *painter) block(block *deck.Block) string {
	switch content := block.Content.(type) {
	case deck.Heading:
		return painter.heading(content)
	case deck.Bullets:
		return painter.bullets(content)
	case deck.Code:
		return painter.code(content)
	case deck.Image:
		return painter.image(content)
	case deck.Embed:
		return painter.embed(content)
	case deck.Paragraph:
		return painter.paragraph(content)
	default:
		return ""
	}
}

func (painter *painter) heading(heading deck.Heading) string {
	level := deck.ClampLevel(heading.Level)
	style := painter.style().Bold(true).Foreground(painter.theme.HeadingColor(level))
	switch level {
	case 1:
		style = style.Underline(true)
	case 3:
		style = style.Italic(true)
	}
	text := heading.Text
	if level == 1 {
		text = strings.ToUpper(text)
	}
	return painter.wrap(style.Render(text), painter.width)
}

func (painter *painter) bullets(bullets deck.Bullets) string {
	marker := painter.style().Foreground(painter.theme.HeadingColor(2)).Render("•")
	text := painter.style().Foreground(painter.theme.NormalText)
	lines := make([]string, 0, len(bullets.Items))
	for _, item := range bullets.Items {
		wrapped := painter.wrap(text.Render(item), painter.width-2)
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n  ")
		lines = append(lines, marker+" "+wrapped)
	}
	return strings.Join(lines, "\n")
}

func (painter *painter) paragraph(paragraph deck.Paragraph) string {
	if paragraph.Content == "" {
		return ""
	}
	text := painter.style().Foreground(painter.theme.NormalText).Render(paragraph.Content)
	return painter.wrap(text, painter.width)
}

// frameWidth is the outer width of image and embed frames.
func (painter *painter) frameWidth() int {
	return min(painter.width, 64)
}

func (painter *painter) frame() lipgloss.Style {
	return painter.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(painter.theme.BorderColor).
		Padding(0, 1).
		Width(painter.frameWidth() - 2)
}

func (painter *painter) image(image deck.Image) string {
	alt := image.Alt
	if alt == "" {
		alt = "Image"
	}
	inner := painter.frameWidth() - 4
	lines := []string{
		painter.style().Bold(true).Foreground(painter.theme.NormalText).Render("▣ " + alt),
	}
	if image.Src != "" {
		lines = append(lines, painter.faint().Render(ansi.Truncate(image.Src, inner, "…")))
	} else {
		lines = append(lines, painter.faint().Render("(no image source)"))
	}
	framed := painter.frame().Render(strings.Join(lines, "\n"))
	if image.Caption == "" {
		return framed
	}
	caption := painter.faint().Italic(true).Render(image.Caption)
	return framed + "\n" + painter.wrap(caption, painter.frameWidth())
}

func (painter *painter) embed(embed deck.Embed) string {
	inner := painter.frameWidth() - 4
	label := painter.style().Bold(true).Foreground(painter.theme.NormalText).Render("↗ Embedded content")
	url := painter.faint().Render("(no URL)")
	if embed.URL != "" {
		url = painter.style().Foreground(painter.theme.LinkForeground).Underline(true).
			Render(ansi.Truncate(embed.URL, inner, "…"))
	}
	return painter.frame().Render(label + "\n" + url)
}
