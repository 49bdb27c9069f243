// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/render"
)

//go:embed page.html.tmpl
var pageSource string

var page = template.Must(template.New("page").Parse(pageSource))

// HTMLOptions controls HTML export.
type HTMLOptions struct {
	// Dark selects the dark page palette and code style.
	Dark bool

	// CodeStyle overrides the chroma style.
	CodeStyle string
}

// HTMLFileName is the file name offered for HTML exports.
const HTMLFileName = "article.html"

// HTML renders presentation as a standalone HTML article.
func HTML(presentation deck.Presentation, options HTMLOptions) ([]byte, error) {
	theme := render.ThemeFor(options.Dark)
	codeStyle := theme.CodeStyle
	if options.CodeStyle != "" {
		codeStyle = options.CodeStyle
	}
	writer := &htmlWriter{codeStyle: codeStyle}
	for index, slide := range presentation.Slides {
		if err := writer.section(index, slide); err != nil {
			return nil, err
		}
	}

	body := sanitizer().Sanitize(writer.body.String())
	var output bytes.Buffer
	err := page.Execute(&output, pageData{
		Title:  presentation.Title,
		Byline: render.Byline(presentation),
		Dark:   options.Dark,
		Body:   template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering HTML page: %w", err)
	}
	return output.Bytes(), nil
}

type pageData struct {
	Title  string
	Byline string
	Dark   bool
	Body   template.HTML
}

var (
	httpURL   = regexp.MustCompile(`^https?://`)
	styleText = regexp.MustCompile(`^[#a-zA-Z0-9 ().,%-]+$`)
)

// sanitizer allows ordinary article markup, chroma's inline styles and
// sandboxed iframes pointing at http or https.
func sanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("section", "aside", "figure", "div", "p", "span")
	policy.AllowElements("section", "aside", "figure", "figcaption")
	policy.AllowAttrs("id").OnElements("section")
	policy.AllowStyles(
		"color", "background-color", "font-weight", "font-style",
		"text-decoration", "white-space", "display", "padding", "margin",
	).Matching(styleText).OnElements("span", "pre", "code", "div")
	policy.AllowAttrs("src").Matching(httpURL).OnElements("iframe")
	policy.AllowAttrs("title", "loading").OnElements("iframe")
	policy.AllowIFrames(bluemonday.SandboxAllowScripts, bluemonday.SandboxAllowSameOrigin, bluemonday.SandboxAllowPopups)
	return policy
}

var notesMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type htmlWriter struct {
	codeStyle string
	body      strings.Builder
}

func (writer *htmlWriter) printf(format string, args ...any) {
	fmt.Fprintf(&writer.body, format, args...)
}

func (writer *htmlWriter) section(index int, slide *deck.Slide) error {
	writer.printf("<section class=\"slide\" id=\"%s\">\n", html.EscapeString(slide.ID))
	writer.printf("<h2><span class=\"number\">%d.</span> %s</h2>\n", index+1, html.EscapeString(slide.Title))
	for _, block := range slide.Blocks {
		if err := writer.block(block); err != nil {
			return fmt.Errorf("slide %q block %q: %w", slide.ID, block.ID, err)
		}
	}
	if slide.SpeakerNotes != "" {
		var notes bytes.Buffer
		if err := notesMarkdown.Convert([]byte(slide.SpeakerNotes), &notes); err != nil {
			return fmt.Errorf("slide %q notes: %w", slide.ID, err)
		}
		writer.printf("<aside class=\"notes\"><p class=\"label\">Speaker notes</p>\n%s</aside>\n", notes.String())
	}
	writer.printf("</section>\n")
	return nil
}

func (writer *htmlWriter) block(block *deck.Block) error {
	switch content := block.Content.(type) {
	case deck.Heading:
		// Slide sections are h2, so block headings start one below.
		level := deck.ClampLevel(content.Level) + 2
		writer.printf("<h%d>%s</h%d>\n", level, html.EscapeString(content.Text), level)
	case deck.Bullets:
		writer.printf("<ul>\n")
		for _, item := range content.Items {
			writer.printf("<li>%s</li>\n", html.EscapeString(item))
		}
		writer.printf("</ul>\n")
	case deck.Code:
		return writer.code(content)
	case deck.Image:
		writer.printf("<figure class=\"image\"><img src=\"%s\" alt=\"%s\">", html.EscapeString(content.Src), html.EscapeString(content.Alt))
		if content.Caption != "" {
			writer.printf("<figcaption>%s</figcaption>", html.EscapeString(content.Caption))
		}
		writer.printf("</figure>\n")
	case deck.Embed:
		escaped := html.EscapeString(content.URL)
		if !httpURL.MatchString(content.URL) {
			// Only http and https pages are framed; anything else is shown
			// as text.
			writer.printf("<figure class=\"embed\"><figcaption>%s</figcaption></figure>\n", escaped)
			break
		}
		writer.printf("<figure class=\"embed\"><iframe src=\"%s\" title=\"Embedded content\" loading=\"lazy\" sandbox=\"allow-scripts allow-same-origin allow-popups\"></iframe>", escaped)
		writer.printf("<figcaption><a href=\"%s\">%s</a></figcaption></figure>\n", escaped, escaped)
	case deck.Paragraph:
		if content.Content != "" {
			writer.printf("<p>%s</p>\n", html.EscapeString(content.Content))
		}
	}
	return nil
}

func (writer *htmlWriter) code(code deck.Code) error {
	lexer, known := render.Lexer(code.Language)
	label := code.Language
	if !known {
		label = render.PlaintextLanguage
	}
	iterator, err := lexer.Tokenise(nil, code.Source)
	if err != nil {
		return fmt.Errorf("tokenising %s code: %w", label, err)
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4))
	var highlighted strings.Builder
	if err := formatter.Format(&highlighted, styles.Get(writer.codeStyle), iterator); err != nil {
		return fmt.Errorf("formatting %s code: %w", label, err)
	}
	writer.printf("<figure class=\"code\"><figcaption>%s</figcaption>\n%s</figure>\n", html.EscapeString(label), highlighted.String())
	return nil
}
