// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/lectern/lib/deck"
)

func sampleDeck() deck.Presentation {
	return deck.Presentation{
		Title:  "Talk <One>",
		Author: "Ada",
		Date:   "2026",
		Slides: []*deck.Slide{{
			ID:           "s1",
			Title:        "Opening",
			SpeakerNotes: "Remember **this**.\n\n<script>alert(1)</script>",
			Blocks: []*deck.Block{
				{ID: "h", Content: deck.Heading{Level: 1, Text: "Hello"}},
				{ID: "p", Content: deck.Paragraph{Content: "a < b & c"}},
				{ID: "l", Content: deck.Bullets{Items: []string{"one", "two"}}},
				{ID: "c", Content: deck.Code{Language: "go", Source: "x := \"```\""}},
				{ID: "i", Content: deck.Image{Src: "pic.png", Alt: "A picture", Caption: "Caption"}},
				{ID: "a", ArticleOnly: true, Content: deck.Paragraph{Content: "article text"}},
			},
		}, {
			ID:    "s2",
			Title: "Embeds",
			Blocks: []*deck.Block{
				{ID: "e1", Content: deck.Embed{URL: "https://example.com/demo"}},
				{ID: "e2", Content: deck.Embed{URL: "javascript:alert(1)"}},
			},
		}},
	}
}

func TestHTML(t *testing.T) {
	output, err := HTML(sampleDeck(), HTMLOptions{Dark: true})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	page := string(output)

	for _, want := range []string{
		"<title>Talk &lt;One&gt;</title>",
		"Ada — 2026",
		`<section class="slide" id="s1">`,
		"<h3>Hello</h3>",
		"a &lt; b &amp; c",
		"<li>two</li>",
		`<img src="pic.png" alt="A picture">`,
		"<figcaption>go</figcaption>",
		"article text",
		"Speaker notes",
		"<strong>this</strong>",
		`src="https://example.com/demo"`,
		`sandbox="allow-scripts allow-same-origin allow-popups"`,
		"style=",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	for _, unwanted := range []string{"<script>", `src="javascript:`, `href="javascript:`} {
		if strings.Contains(page, unwanted) {
			t.Errorf("HTML contains %q", unwanted)
		}
	}
}

func TestHTMLFramesOnlyHTTPEmbeds(t *testing.T) {
	presentation := deck.Presentation{Slides: []*deck.Slide{{
		ID: "s",
		Blocks: []*deck.Block{
			{ID: "web", Content: deck.Embed{URL: "https://example.com/demo"}},
			{ID: "data", Content: deck.Embed{URL: "data:text/html,<b>hi</b>"}},
			{ID: "script", Content: deck.Embed{URL: "javascript:alert(1)"}},
		},
	}}}
	output, err := HTML(presentation, HTMLOptions{})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	page := string(output)
	if count := strings.Count(page, "<iframe"); count != 1 {
		t.Errorf("page has %d iframes, want 1 for the https embed", count)
	}
	for _, want := range []string{
		"<figcaption>data:text/html,&lt;b&gt;hi&lt;/b&gt;</figcaption>",
		"<figcaption>javascript:alert(1)</figcaption>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestHTMLUnknownLanguage(t *testing.T) {
	presentation := deck.Presentation{Slides: []*deck.Slide{{
		ID:     "s",
		Blocks: []*deck.Block{{ID: "c", Content: deck.Code{Language: "klingon", Source: "Qapla'"}}},
	}}}
	output, err := HTML(presentation, HTMLOptions{})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(output), "<figcaption>plaintext</figcaption>") {
		t.Error("unknown language not labelled plaintext")
	}
}

func TestMarkdown(t *testing.T) {
	output := string(Markdown(sampleDeck()))
	for _, want := range []string{
		"# Talk <One>\n",
		"*Ada — 2026*",
		"## 1. Opening\n",
		"### Hello\n",
		"- one\n- two",
		"````go\nx := \"```\"\n````",
		"![A picture](pic.png)\n\n*Caption*",
		"article text",
		"> **Speaker notes**\n>\n> Remember **this**.\n>\n> <script>",
		"## 2. Embeds",
		"[Embedded content](https://example.com/demo)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Markdown missing %q:\n%s", want, output)
		}
	}
}

func TestCodeFence(t *testing.T) {
	tests := map[string]string{
		"plain":      "```",
		"a `tick`":   "```",
		"````":       "`````",
		"x ``` y ``": "````",
	}
	for source, want := range tests {
		if got := codeFence(source); got != want {
			t.Errorf("codeFence(%q) = %q, want %q", source, got, want)
		}
	}
}
