// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/lectern/lib/render"
	"github.com/bureau-foundation/lectern/lib/tui"
)

// wheelStep is the number of lines one mouse wheel notch scrolls.
const wheelStep = 3

// articleState is the article screen: the rendered document in a
// viewport, re-rendered when the document or the width changes.
type articleState struct {
	viewport viewport.Model
	layout   render.ArticleLayout

	// Render key: the session revision and width of the content.
	revision uint64
	width    int
	rendered bool

	// pendingSection is scrolled to on the next sync, or -1.
	pendingSection int
}

func newArticleState() articleState {
	return articleState{viewport: viewport.New(0, 0), pendingSection: -1}
}

// sectionAt returns the index of the slide section containing line.
func (article articleState) sectionAt(line int) int {
	section := 0
	for index, offset := range article.layout.SectionOffsets {
		if offset > line {
			break
		}
		section = index
	}
	return section
}

// syncArticle sizes the viewport and re-renders the article when the
// document or the terminal width changed.
func (model *Model) syncArticle() {
	if !model.ready || model.screen != ScreenArticle {
		return
	}
	article := &model.article
	contentWidth := max(model.width-1, 1)
	article.viewport.Width = contentWidth
	article.viewport.Height = max(model.height-3, 1)

	revision := model.session.Revision()
	if !article.rendered || article.revision != revision || article.width != contentWidth {
		offset := article.viewport.YOffset
		article.layout = render.Article(model.session.Presentation(), model.renderOptions(max(contentWidth-2*slideMargin, 1)))
		article.viewport.SetContent(indent(article.layout.Content, slideMargin))
		article.viewport.SetYOffset(offset)
		article.revision = revision
		article.width = contentWidth
		article.rendered = true
	}
	if article.pendingSection >= 0 {
		article.jumpToSection(article.pendingSection)
		article.pendingSection = -1
	}
}

func (article *articleState) jumpToSection(section int) {
	if section < 0 || section >= len(article.layout.SectionOffsets) {
		return
	}
	article.viewport.SetYOffset(article.layout.SectionOffsets[section])
}

func (article *articleState) scroll(lines int) {
	article.viewport.SetYOffset(article.viewport.YOffset + lines)
}

func (model *Model) handleArticleKeys(message tea.KeyMsg) tea.Cmd {
	article := &model.article
	switch {
	case key.Matches(message, model.keys.Navigator):
		return model.openDrawer()
	case key.Matches(message, model.keys.NextSection):
		for _, offset := range article.layout.SectionOffsets {
			if offset > article.viewport.YOffset {
				article.viewport.SetYOffset(offset)
				break
			}
		}
	case key.Matches(message, model.keys.PrevSection):
		target := 0
		for _, offset := range article.layout.SectionOffsets {
			if offset >= article.viewport.YOffset {
				break
			}
			target = offset
		}
		article.viewport.SetYOffset(target)
	case key.Matches(message, model.keys.Up):
		article.scroll(-1)
	case key.Matches(message, model.keys.Down):
		article.scroll(1)
	case key.Matches(message, model.keys.PageUp):
		article.scroll(-article.viewport.Height)
	case key.Matches(message, model.keys.PageDown):
		article.scroll(article.viewport.Height)
	case key.Matches(message, model.keys.First):
		article.viewport.GotoTop()
	case key.Matches(message, model.keys.Last):
		article.viewport.GotoBottom()
	}
	return nil
}

func (model *Model) handleArticleMouse(message tea.MouseMsg) {
	if message.Action != tea.MouseActionPress {
		return
	}
	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.article.scroll(-wheelStep)
	case tea.MouseButtonWheelDown:
		model.article.scroll(wheelStep)
	}
}

func (model Model) viewArticle() string {
	article := model.article
	title := model.session.Presentation().Title
	if title == "" {
		title = "Untitled presentation"
	}

	total := article.viewport.TotalLineCount()
	position := "top"
	switch {
	case total <= article.viewport.Height:
		position = "all"
	case article.viewport.YOffset+article.viewport.Height >= total:
		position = "bottom"
	case article.viewport.YOffset > 0:
		position = fmt.Sprintf("%d%%", article.viewport.YOffset*100/max(total-article.viewport.Height, 1))
	}
	section := ""
	if count := len(article.layout.SectionOffsets); count > 0 {
		section = fmt.Sprintf("§%d/%d  ", article.sectionAt(article.viewport.YOffset)+1, count)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		fitHeight(fitWidth(article.viewport.View(), article.viewport.Width), article.viewport.Height),
		tui.RenderScrollbar(model.theme.Theme, article.viewport.Height, total, article.viewport.Height, article.viewport.YOffset, true),
	)
	help := helpLine(model.keys.Down, model.keys.PageDown, model.keys.NextSection, model.keys.PrevSection,
		model.keys.SlidesScreen, model.keys.EditorScreen, model.keys.Shortcuts, model.keys.Quit)

	sections := []string{
		model.renderHeader("Article · "+title, model.dirtyMarker()+section+position),
		model.renderSeparator(),
		body,
		model.renderStatus(help),
	}
	return strings.Join(sections, "\n")
}
