// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lectern/lib/tui"
)

// drawerMaxWidth caps the navigator drawer width.
const drawerMaxWidth = 44

// drawerState is the slide navigator: a filter input over the slide
// titles and a cursor into the matching slides.
type drawerState struct {
	input   textinput.Model
	matches []drawerMatch
	cursor  int
}

// drawerMatch is one listed slide. positions are the matched rune
// indexes in the label, for highlighting.
type drawerMatch struct {
	index     int
	label     string
	score     int
	positions []int
}

func (model *Model) openDrawer() tea.Cmd {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter slides"
	input.CharLimit = 80
	model.drawer = drawerState{input: input}
	model.panels.Navigator = true
	model.refilterDrawer()
	model.drawer.cursor = max(slices.IndexFunc(model.drawer.matches, func(match drawerMatch) bool {
		return match.index == model.navigator.Index()
	}), 0)
	return model.drawer.input.Focus()
}

func (model *Model) closeDrawer() {
	model.drawer.input.Blur()
	model.panels.Navigator = false
}

func (model *Model) handleDrawerKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.closeDrawer()
		return nil
	case message.Type == tea.KeyEnter:
		if model.drawer.cursor < len(model.drawer.matches) {
			model.navigator = model.navigator.JumpTo(model.drawer.matches[model.drawer.cursor].index)
			if model.screen == ScreenArticle {
				model.article.pendingSection = model.navigator.Index()
			}
		}
		model.closeDrawer()
		return nil
	case message.Type == tea.KeyUp || message.Type == tea.KeyCtrlP:
		model.drawer.cursor = max(model.drawer.cursor-1, 0)
		return nil
	case message.Type == tea.KeyDown || message.Type == tea.KeyCtrlN:
		model.drawer.cursor = min(model.drawer.cursor+1, max(len(model.drawer.matches)-1, 0))
		return nil
	}

	before := model.drawer.input.Value()
	var command tea.Cmd
	model.drawer.input, command = model.drawer.input.Update(message)
	if model.drawer.input.Value() != before {
		model.refilterDrawer()
		model.drawer.cursor = 0
	}
	return command
}

// refilterDrawer recomputes the listed slides. An empty filter lists
// every slide in order; otherwise matches are ranked by fuzzy score.
func (model *Model) refilterDrawer() {
	pattern := []rune(strings.TrimSpace(model.drawer.input.Value()))
	slab := tui.NewSlab()
	slides := model.session.Presentation().Slides
	matches := make([]drawerMatch, 0, len(slides))
	for index, slide := range slides {
		label := slideLabel(index, slide.Title)
		if len(pattern) == 0 {
			matches = append(matches, drawerMatch{index: index, label: label})
			continue
		}
		result := tui.FuzzyMatch(label, pattern, slab)
		if !result.Matched() {
			continue
		}
		matches = append(matches, drawerMatch{index: index, label: label, score: result.Score, positions: result.Positions})
	}
	if len(pattern) > 0 {
		slices.SortStableFunc(matches, func(a, b drawerMatch) int {
			return cmp.Compare(b.score, a.score)
		})
	}
	model.drawer.matches = matches
	model.drawer.cursor = min(model.drawer.cursor, max(len(matches)-1, 0))
}

func slideLabel(index int, title string) string {
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%d. %s", index+1, title)
}

func (model Model) drawerTop() int {
	if model.screen == ScreenSlides && model.panels.Fullscreen {
		return 0
	}
	return 2
}

func (model Model) drawerWidth() int {
	return max(min(drawerMaxWidth, model.width/2), 16)
}

// renderDrawer draws the navigator as a left-anchored overlay.
func (model Model) renderDrawer() []string {
	width := model.drawerWidth()
	inner := width - 2
	background := lipgloss.NewStyle().Background(model.theme.OverlayBackground)
	text := background.Foreground(model.theme.OverlayForeground)
	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	pad := func(styled string, style lipgloss.Style) string {
		return tui.PadOverlayLine(styled, inner, width, style)
	}
	lines := []string{
		pad(text.Bold(true).Foreground(model.theme.HeaderForeground).Render("Slides"), background),
		pad(ansi.Truncate(model.drawer.input.View(), inner, "…"), background),
		pad("", background),
	}

	visible := max(model.height-model.drawerTop()-len(lines)-1, 1)
	offset := 0
	if model.drawer.cursor >= visible {
		offset = model.drawer.cursor - visible + 1
	}
	if len(model.drawer.matches) == 0 {
		lines = append(lines, pad(text.Foreground(model.theme.FaintText).Render("No matching slides"), background))
	}
	now := model.clock.Now()
	slides := model.session.Presentation().Slides
	for row := offset; row < len(model.drawer.matches) && row < offset+visible; row++ {
		match := model.drawer.matches[row]
		style := text
		lineBackground := background
		if row == model.drawer.cursor {
			style = selected
			lineBackground = selected
		}
		if match.index < len(slides) && model.heat.Heat(slides[match.index].ID, now) > 0 {
			style = style.Foreground(model.theme.HotAccent)
		}
		marker := "  "
		if match.index == model.navigator.Index() {
			marker = "• "
		}
		label := highlightRunes(ansi.Truncate(match.label, inner-2, "…"), match.positions, style,
			style.Foreground(model.theme.MatchForeground).Bold(true))
		lines = append(lines, pad(style.Render(marker)+label, lineBackground))
	}
	lines = append(lines, pad(text.Foreground(model.theme.FaintText).Render("↑↓ move  Enter jump  Esc close"), background))
	return lines
}

// highlightRunes renders text with the runes at positions in match
// style and the rest in base style.
func highlightRunes(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	var builder strings.Builder
	next := 0
	for index, character := range []rune(text) {
		if next < len(positions) && positions[next] == index {
			builder.WriteString(match.Render(string(character)))
			next++
			continue
		}
		builder.WriteString(base.Render(string(character)))
	}
	return builder.String()
}
