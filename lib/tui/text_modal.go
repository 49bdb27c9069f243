// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextModal is a centered overlay for editing multi-line text: speaker
// notes, code source, paragraph content, bullet items one per line. It
// is a small line editor with cursor tracking. The owning model routes
// key messages to [TextModal.Update] while the modal is open and
// decides itself which keys save or cancel.
type TextModal struct {
	// Title names the field being edited, shown in the modal header.
	Title string

	// Footer lists the save and cancel keys.
	Footer string

	lines   [][]rune
	cursorY int
	cursorX int
	theme   Theme
}

// NewTextModal opens a modal on value with the cursor at the end of
// the text.
func NewTextModal(title, value string, theme Theme) TextModal {
	modal := TextModal{
		Title:  title,
		Footer: "Ctrl+S save  Esc cancel",
		theme:  theme,
	}
	for _, line := range strings.Split(value, "\n") {
		modal.lines = append(modal.lines, []rune(line))
	}
	modal.cursorY = len(modal.lines) - 1
	modal.cursorX = len(modal.lines[modal.cursorY])
	return modal
}

// Value returns the current text.
func (modal TextModal) Value() string {
	parts := make([]string, len(modal.lines))
	for index, line := range modal.lines {
		parts[index] = string(line)
	}
	return strings.Join(parts, "\n")
}

// Cursor returns the cursor line and column.
func (modal TextModal) Cursor() (int, int) {
	return modal.cursorY, modal.cursorX
}

// Update applies an editing key. Keys it does not handle are ignored.
func (modal *TextModal) Update(message tea.KeyMsg) {
	// Models are copied by value; edits must not reach earlier copies.
	modal.lines = slices.Clone(modal.lines)
	line := modal.lines[modal.cursorY]
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		runes := message.Runes
		if message.Type == tea.KeySpace && len(runes) == 0 {
			runes = []rune{' '}
		}
		modal.lines[modal.cursorY] = slices.Insert(slices.Clone(line), modal.cursorX, runes...)
		modal.cursorX += len(runes)

	case tea.KeyTab:
		modal.lines[modal.cursorY] = slices.Insert(slices.Clone(line), modal.cursorX, '\t')
		modal.cursorX++

	case tea.KeyEnter:
		before := slices.Clone(line[:modal.cursorX])
		after := slices.Clone(line[modal.cursorX:])
		modal.lines[modal.cursorY] = before
		modal.lines = slices.Insert(modal.lines, modal.cursorY+1, after)
		modal.cursorY++
		modal.cursorX = 0

	case tea.KeyBackspace:
		switch {
		case modal.cursorX > 0:
			modal.lines[modal.cursorY] = slices.Delete(slices.Clone(line), modal.cursorX-1, modal.cursorX)
			modal.cursorX--
		case modal.cursorY > 0:
			previous := modal.lines[modal.cursorY-1]
			modal.cursorX = len(previous)
			modal.lines[modal.cursorY-1] = append(slices.Clone(previous), line...)
			modal.lines = slices.Delete(modal.lines, modal.cursorY, modal.cursorY+1)
			modal.cursorY--
		}

	case tea.KeyDelete:
		switch {
		case modal.cursorX < len(line):
			modal.lines[modal.cursorY] = slices.Delete(slices.Clone(line), modal.cursorX, modal.cursorX+1)
		case modal.cursorY < len(modal.lines)-1:
			modal.lines[modal.cursorY] = append(slices.Clone(line), modal.lines[modal.cursorY+1]...)
			modal.lines = slices.Delete(modal.lines, modal.cursorY+1, modal.cursorY+2)
		}

	case tea.KeyLeft:
		switch {
		case modal.cursorX > 0:
			modal.cursorX--
		case modal.cursorY > 0:
			modal.cursorY--
			modal.cursorX = len(modal.lines[modal.cursorY])
		}

	case tea.KeyRight:
		switch {
		case modal.cursorX < len(line):
			modal.cursorX++
		case modal.cursorY < len(modal.lines)-1:
			modal.cursorY++
			modal.cursorX = 0
		}

	case tea.KeyUp:
		if modal.cursorY > 0 {
			modal.cursorY--
			modal.cursorX = min(modal.cursorX, len(modal.lines[modal.cursorY]))
		}

	case tea.KeyDown:
		if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			modal.cursorX = min(modal.cursorX, len(modal.lines[modal.cursorY]))
		}

	case tea.KeyHome, tea.KeyCtrlA:
		modal.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		modal.cursorX = len(line)
	}
}

// Modal chrome: 2 columns border + 2 columns padding horizontally;
// 2 lines border + title + footer vertically.
const (
	textModalChromeWidth    = 4
	textModalChromeHeight   = 4
	textModalMinInnerWidth  = 30
	textModalMinInnerHeight = 5
	// Gap to the screen edge so the view underneath stays visible.
	// Collapses to 0 on very small screens.
	textModalMargin = 2
)

// Render produces the modal lines and the top-left anchor for
// [SpliceOverlay]. The modal fills the screen minus a margin.
func (modal TextModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	modalWidth := min(max(screenWidth-textModalMargin*2, textModalMinInnerWidth+textModalChromeWidth), screenWidth)
	modalHeight := min(max(screenHeight-textModalMargin*2, textModalMinInnerHeight+textModalChromeHeight), screenHeight)
	innerWidth := max(modalWidth-textModalChromeWidth, 1)
	innerHeight := max(modalHeight-textModalChromeHeight, 1)

	background := lipgloss.NewStyle().Background(modal.theme.OverlayBackground)
	text := background.Foreground(modal.theme.OverlayForeground)
	cursor := lipgloss.NewStyle().Reverse(true)
	pad := func(rendered string) string {
		if width := ansi.StringWidth(rendered); width < innerWidth {
			rendered += background.Render(strings.Repeat(" ", innerWidth-width))
		}
		return rendered
	}

	title := pad(text.Bold(true).Foreground(modal.theme.HeaderForeground).Render(ansi.Truncate(modal.Title, innerWidth, "…")))
	footer := pad(text.Foreground(modal.theme.FaintText).Render(modal.Footer))

	// Scroll so the cursor line is visible, and horizontally so the
	// cursor column is.
	scrollY := max(modal.cursorY-innerHeight+1, 0)
	scrollX := max(modal.cursorX-innerWidth+2, 0)

	body := make([]string, 0, innerHeight)
	for lineIndex := scrollY; lineIndex < scrollY+innerHeight; lineIndex++ {
		var rendered string
		if lineIndex < len(modal.lines) {
			line := modal.lines[lineIndex]
			visible := line[min(scrollX, len(line)):]
			if lineIndex == modal.cursorY {
				column := modal.cursorX - min(scrollX, len(line))
				if column >= len(visible) {
					rendered = text.Render(string(visible)) + cursor.Render(" ")
				} else {
					rendered = text.Render(string(visible[:column])) +
						cursor.Render(string(visible[column:column+1])) +
						text.Render(string(visible[column+1:]))
				}
			} else {
				rendered = text.Render(string(visible))
			}
			rendered = ansi.Truncate(rendered, innerWidth, "")
		}
		body = append(body, pad(rendered))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.OverlayBackground).
		Padding(0, 1)
	rendered := border.Render(title + "\n" + strings.Join(body, "\n") + "\n" + footer)

	lines := strings.Split(rendered, "\n")
	anchorX, anchorY := Center(lines, screenWidth, screenHeight)
	return lines, anchorX, anchorY
}
