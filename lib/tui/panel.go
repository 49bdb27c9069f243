// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel is a bordered, centered overlay with a title, body lines and
// a footer hint. The shortcuts modal, the image lightbox and blocking
// notices are panels.
type Panel struct {
	Title  string
	Lines  []string
	Footer string

	// Width is the inner width. Zero sizes the panel to its widest
	// line. Lines wider than the screen allows are truncated.
	Width int

	// TitleColor overrides the header color, for error notices.
	TitleColor lipgloss.Color
}

// Render produces the panel lines and their anchor for
// [SpliceOverlay].
func (panel Panel) Render(theme Theme, screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := panel.Width
	if innerWidth <= 0 {
		innerWidth = ansi.StringWidth(panel.Title)
		for _, line := range panel.Lines {
			innerWidth = max(innerWidth, ansi.StringWidth(line))
		}
		innerWidth = max(innerWidth, ansi.StringWidth(panel.Footer))
	}
	innerWidth = max(min(innerWidth, screenWidth-textModalChromeWidth), 1)

	background := lipgloss.NewStyle().Background(theme.OverlayBackground)
	text := background.Foreground(theme.OverlayForeground)
	titleColor := theme.HeaderForeground
	if panel.TitleColor != "" {
		titleColor = panel.TitleColor
	}

	var content []string
	content = append(content, PadOverlayLine(text.Bold(true).Foreground(titleColor).Render(ansi.Truncate(panel.Title, innerWidth, "…")), innerWidth, innerWidth+2, background))
	content = append(content, PadOverlayLine("", innerWidth, innerWidth+2, background))
	for _, line := range panel.Lines {
		content = append(content, PadOverlayLine(text.Render(ansi.Truncate(line, innerWidth, "…")), innerWidth, innerWidth+2, background))
	}
	if panel.Footer != "" {
		content = append(content, PadOverlayLine("", innerWidth, innerWidth+2, background))
		content = append(content, PadOverlayLine(text.Foreground(theme.FaintText).Render(panel.Footer), innerWidth, innerWidth+2, background))
	}

	// Cap height to the screen, keeping the footer.
	if maxContent := screenHeight - 2; maxContent > 0 && len(content) > maxContent {
		content = append(content[:maxContent-1], content[len(content)-1])
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor)
	lines := strings.Split(border.Render(strings.Join(content, "\n")), "\n")
	anchorX, anchorY := Center(lines, screenWidth, screenHeight)
	return lines, anchorX, anchorY
}

// Center returns the anchor that centers rendered lines on the screen,
// clamped to the top-left corner.
func Center(lines []string, screenWidth, screenHeight int) (int, int) {
	width := 0
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}
	return max((screenWidth-width)/2, 0), max((screenHeight-len(lines))/2, 0)
}
