// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// resetStyle ends any SGR state left open by the underlying view.
const resetStyle = "\x1b[0m"

// SpliceOverlay draws overlay lines over a rendered view with the top
// left corner at (x, y). Rows outside the view are clipped. Cutting is
// ANSI-aware, so the view keeps its styling left and right of the
// overlay. The overlay width is taken from its first line.
func SpliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}
	rows := strings.Split(view, "\n")
	width := ansi.StringWidth(overlay[0])
	for offset, line := range overlay {
		row := y + offset
		if row < 0 || row >= len(rows) {
			continue
		}
		rows[row] = spliceRow(rows[row], line, x, width)
	}
	return strings.Join(rows, "\n")
}

func spliceRow(row, line string, x, width int) string {
	var builder strings.Builder
	if x > 0 {
		builder.WriteString(ansi.Truncate(row, x, ""))
	}
	builder.WriteString(resetStyle + line + resetStyle)
	if end := x + width; end < ansi.StringWidth(row) {
		builder.WriteString(ansi.TruncateLeft(row, end, ""))
	}
	return builder.String()
}

// PadOverlayLine renders one overlay row: a background-colored margin
// space, the styled content, and background fill up to innerWidth
// plus the right margin.
func PadOverlayLine(styledContent string, innerWidth, totalWidth int, background lipgloss.Style) string {
	fill := max(innerWidth-ansi.StringWidth(styledContent), 0) + max(totalWidth-innerWidth-1, 0)
	return background.Render(" ") + styledContent + background.Render(strings.Repeat(" ", fill))
}
