// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the menu.
	Value string // Value applied on selection.
}

// DropdownOverlay is a floating menu anchored at a screen position:
// the add-block menu, the heading level picker, the code language
// picker. It captures keyboard input while open (up/down to move,
// enter to select, escape to dismiss); the owning model routes input
// to it.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int
	AnchorY int

	// Field names what the selection applies to, for the owner's
	// dispatch.
	Field string
}

// NewDropdown opens a menu with the cursor on the option whose value
// is current, or on the first option.
func NewDropdown(field string, options []DropdownOption, current string) DropdownOverlay {
	dropdown := DropdownOverlay{Options: options, Field: field}
	for index, option := range options {
		if option.Value == current {
			dropdown.Cursor = index
			break
		}
	}
	return dropdown
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor = (dropdown.Cursor - 1 + len(dropdown.Options)) % len(dropdown.Options)
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor = (dropdown.Cursor + 1) % len(dropdown.Options)
}

// Selected returns the highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the visible width of the rendered menu in columns:
// one padding column each side around a "> " marker and the widest
// label.
func (dropdown *DropdownOverlay) Width() int {
	widest := 0
	for _, option := range dropdown.Options {
		widest = max(widest, ansi.StringWidth(option.Label))
	}
	return 3 + widest + 2
}

// Contains reports whether the screen coordinate (x, y) falls within
// the menu.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	return dropdown.OptionAtY(y) >= 0 && x >= dropdown.AnchorX && x < dropdown.AnchorX+dropdown.Width()
}

// OptionAtY returns the option index on screen row y, or -1.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	index := y - dropdown.AnchorY
	if index < 0 || index >= len(dropdown.Options) {
		return -1
	}
	return index
}

// Render produces the menu lines for [SpliceOverlay]. Every line has
// the same visible width and a solid background; the highlighted
// option uses the selection colors.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	width := dropdown.Width()
	normal := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	selected := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground).
		Bold(true)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		style, marker := normal, " "
		if index == dropdown.Cursor {
			style, marker = selected, ">"
		}
		content := " " + marker + " " + option.Label
		content += strings.Repeat(" ", max(width-ansi.StringWidth(content), 0))
		lines = append(lines, style.Render(content))
	}
	return lines
}
