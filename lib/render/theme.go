// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/lectern/lib/tui"
)

// Theme is the color palette of the viewer: the shared chrome colors
// plus the document styling. All colors are ANSI 256-color codes.
type Theme struct {
	tui.Theme

	Name string

	// Heading colors by level (1, 2, 3).
	Headings [3]lipgloss.Color

	// Speaker notes callouts.
	NotesBorder lipgloss.Color
	NotesLabel  lipgloss.Color

	// Notices and the unsaved-changes marker.
	Warning lipgloss.Color
	Error   lipgloss.Color

	// CodeStyle is the chroma style used for code blocks.
	CodeStyle string
}

// HeadingColor returns the color for a heading level, clamping to 1..3.
func (theme Theme) HeadingColor(level int) lipgloss.Color {
	return theme.Headings[max(1, min(level, 3))-1]
}

// DarkTheme is designed for 256-color terminals with a dark background.
var DarkTheme = Theme{
	Theme: tui.DarkTheme,
	Name:  "dark",

	Headings: [3]lipgloss.Color{
		lipgloss.Color("255"),
		lipgloss.Color("117"), // light blue
		lipgloss.Color("180"), // tan
	},

	NotesBorder: lipgloss.Color("94"),
	NotesLabel:  lipgloss.Color("220"),

	Warning: lipgloss.Color("214"),
	Error:   lipgloss.Color("196"),

	CodeStyle: "monokai",
}

// LightTheme is designed for light terminal backgrounds.
var LightTheme = Theme{
	Theme: tui.LightTheme,
	Name:  "light",

	Headings: [3]lipgloss.Color{
		lipgloss.Color("232"),
		lipgloss.Color("25"), // dark blue
		lipgloss.Color("94"), // brown
	},

	NotesBorder: lipgloss.Color("179"),
	NotesLabel:  lipgloss.Color("130"),

	Warning: lipgloss.Color("166"),
	Error:   lipgloss.Color("160"),

	CodeStyle: "github",
}

// ThemeFor returns DarkTheme or LightTheme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}

// ThemeNamed returns the theme called name ("dark" or "light").
func ThemeNamed(name string) (Theme, bool) {
	switch name {
	case DarkTheme.Name:
		return DarkTheme, true
	case LightTheme.Name:
		return LightTheme, true
	default:
		return Theme{}, false
	}
}
