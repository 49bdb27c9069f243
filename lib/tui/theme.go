// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the chrome palette shared by Lectern's terminal screens:
// text, selection, borders, overlays. All colors use lipgloss ANSI
// 256-color codes for broad terminal compatibility. Document styling
// (heading colors, notes callouts, code style) extends this in the
// render package.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent marks the focused scrollbar thumb and active controls.
	Accent lipgloss.Color

	// HotAccent tints items that just changed on disk.
	HotAccent lipgloss.Color

	// Fuzzy filter match highlighting.
	MatchForeground lipgloss.Color

	// Links and embed URLs.
	LinkForeground lipgloss.Color

	// Modals, menus and drawers.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// DarkTheme is the built-in dark-terminal color scheme.
var DarkTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent:    lipgloss.Color("220"), // yellow/amber
	HotAccent: lipgloss.Color("58"),  // dark amber background tint

	MatchForeground: lipgloss.Color("220"),
	LinkForeground:  lipgloss.Color("75"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"), // slightly lighter than terminal background
}

// LightTheme is the built-in light-terminal color scheme.
var LightTheme = Theme{
	NormalText: lipgloss.Color("236"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("253"),
	SelectedForeground: lipgloss.Color("232"),

	HeaderForeground: lipgloss.Color("232"),
	BorderColor:      lipgloss.Color("248"),
	HelpText:         lipgloss.Color("244"),

	Accent:    lipgloss.Color("166"),
	HotAccent: lipgloss.Color("229"), // pale yellow background tint

	MatchForeground: lipgloss.Color("166"),
	LinkForeground:  lipgloss.Color("26"),

	OverlayForeground: lipgloss.Color("236"),
	OverlayBackground: lipgloss.Color("254"),
}
