// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings. Bindings are shared between screens
// where the meaning carries over (Up/Down move in lists and scroll the
// article).
type KeyMap struct {
	// Slide navigation.
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding

	// Lists and scrolling.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Slide view toggles.
	Notes      key.Binding
	Navigator  key.Binding
	Shortcuts  key.Binding
	Fullscreen key.Binding
	Lightbox   key.Binding

	// Screen switching.
	SlidesScreen  key.Binding
	ArticleScreen key.Binding
	EditorScreen  key.Binding

	// Article view: jump between slide sections.
	NextSection key.Binding
	PrevSection key.Binding

	// Editor.
	FocusNext   key.Binding
	Select      key.Binding
	AddSlide    key.Binding
	AddBlock    key.Binding
	Remove      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	EditTitle   key.Binding
	EditNotes   key.Binding
	Level       key.Binding
	Language    key.Binding
	ArticleOnly key.Binding
	Preview     key.Binding
	Import      key.Binding
	Export      key.Binding

	// Modal and form control.
	Save   key.Binding
	Cancel key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: arrows and vim keys
// for movement, single letters for toggles.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "down", "l", " ", "pgdown", "n"),
		key.WithHelp("→/↓/l/Space", "next slide"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "up", "h", "pgup", "p"),
		key.WithHelp("←/↑/h", "previous slide"),
	),
	First: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g/Home", "first slide"),
	),
	Last: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G/End", "last slide"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("PgUp", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d", " "),
		key.WithHelp("PgDn", "page down"),
	),
	Notes: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "speaker notes"),
	),
	Navigator: key.NewBinding(
		key.WithKeys("o", "/"),
		key.WithHelp("o", "slide navigator"),
	),
	Shortcuts: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "shortcuts"),
	),
	Fullscreen: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fullscreen"),
	),
	Lightbox: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "view image"),
	),
	SlidesScreen: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "slides"),
	),
	ArticleScreen: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "article"),
	),
	EditorScreen: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editor"),
	),
	NextSection: key.NewBinding(
		key.WithKeys("n", "]"),
		key.WithHelp("n/]", "next section"),
	),
	PrevSection: key.NewBinding(
		key.WithKeys("p", "["),
		key.WithHelp("p/[", "previous section"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "edit"),
	),
	AddSlide: key.NewBinding(
		key.WithKeys("+", "A"),
		key.WithHelp("+", "add slide"),
	),
	AddBlock: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "add block"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	EditTitle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "slide title"),
	),
	EditNotes: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "speaker notes"),
	),
	Level: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "heading level"),
	),
	Language: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "code language"),
	),
	ArticleOnly: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "article only"),
	),
	Preview: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "preview"),
	),
	Import: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "import"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "export"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpLine formats bindings as "key description" pairs for the status
// bar.
func helpLine(bindings ...key.Binding) string {
	line := ""
	for _, binding := range bindings {
		help := binding.Help()
		if line != "" {
			line += "  "
		}
		line += help.Key + " " + help.Desc
	}
	return line
}
