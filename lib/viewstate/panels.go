// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package viewstate

// Panels holds the independent open/closed toggles of the slide view.
type Panels struct {
	// Notes shows the speaker notes under the slide.
	Notes bool

	// Navigator shows the slide list drawer.
	Navigator bool

	// Shortcuts shows the key binding modal.
	Shortcuts bool

	// Fullscreen hides the header and footer chrome.
	Fullscreen bool

	// Lightbox shows the focused image enlarged.
	Lightbox bool

	// Notice is a blocking message the user must dismiss.
	Notice bool

	// InputFocused is set while a text field has keyboard focus.
	InputFocused bool
}

// NavigationSuppressed reports whether slide navigation shortcuts must
// be ignored: any modal or drawer is open, or a text input has focus.
// Fullscreen and notes do not suppress navigation.
func (panels Panels) NavigationSuppressed() bool {
	return panels.Navigator || panels.Shortcuts || panels.Lightbox || panels.Notice || panels.InputFocused
}

// CloseOverlays closes every modal and drawer and returns whether any
// was open.
func (panels *Panels) CloseOverlays() bool {
	open := panels.Navigator || panels.Shortcuts || panels.Lightbox || panels.Notice
	panels.Navigator = false
	panels.Shortcuts = false
	panels.Lightbox = false
	panels.Notice = false
	return open
}
