// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/render"
	"github.com/bureau-foundation/lectern/lib/tui"
	"github.com/bureau-foundation/lectern/lib/viewstate"
)

// slideMargin is the blank column count on each side of the slide body.
const slideMargin = 2

func (model *Model) handleSlideKeys(message tea.KeyMsg) tea.Cmd {
	if model.panels.NavigationSuppressed() {
		return nil
	}
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.panels.Fullscreen = false
	case key.Matches(message, model.keys.Notes):
		model.panels.Notes = !model.panels.Notes
	case key.Matches(message, model.keys.Fullscreen):
		model.panels.Fullscreen = !model.panels.Fullscreen
	case key.Matches(message, model.keys.Navigator):
		return model.openDrawer()
	case key.Matches(message, model.keys.Lightbox):
		if len(model.currentImages()) > 0 {
			model.panels.Lightbox = true
			model.lightboxIndex = 0
		}
	case key.Matches(message, model.keys.Next):
		model.navigator = model.navigator.Next()
	case key.Matches(message, model.keys.Prev):
		model.navigator = model.navigator.Prev()
	case key.Matches(message, model.keys.First):
		model.navigator = model.navigator.First()
	case key.Matches(message, model.keys.Last):
		model.navigator = model.navigator.Last()
	}
	return nil
}

// handleSlideMouse turns a left-button press and release into a
// swipe. Dragging left advances.
func (model *Model) handleSlideMouse(message tea.MouseMsg) {
	if model.panels.NavigationSuppressed() {
		model.swipe = model.swipe.Cancel()
		return
	}
	switch {
	case message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft:
		model.swipe = model.swipe.Start(message.X, message.Y)
	case message.Action == tea.MouseActionRelease:
		var swipe viewstate.Swipe
		model.swipe, swipe = model.swipe.End(message.X, message.Y)
		switch swipe {
		case viewstate.SwipeLeft:
			model.navigator = model.navigator.Next()
		case viewstate.SwipeRight:
			model.navigator = model.navigator.Prev()
		}
	}
}

// currentSlide returns the slide under the navigator, or nil for an
// empty deck.
func (model Model) currentSlide() *deck.Slide {
	slide, err := model.session.SlideAt(model.navigator.Index())
	if err != nil {
		return nil
	}
	return slide
}

// currentImages returns the images the slide view shows on the
// current slide.
func (model Model) currentImages() []deck.Image {
	slide := model.currentSlide()
	if slide == nil {
		return nil
	}
	var images []deck.Image
	for _, block := range slide.Blocks {
		if image, ok := block.Content.(deck.Image); ok && !block.ArticleOnly {
			images = append(images, image)
		}
	}
	return images
}

func (model *Model) handleLightboxKeys(message tea.KeyMsg) tea.Cmd {
	images := model.currentImages()
	switch {
	case key.Matches(message, model.keys.Cancel, model.keys.Lightbox, model.keys.Quit):
		model.panels.Lightbox = false
	case key.Matches(message, model.keys.Next):
		model.lightboxIndex = min(model.lightboxIndex+1, max(len(images)-1, 0))
	case key.Matches(message, model.keys.Prev):
		model.lightboxIndex = max(model.lightboxIndex-1, 0)
	}
	return nil
}

func (model Model) renderLightbox() ([]string, int, int) {
	images := model.currentImages()
	if len(images) == 0 {
		return nil, 0, 0
	}
	index := min(model.lightboxIndex, len(images)-1)
	image := images[index]

	width := max(model.width-8, 10)
	alt := image.Alt
	if alt == "" {
		alt = "(no description)"
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.Accent).
		Background(model.theme.OverlayBackground).
		Foreground(model.theme.OverlayForeground).
		Width(width-4).
		Height(max(model.height/3, 3)).
		Align(lipgloss.Center, lipgloss.Center).
		Render("🖼  " + alt)

	lines := strings.Split(frame, "\n")
	link := lipgloss.NewStyle().Foreground(model.theme.LinkForeground).Background(model.theme.OverlayBackground)
	lines = append(lines, "", link.Render(image.Src))
	if image.Caption != "" {
		lines = append(lines, image.Caption)
	}
	footer := "Esc close"
	title := "Image"
	if len(images) > 1 {
		title = fmt.Sprintf("Image %d of %d", index+1, len(images))
		footer = "←/→ switch image  " + footer
	}
	panel := tui.Panel{Title: title, Lines: lines, Footer: footer, Width: width}
	return panel.Render(model.theme.Theme, model.width, model.height)
}

func (model Model) viewSlides() string {
	presentation := model.session.Presentation()
	bodyWidth := max(model.width-2*slideMargin, 1)

	var body string
	slide := model.currentSlide()
	if slide == nil {
		body = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(
			"This presentation has no slides.\n\nPress e to open the editor and add one.")
	} else {
		body = render.Slide(slide, model.renderOptions(bodyWidth), render.ViewSlides)
		if model.panels.Notes {
			notes := render.NotesPanel(slide.SpeakerNotes, model.renderOptions(bodyWidth))
			body += "\n\n" + notes
		}
	}
	body = indent(fitWidth(body, bodyWidth), slideMargin)

	if model.panels.Fullscreen {
		return fitHeight("\n"+body, model.height)
	}

	title := presentation.Title
	if title == "" {
		title = "Untitled presentation"
	}
	counter := fmt.Sprintf("%d / %d", min(model.navigator.Index()+1, model.navigator.Count()), model.navigator.Count())
	if slide != nil && model.heat.Heat(slide.ID, model.clock.Now()) > 0 {
		counter = lipgloss.NewStyle().Foreground(model.theme.HotAccent).Render(counter)
	}

	bodyHeight := max(model.height-4, 1)
	sections := []string{
		model.renderHeader(title, model.dirtyMarker()+counter),
		model.renderSeparator(),
		fitHeight("\n"+body, bodyHeight),
		model.renderSeparator(),
		model.renderSlideFooter(),
	}
	return strings.Join(sections, "\n")
}

// renderSlideFooter shows the previous/next controls, faint when
// disabled, followed by the status or help line.
func (model Model) renderSlideFooter() string {
	enabled := lipgloss.NewStyle().Foreground(model.theme.Accent)
	disabled := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	previous, next := enabled, enabled
	if model.navigator.AtFirst() {
		previous = disabled
	}
	if model.navigator.AtLast() {
		next = disabled
	}
	controls := previous.Render("‹ Prev") + "  " + next.Render("Next ›")
	help := helpLine(model.keys.Notes, model.keys.Navigator, model.keys.Fullscreen,
		model.keys.ArticleScreen, model.keys.EditorScreen, model.keys.Shortcuts, model.keys.Quit)
	return " " + controls + " " + model.renderStatus(help)
}

func indent(content string, columns int) string {
	padding := strings.Repeat(" ", columns)
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if line != "" {
			lines[index] = padding + line
		}
	}
	return strings.Join(lines, "\n")
}
