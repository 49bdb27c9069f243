// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/render"
	"github.com/bureau-foundation/lectern/lib/session"
	"github.com/bureau-foundation/lectern/lib/tui"
)

// Editor layout.
const (
	sidebarMaxWidth = 28
	sidebarMinWidth = 16

	// previewMinWidth is the terminal width below which the preview
	// pane is hidden even when toggled on.
	previewMinWidth = 90

	// blockListTop is the row of the first block within the detail
	// column: title, notes, blank, BLOCKS header.
	blockListTop = 4

	// bodyTop is the first screen row below the header and separator.
	bodyTop = 2
)

// Dropdown fields.
const (
	dropdownAddBlock = "add-block"
	dropdownLevel    = "level"
	dropdownLanguage = "language"
)

// editorFocus is the editor pane receiving list keys.
type editorFocus int

const (
	focusSlideList editorFocus = iota
	focusBlockList
)

// editorState holds the editor screen. The selected slide is the
// shared navigator index, so the slide view opens where editing left
// off.
type editorState struct {
	focus       editorFocus
	blockCursor int
	preview     bool

	// At most one of these is open at a time.
	form     *formState
	modal    *modalState
	dropdown *tui.DropdownOverlay
}

// modalState is an open multi-line editor and what it writes to.
type modalState struct {
	modal  tui.TextModal
	target editTarget
	field  string
}

func (model *Model) handleEditorKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Import):
		path := model.session.Source()
		if path == "" {
			path = filepath.Join(model.options.ExportDir, deck.ExportFileName)
		}
		form, command := newForm("Import slides", editTarget{kind: targetImport},
			newFormField("Path", "path", path))
		model.editor.form = form
		return command
	case key.Matches(message, model.keys.Export):
		return model.exportCommand()
	case key.Matches(message, model.keys.Preview):
		model.editor.preview = !model.editor.preview
		return nil
	case key.Matches(message, model.keys.AddSlide):
		index := model.navigator.Index()
		model.session.AddSlide(deck.After(index))
		model.navigator = model.navigator.Resize(len(model.session.Presentation().Slides)).JumpTo(index + 1)
		model.editor.focus = focusSlideList
		model.editor.blockCursor = 0
		return nil
	case key.Matches(message, model.keys.FocusNext):
		if model.editor.focus == focusSlideList {
			model.editor.focus = focusBlockList
		} else {
			model.editor.focus = focusSlideList
		}
		return nil
	}

	slide := model.currentSlide()
	if slide == nil {
		return nil
	}
	switch {
	case key.Matches(message, model.keys.EditTitle):
		form, command := newForm("Slide title", editTarget{kind: targetSlideTitle, slideID: slide.ID},
			newFormField("Title", "title", slide.Title))
		model.editor.form = form
		return command
	case key.Matches(message, model.keys.EditNotes):
		model.openModal("Speaker notes (Markdown)", slide.SpeakerNotes,
			editTarget{kind: targetSpeakerNotes, slideID: slide.ID}, "notes")
		return nil
	case key.Matches(message, model.keys.AddBlock):
		options := make([]tui.DropdownOption, 0, len(deck.BlockTypes))
		for _, blockType := range deck.BlockTypes {
			options = append(options, tui.DropdownOption{Label: blockType.Label(), Value: string(blockType)})
		}
		model.openDropdown(dropdownAddBlock, options, "")
		return nil
	}

	if model.editor.focus == focusSlideList {
		return model.handleSlideListKeys(message, slide)
	}
	return model.handleBlockListKeys(message, slide)
}

func (model *Model) handleSlideListKeys(message tea.KeyMsg, slide *deck.Slide) tea.Cmd {
	index := model.navigator.Index()
	switch {
	case key.Matches(message, model.keys.Up):
		model.navigator = model.navigator.Prev()
		model.editor.blockCursor = 0
	case key.Matches(message, model.keys.Down):
		model.navigator = model.navigator.Next()
		model.editor.blockCursor = 0
	case key.Matches(message, model.keys.MoveUp):
		model.session.MoveSlide(slide.ID, deck.Up)
		model.navigator = model.navigator.JumpTo(index - 1)
	case key.Matches(message, model.keys.MoveDown):
		model.session.MoveSlide(slide.ID, deck.Down)
		model.navigator = model.navigator.JumpTo(index + 1)
	case key.Matches(message, model.keys.Remove):
		if err := model.session.RemoveSlide(slide.ID); err != nil {
			if errors.Is(err, session.ErrLastSlide) {
				model.showNotice("Cannot remove slide", "A presentation needs at least one slide.", true)
			} else {
				model.showNotice("Cannot remove slide", err.Error(), true)
			}
			return nil
		}
		model.navigator = model.navigator.Resize(len(model.session.Presentation().Slides)).JumpTo(index - 1)
		model.editor.blockCursor = 0
	case key.Matches(message, model.keys.Select):
		model.editor.focus = focusBlockList
	}
	return nil
}

func (model *Model) handleBlockListKeys(message tea.KeyMsg, slide *deck.Slide) tea.Cmd {
	cursor := min(model.editor.blockCursor, max(len(slide.Blocks)-1, 0))
	model.editor.blockCursor = cursor
	switch {
	case key.Matches(message, model.keys.Up):
		model.editor.blockCursor = max(cursor-1, 0)
		return nil
	case key.Matches(message, model.keys.Down):
		model.editor.blockCursor = min(cursor+1, max(len(slide.Blocks)-1, 0))
		return nil
	}
	if len(slide.Blocks) == 0 {
		return nil
	}
	block := slide.Blocks[cursor]
	switch {
	case key.Matches(message, model.keys.MoveUp):
		model.session.MoveBlock(slide.ID, block.ID, deck.Up)
		model.editor.blockCursor = max(cursor-1, 0)
	case key.Matches(message, model.keys.MoveDown):
		model.session.MoveBlock(slide.ID, block.ID, deck.Down)
		model.editor.blockCursor = min(cursor+1, len(slide.Blocks)-1)
	case key.Matches(message, model.keys.Remove):
		model.session.RemoveBlock(slide.ID, block.ID)
		model.editor.blockCursor = max(cursor-1, 0)
	case key.Matches(message, model.keys.ArticleOnly):
		model.session.UpdateBlock(slide.ID, block.ID, deck.BlockPatch{ArticleOnly: deck.Ptr(!block.ArticleOnly)})
	case key.Matches(message, model.keys.Level):
		if heading, ok := block.Content.(deck.Heading); ok {
			options := []tui.DropdownOption{
				{Label: "Level 1", Value: "1"},
				{Label: "Level 2", Value: "2"},
				{Label: "Level 3", Value: "3"},
			}
			model.openDropdown(dropdownLevel, options, strconv.Itoa(heading.Level))
		}
	case key.Matches(message, model.keys.Language):
		if code, ok := block.Content.(deck.Code); ok {
			languages := deck.CodeLanguages
			if !slices.Contains(languages, code.Language) && code.Language != "" {
				languages = append(slices.Clone(languages), code.Language)
			}
			options := make([]tui.DropdownOption, 0, len(languages))
			for _, language := range languages {
				options = append(options, tui.DropdownOption{Label: language, Value: language})
			}
			model.openDropdown(dropdownLanguage, options, code.Language)
		}
	case key.Matches(message, model.keys.Select):
		return model.editBlock(slide, block)
	}
	return nil
}

// editBlock opens the form or text modal for the block's variant.
func (model *Model) editBlock(slide *deck.Slide, block *deck.Block) tea.Cmd {
	target := editTarget{kind: targetBlock, slideID: slide.ID, blockID: block.ID}
	var form *formState
	var command tea.Cmd
	switch content := block.Content.(type) {
	case deck.Heading:
		form, command = newForm(fmt.Sprintf("Heading (level %d)", content.Level), target,
			newFormField("Text", "text", content.Text))
	case deck.Image:
		form, command = newForm("Image", target,
			newFormField("Source", "src", content.Src),
			newFormField("Alt text", "alt", content.Alt),
			newFormField("Caption", "caption", content.Caption))
	case deck.Embed:
		form, command = newForm("Embed", target, newFormField("URL", "url", content.URL))
	case deck.Paragraph:
		model.openModal("Paragraph", content.Content, target, "content")
	case deck.Bullets:
		model.openModal("Bullet items (one per line)", strings.Join(content.Items, "\n"), target, "items")
	case deck.Code:
		model.openModal("Code ("+content.Language+")", content.Source, target, "code")
	default:
		return model.setStatus(fmt.Sprintf("%q blocks cannot be edited here", block.Type()), slog.LevelInfo)
	}
	if form != nil {
		model.editor.form = form
	}
	return command
}

func (model *Model) openModal(title, value string, target editTarget, field string) {
	model.editor.modal = &modalState{
		modal:  tui.NewTextModal(title, value, model.theme.Theme),
		target: target,
		field:  field,
	}
}

func (model *Model) handleModalKeys(message tea.KeyMsg) tea.Cmd {
	state := model.editor.modal
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.editor.modal = nil
	case key.Matches(message, model.keys.Save):
		model.editor.modal = nil
		model.applyText(state.target, state.field, state.modal.Value())
	default:
		state.modal.Update(message)
	}
	return nil
}

// applyText writes a saved text modal value into the document.
func (model *Model) applyText(target editTarget, field, value string) {
	switch field {
	case "notes":
		model.session.UpdateSlide(target.slideID, deck.SlidePatch{SpeakerNotes: deck.Ptr(value)})
	case "content":
		model.session.UpdateBlock(target.slideID, target.blockID, deck.BlockPatch{Content: deck.Ptr(value)})
	case "code":
		model.session.UpdateBlock(target.slideID, target.blockID, deck.BlockPatch{Source: deck.Ptr(value)})
	case "items":
		model.session.UpdateBlock(target.slideID, target.blockID, deck.BlockPatch{Items: deck.Ptr(splitItems(value))})
	}
}

// splitItems turns one item per line into a bullet list. Trailing
// blank lines are dropped; blank lines between items are kept as
// empty items.
func splitItems(value string) []string {
	value = strings.TrimRight(value, "\n")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, "\n")
}

func (model *Model) submitForm(form *formState) tea.Cmd {
	values := form.values()
	target := form.target
	switch target.kind {
	case targetSlideTitle:
		model.session.UpdateSlide(target.slideID, deck.SlidePatch{Title: deck.Ptr(values["title"])})
	case targetBlock:
		var patch deck.BlockPatch
		for name, value := range values {
			switch name {
			case "text":
				patch.Text = deck.Ptr(value)
			case "src":
				patch.Src = deck.Ptr(value)
			case "alt":
				patch.Alt = deck.Ptr(value)
			case "caption":
				patch.Caption = deck.Ptr(value)
			case "url":
				patch.URL = deck.Ptr(value)
			}
		}
		model.session.UpdateBlock(target.slideID, target.blockID, patch)
	case targetImport:
		path := strings.TrimSpace(values["path"])
		if path == "" {
			return nil
		}
		return readImport(path)
	}
	return nil
}

// openDropdown opens a menu anchored beside the selected block.
func (model *Model) openDropdown(field string, options []tui.DropdownOption, current string) {
	dropdown := tui.NewDropdown(field, options, current)
	dropdown.AnchorX = model.sidebarWidth() + 3
	dropdown.AnchorY = min(bodyTop+blockListTop+model.editor.blockCursor+1, max(model.height-len(options)-3, 0))
	model.editor.dropdown = &dropdown
}

func (model *Model) handleDropdownKeys(message tea.KeyMsg) tea.Cmd {
	dropdown := model.editor.dropdown
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.editor.dropdown = nil
	case key.Matches(message, model.keys.Up):
		dropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		dropdown.MoveDown()
	case message.Type == tea.KeyEnter:
		model.editor.dropdown = nil
		model.applyDropdown(dropdown.Field, dropdown.Selected().Value)
	}
	return nil
}

// handleEditorMouse lets an open dropdown follow the pointer and be
// picked with a click. A click outside the menu dismisses it.
func (model *Model) handleEditorMouse(message tea.MouseMsg) {
	dropdown := model.editor.dropdown
	if dropdown == nil {
		return
	}
	inside := dropdown.Contains(message.X, message.Y)
	switch {
	case message.Action == tea.MouseActionMotion && inside:
		dropdown.Cursor = dropdown.OptionAtY(message.Y)
	case message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft:
		model.editor.dropdown = nil
		if inside {
			model.applyDropdown(dropdown.Field, dropdown.Options[dropdown.OptionAtY(message.Y)].Value)
		}
	}
}

func (model *Model) applyDropdown(field, value string) {
	slide := model.currentSlide()
	if slide == nil {
		return
	}
	if field == dropdownAddBlock {
		at := deck.After(model.editor.blockCursor)
		if len(slide.Blocks) == 0 {
			at = deck.End
		}
		blockID := model.session.AddBlock(slide.ID, deck.BlockType(value), at)
		if updated := model.currentSlide(); updated != nil && blockID != "" {
			_, model.editor.blockCursor = updated.BlockByID(blockID)
			model.editor.focus = focusBlockList
		}
		return
	}

	if model.editor.blockCursor >= len(slide.Blocks) {
		return
	}
	block := slide.Blocks[model.editor.blockCursor]
	switch field {
	case dropdownLevel:
		level, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		model.session.UpdateBlock(slide.ID, block.ID, deck.BlockPatch{Level: deck.Ptr(level)})
	case dropdownLanguage:
		model.session.UpdateBlock(slide.ID, block.ID, deck.BlockPatch{Language: deck.Ptr(value)})
	}
}

func readImport(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return importResultMsg{path: path, data: data, err: err}
	}
}

func (model *Model) handleImportResult(message importResultMsg) tea.Cmd {
	if message.err != nil {
		model.showNotice("Import failed", fmt.Sprintf("Could not read %s: %v", message.path, message.err), true)
		return nil
	}
	if err := model.session.Import(message.data, message.path); err != nil {
		model.showNotice("Import failed", fmt.Sprintf("%s: %v\nThe current deck is unchanged.", message.path, err), true)
		return nil
	}
	model.session.MarkSaved(model.session.Fingerprint())
	count := len(model.session.Presentation().Slides)
	model.navigator = model.navigator.Resize(count).First()
	model.editor.blockCursor = 0
	model.logger.Debug("imported deck", "path", message.path, "slides", count)
	return model.setStatus(fmt.Sprintf("Imported %d slides from %s", count, message.path), slog.LevelInfo)
}

// exportCommand writes a snapshot of the document in the background.
// The document is never mutated in place, so the snapshot is safe to
// read from the command goroutine.
func (model *Model) exportCommand() tea.Cmd {
	document := model.session.Presentation()
	directory := model.options.ExportDir
	return func() tea.Msg {
		path, err := session.WriteExport(directory, document)
		return exportResultMsg{path: path, fingerprint: session.FingerprintOf(document), err: err}
	}
}

func (model *Model) handleExportResult(message exportResultMsg) tea.Cmd {
	if message.err != nil {
		model.showNotice("Export failed", message.err.Error(), true)
		return nil
	}
	model.session.MarkSaved(message.fingerprint)
	model.logger.Debug("exported deck", "path", message.path, "fingerprint", message.fingerprint.String())
	return model.setStatus("Exported "+message.path, slog.LevelInfo)
}

func (model Model) sidebarWidth() int {
	return max(min(sidebarMaxWidth, model.width/4), sidebarMinWidth)
}

func (model Model) viewEditor() string {
	presentation := model.session.Presentation()
	bodyHeight := max(model.height-4, 1)
	sidebarWidth := model.sidebarWidth()
	remaining := max(model.width-sidebarWidth-1, 1)
	detailWidth := remaining
	previewWidth := 0
	if model.editor.preview && model.width >= previewMinWidth {
		previewWidth = remaining / 2
		detailWidth = remaining - previewWidth - 1
	}

	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.TrimSuffix(strings.Repeat("│\n", bodyHeight), "\n"))
	columns := []string{
		column(model.renderSlideList(sidebarWidth, bodyHeight), sidebarWidth, bodyHeight),
		divider,
		column(model.renderSlideDetail(detailWidth, bodyHeight), detailWidth, bodyHeight),
	}
	if previewWidth > 0 {
		columns = append(columns, divider, column(model.renderPreview(previewWidth), previewWidth, bodyHeight))
	}

	title := presentation.Title
	if title == "" {
		title = "Untitled presentation"
	}
	position := fmt.Sprintf("slide %d / %d", min(model.navigator.Index()+1, model.navigator.Count()), model.navigator.Count())
	help := helpLine(model.keys.FocusNext, model.keys.Select, model.keys.AddSlide, model.keys.AddBlock,
		model.keys.Remove, model.keys.EditTitle, model.keys.EditNotes, model.keys.Export, model.keys.Shortcuts)

	sections := []string{
		model.renderHeader("Editor · "+title, model.dirtyMarker()+position),
		model.renderSeparator(),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		model.renderSeparator(),
		model.renderStatus(help),
	}
	return strings.Join(sections, "\n")
}

// column cuts and pads content to a width by height block.
func column(content string, width, height int) string {
	lines := strings.Split(fitHeight(content, height), "\n")
	for index, line := range lines {
		line = ansi.Truncate(line, width, "…")
		lines[index] = line + strings.Repeat(" ", max(width-ansi.StringWidth(line), 0))
	}
	return strings.Join(lines, "\n")
}

func (model Model) paneHeader(label string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText).Bold(true)
	if focused {
		style = style.Foreground(model.theme.Accent)
	}
	return style.Render(label)
}

func (model Model) renderSlideList(width, height int) string {
	focused := model.editor.focus == focusSlideList
	lines := []string{model.paneHeader(" SLIDES", focused)}
	slides := model.session.Presentation().Slides
	if len(slides) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" No slides. Press + to add."))
		return strings.Join(lines, "\n")
	}

	visible := max(height-1, 1)
	current := model.navigator.Index()
	offset := max(current-visible+1, 0)
	now := model.clock.Now()
	for index := offset; index < len(slides) && index < offset+visible; index++ {
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if model.heat.Heat(slides[index].ID, now) > 0 {
			style = style.Foreground(model.theme.HotAccent)
		}
		label := ansi.Truncate(" "+slideLabel(index, slides[index].Title), width, "…")
		if index == current {
			label += strings.Repeat(" ", max(width-ansi.StringWidth(label), 0))
			if focused {
				style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
			} else {
				style = style.Bold(true)
			}
		}
		lines = append(lines, style.Render(label))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderSlideDetail(width, height int) string {
	slide := model.currentSlide()
	if slide == nil {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" Select or add a slide.")
	}
	label := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	notes := firstLine(slide.SpeakerNotes)
	if notes == "" {
		notes = label.Render("(none)")
	}
	focused := model.editor.focus == focusBlockList
	lines := []string{
		" " + label.Render("Title ") + " " + slide.Title,
		" " + label.Render("Notes ") + " " + notes,
		"",
		model.paneHeader(" BLOCKS", focused),
	}
	if len(slide.Blocks) == 0 {
		lines = append(lines, label.Render(" No blocks. Press b to add one."))
		return strings.Join(lines, "\n")
	}

	visible := max(height-blockListTop, 1)
	cursor := min(model.editor.blockCursor, len(slide.Blocks)-1)
	offset := max(cursor-visible+1, 0)
	for index := offset; index < len(slide.Blocks) && index < offset+visible; index++ {
		summary := ansi.Truncate(" "+blockSummary(slide.Blocks[index]), width, "…")
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if slide.Blocks[index].ArticleOnly {
			style = style.Foreground(model.theme.FaintText)
		}
		if index == cursor && focused {
			summary += strings.Repeat(" ", max(width-ansi.StringWidth(summary), 0))
			style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
		}
		lines = append(lines, style.Render(summary))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderPreview(width int) string {
	header := model.paneHeader(" PREVIEW", false)
	slide := model.currentSlide()
	if slide == nil {
		return header
	}
	body := render.Slide(slide, model.renderOptions(max(width-2, 1)), render.ViewSlides)
	return header + "\n\n" + indent(body, 1)
}

// blockSummary is the one-line description of a block in the editor
// list: a type tag and the first line of its main text.
func blockSummary(block *deck.Block) string {
	tag := block.Type().Label()
	var detail string
	switch content := block.Content.(type) {
	case deck.Heading:
		tag = fmt.Sprintf("H%d", content.Level)
		detail = content.Text
	case deck.Paragraph:
		detail = content.Content
	case deck.Bullets:
		detail = fmt.Sprintf("%d items", len(content.Items))
		if len(content.Items) > 0 && content.Items[0] != "" {
			detail += ": " + content.Items[0]
		}
	case deck.Code:
		tag = "Code " + content.Language
		detail = content.Source
	case deck.Image:
		detail = content.Src
		if content.Alt != "" {
			detail = content.Alt + " " + content.Src
		}
	case deck.Embed:
		detail = content.URL
	case deck.Unknown:
		tag = "unknown " + string(content.Tag)
	}
	detail = firstLine(detail)
	if detail == "" {
		detail = "(empty)"
	}
	summary := "[" + tag + "] " + detail
	if block.ArticleOnly {
		summary += "  (article only)"
	}
	return summary
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}
