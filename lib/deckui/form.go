// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lectern/lib/tui"
)

// formWidth is the inner width of the form overlay.
const formWidth = 60

// targetKind names what an open form or text modal edits.
type targetKind int

const (
	targetSlideTitle targetKind = iota
	targetSpeakerNotes
	targetBlock
	targetImport
)

// editTarget is the element an edit applies to. Ids, not indexes, so
// that a target gone stale by the time the edit is saved is a no-op.
type editTarget struct {
	kind    targetKind
	slideID string
	blockID string
}

// formField is one labelled single-line input. name is the key the
// submit handler reads the value by.
type formField struct {
	label string
	name  string
	input textinput.Model
}

func newFormField(label, name, value string) formField {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 2048
	input.SetValue(value)
	input.CursorEnd()
	return formField{label: label, name: name, input: input}
}

// formState is the overlay for single-line fields: slide titles,
// heading text, image and embed fields, the import path.
type formState struct {
	title  string
	fields []formField
	focus  int
	target editTarget
}

func newForm(title string, target editTarget, fields ...formField) (*formState, tea.Cmd) {
	form := &formState{title: title, fields: fields, target: target}
	return form, form.fields[0].input.Focus()
}

// cycle moves focus by delta fields, wrapping.
func (form *formState) cycle(delta int) tea.Cmd {
	form.fields[form.focus].input.Blur()
	form.focus = (form.focus + delta + len(form.fields)) % len(form.fields)
	return form.fields[form.focus].input.Focus()
}

func (form *formState) values() map[string]string {
	values := make(map[string]string, len(form.fields))
	for _, field := range form.fields {
		values[field.name] = field.input.Value()
	}
	return values
}

func (model *Model) handleFormKeys(message tea.KeyMsg) tea.Cmd {
	form := model.editor.form
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.editor.form = nil
		return nil
	case message.Type == tea.KeyEnter:
		model.editor.form = nil
		return model.submitForm(form)
	case message.Type == tea.KeyTab || message.Type == tea.KeyDown:
		return form.cycle(1)
	case message.Type == tea.KeyShiftTab || message.Type == tea.KeyUp:
		return form.cycle(-1)
	}
	var command tea.Cmd
	form.fields[form.focus].input, command = form.fields[form.focus].input.Update(message)
	return command
}

func (model Model) renderForm() ([]string, int, int) {
	form := model.editor.form
	labelWidth := 0
	for _, field := range form.fields {
		labelWidth = max(labelWidth, ansi.StringWidth(field.label))
	}
	width := min(formWidth, max(model.width-6, 10))
	lines := make([]string, 0, len(form.fields))
	for index, field := range form.fields {
		marker := "  "
		if index == form.focus {
			marker = "▸ "
		}
		label := field.label + strings.Repeat(" ", labelWidth-ansi.StringWidth(field.label))
		lines = append(lines, ansi.Truncate(marker+label+"  "+field.input.View(), width, "…"))
	}
	footer := "Enter apply  Esc cancel"
	if len(form.fields) > 1 {
		footer = "Tab next field  " + footer
	}
	panel := tui.Panel{Title: form.title, Lines: lines, Footer: footer, Width: width}
	return panel.Render(model.theme.Theme, model.width, model.height)
}
