// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lectern/lib/clock"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/idgen"
	"github.com/bureau-foundation/lectern/lib/session"
)

// testDeck returns a three-slide deck covering notes, an image, an
// article-only block and code.
func testDeck() deck.Presentation {
	return deck.Presentation{
		Title:  "Terminal Talks",
		Author: "Ada",
		Date:   "2026-03-01",
		Slides: []*deck.Slide{
			{
				ID:           "s1",
				Title:        "Intro",
				SpeakerNotes: "Say hello",
				Blocks: []*deck.Block{
					{ID: "b1", Content: deck.Heading{Level: 1, Text: "Welcome"}},
				},
			},
			{
				ID:    "s2",
				Title: "Details",
				Blocks: []*deck.Block{
					{ID: "b2", Content: deck.Bullets{Items: []string{"one", "two"}}},
					{ID: "b3", Content: deck.Image{Src: "cat.png", Alt: "A cat", Caption: "Meow"}},
					{ID: "b4", ArticleOnly: true, Content: deck.Paragraph{Content: "Only in the article"}},
				},
			},
			{
				ID:    "s3",
				Title: "Closing",
				Blocks: []*deck.Block{
					{ID: "b5", Content: deck.Code{Language: "go", Source: "package main"}},
				},
			},
		},
	}
}

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, document deck.Presentation) (Model, *session.Session, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(testEpoch)
	deckSession := session.New(document, session.Config{IDs: idgen.Counter("id")})
	model := New(deckSession, Options{Dark: true, ExportDir: t.TempDir(), Clock: fake})
	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
	return model, deckSession, fake
}

func update(t *testing.T, model Model, message tea.Msg) Model {
	t.Helper()
	updated, _ := model.Update(message)
	return updated.(Model)
}

func updateCommand(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	return updated.(Model), command
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, character := range text {
		model = update(t, model, runes(string(character)))
	}
	return model
}

func view(model Model) string {
	return ansi.Strip(model.View())
}

func TestModelLoadingBeforeSize(t *testing.T) {
	model := New(session.New(testDeck(), session.Config{}), Options{})
	if got := model.View(); got != "Loading..." {
		t.Errorf("View before WindowSizeMsg = %q", got)
	}
}

func TestSlideNavigation(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{runes("l"), 2},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{tea.KeyMsg{Type: tea.KeyLeft}, 1},
		{runes("g"), 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{runes("G"), 2},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, 2},
		{tea.KeyMsg{Type: tea.KeyUp}, 1},
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
	}
	for index, step := range steps {
		model = update(t, model, step.key)
		if model.SlideIndex() != step.want {
			t.Fatalf("step %d (%s): index = %d, want %d", index, step.key, model.SlideIndex(), step.want)
		}
	}

	output := view(model)
	if !strings.Contains(output, "3 / 3") {
		t.Errorf("header should show 3 / 3:\n%s", output)
	}
	if !strings.Contains(output, "Terminal Talks") {
		t.Errorf("header should show the deck title:\n%s", output)
	}
	if !strings.Contains(output, "package main") {
		t.Errorf("slide body should show the code block:\n%s", output)
	}
}

func TestSlideViewHidesArticleOnlyBlocks(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})

	output := view(model)
	if strings.Contains(output, "Only in the article") {
		t.Errorf("slide view should hide article-only blocks:\n%s", output)
	}
	if !strings.Contains(output, "one") || !strings.Contains(output, "A cat") {
		t.Errorf("slide view should show bullets and the image placeholder:\n%s", output)
	}
}

func TestNotesPanel(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	if strings.Contains(view(model), "Say hello") {
		t.Fatal("notes should be hidden until toggled")
	}
	model = update(t, model, runes("N"))
	if !model.Panels().Notes {
		t.Fatal("N should open the notes panel")
	}
	if !strings.Contains(view(model), "Say hello") {
		t.Errorf("notes panel should show the speaker notes:\n%s", view(model))
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(view(model), "No notes for this slide.") {
		t.Errorf("slide without notes should show the placeholder:\n%s", view(model))
	}
}

func TestShortcutsSuppressNavigation(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("?"))
	if !model.Panels().Shortcuts {
		t.Fatal("? should open the shortcuts modal")
	}
	if !strings.Contains(view(model), "Keyboard shortcuts") {
		t.Errorf("shortcuts modal not rendered:\n%s", view(model))
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	if model.SlideIndex() != 0 {
		t.Errorf("navigation should be suppressed while the modal is open, index = %d", model.SlideIndex())
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.Panels().Shortcuts {
		t.Fatal("Esc should close the shortcuts modal")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	if model.SlideIndex() != 1 {
		t.Errorf("navigation should resume after closing, index = %d", model.SlideIndex())
	}
}

func TestFullscreenHidesChrome(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("f"))
	output := view(model)
	if strings.Contains(output, "1 / 3") {
		t.Errorf("fullscreen should hide the header:\n%s", output)
	}
	if !strings.Contains(output, "Welcome") {
		t.Errorf("fullscreen should still show the slide:\n%s", output)
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	if model.SlideIndex() != 1 {
		t.Errorf("fullscreen should not suppress navigation, index = %d", model.SlideIndex())
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.Panels().Fullscreen {
		t.Error("Esc should leave fullscreen")
	}
}

func TestEmptyDeck(t *testing.T) {
	model, _, _ := newTestModel(t, deck.Presentation{Title: "Empty"})

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	output := view(model)
	if !strings.Contains(output, "Press e to open the editor") {
		t.Errorf("empty deck should point to the editor:\n%s", output)
	}
	if !strings.Contains(output, "0 / 0") {
		t.Errorf("empty deck counter should read 0 / 0:\n%s", output)
	}
}

func TestSwipeNavigation(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	press := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}
	release := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
	}

	model = update(t, model, press(60, 10))
	model = update(t, model, release(40, 11))
	if model.SlideIndex() != 1 {
		t.Fatalf("left swipe should advance, index = %d", model.SlideIndex())
	}

	model = update(t, model, press(40, 10))
	model = update(t, model, release(60, 10))
	if model.SlideIndex() != 0 {
		t.Fatalf("right swipe should go back, index = %d", model.SlideIndex())
	}

	// Short drag is a tap, not a swipe.
	model = update(t, model, press(40, 10))
	model = update(t, model, release(43, 10))
	if model.SlideIndex() != 0 {
		t.Fatalf("short drag should not navigate, index = %d", model.SlideIndex())
	}

	// Mostly vertical drag is a scroll, not a swipe.
	model = update(t, model, press(40, 5))
	model = update(t, model, release(30, 30))
	if model.SlideIndex() != 0 {
		t.Fatalf("vertical drag should not navigate, index = %d", model.SlideIndex())
	}
}

func TestLightbox(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("i"))
	if model.Panels().Lightbox {
		t.Fatal("lightbox should not open on a slide without images")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	model = update(t, model, runes("i"))
	if !model.Panels().Lightbox {
		t.Fatal("i should open the lightbox on a slide with an image")
	}
	output := view(model)
	for _, want := range []string{"A cat", "cat.png", "Meow"} {
		if !strings.Contains(output, want) {
			t.Errorf("lightbox should show %q:\n%s", want, output)
		}
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	if model.SlideIndex() != 1 {
		t.Errorf("navigation should be suppressed under the lightbox, index = %d", model.SlideIndex())
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.Panels().Lightbox {
		t.Error("Esc should close the lightbox")
	}
}

func TestNavigatorDrawerFuzzyJump(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("o"))
	if !model.Panels().Navigator {
		t.Fatal("o should open the navigator")
	}
	if len(model.drawer.matches) != 3 {
		t.Fatalf("empty filter should list every slide, got %d", len(model.drawer.matches))
	}

	model = typeText(t, model, "clsg")
	if len(model.drawer.matches) != 1 || model.drawer.matches[0].index != 2 {
		t.Fatalf("filter clsg should match only Closing, got %+v", model.drawer.matches)
	}
	if !strings.Contains(view(model), "3. Closing") {
		t.Errorf("drawer should list the match:\n%s", view(model))
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.Panels().Navigator {
		t.Error("Enter should close the navigator")
	}
	if model.SlideIndex() != 2 {
		t.Errorf("Enter should jump to the match, index = %d", model.SlideIndex())
	}
}

func TestNavigatorDrawerEscapeKeepsSlide(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("o"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	if model.Panels().Navigator || model.SlideIndex() != 0 {
		t.Errorf("Esc should close without jumping: navigator=%v index=%d", model.Panels().Navigator, model.SlideIndex())
	}
}

func TestArticleScreen(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("a"))
	if model.Screen() != ScreenArticle {
		t.Fatalf("a should switch to the article, screen = %v", model.Screen())
	}
	output := view(model)
	for _, want := range []string{"Article · Terminal Talks", "Intro", "Say hello"} {
		if !strings.Contains(output, want) {
			t.Errorf("article should show %q:\n%s", want, output)
		}
	}
	if len(model.article.layout.SectionOffsets) != 3 {
		t.Fatalf("article should have 3 sections, got %v", model.article.layout.SectionOffsets)
	}

	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 8})
	model = update(t, model, runes("]"))
	if got, want := model.article.viewport.YOffset, model.article.layout.SectionOffsets[1]; got != want {
		t.Errorf("] should scroll to the next section: offset = %d, want %d", got, want)
	}
	model = update(t, model, runes("["))
	if got, want := model.article.viewport.YOffset, model.article.layout.SectionOffsets[0]; got != want {
		t.Errorf("[ should scroll back to the first section: offset = %d, want %d", got, want)
	}

	model = update(t, model, runes("G"))
	model = update(t, model, runes("s"))
	if model.Screen() != ScreenSlides {
		t.Fatalf("s should return to the slides, screen = %v", model.Screen())
	}
}

func TestArticleShowsArticleOnlyBlocks(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())
	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 200})
	model = update(t, model, runes("a"))

	if !strings.Contains(view(model), "Only in the article") {
		t.Errorf("article should include article-only blocks:\n%s", view(model))
	}
}

func TestArticleStartsAtCurrentSlide(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())
	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 8})
	model = update(t, model, runes("G"))
	model = update(t, model, runes("a"))

	want := model.article.layout.SectionOffsets[2]
	maxOffset := max(model.article.viewport.TotalLineCount()-model.article.viewport.Height, 0)
	if got := model.article.viewport.YOffset; got != min(want, maxOffset) {
		t.Errorf("article should open at the current slide's section: offset = %d, want %d", got, min(want, maxOffset))
	}
}

func TestEditorAddAndRemoveSlides(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())

	model = update(t, model, runes("e"))
	if model.Screen() != ScreenEditor {
		t.Fatalf("e should open the editor, screen = %v", model.Screen())
	}

	model = update(t, model, runes("+"))
	slides := deckSession.Presentation().Slides
	if len(slides) != 4 || slides[1].Title != deck.DefaultSlideTitle {
		t.Fatalf("+ should insert a slide after the current one, got %d slides", len(slides))
	}
	if model.SlideIndex() != 1 {
		t.Errorf("new slide should be selected, index = %d", model.SlideIndex())
	}

	model = update(t, model, runes("x"))
	if got := len(deckSession.Presentation().Slides); got != 3 {
		t.Fatalf("x should remove the slide, %d left", got)
	}
	if model.SlideIndex() != 0 {
		t.Errorf("removal should select the previous slide, index = %d", model.SlideIndex())
	}

	model = update(t, model, runes("x"))
	model = update(t, model, runes("x"))
	if got := len(deckSession.Presentation().Slides); got != 1 {
		t.Fatalf("expected one slide left, got %d", got)
	}
	model = update(t, model, runes("x"))
	if got := len(deckSession.Presentation().Slides); got != 1 {
		t.Fatalf("the last slide must not be removable, got %d slides", got)
	}
	if !model.Panels().Notice || !strings.Contains(view(model), "Cannot remove slide") {
		t.Fatalf("removing the last slide should raise a notice:\n%s", view(model))
	}

	// The notice blocks other keys until dismissed.
	model = update(t, model, runes("+"))
	if got := len(deckSession.Presentation().Slides); got != 1 {
		t.Fatalf("keys should be blocked by the notice, got %d slides", got)
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.Panels().Notice {
		t.Error("Enter should dismiss the notice")
	}
}

func TestEditorMoveSlide(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})

	model = update(t, model, runes("K"))
	if got := slideIDs(deckSession.Presentation()); got != "s2,s1,s3" {
		t.Fatalf("K should move the slide up, order = %s", got)
	}
	if model.SlideIndex() != 0 {
		t.Errorf("selection should follow the moved slide, index = %d", model.SlideIndex())
	}

	model = update(t, model, runes("K"))
	if got := slideIDs(deckSession.Presentation()); got != "s2,s1,s3" {
		t.Errorf("moving the first slide up should be a no-op, order = %s", got)
	}
	model = update(t, model, runes("J"))
	if got := slideIDs(deckSession.Presentation()); got != "s1,s2,s3" {
		t.Errorf("J should move the slide back down, order = %s", got)
	}
	if model.SlideIndex() != 1 {
		t.Errorf("selection should follow the moved slide, index = %d", model.SlideIndex())
	}
}

func slideIDs(presentation deck.Presentation) string {
	ids := make([]string, len(presentation.Slides))
	for index, slide := range presentation.Slides {
		ids[index] = slide.ID
	}
	return strings.Join(ids, ",")
}

func TestEditorSlideTitleForm(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))

	model = update(t, model, runes("t"))
	if model.editor.form == nil || !model.Panels().InputFocused {
		t.Fatal("t should open the title form with input focus")
	}
	model = typeText(t, model, "!q")
	if model.Screen() != ScreenEditor {
		t.Fatal("typing q into a field must not quit or switch screens")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.editor.form != nil {
		t.Fatal("Enter should close the form")
	}
	if got := deckSession.Presentation().Slides[0].Title; got != "Intro!q" {
		t.Errorf("title = %q, want Intro!q", got)
	}
	if !deckSession.Dirty() {
		t.Error("an edit should mark the document dirty")
	}
}

func TestEditorFormCancel(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, runes("t"))
	model = typeText(t, model, "zzz")
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})

	if model.editor.form != nil {
		t.Fatal("Esc should close the form")
	}
	if got := deckSession.Presentation().Slides[0].Title; got != "Intro" {
		t.Errorf("cancelled edit changed the title to %q", got)
	}
}

func TestEditorSpeakerNotesModal(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))

	model = update(t, model, runes("N"))
	if model.editor.modal == nil {
		t.Fatal("N should open the notes modal")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model = typeText(t, model, "and wave")
	model = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	if model.editor.modal != nil {
		t.Fatal("Ctrl+S should close the modal")
	}
	if got := deckSession.Presentation().Slides[0].SpeakerNotes; got != "Say hello\nand wave" {
		t.Errorf("notes = %q", got)
	}
}

func TestEditorBulletItems(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.editor.modal == nil || model.editor.modal.modal.Value() != "one\ntwo" {
		t.Fatal("Enter on a bullets block should open its items one per line")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model = typeText(t, model, "three")
	model = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})

	block := deckSession.Presentation().Slides[1].Blocks[0]
	bullets, ok := block.Content.(deck.Bullets)
	if !ok {
		t.Fatalf("block content = %T", block.Content)
	}
	if strings.Join(bullets.Items, "|") != "one|two|three" {
		t.Errorf("items = %q", bullets.Items)
	}
	if block.ID != "b2" {
		t.Errorf("editing must keep the block id, got %q", block.ID)
	}
}

func TestEditorImageForm(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.editor.form == nil || len(model.editor.form.fields) != 3 {
		t.Fatal("Enter on an image block should open the three-field form")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model = typeText(t, model, " sleeping")
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	image := deckSession.Presentation().Slides[1].Blocks[1].Content.(deck.Image)
	if image.Alt != "A cat sleeping" || image.Src != "cat.png" || image.Caption != "Meow" {
		t.Errorf("image = %+v", image)
	}
}

func TestEditorAddBlockMenu(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))

	model = update(t, model, runes("b"))
	if model.editor.dropdown == nil || len(model.editor.dropdown.Options) != 6 {
		t.Fatal("b should open the six-type block menu")
	}
	// Heading, Paragraph, Bullet List, Code Block.
	for range 3 {
		model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	blocks := deckSession.Presentation().Slides[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("expected a new block, got %d", len(blocks))
	}
	code, ok := blocks[1].Content.(deck.Code)
	if !ok || code.Language != deck.DefaultCodeLanguage || code.Source != "" {
		t.Fatalf("new block = %#v, want default code", blocks[1].Content)
	}
	if model.editor.focus != focusBlockList || model.editor.blockCursor != 1 {
		t.Errorf("new block should be selected: focus=%v cursor=%d", model.editor.focus, model.editor.blockCursor)
	}

	model = update(t, model, runes("c"))
	if model.editor.dropdown == nil || model.editor.dropdown.Field != dropdownLanguage {
		t.Fatal("c should open the language menu on a code block")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if got := deckSession.Presentation().Slides[0].Blocks[1].Content.(deck.Code).Language; got != deck.CodeLanguages[1] {
		t.Errorf("language = %q, want %q", got, deck.CodeLanguages[1])
	}
}

func TestEditorDropdownMouse(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))

	model = update(t, model, runes("b"))
	dropdown := model.editor.dropdown
	if dropdown == nil {
		t.Fatal("b should open the block menu")
	}
	// Hovering the fourth row highlights Code Block.
	model = update(t, model, tea.MouseMsg{X: dropdown.AnchorX + 1, Y: dropdown.AnchorY + 3, Action: tea.MouseActionMotion})
	if model.editor.dropdown.Cursor != 3 {
		t.Errorf("cursor after hover = %d, want 3", model.editor.dropdown.Cursor)
	}
	model = update(t, model, tea.MouseMsg{X: dropdown.AnchorX + 1, Y: dropdown.AnchorY + 3,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if model.editor.dropdown != nil {
		t.Error("click should close the menu")
	}
	blocks := deckSession.Presentation().Slides[0].Blocks
	if len(blocks) != 2 || blocks[1].Type() != deck.TypeCode {
		t.Fatalf("blocks after click = %d, want a new code block", len(blocks))
	}

	model = update(t, model, runes("b"))
	model = update(t, model, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if model.editor.dropdown != nil {
		t.Error("click outside should dismiss the menu")
	}
	if got := len(deckSession.Presentation().Slides[0].Blocks); got != 2 {
		t.Errorf("dismissing click added a block: %d blocks", got)
	}
}

func TestEditorHeadingLevelAndArticleOnly(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})

	model = update(t, model, runes("L"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	block := deckSession.Presentation().Slides[0].Blocks[0]
	if heading := block.Content.(deck.Heading); heading.Level != 2 || heading.Text != "Welcome" {
		t.Errorf("heading = %+v, want level 2", heading)
	}

	model = update(t, model, runes("v"))
	if !deckSession.Presentation().Slides[0].Blocks[0].ArticleOnly {
		t.Error("v should mark the block article-only")
	}
	if !strings.Contains(view(model), "(article only)") {
		t.Errorf("block list should flag article-only blocks:\n%s", view(model))
	}
}

func TestEditorRemoveAndMoveBlocks(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})

	model = update(t, model, runes("J"))
	if got := blockIDs(deckSession.Presentation().Slides[1]); got != "b3,b2,b4" {
		t.Fatalf("J should move the block down, order = %s", got)
	}
	if model.editor.blockCursor != 1 {
		t.Errorf("cursor should follow the block, got %d", model.editor.blockCursor)
	}

	for range 3 {
		model = update(t, model, runes("x"))
	}
	if got := len(deckSession.Presentation().Slides[1].Blocks); got != 0 {
		t.Fatalf("expected an empty block list, got %d", got)
	}
	if !strings.Contains(view(model), "No blocks") {
		t.Errorf("empty slide should prompt to add blocks:\n%s", view(model))
	}
}

func blockIDs(slide *deck.Slide) string {
	ids := make([]string, len(slide.Blocks))
	for index, block := range slide.Blocks {
		ids[index] = block.ID
	}
	return strings.Join(ids, ",")
}

func TestEditorExport(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, runes("t"))
	model = typeText(t, model, "!")
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if !deckSession.Dirty() {
		t.Fatal("expected unsaved changes")
	}

	model, command := updateCommand(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	if command == nil {
		t.Fatal("Ctrl+S should return an export command")
	}
	result := command()
	if _, ok := result.(exportResultMsg); !ok {
		t.Fatalf("export command returned %T", result)
	}
	model = update(t, model, result)

	if deckSession.Dirty() {
		t.Error("a successful export should mark the document saved")
	}
	path := filepath.Join(model.options.ExportDir, deck.ExportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	exported, err := deck.Import(data)
	if err != nil {
		t.Fatalf("re-importing export: %v", err)
	}
	if !deck.Equal(exported, deckSession.Presentation()) {
		t.Error("exported file does not match the document")
	}
	if !strings.Contains(view(model), "Exported") {
		t.Errorf("status bar should report the export:\n%s", view(model))
	}
}

func TestExportSnapshotPredatesLaterEdits(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))

	_, command := updateCommand(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	deckSession.UpdateSlide("s1", deck.SlidePatch{Title: deck.Ptr("Edited meanwhile")})
	model = update(t, model, command())

	if !deckSession.Dirty() {
		t.Error("edits made after the export snapshot should stay unsaved")
	}
}

func TestEditorImport(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})

	model = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlO})
	if model.editor.form == nil || model.editor.form.target.kind != targetImport {
		t.Fatal("Ctrl+O should open the import form")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})

	replacement := `{
		// comments are fine
		"title": "Replacement",
		"slides": [{"id": "r1", "title": "Only", "blocks": []}],
	}`
	path := filepath.Join(t.TempDir(), "replacement.json")
	if err := os.WriteFile(path, []byte(replacement), 0o644); err != nil {
		t.Fatal(err)
	}
	model = update(t, model, readImport(path)())

	if got := deckSession.Presentation().Title; got != "Replacement" {
		t.Fatalf("import should replace the document, title = %q", got)
	}
	if model.SlideIndex() != 0 || deckSession.Dirty() {
		t.Errorf("after import: index = %d dirty = %v", model.SlideIndex(), deckSession.Dirty())
	}
}

func TestEditorImportRejectsInvalidFormat(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("e"))
	before := deckSession.Presentation()

	model = update(t, model, importResultMsg{path: "bad.json", data: []byte(`{"slides": 3}`)})
	if !model.Panels().Notice || !strings.Contains(view(model), "Import failed") {
		t.Fatalf("invalid import should raise a notice:\n%s", view(model))
	}
	if !deck.Identical(before, deckSession.Presentation()) {
		t.Error("invalid import must leave the document untouched")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	model = update(t, model, importResultMsg{path: "missing.json", err: os.ErrNotExist})
	if !model.Panels().Notice {
		t.Error("unreadable import file should raise a notice")
	}
}

func TestReloadHighlightsChangedSlides(t *testing.T) {
	model, deckSession, fake := newTestModel(t, testDeck())

	changed := testDeck()
	changed.Slides[1].Title = "Details, revised"
	content, err := deck.Export(changed)
	if err != nil {
		t.Fatal(err)
	}

	model, command := updateCommand(t, model, ReloadMsg{Content: content, Source: "talk.json"})
	if got := deckSession.Presentation().Slides[1].Title; got != "Details, revised" {
		t.Fatalf("reload should replace the document, title = %q", got)
	}
	if deckSession.Dirty() {
		t.Error("a reloaded document matches the file and should not be dirty")
	}
	now := fake.Now()
	if model.heat.Heat("s2", now) <= 0 {
		t.Error("changed slide should be highlighted")
	}
	if model.heat.Heat("s1", now) != 0 {
		t.Error("unchanged slide should not be highlighted")
	}
	if command == nil || !model.tickRunning {
		t.Fatal("reload should start the highlight tick")
	}

	fake.Advance(4 * time.Second)
	model, command = updateCommand(t, model, heatTickMsg{})
	if command != nil || model.tickRunning {
		t.Error("tick should stop once the highlight decays")
	}
}

func TestReloadInvalidContentKeepsDocument(t *testing.T) {
	model, deckSession, _ := newTestModel(t, testDeck())
	before := deckSession.Presentation()

	model = update(t, model, ReloadMsg{Content: []byte(`{"slides": {}}`), Source: "talk.json"})
	if !deck.Identical(before, deckSession.Presentation()) {
		t.Error("invalid reload must keep the current document")
	}
	if !strings.Contains(view(model), "Reload failed") {
		t.Errorf("invalid reload should raise a notice:\n%s", view(model))
	}
}

func TestReloadShrinkClampsIndex(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())
	model = update(t, model, runes("G"))

	shorter := testDeck()
	shorter.Slides = shorter.Slides[:1]
	content, err := deck.Export(shorter)
	if err != nil {
		t.Fatal(err)
	}
	model = update(t, model, ReloadMsg{Content: content})
	if model.SlideIndex() != 0 {
		t.Errorf("index should clamp to the last slide, got %d", model.SlideIndex())
	}
	if !strings.Contains(view(model), "1 / 1") {
		t.Errorf("counter should read 1 / 1:\n%s", view(model))
	}
}

func TestStatusMessageFades(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())

	model = update(t, model, logRecordMsg{Summary: "reloaded (path=talk.json)"})
	if !strings.Contains(view(model), "reloaded (path=talk.json)") {
		t.Fatalf("status should show the log record:\n%s", view(model))
	}
	first := model.statusSequence

	model = update(t, model, logRecordMsg{Summary: "second message"})
	model = update(t, model, statusFadeMsg{sequence: first})
	if !strings.Contains(view(model), "second message") {
		t.Fatal("a stale fade must not clear a newer message")
	}

	model = update(t, model, statusFadeMsg{sequence: model.statusSequence})
	if strings.Contains(view(model), "second message") {
		t.Error("fade should clear the status")
	}
}

func TestQuit(t *testing.T) {
	model, _, _ := newTestModel(t, testDeck())
	_, command := updateCommand(t, model, runes("q"))
	if command == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestParseScreen(t *testing.T) {
	for _, screen := range []Screen{ScreenSlides, ScreenArticle, ScreenEditor} {
		parsed, err := ParseScreen(screen.String())
		if err != nil || parsed != screen {
			t.Errorf("ParseScreen(%q) = %v, %v", screen.String(), parsed, err)
		}
	}
	if _, err := ParseScreen("deck"); err == nil {
		t.Error("ParseScreen should reject unknown names")
	}
}

func TestBlockSummary(t *testing.T) {
	tests := []struct {
		block *deck.Block
		want  string
	}{
		{&deck.Block{Content: deck.Heading{Level: 2, Text: "Hi"}}, "[H2] Hi"},
		{&deck.Block{Content: deck.Paragraph{Content: "first\nsecond"}}, "[Paragraph] first"},
		{&deck.Block{Content: deck.Bullets{Items: []string{"a", "b"}}}, "[Bullet List] 2 items: a"},
		{&deck.Block{Content: deck.Code{Language: "go"}}, "[Code go] (empty)"},
		{&deck.Block{Content: deck.Embed{URL: "https://example.com"}}, "[Embed] https://example.com"},
		{&deck.Block{ArticleOnly: true, Content: deck.Paragraph{Content: "x"}}, "[Paragraph] x  (article only)"},
		{&deck.Block{Content: deck.Unknown{Tag: "video"}}, "[unknown video] (empty)"},
	}
	for _, test := range tests {
		if got := blockSummary(test.block); got != test.want {
			t.Errorf("blockSummary = %q, want %q", got, test.want)
		}
	}
}

func TestSplitItems(t *testing.T) {
	if got := splitItems(""); len(got) != 0 || got == nil {
		t.Errorf("splitItems(\"\") = %#v, want empty non-nil", got)
	}
	if got := strings.Join(splitItems("a\n\nb\n\n"), "|"); got != "a||b" {
		t.Errorf("splitItems = %q", got)
	}
}
