// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lectern/lib/clock"
	"github.com/bureau-foundation/lectern/lib/deck"
	"github.com/bureau-foundation/lectern/lib/render"
	"github.com/bureau-foundation/lectern/lib/session"
	"github.com/bureau-foundation/lectern/lib/tui"
	"github.com/bureau-foundation/lectern/lib/viewstate"
)

// Screen identifies one of the three top-level screens.
type Screen int

const (
	// ScreenSlides shows one slide at a time.
	ScreenSlides Screen = iota
	// ScreenArticle shows the whole deck as a scrolling document.
	ScreenArticle
	// ScreenEditor edits slides and blocks.
	ScreenEditor
)

func (screen Screen) String() string {
	switch screen {
	case ScreenArticle:
		return "article"
	case ScreenEditor:
		return "editor"
	default:
		return "slides"
	}
}

// ParseScreen accepts "slides", "article" or "editor".
func ParseScreen(name string) (Screen, error) {
	switch name {
	case "slides":
		return ScreenSlides, nil
	case "article":
		return ScreenArticle, nil
	case "editor":
		return ScreenEditor, nil
	default:
		return ScreenSlides, fmt.Errorf("unknown screen %q (want slides, article or editor)", name)
	}
}

// Options configures a Model.
type Options struct {
	// Dark selects the dark palette.
	Dark bool

	// CodeStyle overrides the palette's chroma style.
	CodeStyle string

	// Screen is the screen shown at startup.
	Screen Screen

	// ExportDir is where Ctrl+S writes slides.json. Defaults to ".".
	ExportDir string

	// SwipeThreshold is the drag distance, in cells, that counts as a
	// swipe. Defaults to viewstate.DefaultSwipeThreshold.
	SwipeThreshold int

	// Clock drives the reload highlight. Defaults to the real clock.
	Clock clock.Clock

	// Logger receives debug records. Defaults to a discarding logger.
	Logger *slog.Logger
}

// ReloadMsg delivers new file content from the deck watcher. The
// content is imported with the same rules as a manual import; invalid
// content leaves the document untouched and raises a notice.
type ReloadMsg struct {
	Content []byte
	Source  string
}

// importResultMsg carries the bytes read for an editor import.
type importResultMsg struct {
	path string
	data []byte
	err  error
}

// exportResultMsg reports a finished export. fingerprint is the
// snapshot that was written, which may predate later edits.
type exportResultMsg struct {
	path        string
	fingerprint session.Fingerprint
	err         error
}

// heatTickMsg triggers a re-render while reloaded slides are still
// highlighted.
type heatTickMsg struct{}

// notice is a blocking message dismissed with Enter or Esc.
type notice struct {
	title   string
	body    string
	failure bool
}

// Model is the top-level bubbletea model. It is a value type; the
// document lives in the shared *session.Session and the heat tracker
// is shared by pointer, so copies made by Update see the same data.
type Model struct {
	session *session.Session
	options Options
	theme   render.Theme
	keys    KeyMap
	clock   clock.Clock
	logger  *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	screen    Screen
	navigator viewstate.Navigator
	panels    viewstate.Panels
	swipe     viewstate.SwipeTracker

	// lightboxIndex selects among the current slide's images while
	// the lightbox is open.
	lightboxIndex int

	drawer  drawerState
	article articleState
	editor  editorState

	notice *notice

	// Status bar message, replaced by the help line once it fades.
	status         string
	statusLevel    slog.Level
	statusSequence uint64

	// Reload highlight animation.
	heat        *tui.HeatTracker
	tickRunning bool
}

// New creates a Model over session.
func New(session *session.Session, options Options) Model {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.ExportDir == "" {
		options.ExportDir = "."
	}
	if options.SwipeThreshold <= 0 {
		options.SwipeThreshold = viewstate.DefaultSwipeThreshold
	}
	theme := render.ThemeFor(options.Dark)
	if options.CodeStyle != "" {
		theme.CodeStyle = options.CodeStyle
	}
	model := Model{
		session:   session,
		options:   options,
		theme:     theme,
		keys:      DefaultKeyMap,
		clock:     options.Clock,
		logger:    options.Logger,
		screen:    options.Screen,
		navigator: viewstate.NewNavigator(len(session.Presentation().Slides)),
		swipe:     viewstate.NewSwipeTracker(options.SwipeThreshold),
		article:   newArticleState(),
		heat:      tui.NewHeatTracker(),
	}
	model.editor.preview = true
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Screen returns the active screen.
func (model Model) Screen() Screen {
	return model.screen
}

// SlideIndex returns the current slide index.
func (model Model) SlideIndex() int {
	return model.navigator.Index()
}

// Panels returns the slide view toggles.
func (model Model) Panels() viewstate.Panels {
	return model.panels
}

// renderOptions returns the renderer options for a pane width.
func (model Model) renderOptions(width int) render.Options {
	return render.Options{Dark: model.options.Dark, Width: width, CodeStyle: model.theme.CodeStyle}
}

// Update implements tea.Model. Keyboard input is routed by precedence:
// notice, text modal, dropdown, form, navigator drawer, shortcut and
// lightbox panels, global keys, then the active screen.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var command tea.Cmd
	switch message := message.(type) {
	case tea.KeyMsg:
		command = model.handleKey(message)

	case tea.MouseMsg:
		command = model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case ReloadMsg:
		model.handleReload(message)
		command = model.startHeatTick()

	case importResultMsg:
		command = model.handleImportResult(message)

	case exportResultMsg:
		command = model.handleExportResult(message)

	case logRecordMsg:
		command = model.setStatus(message.Summary, message.Level)

	case statusFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}

	case heatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			command = scheduleHeatTick()
		} else {
			model.tickRunning = false
		}
	}

	model.navigator = model.navigator.Resize(len(model.session.Presentation().Slides))
	model.panels.InputFocused = model.editor.modal != nil || model.editor.form != nil
	model.syncArticle()
	return model, command
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	if message.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if model.notice != nil {
		switch {
		case message.Type == tea.KeyEnter, key.Matches(message, model.keys.Cancel), message.Type == tea.KeySpace:
			model.notice = nil
			model.panels.Notice = false
		}
		return nil
	}
	if model.editor.modal != nil {
		return model.handleModalKeys(message)
	}
	if model.editor.dropdown != nil {
		return model.handleDropdownKeys(message)
	}
	if model.editor.form != nil {
		return model.handleFormKeys(message)
	}
	if model.panels.Navigator {
		return model.handleDrawerKeys(message)
	}
	if model.panels.Shortcuts {
		if key.Matches(message, model.keys.Cancel, model.keys.Shortcuts, model.keys.Quit) {
			model.panels.Shortcuts = false
		}
		return nil
	}
	if model.panels.Lightbox {
		return model.handleLightboxKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Shortcuts):
		model.panels.Shortcuts = true
		return nil
	case key.Matches(message, model.keys.SlidesScreen):
		model.switchScreen(ScreenSlides)
		return nil
	case key.Matches(message, model.keys.ArticleScreen):
		model.switchScreen(ScreenArticle)
		return nil
	case key.Matches(message, model.keys.EditorScreen):
		model.switchScreen(ScreenEditor)
		return nil
	}

	switch model.screen {
	case ScreenArticle:
		return model.handleArticleKeys(message)
	case ScreenEditor:
		return model.handleEditorKeys(message)
	default:
		return model.handleSlideKeys(message)
	}
}

// switchScreen changes screens, carrying the reading position between
// the slide and article views.
func (model *Model) switchScreen(screen Screen) {
	if screen == model.screen {
		return
	}
	if model.screen == ScreenArticle {
		model.navigator = model.navigator.JumpTo(model.article.sectionAt(model.article.viewport.YOffset))
	}
	model.screen = screen
	model.panels.Fullscreen = false
	model.swipe = model.swipe.Cancel()
	if screen == ScreenArticle {
		model.article.pendingSection = model.navigator.Index()
	}
}

func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	switch model.screen {
	case ScreenSlides:
		model.handleSlideMouse(message)
	case ScreenArticle:
		model.handleArticleMouse(message)
	case ScreenEditor:
		model.handleEditorMouse(message)
	}
	return nil
}

// handleReload imports watcher content. The slides whose content
// changed are highlighted for a few seconds.
func (model *Model) handleReload(message ReloadMsg) {
	document, err := deck.Import(message.Content)
	if err != nil {
		model.showNotice("Reload failed", fmt.Sprintf("%s could not be loaded: %v\nThe current deck is unchanged.", displaySource(message.Source), err), true)
		return
	}
	previous := model.session.Presentation()
	model.session.Replace(document, message.Source)
	model.session.MarkSaved(model.session.Fingerprint())

	now := model.clock.Now()
	for _, slide := range document.Slides {
		old, index := previous.SlideByID(slide.ID)
		if index < 0 || !deck.SlideEqual(old, slide) {
			model.heat.Ignite(slide.ID, now)
		}
	}
	model.logger.Debug("reloaded deck", "source", message.Source, "slides", len(document.Slides))
}

func displaySource(source string) string {
	if source == "" {
		return "The deck file"
	}
	return source
}

func (model *Model) startHeatTick() tea.Cmd {
	if model.tickRunning || !model.heat.HasHot(model.clock.Now()) {
		return nil
	}
	model.tickRunning = true
	return scheduleHeatTick()
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

// showNotice opens a blocking notice.
func (model *Model) showNotice(title, body string, failure bool) {
	model.notice = &notice{title: title, body: body, failure: failure}
	model.panels.Notice = true
}

// setStatus shows message in the status bar and schedules its fade.
func (model *Model) setStatus(message string, level slog.Level) tea.Cmd {
	model.status = message
	model.statusLevel = level
	model.statusSequence++
	sequence := model.statusSequence
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{sequence: sequence}
	})
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var output string
	switch model.screen {
	case ScreenArticle:
		output = model.viewArticle()
	case ScreenEditor:
		output = model.viewEditor()
	default:
		output = model.viewSlides()
	}

	if model.panels.Navigator {
		output = tui.SpliceOverlay(output, model.renderDrawer(), 0, model.drawerTop())
	}
	if model.editor.dropdown != nil {
		output = tui.SpliceOverlay(output, model.editor.dropdown.Render(model.theme.Theme),
			model.editor.dropdown.AnchorX, model.editor.dropdown.AnchorY)
	}
	if model.editor.form != nil {
		lines, x, y := model.renderForm()
		output = tui.SpliceOverlay(output, lines, x, y)
	}
	if model.editor.modal != nil {
		lines, x, y := model.editor.modal.modal.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, lines, x, y)
	}
	if model.panels.Lightbox {
		lines, x, y := model.renderLightbox()
		output = tui.SpliceOverlay(output, lines, x, y)
	}
	if model.panels.Shortcuts {
		lines, x, y := model.renderShortcuts()
		output = tui.SpliceOverlay(output, lines, x, y)
	}
	if model.notice != nil {
		panel := tui.Panel{
			Title:  model.notice.title,
			Lines:  strings.Split(model.notice.body, "\n"),
			Footer: "Enter dismiss",
		}
		if model.notice.failure {
			panel.TitleColor = model.theme.Error
		}
		lines, x, y := panel.Render(model.theme.Theme, model.width, model.height)
		output = tui.SpliceOverlay(output, lines, x, y)
	}
	return output
}

// renderHeader lays out a one-line header: left text, right text,
// padded to the screen width.
func (model Model) renderHeader(left, right string) string {
	style := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	left = ansi.Truncate(left, max(model.width-lipgloss.Width(right)-2, 1), "…")
	gap := max(model.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return " " + style.Render(left) + strings.Repeat(" ", gap) + right + " "
}

func (model Model) renderSeparator() string {
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", max(model.width, 0)))
}

// renderStatus shows the current status message, or help when none.
func (model Model) renderStatus(help string) string {
	if model.status != "" {
		color := model.theme.HelpText
		switch {
		case model.statusLevel >= slog.LevelError:
			color = model.theme.Error
		case model.statusLevel >= slog.LevelWarn:
			color = model.theme.Warning
		case model.statusLevel >= slog.LevelInfo:
			color = model.theme.Accent
		}
		return " " + lipgloss.NewStyle().Foreground(color).Render(ansi.Truncate(model.status, max(model.width-2, 1), "…"))
	}
	return " " + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(ansi.Truncate(help, max(model.width-2, 1), "…"))
}

// dirtyMarker is shown in headers while the document has unsaved
// changes.
func (model Model) dirtyMarker() string {
	if !model.session.Dirty() {
		return ""
	}
	return lipgloss.NewStyle().Foreground(model.theme.Warning).Render("●") + " "
}

// fitHeight pads or cuts content to exactly height lines.
func fitHeight(content string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// fitWidth cuts every line of content to width cells.
func fitWidth(content string, width int) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		lines[index] = ansi.Truncate(line, max(width, 0), "")
	}
	return strings.Join(lines, "\n")
}

// renderShortcuts lists the bindings of the active screen.
func (model Model) renderShortcuts() ([]string, int, int) {
	var bindings []key.Binding
	switch model.screen {
	case ScreenArticle:
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.PageUp, model.keys.PageDown,
			model.keys.First, model.keys.Last, model.keys.NextSection, model.keys.PrevSection}
	case ScreenEditor:
		bindings = []key.Binding{model.keys.FocusNext, model.keys.Up, model.keys.Down, model.keys.Select,
			model.keys.AddSlide, model.keys.AddBlock, model.keys.Remove, model.keys.MoveUp, model.keys.MoveDown,
			model.keys.EditTitle, model.keys.EditNotes, model.keys.Level, model.keys.Language,
			model.keys.ArticleOnly, model.keys.Preview, model.keys.Import, model.keys.Export}
	default:
		bindings = []key.Binding{model.keys.Next, model.keys.Prev, model.keys.First, model.keys.Last,
			model.keys.Notes, model.keys.Navigator, model.keys.Fullscreen, model.keys.Lightbox}
	}
	bindings = append(bindings, model.keys.SlidesScreen, model.keys.ArticleScreen, model.keys.EditorScreen,
		model.keys.Shortcuts, model.keys.Quit)

	keyWidth := 0
	for _, binding := range bindings {
		keyWidth = max(keyWidth, ansi.StringWidth(binding.Help().Key))
	}
	keyStyle := lipgloss.NewStyle().Foreground(model.theme.Accent).Background(model.theme.OverlayBackground)
	lines := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		padding := strings.Repeat(" ", keyWidth-ansi.StringWidth(help.Key)+2)
		lines = append(lines, keyStyle.Render(help.Key)+padding+help.Desc)
	}
	panel := tui.Panel{
		Title:  "Keyboard shortcuts (" + model.screen.String() + ")",
		Lines:  lines,
		Footer: "Esc close",
	}
	return panel.Render(model.theme.Theme, model.width, model.height)
}
