// Package tui is the terminal surface: a code buffer, a language picker and a
// feedback pane driven by a review.Controller.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/review"
)

type focusArea int

const (
	focusCode focusArea = iota
	focusFeedback
)

// panel is what the output pane currently shows. Exactly one applies.
type panel int

const (
	panelEmpty panel = iota
	panelLoading
	panelError
	panelFeedback
)

// Options describe the backend shown in the header and loading line
type Options struct {
	Provider string
	Model    string
}

// languageItem adapts a registry entry to the list bubble
type languageItem struct {
	language.Language
}

func (i languageItem) Title() string       { return i.Name }
func (i languageItem) Description() string { return i.ID }
func (i languageItem) FilterValue() string { return i.Name }

// Model is the bubbletea model for the review screen
type Model struct {
	ctx  context.Context
	ctrl *review.Controller
	opts Options

	state    review.State
	focus    focusArea
	picking  bool
	showHelp bool
	notice   string

	editor    textarea.Model
	output    viewport.Model
	languages list.Model
	spinner   spinner.Model
	help      help.Model

	keys   KeyMap
	styles Styles

	width  int
	height int
	ready  bool
}

// NewModel creates the model around ctrl. ctx bounds every backend call.
func NewModel(ctx context.Context, ctrl *review.Controller, opts Options) Model {
	styles := DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	editor := textarea.New()
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	items := make([]list.Item, 0, len(language.All()))
	for _, l := range language.All() {
		items = append(items, languageItem{l})
	}
	picker := list.New(items, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Select a language"
	picker.SetShowStatusBar(false)

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		opts:      opts,
		state:     ctrl.State(),
		editor:    editor,
		output:    viewport.New(0, 0),
		languages: picker,
		spinner:   s,
		help:      help.New(),
		keys:      Keys,
		styles:    styles,
	}
	m.editor.SetValue(m.state.Code)
	m.syncPlaceholder()
	return m
}

// Init starts the cursor blinking
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// panel picks the single thing the output pane renders
func (m Model) panel() panel {
	switch {
	case m.state.IsLoading:
		return panelLoading
	case m.state.Err != "":
		return panelError
	case m.state.Feedback != "":
		return panelFeedback
	default:
		return panelEmpty
	}
}

func (m *Model) syncPlaceholder() {
	m.editor.Placeholder = fmt.Sprintf("// Paste your %s code here...", m.state.Language.Name)
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusCode {
		m.editor.Focus()
		return
	}
	m.editor.Blur()
}
