package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tildaslashalef/codelens/internal/feedback"
	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/review"
)

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case reviewDoneMsg:
		m.state = msg.state
		m.notice = ""
		m.refreshOutput()
		if msg.err == nil {
			m.setFocus(focusFeedback)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusCode {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusCode {
			m.setFocus(focusFeedback)
		} else {
			m.setFocus(focusCode)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		return m.reset(), nil
	case key.Matches(msg, m.keys.Language):
		m.openPicker()
		return m, nil
	case key.Matches(msg, m.keys.Detect):
		m.detect()
		return m, nil
	}

	if m.focus == focusFeedback {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.layout()
			return m, nil
		}
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.ctrl.SetCode(m.editor.Value())
	m.state.Code = m.editor.Value()
	return m, cmd
}

// submit begins a review and hands the backend call to a command. A submit
// while one is in flight is dropped.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state.IsLoading {
		return m, nil
	}

	code := m.editor.Value()
	st, started, err := m.ctrl.Begin(code, m.state.Language.ID)
	m.state = st
	if errors.Is(err, review.ErrReviewInProgress) {
		m.notice = review.MsgInProgress
		return m, nil
	}
	m.notice = ""
	m.refreshOutput()
	if !started {
		return m, nil
	}

	return m, tea.Batch(m.spinner.Tick, runReview(m.ctx, m.ctrl, code, st.Language.Name))
}

func runReview(ctx context.Context, ctrl *review.Controller, code, languageName string) tea.Cmd {
	return func() tea.Msg {
		st, err := ctrl.Complete(ctx, code, languageName)
		return reviewDoneMsg{state: st, err: err}
	}
}

func (m Model) reset() Model {
	st, err := m.ctrl.Reset()
	if err != nil {
		m.notice = review.UserMessage(err)
		return m
	}
	m.state = st
	m.notice = ""
	m.refreshOutput()
	m.setFocus(focusCode)
	return m
}

func (m *Model) openPicker() {
	for i, item := range m.languages.Items() {
		if li, ok := item.(languageItem); ok && li.ID == m.state.Language.ID {
			m.languages.Select(i)
			break
		}
	}
	m.picking = true
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.languages.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.picking = false
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if item, ok := m.languages.SelectedItem().(languageItem); ok {
				m.selectLanguage(item.ID)
			}
			m.picking = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.languages, cmd = m.languages.Update(msg)
	return m, cmd
}

func (m *Model) selectLanguage(id string) {
	if !m.ctrl.SetLanguage(id) {
		return
	}
	m.state.Language = m.ctrl.State().Language
	m.syncPlaceholder()
}

// detect suggests a language from the buffer. The current choice stays when
// nothing in the registry matches.
func (m *Model) detect() {
	lang, ok := language.Detect("", []byte(m.editor.Value()))
	if !ok {
		m.notice = "Could not detect the language; keeping " + m.state.Language.Name + "."
		return
	}
	loggy.Debug("Detected language", "language", lang.ID)
	m.notice = ""
	m.selectLanguage(lang.ID)
}

// layout sizes the panes from the window size
func (m *Model) layout() {
	if !m.ready {
		return
	}

	frameW, frameH := paneFrame(m.styles.Pane)
	innerW := max(m.width-frameW, 10)

	// title, language line, notice line
	chrome := 3 + lipgloss.Height(m.helpView())
	avail := max(m.height-chrome-2*frameH, 6)
	editorH := max(avail*2/5, 3)
	outputH := max(avail-editorH, 3)

	m.editor.SetWidth(innerW)
	m.editor.SetHeight(editorH)
	m.output.Width = innerW
	m.output.Height = outputH
	m.languages.SetSize(m.width, max(m.height-1, 5))
	m.refreshOutput()
}

// refreshOutput re-renders feedback into the viewport
func (m *Model) refreshOutput() {
	if m.state.Feedback == "" {
		m.output.SetContent("")
		return
	}
	m.output.SetContent(feedback.Terminal(m.state.Feedback, m.output.Width))
	m.output.GotoTop()
}
