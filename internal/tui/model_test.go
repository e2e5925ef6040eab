package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/review"
)

type mockReviewer struct {
	mock.Mock
}

func (m *mockReviewer) Review(ctx context.Context, code, languageName string) (string, error) {
	args := m.Called(ctx, code, languageName)
	return args.String(0), args.Error(1)
}

func newTestModel(t *testing.T, reviewer review.Reviewer) (Model, *review.Controller) {
	t.Helper()
	loggy.NewNoopLogger()
	ctrl := review.NewController(reviewer, language.MustLookup("go"))
	m := NewModel(context.Background(), ctrl, Options{Provider: "gemini", Model: "gemini-2.5-flash"})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}), ctrl
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

var (
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	ctrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	ctrlL = tea.KeyMsg{Type: tea.KeyCtrlL}
	ctrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// reviewResult runs cmd, unpacking batches, and returns the review message
func reviewResult(t *testing.T, cmd tea.Cmd) reviewDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case reviewDoneMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if done, ok := c().(reviewDoneMsg); ok {
				return done
			}
		}
	}
	t.Fatal("no review result produced")
	return reviewDoneMsg{}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelStartsIdle(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))

	assert.Equal(t, panelEmpty, m.panel())
	assert.Equal(t, "// Paste your Go code here...", m.editor.Placeholder)
	view := m.View()
	assert.Contains(t, view, "Language: Go")
	assert.Contains(t, view, "Feedback will appear here.")
	assert.Contains(t, view, "gemini / gemini-2.5-flash")
}

func TestViewBeforeWindowSize(t *testing.T) {
	ctrl := review.NewController(new(mockReviewer), language.Default())
	m := NewModel(context.Background(), ctrl, Options{})
	assert.Equal(t, "Initializing...\n", m.View())
}

func TestSubmitShowsLoadingThenFeedback(t *testing.T) {
	reviewer := new(mockReviewer)
	reviewer.On("Review", mock.Anything, "func main() {}", "Go").Return("# Looks good\n\nNo issues.", nil).Once()
	m, _ := newTestModel(t, reviewer)
	m.editor.SetValue("func main() {}")

	m, cmd := press(t, m, ctrlS)
	assert.Equal(t, panelLoading, m.panel())
	assert.True(t, m.state.IsLoading)
	assert.Contains(t, m.View(), "Analyzing your code with gemini-2.5-flash...")

	m = update(t, m, reviewResult(t, cmd))

	assert.Equal(t, panelFeedback, m.panel())
	assert.Equal(t, review.PhaseSucceeded, m.state.Phase)
	assert.Equal(t, focusFeedback, m.focus)
	assert.Contains(t, m.View(), "Looks good")
	reviewer.AssertExpectations(t)
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	reviewer := new(mockReviewer)
	reviewer.On("Review", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil).Once()
	m, _ := newTestModel(t, reviewer)
	m.editor.SetValue("x := 1")

	m, first := press(t, m, ctrlS)
	m, second := press(t, m, ctrlS)

	assert.Nil(t, second)
	assert.True(t, m.state.IsLoading)

	reviewResult(t, first)
	reviewer.AssertNumberOfCalls(t, "Review", 1)
}

func TestEmptyCodeShowsValidationError(t *testing.T) {
	reviewer := new(mockReviewer)
	m, _ := newTestModel(t, reviewer)
	m.editor.SetValue("   \n\t")

	m, cmd := press(t, m, ctrlS)

	assert.Nil(t, cmd)
	assert.Equal(t, panelError, m.panel())
	assert.Equal(t, review.MsgEmptyCode, m.state.Err)
	assert.Contains(t, m.View(), review.MsgEmptyCode)
	reviewer.AssertNotCalled(t, "Review", mock.Anything, mock.Anything, mock.Anything)
}

func TestBackendFailureShowsGenericMessage(t *testing.T) {
	reviewer := new(mockReviewer)
	reviewer.On("Review", mock.Anything, mock.Anything, mock.Anything).
		Return("", &review.BackendError{}).Once()
	m, _ := newTestModel(t, reviewer)
	m.editor.SetValue("x")

	m, cmd := press(t, m, ctrlS)
	m = update(t, m, reviewResult(t, cmd))

	assert.Equal(t, panelError, m.panel())
	assert.Equal(t, review.MsgBackendFailure, m.state.Err)
	assert.Equal(t, focusCode, m.focus)
}

func TestResetClearsFeedbackAndKeepsCode(t *testing.T) {
	reviewer := new(mockReviewer)
	reviewer.On("Review", mock.Anything, mock.Anything, mock.Anything).Return("fine", nil).Once()
	m, ctrl := newTestModel(t, reviewer)
	m.editor.SetValue("x")
	m, cmd := press(t, m, ctrlS)
	m = update(t, m, reviewResult(t, cmd))
	require.Equal(t, panelFeedback, m.panel())

	m, _ = press(t, m, ctrlR)

	assert.Equal(t, panelEmpty, m.panel())
	assert.Equal(t, "x", m.editor.Value())
	assert.Equal(t, review.PhaseIdle, ctrl.State().Phase)
	assert.Equal(t, focusCode, m.focus)
}

func TestTypingUpdatesController(t *testing.T) {
	m, ctrl := newTestModel(t, new(mockReviewer))

	m, _ = press(t, m, runes("q"))

	assert.Equal(t, "q", m.editor.Value())
	assert.Equal(t, "q", ctrl.State().Code)
}

func TestLanguagePicker(t *testing.T) {
	m, ctrl := newTestModel(t, new(mockReviewer))

	m, _ = press(t, m, ctrlL)
	require.True(t, m.picking)
	assert.Contains(t, m.View(), "Select a language")

	m, _ = press(t, m, down)
	m, _ = press(t, m, enter)

	all := language.All()
	var goIdx int
	for i, l := range all {
		if l.ID == "go" {
			goIdx = i
		}
	}
	want := all[goIdx+1]
	assert.False(t, m.picking)
	assert.Equal(t, want.ID, m.state.Language.ID)
	assert.Equal(t, want.ID, ctrl.State().Language.ID)
	assert.Equal(t, "// Paste your "+want.Name+" code here...", m.editor.Placeholder)
}

func TestLanguagePickerEscapeKeepsSelection(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))

	m, _ = press(t, m, ctrlL)
	m, _ = press(t, m, down)
	m, _ = press(t, m, esc)

	assert.False(t, m.picking)
	assert.Equal(t, "go", m.state.Language.ID)
}

func TestDetectLanguage(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))
	m.editor.SetValue("#!/usr/bin/env python3\nprint('hi')\n")

	m, _ = press(t, m, ctrlD)

	assert.Equal(t, "python", m.state.Language.ID)
	assert.Empty(t, m.notice)
}

func TestDetectLanguageNoMatchKeepsChoice(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))

	m, _ = press(t, m, ctrlD)

	assert.Equal(t, "go", m.state.Language.ID)
	assert.True(t, strings.HasPrefix(m.notice, "Could not detect"))
}

func TestDetectLanguageProseKeepsChoice(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))
	m.editor.SetValue("hello world, this is plain prose and not a program")

	m, _ = press(t, m, ctrlD)

	assert.Equal(t, "go", m.state.Language.ID)
	assert.Equal(t, "Could not detect the language; keeping Go.", m.notice)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))

	_, cmd := press(t, m, runes("q"))
	assert.False(t, isQuit(cmd), "q types into the editor")

	m, _ = press(t, m, tab)
	require.Equal(t, focusFeedback, m.focus)
	_, cmd = press(t, m, runes("q"))
	assert.True(t, isQuit(cmd))

	m, _ = press(t, m, tab)
	_, cmd = press(t, m, ctrlC)
	assert.True(t, isQuit(cmd))
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, new(mockReviewer))
	m, _ = press(t, m, tab)

	m, _ = press(t, m, runes("?"))

	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "detect language")
}
