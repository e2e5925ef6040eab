package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the model's current state.
func (m Model) View() string {
	if !m.ready {
		return "Initializing...\n"
	}
	if m.picking {
		return m.languages.View()
	}

	editorStyle, outputStyle := m.styles.Pane, m.styles.Pane
	if m.focus == focusCode {
		editorStyle = m.styles.FocusedPane
	} else {
		outputStyle = m.styles.FocusedPane
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderLanguageLine(),
		editorStyle.Render(m.editor.View()),
		outputStyle.Render(m.renderOutput()),
		m.styles.Warning.Render(m.notice),
		m.helpView(),
	)
}

func (m Model) renderHeader() string {
	backend := m.opts.Provider
	if m.opts.Model != "" {
		backend += " / " + m.opts.Model
	}
	return m.styles.Title.Render("codelens") + "  " + m.styles.Subtle.Render(backend)
}

func (m Model) renderLanguageLine() string {
	return m.styles.Label.Render("Language: ") + m.state.Language.Name +
		m.styles.Subtle.Render("  (ctrl+l to change, ctrl+d to detect)")
}

// renderOutput draws the loading line, the error, the feedback or the hint
func (m Model) renderOutput() string {
	var content string
	switch m.panel() {
	case panelLoading:
		content = m.spinner.View() + " " + fmt.Sprintf("Analyzing your code with %s...", m.opts.Model)
	case panelError:
		content = m.styles.Error.Render("Error: ") + m.state.Err
	case panelFeedback:
		return m.output.View()
	default:
		content = m.styles.Subtle.Render("Paste your code above and press ctrl+s. Feedback will appear here.")
	}
	// keep the pane height stable across states
	lines := strings.Count(content, "\n") + 1
	if pad := m.output.Height - lines; pad > 0 {
		content += strings.Repeat("\n", pad)
	}
	return lipgloss.NewStyle().Width(m.output.Width).Render(content)
}

func (m Model) helpView() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
