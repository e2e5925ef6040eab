package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents the color theme for the TUI
type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	TextDim   lipgloss.AdaptiveColor
}

// GruvboxTheme creates a new Gruvbox-inspired theme
func GruvboxTheme() Theme {
	return Theme{
		Primary:   lipgloss.AdaptiveColor{Light: "#79740e", Dark: "#b8bb26"},
		Secondary: lipgloss.AdaptiveColor{Light: "#af3a03", Dark: "#fe8019"},
		Error:     lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"},
		Warning:   lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"},
		Border:    lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#504945"},
		Text:      lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#fbf1c7"},
		TextDim:   lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#a89984"},
	}
}

// Styles contains predefined styles for the TUI
type Styles struct {
	Title        lipgloss.Style
	Subtle       lipgloss.Style
	Label        lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Spinner      lipgloss.Style
	Pane         lipgloss.Style
	FocusedPane  lipgloss.Style
	PickerHeader lipgloss.Style
}

// DefaultStyles returns default styles for the TUI
func DefaultStyles() Styles {
	theme := GruvboxTheme()

	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtle: lipgloss.NewStyle().
			Foreground(theme.TextDim),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Pane: pane,

		FocusedPane: pane.BorderForeground(theme.Primary),

		PickerHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			PaddingLeft(2),
	}
}

// paneFrame is the horizontal and vertical space a pane border and padding take
func paneFrame(s lipgloss.Style) (int, int) {
	return s.GetHorizontalFrameSize(), s.GetVerticalFrameSize()
}
