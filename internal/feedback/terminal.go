package feedback

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tildaslashalef/codelens/internal/loggy"
)

const defaultWidth = 100

// Terminal renders Markdown feedback for a terminal of the given width. If
// glamour fails the text comes back word-wrapped but otherwise verbatim.
func Terminal(text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	r, err := NewTermRenderer(width)
	if err == nil {
		var out string
		out, err = r.Render(text)
		if err == nil {
			return out
		}
	}

	loggy.Warn("Falling back to plain feedback", "error", err)
	return Plain(text, width)
}

// NewTermRenderer builds the glamour renderer shared by the TUI and CLI
func NewTermRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// Plain word-wraps text without interpreting it
func Plain(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
