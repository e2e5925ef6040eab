package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/review"
)

// Service runs the terminal UI for one review session
type Service struct {
	ctrl *review.Controller
	opts Options
}

// NewService creates a new TUI service
func NewService(ctrl *review.Controller, opts Options) *Service {
	return &Service{ctrl: ctrl, opts: opts}
}

// Run blocks until the user quits or ctx is cancelled
func (s *Service) Run(ctx context.Context) error {
	loggy.Info("Starting TUI", "provider", s.opts.Provider, "model", s.opts.Model)

	p := tea.NewProgram(
		NewModel(ctx, s.ctrl, s.opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
