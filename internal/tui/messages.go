package tui

import "github.com/tildaslashalef/codelens/internal/review"

// reviewDoneMsg carries the state after the backend call finished
type reviewDoneMsg struct {
	state review.State
	err   error
}
