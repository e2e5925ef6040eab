package review

import (
	"strings"

	"github.com/tildaslashalef/codelens/internal/language"
)

// Phase is the lifecycle position of a review session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is everything a surface needs to render a review session.
// IsLoading is true exactly while Phase is PhaseSubmitting, and Feedback and
// Err are never both set.
type State struct {
	Code      string
	Language  language.Language
	Feedback  string
	Err       string
	IsLoading bool
	Phase     Phase
}

// NewState returns an idle state with the given language selected
func NewState(lang language.Language) State {
	return State{Language: lang, Phase: PhaseIdle}
}

// Action is one of Submit, Succeed, Fail or Reset
type Action interface {
	isAction()
}

// Submit asks for a review of Code in Language
type Submit struct {
	Code     string
	Language language.Language
}

// Succeed delivers the model's feedback
type Succeed struct {
	Feedback string
}

// Fail delivers a user-facing failure message
type Fail struct {
	Message string
}

// Reset clears the outcome but keeps the code and language
type Reset struct{}

func (Submit) isAction()  {}
func (Succeed) isAction() {}
func (Fail) isAction()    {}
func (Reset) isAction()   {}

// Reduce applies a to s. It has no side effects: on error the returned state
// is s unchanged.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case Submit:
		if s.Phase == PhaseSubmitting {
			return s, ErrReviewInProgress
		}
		s.Code = a.Code
		s.Language = a.Language
		if strings.TrimSpace(a.Code) == "" {
			return failed(s, MsgEmptyCode), nil
		}
		s.Phase = PhaseSubmitting
		s.IsLoading = true
		s.Feedback = ""
		s.Err = ""
		return s, nil

	case Succeed:
		if s.Phase != PhaseSubmitting {
			return s, ErrUnexpectedAction
		}
		s.Phase = PhaseSucceeded
		s.IsLoading = false
		s.Feedback = a.Feedback
		s.Err = ""
		return s, nil

	case Fail:
		if s.Phase != PhaseSubmitting {
			return s, ErrUnexpectedAction
		}
		return failed(s, a.Message), nil

	case Reset:
		if s.Phase == PhaseSubmitting {
			return s, ErrReviewInProgress
		}
		return State{Code: s.Code, Language: s.Language, Phase: PhaseIdle}, nil

	default:
		return s, ErrUnexpectedAction
	}
}

func failed(s State, msg string) State {
	s.Phase = PhaseFailed
	s.IsLoading = false
	s.Feedback = ""
	s.Err = msg
	return s
}
