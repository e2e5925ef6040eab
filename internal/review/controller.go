package review

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/loggy"
)

// Outcome labels reported to an Observer
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
)

// Observer is told about every finished submission
type Observer interface {
	ObserveReview(outcome string, duration time.Duration)
}

// Option configures a Controller
type Option func(*Controller)

// WithObserver reports outcomes to o
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// Controller owns one review session. All transitions go through Reduce
// under a mutex, so readers never see a half-applied update.
type Controller struct {
	mu       sync.Mutex
	state    State
	client   Reviewer
	observer Observer
}

// NewController creates an idle session with lang preselected
func NewController(client Reviewer, lang language.Language, opts ...Option) *Controller {
	c := &Controller{
		state:  NewState(lang),
		client: client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the session
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetCode records edits to the code buffer
func (c *Controller) SetCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Code = code
}

// SetLanguage changes the selection. Unknown ids are ignored.
func (c *Controller) SetLanguage(id string) bool {
	lang, ok := language.Lookup(id)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Language = lang
	return true
}

// Reset clears feedback and error. It is rejected while a review is in flight.
func (c *Controller) Reset() (State, error) {
	return c.apply(Reset{})
}

// Submit runs a full review: validate, call the client once, record the
// outcome. The returned state always reflects the outcome; the error
// classifies it for callers that map failures to status codes. A submission
// while another is in flight returns ErrReviewInProgress and leaves the state
// alone.
func (c *Controller) Submit(ctx context.Context, code, languageID string) (State, error) {
	st, started, err := c.Begin(code, languageID)
	if !started {
		return st, err
	}
	return c.Complete(ctx, code, st.Language.Name)
}

// Begin applies the Submit transition only. started is true when the caller
// must now call Complete. Otherwise err is ErrReviewInProgress or a
// *ValidationError whose message the state already shows.
func (c *Controller) Begin(code, languageID string) (State, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase == PhaseSubmitting {
		c.observe(OutcomeRejected, 0)
		return c.state, false, ErrReviewInProgress
	}

	lang, ok := language.Lookup(languageID)
	if !ok {
		verr := unsupportedLanguage(languageID)
		c.state.Code = code
		c.state = failed(c.state, verr.Message)
		c.observe(OutcomeInvalid, 0)
		return c.state, false, verr
	}

	next, err := Reduce(c.state, Submit{Code: code, Language: lang})
	if err != nil {
		return c.state, false, err
	}
	c.state = next

	if next.Phase != PhaseSubmitting {
		c.observe(OutcomeInvalid, 0)
		return next, false, &ValidationError{Message: next.Err}
	}
	return next, true, nil
}

// Complete performs the single backend call for a begun submission and
// applies Succeed or Fail. The error is the client's, already rendered into
// the state as a user message.
func (c *Controller) Complete(ctx context.Context, code, languageName string) (State, error) {
	if loggy.GetRequestID(ctx) == "" {
		ctx = loggy.WithRequestID(ctx, loggy.NewRequestID())
	}

	start := time.Now()
	feedback, err := c.client.Review(ctx, code, languageName)
	elapsed := time.Since(start)

	var action Action = Succeed{Feedback: feedback}
	outcome := OutcomeSucceeded
	if err != nil {
		action = Fail{Message: UserMessage(err)}
		outcome = OutcomeFailed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next, rerr := Reduce(c.state, action)
	if rerr != nil {
		// Only possible if someone bypassed Begin
		loggy.Warn("Dropping review result", "error", rerr, "phase", c.state.Phase.String())
		return c.state, rerr
	}
	c.state = next
	c.observe(outcome, elapsed)
	return next, err
}

func (c *Controller) apply(a Action) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Reduce(c.state, a)
	if err != nil {
		return c.state, err
	}
	c.state = next
	return next, nil
}

func (c *Controller) observe(outcome string, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveReview(outcome, d)
	}
}

// IsValidation reports whether err is a user input problem rather than a
// backend or configuration failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
