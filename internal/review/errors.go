package review

import (
	"errors"
	"fmt"
)

// User-facing messages
const (
	MsgEmptyCode            = "Please enter some code to review."
	MsgConfigurationMissing = "API key is not configured. Set CODELENS_GEMINI_API_KEY (or the key for the selected provider) and restart."
	MsgBackendFailure       = "Failed to get code review from the model backend. Please check the logs for details."
	MsgInProgress           = "A review is already in progress."
)

var (
	// ErrConfigurationMissing is returned when no credential is available at call time
	ErrConfigurationMissing = errors.New(MsgConfigurationMissing)

	// ErrReviewInProgress is returned when Submit arrives while a review is in flight
	ErrReviewInProgress = errors.New(MsgInProgress)

	// ErrUnexpectedAction is returned for Succeed/Fail outside of Submitting
	ErrUnexpectedAction = errors.New("action not allowed in current phase")
)

// BackendError hides a backend or transport failure behind a generic
// message. The cause stays reachable through errors.Unwrap.
type BackendError struct {
	cause error
}

func (e *BackendError) Error() string {
	return MsgBackendFailure
}

func (e *BackendError) Unwrap() error {
	return e.cause
}

// ValidationError is a rejected submission, e.g. empty code
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func unsupportedLanguage(id string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("Unsupported language: %s", id)}
}

// UserMessage maps any error to the text shown to users. Causes of backend
// failures are never included.
func UserMessage(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, ErrConfigurationMissing):
		return MsgConfigurationMissing
	case errors.Is(err, ErrReviewInProgress):
		return MsgInProgress
	default:
		return MsgBackendFailure
	}
}
