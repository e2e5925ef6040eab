package review

import (
	"context"
	"errors"

	"github.com/tildaslashalef/codelens/internal/llm"
	"github.com/tildaslashalef/codelens/internal/loggy"
)

// Reviewer produces review feedback for a snippet
type Reviewer interface {
	Review(ctx context.Context, code, languageName string) (string, error)
}

// Client turns a snippet into a prompt and asks the model once
type Client struct {
	generator llm.Generator
	model     string
}

// NewClient creates a review client. An empty model lets the generator pick
// its configured default.
func NewClient(generator llm.Generator, model string) *Client {
	return &Client{generator: generator, model: model}
}

// Review sends exactly one request and returns the model's text unmodified.
// Failures are either ErrConfigurationMissing or a *BackendError.
func (c *Client) Review(ctx context.Context, code, languageName string) (string, error) {
	logger := loggy.FromContext(ctx).With("request_id", loggy.GetRequestID(ctx), "language", languageName)
	logger.Debug("Requesting code review", "code_bytes", len(code))

	text, err := c.generator.Generate(ctx, BuildPrompt(code, languageName), c.model)
	if err != nil {
		if errors.Is(err, llm.ErrNoCredential) {
			logger.Warn("Review attempted without credential")
			return "", ErrConfigurationMissing
		}
		logger.WithError(err).Error("Code review request failed")
		return "", &BackendError{cause: err}
	}

	logger.Info("Code review received", "feedback_bytes", len(text))
	return text, nil
}
