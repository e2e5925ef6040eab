package llm

import (
	"context"
	"errors"

	"github.com/tildaslashalef/codelens/internal/claude"
	"github.com/tildaslashalef/codelens/internal/config"
)

type claudeAdapter struct {
	client *claude.Client
}

func newClaudeAdapter(client *claude.Client) *claudeAdapter {
	return &claudeAdapter{client: client}
}

// Generate implements Generator for Claude
func (a *claudeAdapter) Generate(ctx context.Context, prompt, model string) (string, error) {
	if !a.client.HasAPIKey() {
		return "", ErrNoCredential
	}

	resp, err := a.client.GenerateChat(ctx, claude.ChatRequest{
		Model:    model,
		Messages: []claude.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		var apiErr *claude.APIError
		switch {
		case errors.As(err, &apiErr):
			return "", &BackendError{Provider: config.ProviderClaude, Status: apiErr.StatusCode, Message: apiErr.Message(), Err: err}
		case errors.Is(err, claude.ErrEmptyResponse):
			return "", &BackendError{Provider: config.ProviderClaude, Message: err.Error(), Err: err}
		default:
			return "", transportError(config.ProviderClaude, err)
		}
	}

	return resp.Text(), nil
}
