package llm

import (
	"context"
	"errors"

	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/gemini"
)

type geminiAdapter struct {
	client *gemini.Client
}

func newGeminiAdapter(client *gemini.Client) *geminiAdapter {
	return &geminiAdapter{client: client}
}

// Generate implements Generator for Gemini
func (a *geminiAdapter) Generate(ctx context.Context, prompt, model string) (string, error) {
	if !a.client.HasAPIKey() {
		return "", ErrNoCredential
	}

	resp, err := a.client.GenerateChat(ctx, gemini.ChatRequest{
		Model:    model,
		Contents: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: prompt}}}},
	})
	if err != nil {
		var apiErr *gemini.APIError
		switch {
		case errors.As(err, &apiErr):
			return "", &BackendError{Provider: config.ProviderGemini, Status: apiErr.StatusCode, Message: apiErr.Message(), Err: err}
		case errors.Is(err, gemini.ErrEmptyResponse):
			return "", &BackendError{Provider: config.ProviderGemini, Message: err.Error(), Err: err}
		default:
			return "", transportError(config.ProviderGemini, err)
		}
	}

	return resp.Text(), nil
}
