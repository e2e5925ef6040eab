package llm

import (
	"context"
	"errors"

	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/ollama"
)

// ollamaAdapter needs no credential; the daemon is assumed local
type ollamaAdapter struct {
	client *ollama.Client
}

func newOllamaAdapter(client *ollama.Client) *ollamaAdapter {
	return &ollamaAdapter{client: client}
}

// Generate implements Generator for Ollama
func (a *ollamaAdapter) Generate(ctx context.Context, prompt, model string) (string, error) {
	resp, err := a.client.GenerateChat(ctx, ollama.ChatRequest{
		Model:    model,
		Messages: []ollama.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		var apiErr *ollama.APIError
		switch {
		case errors.As(err, &apiErr):
			return "", &BackendError{Provider: config.ProviderOllama, Status: apiErr.StatusCode, Message: apiErr.Message(), Err: err}
		case errors.Is(err, ollama.ErrEmptyResponse):
			return "", &BackendError{Provider: config.ProviderOllama, Message: err.Error(), Err: err}
		default:
			return "", transportError(config.ProviderOllama, err)
		}
	}

	return resp.Message.Content, nil
}
