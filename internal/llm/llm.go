// Package llm hides the configured model backend behind a single
// prompt-in/text-out call.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tildaslashalef/codelens/internal/claude"
	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/gemini"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/ollama"
	"github.com/tildaslashalef/codelens/internal/utils"
)

// maxMessageRunes caps backend messages in errors and logs; proxies in front
// of a backend sometimes answer with whole HTML pages.
const maxMessageRunes = 300

// Generator sends one prompt to a model and returns its text answer.
// Implementations make exactly one outbound request per call.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

var (
	// ErrNoCredential means the selected provider has no API key
	ErrNoCredential = errors.New("no credential configured for the selected provider")

	// ErrTransport wraps network failures, timeouts and cancellations
	ErrTransport = errors.New("model backend unreachable")
)

// BackendError is a failure reported by the backend itself: a non-2xx
// status, a malformed body or an empty answer.
type BackendError struct {
	Provider string
	Status   int // HTTP status, 0 when the body was the problem
	Message  string
	Err      error
}

func (e *BackendError) Error() string {
	msg := utils.Truncate(e.Message, maxMessageRunes)
	if e.Status > 0 {
		return fmt.Sprintf("%s backend error (status %d): %s", e.Provider, e.Status, msg)
	}
	return fmt.Sprintf("%s backend error: %s", e.Provider, msg)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func transportError(provider string, err error) error {
	return fmt.Errorf("%w (%s): %w", ErrTransport, provider, err)
}

// Factory builds the Generator for the configured provider
type Factory struct {
	provider  string
	model     string
	generator Generator
}

// NewFactory creates the client for cfg.LLMProvider. A missing API key is not
// an error here; every Generate call reports ErrNoCredential instead.
func NewFactory(cfg *config.Config) (*Factory, error) {
	f := &Factory{provider: cfg.LLMProvider, model: cfg.Model()}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		f.generator = newGeminiAdapter(gemini.NewClient(cfg.Gemini))
		loggy.Info("initialized Gemini client", "base_url", cfg.Gemini.BaseURL, "model", cfg.Gemini.Model)
	case config.ProviderClaude:
		f.generator = newClaudeAdapter(claude.NewClient(cfg.Claude))
		loggy.Info("initialized Claude client", "base_url", cfg.Claude.BaseURL, "model", cfg.Claude.Model)
	case config.ProviderOllama:
		f.generator = newOllamaAdapter(ollama.NewClient(cfg.Ollama))
		loggy.Info("initialized Ollama client", "endpoint", cfg.Ollama.Endpoint, "model", cfg.Ollama.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLMProvider)
	}

	if !cfg.HasCredential() {
		loggy.Warn("no API key configured, reviews will fail until one is set", "provider", cfg.LLMProvider, "env", cfg.CredentialEnvVar())
	}

	return f, nil
}

// Provider returns the configured provider name
func (f *Factory) Provider() string {
	return f.provider
}

// Model returns the configured model name
func (f *Factory) Model() string {
	return f.model
}

// Generate delegates to the configured provider. An empty model selects the
// configured one.
func (f *Factory) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = f.model
	}
	return f.generator.Generate(ctx, prompt, model)
}
