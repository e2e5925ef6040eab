package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/codelens/internal/config"
)

func testConfig(provider, baseURL string) *config.Config {
	return &config.Config{
		LLMProvider: provider,
		Gemini: config.GeminiConfig{
			APIKey:     "gemini-key",
			BaseURL:    baseURL,
			APIVersion: "v1beta",
			Model:      "gemini-2.5-flash",
			Timeout:    5 * time.Second,
		},
		Claude: config.ClaudeConfig{
			APIKey:  "claude-key",
			BaseURL: baseURL,
			Model:   "claude-test",
			Timeout: 5 * time.Second,
		},
		Ollama: config.OllamaConfig{
			Endpoint: baseURL,
			Model:    "gemma3",
			Timeout:  5 * time.Second,
		},
	}
}

func TestNewFactory(t *testing.T) {
	tests := []struct {
		provider string
		model    string
	}{
		{config.ProviderGemini, "gemini-2.5-flash"},
		{config.ProviderClaude, "claude-test"},
		{config.ProviderOllama, "gemma3"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			f, err := NewFactory(testConfig(tt.provider, "http://localhost"))
			require.NoError(t, err)
			assert.Equal(t, tt.provider, f.Provider())
			assert.Equal(t, tt.model, f.Model())
		})
	}
}

func TestNewFactoryUnknownProvider(t *testing.T) {
	_, err := NewFactory(testConfig("openai", "http://localhost"))
	assert.Error(t, err)
}

func TestGenerateGemini(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"review text"}]}}]}`))
	}))
	defer server.Close()

	f, err := NewFactory(testConfig(config.ProviderGemini, server.URL))
	require.NoError(t, err)

	out, err := f.Generate(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "review text", out)
}

func TestGenerateClaude(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		_, _ = w.Write([]byte(`{"type":"message","content":[{"type":"text","text":"claude says hi"}]}`))
	}))
	defer server.Close()

	f, err := NewFactory(testConfig(config.ProviderClaude, server.URL))
	require.NoError(t, err)

	out, err := f.Generate(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "claude says hi", out)
}

func TestGenerateOllama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "custom-model", body["model"])
		_, _ = w.Write([]byte(`{"model":"custom-model","message":{"role":"assistant","content":"local review"},"done":true}`))
	}))
	defer server.Close()

	f, err := NewFactory(testConfig(config.ProviderOllama, server.URL))
	require.NoError(t, err)

	out, err := f.Generate(context.Background(), "prompt", "custom-model")
	require.NoError(t, err)
	assert.Equal(t, "local review", out)
}

func TestGenerateNoCredential(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, config.ProviderClaude} {
		t.Run(provider, func(t *testing.T) {
			cfg := testConfig(provider, "http://127.0.0.1:1")
			cfg.Gemini.APIKey = ""
			cfg.Claude.APIKey = ""

			f, err := NewFactory(cfg)
			require.NoError(t, err, "a missing key is not a startup error")

			_, err = f.Generate(context.Background(), "prompt", "")
			assert.ErrorIs(t, err, ErrNoCredential)
		})
	}
}

func TestGenerateBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	f, err := NewFactory(testConfig(config.ProviderGemini, server.URL))
	require.NoError(t, err)

	_, err = f.Generate(context.Background(), "prompt", "")

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, config.ProviderGemini, backendErr.Provider)
	assert.Equal(t, http.StatusForbidden, backendErr.Status)
	assert.Equal(t, "API key not valid", backendErr.Message)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestGenerateEmptyAnswerIsBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	f, err := NewFactory(testConfig(config.ProviderGemini, server.URL))
	require.NoError(t, err)

	_, err = f.Generate(context.Background(), "prompt", "")

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Zero(t, backendErr.Status)
}

func TestGenerateTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	f, err := NewFactory(testConfig(config.ProviderOllama, url))
	require.NoError(t, err)

	_, err = f.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrTransport)

	var backendErr *BackendError
	assert.False(t, errors.As(err, &backendErr))
}

func TestBackendErrorTruncatesLongMessages(t *testing.T) {
	err := &BackendError{Provider: "gemini", Status: 502, Message: strings.Repeat("x", 1000)}

	msg := err.Error()

	assert.True(t, strings.HasPrefix(msg, "gemini backend error (status 502): "))
	assert.Less(t, len([]rune(msg)), 400)
	assert.True(t, strings.HasSuffix(msg, "…"))
}
