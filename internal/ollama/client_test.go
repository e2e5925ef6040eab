package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/codelens/internal/config"
)

func setupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.OllamaConfig{
		Endpoint:    server.URL + "/",
		Model:       "gemma3",
		Timeout:     5 * time.Second,
		Temperature: 0.1,
	})
}

func TestNewClientDefaultEndpoint(t *testing.T) {
	client := NewClient(config.OllamaConfig{Model: "llama3"})
	assert.Equal(t, "http://localhost:11434", client.endpoint)
	assert.Equal(t, "llama3", client.DefaultModel())
}

func TestGenerateChat(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemma3", req.Model)
		assert.False(t, req.Stream)
		require.NotNil(t, req.Options)
		require.NotNil(t, req.Options.Temperature)
		assert.Equal(t, 0.1, *req.Options.Temperature)

		_ = json.NewEncoder(w).Encode(ChatResponse{
			Model:      "gemma3",
			Message:    Message{Role: "assistant", Content: "### Summary\nok"},
			Done:       true,
			DoneReason: "stop",
		})
	})

	resp, err := client.GenerateChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "review"}}})
	require.NoError(t, err)
	assert.Equal(t, "### Summary\nok", resp.Message.Content)
}

func TestGenerateChatModelNotFound(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"gemma3\" not found, try pulling it first"}`))
	})

	_, err := client.GenerateChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message(), "not found")
}

func TestGenerateChatEmptyMessage(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"gemma3","message":{"role":"assistant","content":""},"done":true}`))
	})

	_, err := client.GenerateChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateChatUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := NewClient(config.OllamaConfig{Endpoint: endpoint, Model: "gemma3", Timeout: time.Second})
	_, err := client.GenerateChat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "connection failures are not API errors")
}
