package ollama

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResponse is returned when the model produced no content
var ErrEmptyResponse = errors.New("ollama returned an empty message")

// Message represents a chat message with role and content
type Message struct {
	Role    string `json:"role"` // "user", "assistant", or "system"
	Content string `json:"content"`
}

// ChatRequest represents a request to the /api/chat endpoint
type ChatRequest struct {
	Model     string          `json:"model"`
	Messages  []Message       `json:"messages"`
	Stream    bool            `json:"stream"`
	Options   *RequestOptions `json:"options,omitempty"`
	KeepAlive string          `json:"keep_alive,omitempty"`
}

// RequestOptions holds generation parameters
type RequestOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  *int     `json:"num_predict,omitempty"`
}

// ChatResponse represents a response from the /api/chat endpoint
type ChatResponse struct {
	Model           string    `json:"model"`
	CreatedAt       time.Time `json:"created_at"`
	Message         Message   `json:"message"`
	Done            bool      `json:"done"`
	DoneReason      string    `json:"done_reason,omitempty"`
	TotalDuration   int64     `json:"total_duration,omitempty"`
	PromptEvalCount int       `json:"prompt_eval_count,omitempty"`
	EvalCount       int       `json:"eval_count,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// APIError represents a non-2xx or unparseable answer from Ollama
type APIError struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("ollama API error (%d): %s", e.StatusCode, e.Msg)
}

// Message returns the backend's own description
func (e *APIError) Message() string {
	return e.Msg
}
