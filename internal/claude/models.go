package claude

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when a 2xx answer carries no text blocks
var ErrEmptyResponse = errors.New("claude returned no text content")

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// ChatRequest represents a request to the Messages API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// ContentBlock represents a block of content in a response
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatResponse represents a Messages API response
type ChatResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *UsageInfo     `json:"usage,omitempty"`
}

// Text concatenates the text blocks of the response
func (r *ChatResponse) Text() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// UsageInfo contains token usage information for a request
type UsageInfo struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// APIError represents a non-2xx or unparseable answer from the Claude API
type APIError struct {
	StatusCode int       `json:"-"`
	Type       string    `json:"type"`
	Detail     ErrorInfo `json:"error"`
}

// ErrorInfo is the inner error object of an API error
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail.Message != "" {
		return fmt.Sprintf("claude API error (%d %s): %s", e.StatusCode, e.Detail.Type, e.Detail.Message)
	}
	return fmt.Sprintf("claude API error (%d)", e.StatusCode)
}

// Message returns the backend's own description, if any
func (e *APIError) Message() string {
	return e.Detail.Message
}
