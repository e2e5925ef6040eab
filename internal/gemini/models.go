package gemini

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the API answers 2xx without any text
var ErrEmptyResponse = errors.New("gemini returned no candidates")

// ChatRequest represents a generateContent request
type ChatRequest struct {
	Model             string            `json:"-"`
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerationConfig holds sampling parameters
type GenerationConfig struct {
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	TopK            *int     `json:"topK,omitempty"`
}

// Content represents content in a chat message
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part represents a part of content in a chat message
type Part struct {
	Text string `json:"text,omitempty"`
}

// ChatResponse represents a generateContent response
type ChatResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
}

// Text joins the text parts of the first candidate
func (r *ChatResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Candidate represents a candidate response from the Gemini API
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// PromptFeedback is set when the prompt itself was blocked
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// UsageMetadata contains token usage information for a request
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// APIError represents a non-2xx or unparseable answer from the Gemini API
type APIError struct {
	StatusCode  int           `json:"-"`
	ErrorDetail *ErrorDetails `json:"error,omitempty"`
}

// ErrorDetails contains details about an API error
type ErrorDetails struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	if e.ErrorDetail != nil && e.ErrorDetail.Message != "" {
		return fmt.Sprintf("gemini API error (%d): %s", e.StatusCode, e.ErrorDetail.Message)
	}
	return fmt.Sprintf("gemini API error (%d)", e.StatusCode)
}

// Message returns the backend's own description, if any
func (e *APIError) Message() string {
	if e.ErrorDetail != nil {
		return e.ErrorDetail.Message
	}
	return ""
}

// Float64Ptr creates a float64 pointer from a value
func Float64Ptr(v float64) *float64 {
	return &v
}

// IntPtr creates an int pointer from a value
func IntPtr(v int) *int {
	return &v
}
