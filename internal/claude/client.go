package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/loggy"
)

const maxErrorBody = 64 * 1024

// Client represents an Anthropic Claude API client
type Client struct {
	apiKey           string
	baseURL          string
	apiVersion       string
	defaultModel     string
	httpClient       *http.Client
	defaultMaxTokens int
	temperature      *float64
}

// NewClient creates a new Claude client from config
func NewClient(cfg config.ClaudeConfig) *Client {
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2023-06-01"
	}

	defaultModel := cfg.Model
	if defaultModel == "" {
		defaultModel = "claude-sonnet-4-20250514"
	}

	// max_tokens is mandatory for the Messages API
	defaultMaxTokens := cfg.MaxTokens
	if defaultMaxTokens <= 0 {
		defaultMaxTokens = 4096
	}

	c := &Client{
		apiKey:           cfg.APIKey,
		baseURL:          strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion:       apiVersion,
		defaultModel:     defaultModel,
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		defaultMaxTokens: defaultMaxTokens,
	}
	if cfg.Temperature > 0 {
		t := cfg.Temperature
		c.temperature = &t
	}
	return c
}

// HasAPIKey reports whether a credential was configured
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// DefaultModel returns the model used when a request names none
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// GenerateChat sends a single Messages API request. It never retries.
func (c *Client) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.defaultModel
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = c.defaultMaxTokens
	}
	if req.Temperature == nil {
		req.Temperature = c.temperature
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", c.apiVersion)

	loggy.Debug("Sending Claude request", "model", req.Model, "max_tokens", req.MaxTokens, "body_bytes", len(payload))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		loggy.Error("Claude API error response", "status", resp.Status, "body", string(bodyBytes))

		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, apiErr); err != nil || apiErr.Detail.Message == "" {
			apiErr.Detail = ErrorInfo{Type: "http_error", Message: strings.TrimSpace(string(bodyBytes))}
		}
		return nil, apiErr
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     ErrorInfo{Type: "decode_error", Message: fmt.Sprintf("malformed response: %v", err)},
		}
	}

	loggy.Debug("Claude API response", "status", resp.Status, "stop_reason", out.StopReason)

	if out.Text() == "" {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}
