package ollama

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

// Client talks to a local or remote Ollama daemon
type Client struct {
	endpoint     string
	defaultModel string
	httpClient   *http.Client
	temperature  *float64
}

// NewClient creates a new Ollama client from config
func NewClient(cfg config.OllamaConfig) *Client {
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}

	c := &Client{
		endpoint:     endpoint,
		defaultModel: cfg.Model,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.Temperature > 0 {
		t := cfg.Temperature
		c.temperature = &t
	}
	return c
}

// DefaultModel returns the model used when a request names none
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

// GenerateChat sends a single non-streaming /api/chat request
func (c *Client) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.defaultModel
	}
	req.Stream = false
	if c.temperature != nil {
		if req.Options == nil {
			req.Options = &RequestOptions{}
		}
		if req.Options.Temperature == nil {
			req.Options.Temperature = c.temperature
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	loggy.Debug("Sending Ollama request", "endpoint", c.endpoint, "model", req.Model, "body_bytes", len(payload))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		loggy.Error("Ollama API error response", "status", resp.Status, "body", string(bodyBytes))

		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, apiErr); err != nil || apiErr.Msg == "" {
			apiErr.Msg = strings.TrimSpace(string(bodyBytes))
		}
		return nil, apiErr
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("malformed response: %v", err)}
	}
	if out.Error != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Msg: out.Error}
	}

	loggy.Debug("Ollama API response", "model", out.Model, "done_reason", out.DoneReason, "eval_count", out.EvalCount)

	if out.Message.Content == "" {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}
