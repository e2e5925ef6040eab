package gemini

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

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 64 * 1024

// Client represents a Google Gemini API client
type Client struct {
	apiKey           string
	baseURL          string
	apiVersion       string
	defaultModel     string
	httpClient       *http.Client
	defaultMaxTokens int
	temperature      *float64
	topP             *float64
	topK             *int
}

// NewClient creates a new Gemini client from config
func NewClient(cfg config.GeminiConfig) *Client {
	defaultModel := cfg.Model
	if defaultModel == "" {
		defaultModel = "gemini-2.5-flash"
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	c := &Client{
		apiKey:           cfg.APIKey,
		baseURL:          strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion:       apiVersion,
		defaultModel:     defaultModel,
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		defaultMaxTokens: cfg.MaxTokens,
	}

	// Zero means "let the model decide"
	if cfg.Temperature > 0 {
		c.temperature = Float64Ptr(cfg.Temperature)
	}
	if cfg.TopP > 0 {
		c.topP = Float64Ptr(cfg.TopP)
	}
	if cfg.TopK > 0 {
		c.topK = IntPtr(cfg.TopK)
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

// GenerateChat sends a single generateContent request. It never retries.
func (c *Client) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.defaultModel
	}

	if req.GenerationConfig == nil {
		req.GenerationConfig = &GenerationConfig{}
	}
	gc := req.GenerationConfig
	if gc.MaxOutputTokens <= 0 {
		gc.MaxOutputTokens = c.defaultMaxTokens
	}
	if gc.Temperature == nil {
		gc.Temperature = c.temperature
	}
	if gc.TopP == nil {
		gc.TopP = c.topP
	}
	if gc.TopK == nil {
		gc.TopK = c.topK
	}

	var resp ChatResponse
	if err := c.makeRequest(ctx, fmt.Sprintf("models/%s:generateContent", req.Model), req, &resp); err != nil {
		return nil, err
	}

	if resp.Text() == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return nil, ErrEmptyResponse
	}

	return &resp, nil
}

// makeRequest posts body to path and decodes the answer into out
func (c *Client) makeRequest(ctx context.Context, path string, body, out interface{}) error {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiVersion, path)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key stays out of the URL: transport errors quote the full URL
	req.Header.Set("x-goog-api-key", c.apiKey)

	loggy.Debug("Sending Gemini request", "url_path", req.URL.Path, "body_bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		loggy.Error("Gemini API error response", "status", resp.Status, "body", string(bodyBytes))

		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, apiErr); err != nil || apiErr.ErrorDetail == nil {
			apiErr.ErrorDetail = &ErrorDetails{Code: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		}
		return apiErr
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	loggy.Debug("Gemini API response", "status", resp.Status, "content_length", len(bodyBytes))

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return &APIError{
			StatusCode:  resp.StatusCode,
			ErrorDetail: &ErrorDetails{Code: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)},
		}
	}

	return nil
}
