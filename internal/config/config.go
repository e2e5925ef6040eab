// Package config loads codelens settings from the environment (and optional
// .env files) once at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted by CODELENS_LLM_PROVIDER
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOllama = "ollama"
)

// Config represents the complete application configuration
type Config struct {
	LLMProvider string // Which backend answers review prompts (gemini, claude or ollama)
	Gemini      GeminiConfig
	Claude      ClaudeConfig
	Ollama      OllamaConfig
	Server      ServerConfig
	Logging     LoggingConfig
	Dir         string // Directory holding the .env file and the TUI log
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey     string // Static credential; empty means every review fails with a configuration error
	BaseURL    string
	APIVersion string // v1 or v1beta
	Model      string

	Timeout time.Duration

	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// ClaudeConfig holds Anthropic Messages API configuration
type ClaudeConfig struct {
	APIKey     string
	BaseURL    string
	APIVersion string // anthropic-version header
	Model      string

	Timeout time.Duration

	MaxTokens   int
	Temperature float64
}

// OllamaConfig holds configuration for a local Ollama server
type OllamaConfig struct {
	Endpoint    string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// ServerConfig holds settings for the browser surface
type ServerConfig struct {
	Addr         string
	SessionTTL   time.Duration // Idle browser sessions are dropped after this long
	ReadTimeout  time.Duration
	WriteTimeout time.Duration // Must outlast a model call
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error, none
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool
	TimeFormat string
}

// Model returns the model name configured for the active provider.
func (c *Config) Model() string {
	switch c.LLMProvider {
	case ProviderClaude:
		return c.Claude.Model
	case ProviderOllama:
		return c.Ollama.Model
	default:
		return c.Gemini.Model
	}
}

// HasCredential reports whether the active provider can be called. Ollama
// needs no key, only an endpoint.
func (c *Config) HasCredential() bool {
	switch c.LLMProvider {
	case ProviderClaude:
		return c.Claude.APIKey != ""
	case ProviderOllama:
		return c.Ollama.Endpoint != ""
	default:
		return c.Gemini.APIKey != ""
	}
}

// CredentialEnvVar names the variable a user has to set for the active provider.
func (c *Config) CredentialEnvVar() string {
	switch c.LLMProvider {
	case ProviderClaude:
		return "CODELENS_CLAUDE_API_KEY"
	case ProviderOllama:
		return "CODELENS_OLLAMA_ENDPOINT"
	default:
		return "CODELENS_GEMINI_API_KEY"
	}
}

// Validate checks if the configuration is valid. A missing API key is not a
// validation error: it surfaces on each review attempt instead.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return fmt.Errorf("LLM config: %w", err)
	}

	if err := c.validateGemini(); err != nil {
		return fmt.Errorf("Gemini config: %w", err)
	}

	if err := c.validateServer(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLMProvider {
	case ProviderGemini, ProviderClaude, ProviderOllama:
	default:
		return fmt.Errorf("unknown provider %q (must be gemini, claude or ollama)", c.LLMProvider)
	}

	if c.Model() == "" {
		return fmt.Errorf("model for provider %s cannot be empty", c.LLMProvider)
	}
	return nil
}

func (c *Config) validateGemini() error {
	switch {
	case c.Gemini.APIVersion != "v1" && c.Gemini.APIVersion != "v1beta":
		return fmt.Errorf("api version %q is neither v1 nor v1beta", c.Gemini.APIVersion)
	case c.Gemini.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Gemini.Timeout)
	case c.Gemini.MaxTokens < 0:
		return fmt.Errorf("max tokens cannot be negative, got %d", c.Gemini.MaxTokens)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("address cannot be empty")
	}

	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("read and write timeouts must be positive")
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "none":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// High enough that nothing is ever emitted
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

// getEnvString returns the variable's value, or defaultValue when unset
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnv parses the variable with parse. Unset, empty and malformed values
// all fall back to defaultValue.
func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	parsed, err := parse(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	return getEnv(key, defaultValue, strconv.Atoi)
}

func getEnvBool(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, strconv.ParseBool)
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnv(key, defaultValue, time.ParseDuration)
}

func getEnvFloat(key string, defaultValue float64) float64 {
	return getEnv(key, defaultValue, func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
}

// getTimeFormat converts a named time format to its layout string
func getTimeFormat(name string) string {
	switch name {
	case "RFC3339":
		return time.RFC3339
	case "RFC3339Nano":
		return time.RFC3339Nano
	case "Kitchen":
		return time.Kitchen
	case "DateTime":
		return time.DateTime
	case "TimeOnly":
		return time.TimeOnly
	default:
		return name
	}
}
