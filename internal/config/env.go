package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDirName is the directory under the user's home holding .env and logs
const DefaultDirName = ".codelens"

// LoadFromEnv loads configuration from environment variables.
//
// .env lookup order: ENV_FILE_PATH if set (must exist), then envFile (or
// <configDir>/.env when envFile is empty), then ./.env. Values already in the
// process environment are never overwritten by a file.
func LoadFromEnv(configDir, envFile string) (*Config, error) {
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, DefaultDirName)
	}

	if envFile == "" {
		envFile = filepath.Join(configDir, ".env")
	}

	if custom := getEnvString("ENV_FILE_PATH", ""); custom != "" {
		if err := godotenv.Load(custom); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", custom, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		_ = godotenv.Load() // ./.env is optional
	}

	cfg := &Config{
		Dir:         configDir,
		LLMProvider: getEnvString("CODELENS_LLM_PROVIDER", ProviderGemini),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:      getEnvString("CODELENS_GEMINI_API_KEY", ""),
		BaseURL:     getEnvString("CODELENS_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		APIVersion:  getEnvString("CODELENS_GEMINI_API_VERSION", "v1beta"),
		Model:       getEnvString("CODELENS_GEMINI_MODEL", "gemini-2.5-flash"),
		Timeout:     getEnvDuration("CODELENS_GEMINI_TIMEOUT", 120*time.Second),
		MaxTokens:   getEnvInt("CODELENS_GEMINI_MAX_TOKENS", 0),
		Temperature: getEnvFloat("CODELENS_GEMINI_TEMPERATURE", 0),
		TopP:        getEnvFloat("CODELENS_GEMINI_TOP_P", 0),
		TopK:        getEnvInt("CODELENS_GEMINI_TOP_K", 0),
	}

	cfg.Claude = ClaudeConfig{
		APIKey:      getEnvString("CODELENS_CLAUDE_API_KEY", ""),
		BaseURL:     getEnvString("CODELENS_CLAUDE_BASE_URL", "https://api.anthropic.com"),
		APIVersion:  getEnvString("CODELENS_CLAUDE_API_VERSION", "2023-06-01"),
		Model:       getEnvString("CODELENS_CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		Timeout:     getEnvDuration("CODELENS_CLAUDE_TIMEOUT", 120*time.Second),
		MaxTokens:   getEnvInt("CODELENS_CLAUDE_MAX_TOKENS", 4096),
		Temperature: getEnvFloat("CODELENS_CLAUDE_TEMPERATURE", 0),
	}

	cfg.Ollama = OllamaConfig{
		Endpoint:    getEnvString("CODELENS_OLLAMA_ENDPOINT", "http://localhost:11434"),
		Model:       getEnvString("CODELENS_OLLAMA_MODEL", "gemma3"),
		Timeout:     getEnvDuration("CODELENS_OLLAMA_TIMEOUT", 600*time.Second),
		Temperature: getEnvFloat("CODELENS_OLLAMA_TEMPERATURE", 0),
	}

	cfg.Server = ServerConfig{
		Addr:         getEnvString("CODELENS_SERVER_ADDR", ":8080"),
		SessionTTL:   getEnvDuration("CODELENS_SERVER_SESSION_TTL", 30*time.Minute),
		ReadTimeout:  getEnvDuration("CODELENS_SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("CODELENS_SERVER_WRITE_TIMEOUT", 180*time.Second),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("CODELENS_LOG_LEVEL", "info"),
		Format:     getEnvString("CODELENS_LOG_FORMAT", "text"),
		Output:     getEnvString("CODELENS_LOG_OUTPUT", "stdout"),
		AddSource:  getEnvBool("CODELENS_LOG_ADD_SOURCE", false),
		TimeFormat: getTimeFormat(getEnvString("CODELENS_LOG_TIME_FORMAT", "RFC3339")),
	}

	return cfg, cfg.Validate()
}

// LogFilePath is where interactive modes write logs when the configured output
// would collide with the terminal UI.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Dir, "codelens.log")
}
