package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvFloat(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue float64
		expected     float64
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 0.2,
			expected:     0.2,
		},
		{
			name:         "env set to 0.7, return 0.7",
			envValue:     "0.7",
			defaultValue: 0.2,
			expected:     0.7,
		},
		{
			name:         "env set to invalid value, return default",
			envValue:     "invalid",
			defaultValue: 0.2,
			expected:     0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_FLOAT_VALUE"
			if tt.envValue != "" {
				t.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}

			assert.Equal(t, tt.expected, getEnvFloat(key, tt.defaultValue))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_VALUE", "45s")
	assert.Equal(t, 45*time.Second, getEnvDuration("TEST_DURATION_VALUE", time.Minute))

	t.Setenv("TEST_DURATION_VALUE", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("TEST_DURATION_VALUE", time.Minute))
}

func TestGetEnvBoolAndInt(t *testing.T) {
	t.Setenv("TEST_BOOL_VALUE", "true")
	t.Setenv("TEST_INT_VALUE", "12")

	assert.True(t, getEnvBool("TEST_BOOL_VALUE", false))
	assert.Equal(t, 12, getEnvInt("TEST_INT_VALUE", 3))
	assert.Equal(t, 3, getEnvInt("TEST_INT_MISSING", 3))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("whatever"))
	assert.Greater(t, ParseLogLevel("none"), slog.LevelError)
}

func clearCodelensEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "CODELENS_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	t.Setenv("ENV_FILE_PATH", "")
	os.Unsetenv("ENV_FILE_PATH")
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearCodelensEnv(t)
	dir := t.TempDir()

	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model())
	assert.Equal(t, "v1beta", cfg.Gemini.APIVersion)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "codelens.log"), cfg.LogFilePath())

	// A missing key is reported per review, not at load time
	assert.False(t, cfg.HasCredential())
	assert.Equal(t, "CODELENS_GEMINI_API_KEY", cfg.CredentialEnvVar())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearCodelensEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"CODELENS_LLM_PROVIDER=claude\nCODELENS_CLAUDE_API_KEY=sk-test\nCODELENS_CLAUDE_MODEL=claude-test\n",
	), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CODELENS_LLM_PROVIDER")
		os.Unsetenv("CODELENS_CLAUDE_API_KEY")
		os.Unsetenv("CODELENS_CLAUDE_MODEL")
	})

	cfg, err := LoadFromEnv(dir, "")
	require.NoError(t, err)

	assert.Equal(t, ProviderClaude, cfg.LLMProvider)
	assert.Equal(t, "claude-test", cfg.Model())
	assert.True(t, cfg.HasCredential())
}

func TestLoadFromEnvCustomFileMissing(t *testing.T) {
	clearCodelensEnv(t)
	t.Setenv("ENV_FILE_PATH", filepath.Join(t.TempDir(), "nope.env"))

	_, err := LoadFromEnv(t.TempDir(), "")
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		LLMProvider: ProviderGemini,
		Gemini: GeminiConfig{
			APIVersion: "v1beta",
			Model:      "gemini-2.5-flash",
			Timeout:    time.Minute,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			SessionTTL:   time.Minute,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.LLMProvider = "bard" }, wantErr: "unknown provider"},
		{name: "empty model", mutate: func(c *Config) { c.Gemini.Model = "" }, wantErr: "model"},
		{name: "bad api version", mutate: func(c *Config) { c.Gemini.APIVersion = "v2" }, wantErr: "neither v1 nor v1beta"},
		{name: "zero timeout", mutate: func(c *Config) { c.Gemini.Timeout = 0 }, wantErr: "timeout"},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "address"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "invalid log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHasCredentialPerProvider(t *testing.T) {
	cfg := validConfig()

	cfg.LLMProvider = ProviderOllama
	cfg.Ollama.Endpoint = "http://localhost:11434"
	assert.True(t, cfg.HasCredential(), "ollama only needs an endpoint")

	cfg.LLMProvider = ProviderClaude
	assert.False(t, cfg.HasCredential())
	assert.Equal(t, "CODELENS_CLAUDE_API_KEY", cfg.CredentialEnvVar())
}

func TestWriteSampleEnv(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteSampleEnv(dir, false)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "CODELENS_GEMINI_API_KEY=")

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteSampleEnvKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("CODELENS_GEMINI_API_KEY=mine\n"), 0o600))

	written, err := WriteSampleEnv(dir, false)
	require.NoError(t, err)
	assert.False(t, written)
	data, _ := os.ReadFile(envPath)
	assert.Equal(t, "CODELENS_GEMINI_API_KEY=mine\n", string(data))

	written, err = WriteSampleEnv(dir, true)
	require.NoError(t, err)
	assert.True(t, written)

	backups, err := filepath.Glob(envPath + ".*.bak")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, _ = os.ReadFile(backups[0])
	assert.Equal(t, "CODELENS_GEMINI_API_KEY=mine\n", string(data))
}
