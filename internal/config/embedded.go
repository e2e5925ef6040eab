package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tildaslashalef/codelens/internal/loggy"
)

//go:embed env.sample
var configFS embed.FS

const sampleEnvFile = "env.sample"

// WriteSampleEnv puts the sample .env into configDir. An existing file is
// left alone unless overwrite is set, in which case it is backed up first.
// It reports whether a file was written.
func WriteSampleEnv(configDir string, overwrite bool) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	target := filepath.Join(configDir, ".env")
	if existing, err := os.ReadFile(target); err == nil {
		if !overwrite {
			return false, nil
		}
		backup := fmt.Sprintf("%s.%s.bak", target, time.Now().Format("2006-01-02"))
		if err := os.WriteFile(backup, existing, 0o600); err != nil {
			return false, fmt.Errorf("failed to write backup file: %w", err)
		}
		loggy.Info("Created backup of existing env file", "original", target, "backup", backup)
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", target, err)
	}

	data, err := configFS.ReadFile(sampleEnvFile)
	if err != nil {
		return false, err
	}
	// the file will hold an API key
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", target, err)
	}

	loggy.Info("Wrote sample env file", "target", target)
	return true, nil
}
