package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/codelens/internal/review"
	"github.com/urfave/cli/v2"
)

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE_PATH", "")
	t.Setenv("CODELENS_LLM_PROVIDER", "ollama")
	t.Setenv("CODELENS_OLLAMA_MODEL", "gemma3")
	t.Setenv("CODELENS_LOG_OUTPUT", "stdout")
	t.Setenv("CODELENS_LOG_LEVEL", "info")
}

func TestNewWiresDependencies(t *testing.T) {
	setEnv(t)

	a, err := New(Options{ConfigDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	assert.Equal(t, "ollama", a.LLM.Provider())
	assert.Equal(t, "gemma3", a.LLM.Model())
	assert.NotNil(t, a.Reviewer)
	assert.NotNil(t, a.Metrics)

	ctrl := a.NewController()
	st := ctrl.State()
	assert.Equal(t, review.PhaseIdle, st.Phase)
	assert.Equal(t, "javascript", st.Language.ID)
}

func TestNewInteractiveLogsToFile(t *testing.T) {
	setEnv(t)
	dir := t.TempDir()

	a, err := New(Options{ConfigDir: dir, Interactive: true})
	require.NoError(t, err)
	require.NoError(t, a.Shutdown())

	data, err := os.ReadFile(filepath.Join(dir, "codelens.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Application initialized successfully")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	setEnv(t)
	t.Setenv("CODELENS_LLM_PROVIDER", "nope")

	_, err := New(Options{ConfigDir: t.TempDir()})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	cliApp := cli.NewApp()
	c := cli.NewContext(cliApp, flag.NewFlagSet("test", flag.ContinueOnError), nil)

	_, err := FromContext(c)
	assert.Error(t, err)

	want := &App{}
	Attach(c, want)
	got, err := FromContext(c)
	require.NoError(t, err)
	assert.Same(t, want, got)
}
