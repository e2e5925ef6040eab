// Package app provides the application initialization and lifecycle management
package app

import (
	"fmt"
	"os"

	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/llm"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/metrics"
	"github.com/tildaslashalef/codelens/internal/review"
	"github.com/urfave/cli/v2"
)

// metadataKey is where the App lives in cli.App.Metadata
const metadataKey = "app"

// App represents the application instance with its dependencies
type App struct {
	Config   *config.Config
	LLM      *llm.Factory
	Reviewer review.Reviewer
	Metrics  *metrics.Metrics
}

// Options control how the application is initialized
type Options struct {
	ConfigDir string // defaults to ~/.codelens
	EnvFile   string // defaults to <ConfigDir>/.env

	// Interactive commands own the terminal, so console log output is
	// redirected to the log file under ConfigDir.
	Interactive bool
}

// New initializes a new application instance with all its dependencies
func New(opts Options) (*App, error) {
	cfg, err := config.LoadFromEnv(opts.ConfigDir, opts.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := initLogger(cfg, opts.Interactive); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
		"provider", cfg.LLMProvider,
	)

	factory, err := llm.NewFactory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	m := metrics.New()
	m.SetBackend(factory.Provider(), factory.Model())

	loggy.Info("Application initialized successfully")
	return &App{
		Config:   cfg,
		LLM:      factory,
		Reviewer: review.NewClient(factory, factory.Model()),
		Metrics:  m,
	}, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config, interactive bool) error {
	output := cfg.Logging.Output
	if interactive && (output == "" || output == "stdout" || output == "stderr") {
		output = cfg.LogFilePath()
	}

	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// NewController starts a review session with the default language selected
func (app *App) NewController() *review.Controller {
	return review.NewController(app.Reviewer, language.Default(), review.WithObserver(app.Metrics))
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")

	if err := loggy.Close(); err != nil {
		return fmt.Errorf("failed to close log output: %w", err)
	}
	return nil
}

// Attach stores app in the CLI metadata for FromContext
func Attach(c *cli.Context, app *App) {
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metadataKey] = app
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata[metadataKey].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
