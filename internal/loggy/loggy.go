// Package loggy wraps log/slog with a process-wide logger, caller attribution
// and a few context helpers used by the review pipeline.
package loggy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// Config configures the logger
type Config struct {
	Level      slog.Level
	Format     string // "json" or "text"
	Output     string // "stdout", "stderr", or a file path
	AddSource  bool   // Include caller file:line in every record
	TimeFormat string // Layout for the time attribute (empty keeps slog's default)
}

// DefaultConfig returns a default configuration for the logger
func DefaultConfig() Config {
	return Config{
		Level:      slog.LevelInfo,
		Format:     "text",
		Output:     "stdout",
		AddSource:  true,
		TimeFormat: time.RFC3339,
	}
}

// Logger wraps slog.Logger so records carry the caller of the loggy function
// rather than the wrapper itself.
type Logger struct {
	slogger *slog.Logger
	closer  io.Closer
}

// New builds a logger from cfg without touching the global instance.
func New(cfg Config) (*Logger, error) {
	output, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}
	if cfg.TimeFormat != "" {
		layout := cfg.TimeFormat
		opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(a.Key, t.Format(layout))
				}
			}
			return a
		}
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{slogger: slog.New(handler), closer: closer}, nil
}

// NewWithHandler wraps an existing slog handler. Tests use it to capture output.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{slogger: slog.New(h)}
}

// Init initializes the global logger. On failure a no-op logger is installed
// so that callers can keep logging safely.
func Init(cfg Config) error {
	logger, err := New(cfg)
	if err != nil {
		NewNoopLogger()
		return err
	}
	SetGlobalLogger(logger)
	return nil
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, file, nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Close releases the global logger's output file, if it owns one.
func Close() error {
	l := GetGlobalLogger()
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// NewNoopLogger creates and sets a logger that discards all output, useful for testing
func NewNoopLogger() *Logger {
	noop := NewWithHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	SetGlobalLogger(noop)
	return noop
}

// log emits a record whose source points at the function skip frames above it.
func (l *Logger) log(ctx context.Context, level slog.Level, skip int, msg string, args ...any) {
	if l == nil || l.slogger == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.slogger.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if id := GetRequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	r.Add(args...)
	_ = l.slogger.Handler().Handle(ctx, r)
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	GetGlobalLogger().log(context.Background(), slog.LevelDebug, 3, msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	GetGlobalLogger().log(context.Background(), slog.LevelInfo, 3, msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	GetGlobalLogger().log(context.Background(), slog.LevelWarn, 3, msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	GetGlobalLogger().log(context.Background(), slog.LevelError, 3, msg, args...)
}

// ErrorContext logs at error level and tags the record with the request ID
// carried by ctx.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).log(ctx, slog.LevelError, 3, msg, args...)
}

// InfoContext is the info-level counterpart of ErrorContext.
func InfoContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).log(ctx, slog.LevelInfo, 3, msg, args...)
}

// DebugContext logs at debug level with the request ID from ctx
func DebugContext(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).log(ctx, slog.LevelDebug, 3, msg, args...)
}

// With returns a new Logger with the given attributes
func With(args ...any) *Logger {
	return GetGlobalLogger().With(args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, 3, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, 3, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, 3, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, 3, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.slogger == nil {
		return l
	}
	return &Logger{slogger: l.slogger.With(args...)}
}

// WithError adds error details to a logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error(), "error_type", fmt.Sprintf("%T", err))
}
