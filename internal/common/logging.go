// Package common provides logging utilities for Folio
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger to provide consistent logging across the application
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a console logger with the specified level
func NewLogger(level string) *Logger {
	return NewLoggerWithOutput(level, os.Stderr)
}

// NewLoggerWithOutput creates a logger writing to the given output
func NewLoggerWithOutput(level string, output io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	console := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05",
	}

	logger := zerolog.New(console).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger}
}

// NewLoggerFromConfig creates a logger honoring the logging config;
// when a file path is set, output goes to both console and file.
func NewLoggerFromConfig(cfg LoggingConfig) (*Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	var writer io.Writer = console
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(console, file)
	}

	logger := zerolog.New(writer).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger}, nil
}

// NewSilentLogger creates a logger that discards all output, for tests
func NewSilentLogger() *Logger {
	logger := zerolog.New(io.Discard).Level(zerolog.Disabled)
	return &Logger{Logger: logger}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
