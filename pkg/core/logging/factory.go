// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating zerolog loggers
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, added as the "service" field
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "json" or "console" (default: console)
	Format string

	// Output writer (default: stderr). Ignored when File is set.
	Output io.Writer

	// File to append to instead of Output
	File string

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      FormatConsole,
	}
}

// NewLogger creates a zerolog logger. The returned closer releases the log
// file, if any, and is never nil.
func NewLogger(cfg LoggerConfig) (zerolog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.File != "" {
		path := os.ExpandEnv(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
		closer = f
	}

	if cfg.Format != FormatJSON {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    cfg.File != "",
		}
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = zerolog.MultiLevelWriter(writers...)
	}

	ctx := zerolog.New(output).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}

	return ctx.Logger(), closer, nil
}

// NewSimpleLogger creates a console logger on stderr
func NewSimpleLogger(serviceName string) zerolog.Logger {
	l, _, _ := NewLogger(DefaultLoggerConfig(serviceName))
	return l
}

// parseLevel converts a string level to a zerolog level
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
