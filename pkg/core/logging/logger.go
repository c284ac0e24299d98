// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     logging
// Description: Process-wide zerolog logger and level helpers
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Zerolog converts the level to its zerolog counterpart
func (l Level) Zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
)

// SetLogger replaces the process-wide logger
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Get returns the process-wide logger
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Component returns the process-wide logger tagged with a component name
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Info starts an info event on the process-wide logger.
func Info() *zerolog.Event {
	l := Get()
	return l.Info()
}

// Warn starts a warning event on the process-wide logger.
func Warn() *zerolog.Event {
	l := Get()
	return l.Warn()
}

// Error starts an error event on the process-wide logger.
func Error() *zerolog.Event {
	l := Get()
	return l.Error()
}

// Debug starts a debug event on the process-wide logger.
func Debug() *zerolog.Event {
	l := Get()
	return l.Debug()
}
