package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLevel_Zerolog(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, LevelDebug.Zerolog())
	assert.Equal(t, zerolog.InfoLevel, LevelInfo.Zerolog())
	assert.Equal(t, zerolog.WarnLevel, LevelWarn.Zerolog())
	assert.Equal(t, zerolog.ErrorLevel, LevelError.Zerolog())
	assert.Equal(t, zerolog.InfoLevel, Level(42).Zerolog())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("logmaster")

	assert.Equal(t, "logmaster", cfg.ServiceName)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.Empty(t, cfg.File)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := NewLogger(LoggerConfig{
		ServiceName: "logmaster",
		Level:       "debug",
		Format:      FormatJSON,
		Output:      &buf,
	})
	require.NoError(t, err)
	defer closer.Close()

	l.Debug().Str("endpoint", "/api/v1/stats").Msg("fetch")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "logmaster", entry["service"])
	assert.Equal(t, "/api/v1/stats", entry["endpoint"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := NewLogger(LoggerConfig{Level: "warn", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "logmaster.log")

	l, closer, err := NewLogger(LoggerConfig{Level: "info", File: path})
	require.NoError(t, err)

	l.Info().Msg("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	l, _, err := NewLogger(LoggerConfig{
		Format:            FormatJSON,
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})
	require.NoError(t, err)

	l.Info().Msg("twice")
	assert.Contains(t, primary.String(), "twice")
	assert.Contains(t, extra.String(), "twice")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := Get()
	defer SetLogger(prev)

	SetLogger(zerolog.New(&buf))
	l := Component("poller")
	l.Info().Msg("tick")

	assert.True(t, strings.Contains(buf.String(), `"component":"poller"`))
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	cl := NewCronLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	cl.Info("schedule", "entry", 3, "now", "x")
	assert.Contains(t, buf.String(), `"entry":3`)
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	cl.Error(errors.New("boom"), "panic", "job", "stats")
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"job":"stats"`)
}

func TestToFields(t *testing.T) {
	assert.Nil(t, toFields())
	assert.Equal(t, map[string]interface{}{"a": 1}, toFields("a", 1, "dangling"))
	assert.Equal(t, map[string]interface{}{"b": 2}, toFields(7, 1, "b", 2))
}
