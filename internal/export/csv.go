// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     export
// Description: CSV export of the loaded log table
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/logmaster/dashboard/internal/models"
	"github.com/rs/zerolog"
)

// Header is the first line of every export
var Header = []string{"Timestamp", "IP", "Interface", "Facility", "Severity", "Message"}

// FileName returns the export file name for the given day (UTC)
func FileName(now time.Time) string {
	return fmt.Sprintf("logmaster-logs-%s.csv", now.UTC().Format("2006-01-02"))
}

// WriteCSV writes logs in table order. The message column is always quoted;
// other columns are quoted only when they contain a separator, quote or
// line break.
func WriteCSV(w io.Writer, logs []models.LogEntry) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(Header, ",")); err != nil {
		return err
	}
	for _, l := range logs {
		fields := []string{
			field(l.Timestamp.Format(time.RFC3339Nano)),
			field(l.IP),
			field(l.Interface),
			field(l.Facility),
			field(l.Severity),
			quote(l.Message),
		}
		if _, err := bw.WriteString("\n" + strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func field(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

// Exporter writes CSV files into a directory
type Exporter struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

// New creates an exporter writing into dir ("." if empty)
func New(dir string, log zerolog.Logger) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir, log: log, now: time.Now}
}

// Export writes logs to a dated file and returns its path. The file is
// written to a temporary name first and renamed on success.
func (e *Exporter) Export(logs []models.LogEntry) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(e.dir, FileName(e.now()))

	tmp, err := os.CreateTemp(e.dir, "logmaster-export-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			e.log.Warn().Err(removeErr).Str("temp_file", tmpPath).Msg("Failed to remove temp file")
		}
	}

	writeErr := WriteCSV(tmp, logs)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		cleanup()
		return "", fmt.Errorf("write csv: %w", writeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return "", fmt.Errorf("move export into place: %w", err)
	}

	e.log.Info().Str("path", path).Int("rows", len(logs)).Msg("Exported logs")
	return path, nil
}
