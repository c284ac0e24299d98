package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/logmaster/dashboard/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2026, 10, 19, 14, 5, 0, 0, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "logmaster-logs-2026-10-19.csv", FileName(ts))

	istanbul := time.FixedZone("TRT", 3*60*60)
	late := time.Date(2026, 10, 20, 1, 0, 0, 0, istanbul)
	assert.Equal(t, "logmaster-logs-2026-10-19.csv", FileName(late))
}

func TestWriteCSV(t *testing.T) {
	logs := []models.LogEntry{
		{Timestamp: ts, IP: "10.0.0.1", Interface: "HOTEL", Facility: "auth", Severity: "error", Message: `login "admin" failed`},
		{Timestamp: ts, IP: "10.0.0.2", Interface: "CAFE", Facility: "daemon, local", Severity: "info", Message: ""},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, logs))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Timestamp,IP,Interface,Facility,Severity,Message", lines[0])
	assert.Equal(t, `2026-10-19T14:05:00Z,10.0.0.1,HOTEL,auth,error,"login ""admin"" failed"`, lines[1])
	assert.Equal(t, `2026-10-19T14:05:00Z,10.0.0.2,CAFE,"daemon, local",info,""`, lines[2])
}

func TestWriteCSV_KeepsSubSeconds(t *testing.T) {
	logs := []models.LogEntry{
		{Timestamp: ts.Add(123456 * time.Microsecond), IP: "10.0.0.1", Interface: "HOTEL", Severity: "info", Message: "first"},
		{Timestamp: ts.Add(654321 * time.Microsecond), IP: "10.0.0.1", Interface: "HOTEL", Severity: "info", Message: "second"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, logs))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2026-10-19T14:05:00.123456Z,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2026-10-19T14:05:00.654321Z,"), lines[2])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Timestamp,IP,Interface,Facility,Severity,Message", buf.String())
}

func TestExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := New(dir, zerolog.Nop())
	e.now = func() time.Time { return ts }

	path, err := e.Export([]models.LogEntry{{Timestamp: ts, IP: "10.0.0.1", Message: "ok"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logmaster-logs-2026-10-19.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Timestamp,IP"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}
