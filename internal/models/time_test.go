package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2026-10-19T12:34:56Z"`, time.Date(2026, 10, 19, 12, 34, 56, 0, time.UTC)},
		{"rfc3339 nano offset", `"2026-10-19T12:34:56.5+03:00"`, time.Date(2026, 10, 19, 9, 34, 56, 5e8, time.UTC)},
		{"naive with micros", `"2026-10-19T12:34:56.789012"`, time.Date(2026, 10, 19, 12, 34, 56, 789012000, time.Local)},
		{"naive without fraction", `"2026-10-19T12:34:56"`, time.Date(2026, 10, 19, 12, 34, 56, 0, time.Local)},
		{"naive with space", `"2026-10-19 12:34:56.789012"`, time.Date(2026, 10, 19, 12, 34, 56, 789012000, time.Local)},
		{"null", `null`, time.Time{}},
		{"empty string", `""`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			if !got.Equal(tt.want) {
				t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.input, got.Time, tt.want)
			}
		})
	}
}

func TestTime_UnmarshalJSONRejects(t *testing.T) {
	for _, input := range []string{`"yesterday"`, `"19.10.2026 12:34"`, `1760870096`} {
		var got Time
		assert.Error(t, json.Unmarshal([]byte(input), &got), input)
	}
}

func TestTime_RoundTripsThroughRFC3339(t *testing.T) {
	in := NewTime(time.Date(2026, 10, 19, 12, 34, 56, 789012000, time.UTC))

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-19T12:34:56.789012Z"`, string(data))

	var out Time
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Equal(out.Time))
}

func TestLegacyPayloads_DecodeNaiveTimestamps(t *testing.T) {
	overview := `{
		"total_logs": 15234,
		"active_devices": 4,
		"signed_files": 120,
		"archived_files": 30,
		"error_count": 2,
		"disk_usage": {"total": 1000, "used": 400, "free": 600, "usage_percent": 40.0},
		"last_updated": "2026-10-19T12:34:56.789012"
	}`
	var o OverviewStats
	require.NoError(t, json.Unmarshal([]byte(overview), &o))
	assert.Equal(t, 789012000, o.LastUpdated.Nanosecond())
	assert.Equal(t, time.Local, o.LastUpdated.Location())

	devices := `[
		{"device_id": "fw-01", "name": "Lobby", "ip_address": "192.168.1.100", "location": "Hotel", "status": "active", "log_count": 10, "last_log": "2026-10-19T12:00:00.000001"},
		{"device_id": "fw-02", "name": null, "ip_address": "192.168.1.101", "location": null, "status": "inactive", "log_count": 0, "last_log": null}
	]`
	var ds []Device
	require.NoError(t, json.Unmarshal([]byte(devices), &ds))
	require.Len(t, ds, 2)
	require.NotNil(t, ds[0].LastLog)
	assert.Equal(t, 12, ds[0].LastLog.Hour())
	assert.Nil(t, ds[1].LastLog)

	var report ReportResult
	require.NoError(t, json.Unmarshal([]byte(`{
		"success": true,
		"report_type": "daily",
		"period": "2026-10-18 - 2026-10-19",
		"compliance_score": 98.5,
		"generated_at": "2026-10-19T12:34:56.789012"
	}`), &report))
	assert.Equal(t, 2026, report.GeneratedAt.Year())
}
