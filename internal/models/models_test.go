package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_Normalize(t *testing.T) {
	tests := []struct {
		in   Health
		want Health
	}{
		{HealthHealthy, HealthHealthy},
		{HealthWarning, HealthWarning},
		{HealthError, HealthError},
		{"", HealthUnknown},
		{"degraded", HealthUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestSize_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Size
	}{
		{"number", `{"total_size": 2048}`, Size{Bytes: 2048}},
		{"numeric string", `{"total_size": "4096"}`, Size{Bytes: 4096, Text: "4096"}},
		{"formatted string", `{"total_size": "0 GB"}`, Size{Text: "0 GB"}},
		{"null", `{"total_size": null}`, Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fs FileStructure
			require.NoError(t, json.Unmarshal([]byte(tt.input), &fs))
			assert.Equal(t, tt.want, fs.TotalSize)
		})
	}
}

func TestSize_UnmarshalJSONRejectsObjects(t *testing.T) {
	var fs FileStructure
	err := json.Unmarshal([]byte(`{"total_size": {"bytes": 1}}`), &fs)
	assert.Error(t, err)
}

func TestStatsSnapshot_Decode(t *testing.T) {
	payload := `{
		"total_logs": 1234567,
		"active_businesses": 12,
		"system_status": "healthy",
		"interface_stats": {"HOTEL": 10, "CAFE": 5},
		"ip_stats": {"10.0.0.1": 7},
		"system_metrics": {"cpu_usage": 12.5, "memory_usage": 40, "disk_usage": 70, "network_io": 1.5, "uptime": 3600},
		"last_update": "2026-10-19T10:00:00Z"
	}`

	var stats StatsSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &stats))

	assert.Equal(t, int64(1234567), stats.TotalLogs)
	assert.Equal(t, HealthHealthy, stats.SystemStatus)
	assert.Equal(t, int64(10), stats.InterfaceStats[InterfaceHotel])
	assert.Equal(t, 12.5, stats.SystemMetrics.CPUUsage)
	assert.Equal(t, 3600.0, stats.SystemMetrics.Uptime)
}

func TestSystemMetrics_DecodeFractionalUptime(t *testing.T) {
	payload := `{"cpu_usage": 12.5, "memory_usage": 45.2, "disk_usage": 67.8, "network_io": 1024.5, "uptime": 86461.37}`

	var m SystemMetrics
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	assert.InDelta(t, 86461.37, m.Uptime, 1e-9)
	assert.Equal(t, 1024.5, m.NetworkIO)
}

func TestFileStructure_DecodeMixedFiles(t *testing.T) {
	payload := `{
		"base_path": "/var/log/logmaster",
		"total_size": "2.4 GB",
		"file_count": 3,
		"directories": [
			{"ip": "192.168.1.100", "interfaces": [
				{"name": "HOTEL", "files": ["2025-07-30.log", {"name": "2025-07-29.log", "size": 512}]}
			]}
		]
	}`

	var fs FileStructure
	require.NoError(t, json.Unmarshal([]byte(payload), &fs))
	require.Len(t, fs.Directories, 1)

	files := fs.Directories[0].Interfaces[0].Files
	require.Len(t, files, 2)
	assert.Equal(t, "2025-07-30.log", files[0].Name)
	assert.Equal(t, "2025-07-29.log", files[1].Name)
	assert.Equal(t, int64(512), files[1].Size)
	assert.Equal(t, "2.4 GB", fs.TotalSize.Text)
}
