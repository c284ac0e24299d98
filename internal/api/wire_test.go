package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/logmaster/dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Response bodies as the component API gateway writes them
var gatewayBodies = map[string]string{
	EndpointStats: `{
		"total_logs": 15234,
		"active_businesses": 4,
		"system_status": "healthy",
		"last_update": "2026-10-19T12:34:56.789012345+03:00",
		"log_volume_today": 1200,
		"log_volume_hour": 80,
		"interface_stats": {"HOTEL": 900, "general": 300},
		"ip_stats": {"192.168.1.100": 1200},
		"top_interfaces": [{"name": "HOTEL", "count": 900, "percentage": 75}],
		"system_metrics": {"cpu_usage": 5, "memory_usage": 40, "disk_usage": 10, "network_io": 1, "uptime": 0, "timestamp": "0001-01-01T00:00:00Z"}
	}`,
	EndpointSystemStatus: `{
		"status": "healthy",
		"services": {"rsyslog": "active", "postgresql": "active", "redis": "active", "elasticsearch": "active", "grafana": "active"},
		"log_directory": "/var/log/logmaster",
		"config_status": "loaded",
		"last_check": "2026-10-19T12:34:56.789012345+03:00"
	}`,
	EndpointSystemMetrics: `{
		"cpu_usage": 12.345,
		"memory_usage": 55.5,
		"memory_total": 0,
		"memory_used": 0,
		"disk_usage": 9.8,
		"disk_total": 0,
		"disk_used": 0,
		"network_bytes_in": 0,
		"network_bytes_out": 0,
		"logs_per_second": 0,
		"active_connections": 0,
		"uptime": 86461.37,
		"load_average": 0,
		"timestamp": "0001-01-01T00:00:00Z",
		"network_io": 2.5
	}`,
	EndpointFileStructure: `{
		"base_path": "/var/log/logmaster",
		"directories": [
			{"ip": "192.168.1.100", "interfaces": [
				{"name": "HOTEL", "files": ["2025-07-30.log", "2025-07-29.log"]},
				{"name": "general", "files": ["2025-07-30.log"]}
			]},
			{"ip": "192.168.1.101", "interfaces": [
				{"name": "CAFE", "files": ["2025-07-30.log"]}
			]}
		],
		"total_size": "2.4 GB",
		"file_count": 156,
		"last_updated": "2026-10-19T12:34:56.789012345+03:00"
	}`,
	EndpointLogs: `{
		"logs": [
			{"id": "192.168.1.100-HOTEL-1", "timestamp": "2026-10-19T12:30:00+03:00", "ip": "192.168.1.100", "interface": "HOTEL", "facility": "daemon", "severity": "info", "message": "DHCPACK on 10.0.0.5"}
		],
		"total": 1,
		"page": 1,
		"limit": 100
	}`,
	EndpointRecentLogs: `{
		"logs": [
			{"id": "recent-1", "timestamp": "2026-10-19T12:34:56.789012345+03:00", "ip": "192.168.1.100", "interface": "HOTEL", "facility": "daemon", "severity": "info", "message": "Real-time log entry - HOTEL interface active"}
		],
		"count": 1
	}`,
}

// Response bodies as the legacy web app writes them. Timestamps are Python
// isoformat() strings without a zone.
var legacyBodies = map[string]string{
	EndpointOverview: `{
		"total_logs": 15234,
		"active_devices": 4,
		"signed_files": 120,
		"archived_files": 30,
		"error_count": 2,
		"disk_usage": {"total": 107374182400, "used": 42949672960, "free": 64424509440, "usage_percent": 40.0},
		"last_updated": "2026-10-19T12:34:56.789012"
	}`,
	EndpointLegacyRecent: `[
		{"timestamp": "2026-10-19T12:34:56.789012", "device_id": "fw-01", "source_ip": "192.168.1.100", "message_preview": "DHCPACK on 10.0.0.5", "device_name": "Lobby"},
		{"timestamp": "2026-10-19T12:30:00", "device_id": "fw-02", "source_ip": "192.168.1.101", "message_preview": "link up", "device_name": null}
	]`,
	EndpointDevices: `[
		{"device_id": "fw-01", "name": "Lobby", "ip_address": "192.168.1.100", "location": "Hotel", "status": "active", "log_count": 1200, "last_log": "2026-10-19T12:34:56.789012"},
		{"device_id": "fw-02", "name": null, "ip_address": "192.168.1.101", "location": null, "status": "inactive", "log_count": 0, "last_log": null}
	]`,
	EndpointSignatures: `{
		"status_breakdown": [{"verification_status": "verified", "count": 110, "percentage": 91.67}],
		"daily_counts": [{"date": "2026-10-19", "count": 12}]
	}`,
	EndpointArchives: `{
		"summary": {"total_files": 1, "total_original_size": 4096, "total_compressed_size": 1024, "avg_compression_ratio": 75.0},
		"recent_archives": [
			{"original_file_path": "/var/log/logmaster/192.168.1.100/HOTEL/2026-10-18.log", "archive_file_path": "/var/archive/logmaster/2026-10-18.log.gz", "archived_at": "2026-10-19T02:00:00.123456", "original_size": 4096, "compressed_size": 1024, "compression_type": "gzip"}
		]
	}`,
	EndpointComplianceScore: `{
		"compliance_score": 98.5,
		"period_days": 30,
		"calculated_at": "2026-10-19T12:34:56.789012",
		"details": {"total_files": 120, "signed_files": 118}
	}`,
	EndpointServiceHealth: `{"service_rsyslog": "active", "service_postgresql": "active", "database": "healthy"}`,
	EndpointGenerateReport: `{
		"success": true,
		"report_type": "daily",
		"period": "2026-10-18 - 2026-10-19",
		"compliance_score": 98.5,
		"generated_at": "2026-10-19T12:34:56.789012"
	}`,
}

func newBodyClient(t *testing.T, bodies map[string]string) *Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = ts.URL
	cfg.RetryMax = 0
	client, err := New(cfg)
	require.NoError(t, err)
	return client
}

func TestGatewayBodies(t *testing.T) {
	client := newBodyClient(t, gatewayBodies)
	ctx := context.Background()

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(15234), stats.TotalLogs)
	assert.Equal(t, models.HealthHealthy, stats.SystemStatus)
	assert.Equal(t, int64(900), stats.InterfaceStats[models.InterfaceHotel])
	assert.Equal(t, 789012345, stats.LastUpdate.Nanosecond())

	status, err := client.SystemStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "active", status.Services["rsyslog"])
	assert.Equal(t, "loaded", status.ConfigStatus)

	metrics, err := client.SystemMetrics(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 86461.37, metrics.Uptime, 1e-9)
	assert.Equal(t, 2.5, metrics.NetworkIO)

	fs, err := client.FileStructure(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.4 GB", fs.TotalSize.Text)
	assert.Equal(t, int64(156), fs.FileCount)
	require.Len(t, fs.Directories, 2)
	assert.Equal(t, "2025-07-29.log", fs.Directories[0].Interfaces[0].Files[1].Name)

	logs, err := client.Logs(ctx, Params{"limit": "100"})
	require.NoError(t, err)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, int64(1), logs.Total)
	assert.Equal(t, 100, logs.Limit)

	recent, err := client.RecentLogs(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, models.InterfaceHotel, recent[0].Interface)
}

func TestLegacyBodies(t *testing.T) {
	client := newBodyClient(t, legacyBodies)
	ctx := context.Background()
	naive := time.Date(2026, 10, 19, 12, 34, 56, 789012000, time.Local)

	overview, err := client.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), overview.ActiveDevices)
	assert.Equal(t, 40.0, overview.DiskUsage.UsagePercent)
	assert.True(t, overview.LastUpdated.Equal(naive), overview.LastUpdated.String())

	recent, err := client.LegacyRecentLogs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Timestamp.Equal(naive))
	assert.Equal(t, "", recent[1].DeviceName)
	assert.Equal(t, 0, recent[1].Timestamp.Nanosecond())

	devices, err := client.Devices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	require.NotNil(t, devices[0].LastLog)
	assert.True(t, devices[0].LastLog.Equal(naive))
	assert.Nil(t, devices[1].LastLog)

	sigs, err := client.Signatures(ctx, 7)
	require.NoError(t, err)
	require.Len(t, sigs.StatusBreakdown, 1)
	assert.Equal(t, int64(12), sigs.DailyCounts[0].Count)

	archives, err := client.Archives(ctx)
	require.NoError(t, err)
	require.Len(t, archives.RecentArchives, 1)
	a := archives.RecentArchives[0]
	assert.Equal(t, "2026-10-18.log.gz", a.Name())
	assert.Equal(t, 75.0, a.Ratio())
	assert.Equal(t, 2, a.Created().Hour())

	score, err := client.ComplianceScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 98.5, score.Score)
	assert.True(t, score.CalculatedAt.Equal(naive))

	health, err := client.ServiceHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["database"])

	report, err := client.GenerateReport(ctx, models.ReportRequest{ReportType: models.ReportDaily, StartDate: "2026-10-18", EndDate: "2026-10-19"})
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, "2026-10-18 - 2026-10-19", report.Period)
	assert.True(t, report.GeneratedAt.Equal(naive))
}
