package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/logmaster/dashboard/internal/models"
)

// Component surface endpoints
const (
	EndpointSystemStatus  = "/api/v1/system/status"
	EndpointStats         = "/api/v1/stats"
	EndpointRecentLogs    = "/api/v1/logs/recent"
	EndpointLogs          = "/api/v1/logs"
	EndpointSystemMetrics = "/api/v1/system/metrics"
	EndpointFileStructure = "/api/v1/files/structure"
)

// Legacy surface endpoints
const (
	EndpointOverview        = "/api/stats/overview"
	EndpointLegacyRecent    = "/api/logs/recent"
	EndpointDevices         = "/api/devices"
	EndpointSignatures      = "/api/signatures/status"
	EndpointArchives        = "/api/archives"
	EndpointComplianceScore = "/api/compliance/score"
	EndpointServiceHealth   = "/api/system/status"
	EndpointGenerateReport  = "/api/reports/generate"
)

// DateLayout is the date format of report form fields
const DateLayout = "2006-01-02"

// Stats fetches the dashboard aggregate
func (c *Client) Stats(ctx context.Context) (*models.StatsSnapshot, error) {
	var stats models.StatsSnapshot
	if err := c.Get(ctx, EndpointStats, nil, &stats); err != nil {
		return nil, err
	}
	stats.SystemStatus = stats.SystemStatus.Normalize()
	return &stats, nil
}

// RecentLogs fetches the latest log entries for the dashboard
func (c *Client) RecentLogs(ctx context.Context) ([]models.LogEntry, error) {
	var resp models.LogsResponse
	if err := c.Get(ctx, EndpointRecentLogs, nil, &resp); err != nil {
		return nil, err
	}
	return nonNilLogs(resp.Logs), nil
}

// Logs fetches log entries matching the query
func (c *Client) Logs(ctx context.Context, query Params) (*models.LogsResponse, error) {
	var resp models.LogsResponse
	if err := c.Get(ctx, EndpointLogs, query, &resp); err != nil {
		return nil, err
	}
	resp.Logs = nonNilLogs(resp.Logs)
	return &resp, nil
}

// SystemStatus fetches the backend health and service states
func (c *Client) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	var status models.SystemStatus
	if err := c.Get(ctx, EndpointSystemStatus, nil, &status); err != nil {
		return nil, err
	}
	status.Status = status.Status.Normalize()
	return &status, nil
}

// SystemMetrics fetches host metrics of the log server
func (c *Client) SystemMetrics(ctx context.Context) (*models.SystemMetrics, error) {
	var metrics models.SystemMetrics
	if err := c.Get(ctx, EndpointSystemMetrics, nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// FileStructure fetches the log directory tree
func (c *Client) FileStructure(ctx context.Context) (*models.FileStructure, error) {
	var fs models.FileStructure
	if err := c.Get(ctx, EndpointFileStructure, nil, &fs); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Overview fetches the legacy overview statistics
func (c *Client) Overview(ctx context.Context) (*models.OverviewStats, error) {
	var stats models.OverviewStats
	if err := c.Get(ctx, EndpointOverview, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// LegacyRecentLogs fetches recent activity, optionally for a single device
func (c *Client) LegacyRecentLogs(ctx context.Context, query Params) ([]models.RecentLog, error) {
	var logs []models.RecentLog
	if err := c.Get(ctx, EndpointLegacyRecent, query, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.RecentLog{}
	}
	return logs, nil
}

// Devices fetches all registered devices
func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	if err := c.Get(ctx, EndpointDevices, nil, &devices); err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

// Signatures fetches signature verification status for the last days
func (c *Client) Signatures(ctx context.Context, days int) (*models.SignatureStatus, error) {
	params := Params{}
	if days > 0 {
		params["days"] = strconv.Itoa(days)
	}
	var status models.SignatureStatus
	if err := c.Get(ctx, EndpointSignatures, params, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Archives fetches archive summary and recent archives
func (c *Client) Archives(ctx context.Context) (*models.ArchiveInfo, error) {
	var info models.ArchiveInfo
	if err := c.Get(ctx, EndpointArchives, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ComplianceScore fetches the current compliance score
func (c *Client) ComplianceScore(ctx context.Context) (*models.ComplianceScore, error) {
	var score models.ComplianceScore
	if err := c.Get(ctx, EndpointComplianceScore, nil, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// ServiceHealth fetches the legacy flat component status map
func (c *Client) ServiceHealth(ctx context.Context) (models.ServiceHealth, error) {
	health := models.ServiceHealth{}
	if err := c.Get(ctx, EndpointServiceHealth, nil, &health); err != nil {
		return nil, err
	}
	return health, nil
}

// GenerateReport posts a report request
func (c *Client) GenerateReport(ctx context.Context, req models.ReportRequest) (*models.ReportResult, error) {
	form := url.Values{}
	form.Set("report_type", req.ReportType)
	form.Set("start_date", req.StartDate)
	form.Set("end_date", req.EndDate)

	var result models.ReportResult
	if err := c.PostForm(ctx, EndpointGenerateReport, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func nonNilLogs(logs []models.LogEntry) []models.LogEntry {
	if logs == nil {
		return []models.LogEntry{}
	}
	return logs
}
