// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     models
// Description: Wire types of the legacy LogMaster API (/api)
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package models

import (
	"path"
	"time"
)

// Device statuses
const (
	DeviceActive   = "active"
	DeviceInactive = "inactive"
	DeviceFailed   = "failed"
	DeviceUnknown  = "unknown"
)

// DiskUsage describes the log volume
type DiskUsage struct {
	Total        int64   `json:"total"`
	Used         int64   `json:"used"`
	Free         int64   `json:"free"`
	UsagePercent float64 `json:"usage_percent"`
}

// OverviewStats is returned by /api/stats/overview
type OverviewStats struct {
	TotalLogs     int64     `json:"total_logs"`
	ActiveDevices int64     `json:"active_devices"`
	SignedFiles   int64     `json:"signed_files"`
	ArchivedFiles int64     `json:"archived_files"`
	ErrorCount    int64     `json:"error_count"`
	DiskUsage     DiskUsage `json:"disk_usage"`
	LastUpdated   Time      `json:"last_updated"`
}

// RecentLog is one row of /api/logs/recent
type RecentLog struct {
	Timestamp      Time   `json:"timestamp"`
	DeviceID       string `json:"device_id"`
	DeviceName     string `json:"device_name,omitempty"`
	SourceIP       string `json:"source_ip"`
	MessagePreview string `json:"message_preview"`
}

// Device is a registered log source
type Device struct {
	DeviceID  string `json:"device_id"`
	Name      string `json:"name,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	Location  string `json:"location,omitempty"`
	Status    string `json:"status"`
	LogCount  int64  `json:"log_count"`
	LastLog   *Time  `json:"last_log,omitempty"`
}

// StatusBreakdown is one verification status bucket
type StatusBreakdown struct {
	VerificationStatus string  `json:"verification_status"`
	Count              int64   `json:"count"`
	Percentage         float64 `json:"percentage"`
}

// DailyCount is the number of signatures created on a day
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// SignatureStatus is returned by /api/signatures/status
type SignatureStatus struct {
	StatusBreakdown []StatusBreakdown `json:"status_breakdown"`
	DailyCounts     []DailyCount      `json:"daily_counts"`
}

// ArchiveSummary aggregates all archives
type ArchiveSummary struct {
	TotalFiles          int64   `json:"total_files"`
	TotalOriginalSize   int64   `json:"total_original_size"`
	TotalCompressedSize int64   `json:"total_compressed_size"`
	AvgCompressionRatio float64 `json:"avg_compression_ratio"`
}

// Archive is a single archived log bundle. The archive_records rows carry
// paths and archived_at instead of file_name and created_at.
type Archive struct {
	FileName         string  `json:"file_name,omitempty"`
	OriginalFilePath string  `json:"original_file_path,omitempty"`
	ArchiveFilePath  string  `json:"archive_file_path,omitempty"`
	CompressionType  string  `json:"compression_type,omitempty"`
	OriginalSize     int64   `json:"original_size"`
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio,omitempty"`
	CreatedAt        Time    `json:"created_at"`
	ArchivedAt       *Time   `json:"archived_at,omitempty"`
}

// Name is the file name, or the base name of the archive path
func (a Archive) Name() string {
	for _, s := range []string{a.FileName, a.ArchiveFilePath, a.OriginalFilePath} {
		if s != "" {
			return path.Base(s)
		}
	}
	return ""
}

// Created is created_at, or archived_at when only that is set
func (a Archive) Created() time.Time {
	if a.CreatedAt.IsZero() && a.ArchivedAt != nil {
		return a.ArchivedAt.Time
	}
	return a.CreatedAt.Time
}

// Ratio is the saved share in percent, derived from the sizes when not sent
func (a Archive) Ratio() float64 {
	if a.CompressionRatio != 0 || a.OriginalSize <= 0 {
		return a.CompressionRatio
	}
	return (1 - float64(a.CompressedSize)/float64(a.OriginalSize)) * 100
}

// ArchiveInfo is returned by /api/archives
type ArchiveInfo struct {
	Summary        ArchiveSummary `json:"summary"`
	RecentArchives []Archive      `json:"recent_archives"`
}

// ComplianceScore is returned by /api/compliance/score
type ComplianceScore struct {
	Score        float64        `json:"compliance_score"`
	PeriodDays   int            `json:"period_days"`
	CalculatedAt Time           `json:"calculated_at"`
	Details      map[string]any `json:"details,omitempty"`
}

// ServiceHealth is the flat component map of /api/system/status
type ServiceHealth map[string]string

// Report types accepted by /api/reports/generate
const (
	ReportDaily      = "daily"
	ReportWeekly     = "weekly"
	ReportMonthly    = "monthly"
	ReportCompliance = "compliance"
)

// ReportRequest is posted as a form to /api/reports/generate
type ReportRequest struct {
	ReportType string
	StartDate  string
	EndDate    string
}

// ReportResult is the response of a report generation
type ReportResult struct {
	Success         bool    `json:"success"`
	ReportType      string  `json:"report_type"`
	Period          string  `json:"period"`
	ComplianceScore float64 `json:"compliance_score"`
	GeneratedAt     Time    `json:"generated_at"`
	Error           string  `json:"error,omitempty"`
}
