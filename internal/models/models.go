// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     models
// Description: Wire types of the LogMaster component API (/api/v1)
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Health is the overall backend health reported by the API
type Health string

const (
	HealthHealthy Health = "healthy"
	HealthWarning Health = "warning"
	HealthError   Health = "error"
	HealthUnknown Health = "unknown"
)

// Normalize maps anything outside the known set to HealthUnknown
func (h Health) Normalize() Health {
	switch h {
	case HealthHealthy, HealthWarning, HealthError:
		return h
	default:
		return HealthUnknown
	}
}

// Known business interface types
const (
	InterfaceHotel      = "HOTEL"
	InterfaceCafe       = "CAFE"
	InterfaceRestaurant = "RESTAURANT"
	InterfaceAVM        = "AVM"
	InterfaceOkul       = "OKUL"
	InterfaceYurt       = "YURT"
	InterfaceKonukevi   = "KONUKEVI"
	InterfaceGeneral    = "general"
)

// Interfaces lists the interface values accepted by the logs filter
var Interfaces = []string{
	InterfaceHotel,
	InterfaceCafe,
	InterfaceRestaurant,
	InterfaceAVM,
	InterfaceOkul,
	InterfaceYurt,
	InterfaceKonukevi,
	InterfaceGeneral,
}

// Log severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
	SeverityNotice  = "notice"
	SeverityDebug   = "debug"
)

// Severities lists the severity values accepted by the logs filter
var Severities = []string{
	SeverityError,
	SeverityWarning,
	SeverityInfo,
	SeverityNotice,
	SeverityDebug,
}

// SystemMetrics holds host metrics of the log server
type SystemMetrics struct {
	CPUUsage          float64   `json:"cpu_usage"`
	MemoryUsage       float64   `json:"memory_usage"`
	DiskUsage         float64   `json:"disk_usage"`
	NetworkIO         float64   `json:"network_io"`
	Uptime            float64   `json:"uptime"`
	LoadAverage       float64   `json:"load_average,omitempty"`
	MemoryTotal       int64     `json:"memory_total,omitempty"`
	MemoryUsed        int64     `json:"memory_used,omitempty"`
	DiskTotal         int64     `json:"disk_total,omitempty"`
	DiskUsed          int64     `json:"disk_used,omitempty"`
	NetworkBytesIn    int64     `json:"network_bytes_in,omitempty"`
	NetworkBytesOut   int64     `json:"network_bytes_out,omitempty"`
	ActiveConnections int       `json:"active_connections,omitempty"`
	LogsPerSecond     float64   `json:"logs_per_second,omitempty"`
	Timestamp         time.Time `json:"timestamp,omitempty"`
}

// StatsSnapshot is the aggregate returned by /api/v1/stats
type StatsSnapshot struct {
	TotalLogs        int64            `json:"total_logs"`
	ActiveBusinesses int64            `json:"active_businesses"`
	LogVolumeToday   int64            `json:"log_volume_today"`
	LogVolumeHour    int64            `json:"log_volume_hour"`
	SystemStatus     Health           `json:"system_status"`
	InterfaceStats   map[string]int64 `json:"interface_stats"`
	IPStats          map[string]int64 `json:"ip_stats"`
	SystemMetrics    SystemMetrics    `json:"system_metrics"`
	LastUpdate       time.Time        `json:"last_update"`
}

// LogEntry is a single collected log line
type LogEntry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	Interface string    `json:"interface"`
	Facility  string    `json:"facility"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
}

// LogsResponse wraps a page of log entries. /logs/recent fills Count
// instead of the paging fields.
type LogsResponse struct {
	Logs  []LogEntry `json:"logs"`
	Total int64      `json:"total,omitempty"`
	Page  int        `json:"page,omitempty"`
	Limit int        `json:"limit,omitempty"`
	Count int        `json:"count,omitempty"`
}

// SystemStatus is returned by /api/v1/system/status
type SystemStatus struct {
	Status       Health            `json:"status"`
	ConfigStatus string            `json:"config_status,omitempty"`
	LogDirectory string            `json:"log_directory,omitempty"`
	LastCheck    time.Time         `json:"last_check,omitempty"`
	Services     map[string]string `json:"services"`
}

// Size is a byte count the API sends either as a number or as preformatted text
type Size struct {
	Bytes int64
	Text  string
}

// UnmarshalJSON accepts a JSON number or a JSON string
func (s *Size) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Size{}
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Size{Text: text}
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			s.Bytes = n
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("size must be a number or string: %w", err)
	}
	*s = Size{Bytes: int64(n)}
	return nil
}

// MarshalJSON writes the text form when present, otherwise the byte count
func (s Size) MarshalJSON() ([]byte, error) {
	if s.Text != "" {
		return json.Marshal(s.Text)
	}
	return json.Marshal(s.Bytes)
}

// LogFile is one file inside an interface directory
type LogFile struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified,omitempty"`
	IsSigned bool      `json:"is_signed,omitempty"`
}

// UnmarshalJSON accepts either a file object or a bare file name
func (f *LogFile) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*f = LogFile{}
		return json.Unmarshal(data, &f.Name)
	}
	type plain LogFile
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = LogFile(p)
	return nil
}

// InterfaceDirectory is a per-interface directory under an IP
type InterfaceDirectory struct {
	Name  string    `json:"name"`
	Path  string    `json:"path,omitempty"`
	Files []LogFile `json:"files"`
}

// IPDirectory groups the interface directories of one device IP
type IPDirectory struct {
	IP         string               `json:"ip"`
	Path       string               `json:"path,omitempty"`
	Interfaces []InterfaceDirectory `json:"interfaces"`
}

// FileStructure is the log directory tree reported by the backend
type FileStructure struct {
	BasePath    string        `json:"base_path"`
	TotalSize   Size          `json:"total_size"`
	FileCount   int64         `json:"file_count"`
	LastUpdated time.Time     `json:"last_updated,omitempty"`
	Directories []IPDirectory `json:"directories"`
}
