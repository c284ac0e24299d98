// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     projector
// Description: Projection of view state and filters into a display model
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package projector

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/logmaster/dashboard/internal/filter"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/state"
)

// View names a navigable screen
type View string

// Component surface views
const (
	ViewDashboard View = "dashboard"
	ViewLogs      View = "logs"
	ViewSystem    View = "system"
	ViewDiscovery View = "discovery"
)

// Legacy surface views
const (
	ViewOverview   View = "overview"
	ViewActivity   View = "activity"
	ViewDevices    View = "devices"
	ViewSignatures View = "signatures"
	ViewArchives   View = "archives"
	ViewReports    View = "reports"
	ViewCompliance View = "compliance"
)

// Time layouts of the two surfaces
const (
	TimeLayout       = "2006-01-02 15:04:05"
	LegacyTimeLayout = "02.01.2006 15:04:05"
	ClockLayout      = "15:04:05"
)

// TopIPCount is the number of addresses listed on the dashboard
const TopIPCount = 5

// RecentLogCount is the number of log lines previewed on the dashboard
const RecentLogCount = 5

const (
	previewDirectories = 5
	previewInterfaces  = 3
)

var errorMessages = map[View]string{
	ViewDashboard:  "Failed to load statistics",
	ViewLogs:       "Failed to load logs",
	ViewSystem:     "Failed to load system information",
	ViewDiscovery:  "Failed to load discovery data",
	ViewOverview:   "Failed to load overview",
	ViewActivity:   "Failed to load recent logs",
	ViewDevices:    "Failed to load devices",
	ViewSignatures: "Failed to load signature status",
	ViewArchives:   "Failed to load archive information",
	ViewReports:    "Failed to load compliance score",
	ViewCompliance: "Failed to load system status",
}

// ErrorMessage returns the user-facing failure message of a view
func ErrorMessage(v View) string {
	if msg, ok := errorMessages[v]; ok {
		return msg
	}
	return "Failed to load data"
}

// Phase selects what a panel shows
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseEmpty
	PhaseContent
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseContent:
		return "content"
	default:
		return "unknown"
	}
}

// Panel is the render state shared by all views.
//
// A failed refresh after an earlier success keeps the last snapshot on
// screen: Phase stays Content or Empty, Error carries the message and
// Stale is set.
type Panel struct {
	Phase       Phase
	Error       string
	Placeholder string
	Stale       bool
	Refreshing  bool
	Updated     string
}

// Retryable reports whether the retry affordance is shown
func (p Panel) Retryable() bool {
	return p.Error != ""
}

// panelOf derives the panel of a view backed by one or more domains. The
// first state is the primary one; its value decides Empty vs Content.
func panelOf(v View, states []state.DomainState, empty bool, placeholder string) Panel {
	var (
		anyValue bool
		anyErr   bool
		loading  bool
		updated  time.Time
	)
	for _, st := range states {
		if st.HasValue() {
			anyValue = true
		}
		if st.Err != nil {
			anyErr = true
		}
		if st.Loading {
			loading = true
		}
		if st.UpdatedAt.After(updated) {
			updated = st.UpdatedAt
		}
	}

	p := Panel{Updated: FormatTime(updated, ClockLayout)}
	switch {
	case !anyValue && anyErr:
		p.Phase = PhaseError
		p.Error = ErrorMessage(v)
		return p
	case !anyValue:
		p.Phase = PhaseLoading
		return p
	}

	p.Refreshing = loading
	if anyErr {
		p.Error = ErrorMessage(v)
		p.Stale = true
	}
	if empty {
		p.Phase = PhaseEmpty
		p.Placeholder = placeholder
	} else {
		p.Phase = PhaseContent
	}
	return p
}

// Input is everything a projection reads
type Input struct {
	View        View
	Snapshot    state.Snapshot
	Filters     filter.Criteria
	AutoRefresh bool
	Locale      string
	Now         time.Time
}

// Display is the render-ready model. Only the active view is projected.
type Display struct {
	View      View
	Header    HeaderView
	Dashboard *DashboardView
	Logs      *LogsView
	System    *SystemView
	Discovery *DiscoveryView

	Overview   *OverviewView
	Activity   *ActivityView
	Devices    *DevicesView
	Signatures *SignaturesView
	Archives   *ArchivesView
	Reports    *ReportsView
	Compliance *ComplianceView
}

// Project computes the display model. It has no side effects.
func Project(in Input) Display {
	d := Display{
		View:   in.View,
		Header: Header(in),
	}

	switch in.View {
	case ViewDashboard:
		v := Dashboard(in)
		d.Dashboard = &v
	case ViewLogs:
		v := Logs(in)
		d.Logs = &v
	case ViewSystem:
		v := System(in)
		d.System = &v
	case ViewDiscovery:
		v := Discovery(in)
		d.Discovery = &v
	case ViewOverview:
		v := Overview(in)
		d.Overview = &v
	case ViewActivity:
		v := Activity(in)
		d.Activity = &v
	case ViewDevices:
		v := Devices(in)
		d.Devices = &v
	case ViewSignatures:
		v := Signatures(in)
		d.Signatures = &v
	case ViewArchives:
		v := Archives(in)
		d.Archives = &v
	case ViewReports:
		v := Reports(in)
		d.Reports = &v
	case ViewCompliance:
		v := Compliance(in)
		d.Compliance = &v
	}
	return d
}

// Badge is a colored status label
type Badge struct {
	Label string
	Icon  string
	Color string
}

func healthBadge(h models.Health) Badge {
	h = h.Normalize()
	return Badge{
		Label: strings.ToUpper(string(h)),
		Icon:  HealthIcon(h),
		Color: HealthColor(h),
	}
}

// Card is one headline number
type Card struct {
	Label string
	Value string
}

// Bar is a labelled horizontal bar; Width is a percentage
type Bar struct {
	Label string
	Value string
	Width float64
	Color string
}

// LogRow is one display row of a log table
type LogRow struct {
	ID             string
	Time           string
	IP             string
	Interface      string
	InterfaceColor string
	Facility       string
	Severity       string
	SeverityClass  string
	SeverityColor  string
	Message        string
}

// HeaderView is the always-visible health line
type HeaderView struct {
	Health    Badge
	Known     bool
	Failed    bool
	Clock     string
	UpdatedAt string
}

// Header projects the health line from the health domain
func Header(in Input) HeaderView {
	st := in.Snapshot.State(state.Health)
	h := HeaderView{
		Health:    healthBadge(models.HealthUnknown),
		Failed:    st.Err != nil,
		Clock:     FormatTime(in.Now, TimeLayout),
		UpdatedAt: FormatTime(st.UpdatedAt, ClockLayout),
	}
	if status, ok := st.Value.(models.SystemStatus); ok {
		h.Health = healthBadge(status.Status)
		h.Known = true
	}
	return h
}

// DashboardView is the statistics overview
type DashboardView struct {
	Panel
	Cards      []Card
	Status     Badge
	LastUpdate string
	Uptime     string
	Interfaces []Bar
	TopIPs     []Bar
	Metrics    []Bar

	Recent            []LogRow
	RecentPlaceholder string
}

// Dashboard projects the stats and recent_logs domains
func Dashboard(in Input) DashboardView {
	statsState := in.Snapshot.State(state.Stats)
	recentState := in.Snapshot.State(state.RecentLogs)

	v := DashboardView{
		Panel: panelOf(ViewDashboard, []state.DomainState{statsState}, false, ""),
	}

	if stats, ok := statsState.Value.(models.StatsSnapshot); ok {
		v.Cards = []Card{
			{Label: "Total Logs", Value: FormatNumber(in.Locale, stats.TotalLogs)},
			{Label: "Active Devices", Value: FormatNumber(in.Locale, stats.ActiveBusinesses)},
			{Label: "Logs Today", Value: FormatNumber(in.Locale, stats.LogVolumeToday)},
			{Label: "Logs This Hour", Value: FormatNumber(in.Locale, stats.LogVolumeHour)},
		}
		v.Status = healthBadge(stats.SystemStatus)
		v.LastUpdate = FormatTime(stats.LastUpdate, TimeLayout)
		v.Uptime = FormatUptime(stats.SystemMetrics.Uptime)
		v.Interfaces = countBars(in.Locale, stats.InterfaceStats, 0, InterfaceColor)
		v.TopIPs = countBars(in.Locale, stats.IPStats, TopIPCount, func(string) string { return ColorIndigo })
		v.Metrics = metricBars(stats.SystemMetrics)
	}

	if logs, ok := recentState.Value.([]models.LogEntry); ok {
		rows := logRows(logs, TimeLayout)
		if len(rows) > RecentLogCount {
			rows = rows[:RecentLogCount]
		}
		v.Recent = rows
	}
	if len(v.Recent) == 0 {
		v.RecentPlaceholder = "No recent logs"
	}
	return v
}

// countBars sorts counts descending (ties by key) and scales them against
// the largest count of the whole group. limit 0 keeps all rows.
func countBars(locale string, counts map[string]int64, limit int, color func(string) string) []Bar {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = float64(counts[k])
	}
	widths := BarWidths(values)

	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	bars := make([]Bar, len(keys))
	for i, k := range keys {
		bars[i] = Bar{
			Label: k,
			Value: FormatNumber(locale, counts[k]),
			Width: widths[i],
			Color: color(k),
		}
	}
	return bars
}

func metricBars(m models.SystemMetrics) []Bar {
	return []Bar{
		{Label: "CPU Usage", Value: FormatPercent(m.CPUUsage), Width: PercentWidth(m.CPUUsage), Color: CPUColor(m.CPUUsage)},
		{Label: "Memory Usage", Value: FormatPercent(m.MemoryUsage), Width: PercentWidth(m.MemoryUsage), Color: MemoryColor(m.MemoryUsage)},
		{Label: "Disk Usage", Value: FormatPercent(m.DiskUsage), Width: PercentWidth(m.DiskUsage), Color: DiskColor(m.DiskUsage)},
		{Label: "Network I/O", Value: FormatRate(m.NetworkIO, "MB"), Width: NetworkWidth(m.NetworkIO), Color: NetworkColor(m.NetworkIO)},
	}
}

// logRows converts entries to rows, newest first
func logRows(entries []models.LogEntry, layout string) []LogRow {
	sorted := make([]models.LogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	rows := make([]LogRow, len(sorted))
	for i, e := range sorted {
		rows[i] = LogRow{
			ID:             e.ID,
			Time:           FormatTime(e.Timestamp, layout),
			IP:             e.IP,
			Interface:      e.Interface,
			InterfaceColor: InterfaceColor(e.Interface),
			Facility:       e.Facility,
			Severity:       e.Severity,
			SeverityClass:  SeverityClass(e.Severity),
			SeverityColor:  SeverityColor(e.Severity),
			Message:        Truncate(e.Message, MessageMaxLen),
		}
	}
	return rows
}

// Logs view placeholder texts
const (
	NoLogsPlaceholder = "No logs found"
	HintFiltered      = "Try adjusting your filters to see more results."
	HintUnfiltered    = "Logs will appear here when devices start sending data."
)

// LogsView is the filterable log table
type LogsView struct {
	Panel
	Rows          []LogRow
	Summary       string
	AutoRefresh   bool
	RefreshLabel  string
	Filters       filter.Criteria
	FiltersActive bool
	Hint          string
	ShowClear     bool
}

// Logs projects the logs domain with the current filters
func Logs(in Input) LogsView {
	st := in.Snapshot.State(state.Logs)
	logs, _ := st.Value.([]models.LogEntry)

	v := LogsView{
		Panel:         panelOf(ViewLogs, []state.DomainState{st}, len(logs) == 0, NoLogsPlaceholder),
		Rows:          logRows(logs, TimeLayout),
		AutoRefresh:   in.AutoRefresh,
		RefreshLabel:  "Manual",
		Filters:       in.Filters,
		FiltersActive: in.Filters.Active(),
	}
	v.Summary = fmt.Sprintf("Showing %s logs", FormatNumber(in.Locale, int64(len(v.Rows))))
	if in.AutoRefresh {
		v.RefreshLabel = "Auto"
	}

	if v.Phase == PhaseEmpty {
		v.Hint = HintUnfiltered
		if v.FiltersActive {
			v.Hint = HintFiltered
			v.ShowClear = true
		}
	}
	return v
}

// Detail is one label/value line
type Detail struct {
	Label string
	Value string
}

// ServiceRow is one service and its state
type ServiceRow struct {
	Name   string
	Status string
	Icon   string
	Color  string
}

// DirectoryPreview is one IP directory with its first interfaces
type DirectoryPreview struct {
	IP         string
	Interfaces []Detail
}

// SystemView is the system health screen
type SystemView struct {
	Panel
	Health          Badge
	Details         []Detail
	Services        []ServiceRow
	ServicesEmpty   bool
	Metrics         []Bar
	Structure       []Detail
	FileCount       string
	Directories     []DirectoryPreview
	MoreDirectories string
}

// System projects the system_status, system_metrics and file_structure domains
func System(in Input) SystemView {
	statusState := in.Snapshot.State(state.SystemStatus)
	metricsState := in.Snapshot.State(state.SystemMetrics)
	structureState := in.Snapshot.State(state.FileStructure)

	v := SystemView{
		Panel:  panelOf(ViewSystem, []state.DomainState{statusState, metricsState, structureState}, false, ""),
		Health: healthBadge(models.HealthUnknown),
	}

	if status, ok := statusState.Value.(models.SystemStatus); ok {
		v.Health = healthBadge(status.Status)
		v.Details = []Detail{
			{Label: "Config Status", Value: orDefault(status.ConfigStatus, "Unknown")},
			{Label: "Log Directory", Value: orDefault(status.LogDirectory, "/var/log/logmaster")},
			{Label: "Last Check", Value: orDefault(FormatTime(status.LastCheck, TimeLayout), "Unknown")},
		}
		v.Services = serviceRows(status.Services)
	}
	v.ServicesEmpty = len(v.Services) == 0

	if metrics, ok := metricsState.Value.(models.SystemMetrics); ok {
		v.Metrics = metricBars(metrics)
		v.Details = append(v.Details, Detail{Label: "Uptime", Value: FormatUptime(metrics.Uptime)})
	}

	if fs, ok := structureState.Value.(models.FileStructure); ok {
		v.FileCount = fmt.Sprintf("%s files", FormatNumber(in.Locale, fs.FileCount))
		v.Structure = []Detail{
			{Label: "Base Path", Value: orDefault(fs.BasePath, "/var/log/logmaster")},
			{Label: "Total Size", Value: sizeText(fs.TotalSize)},
			{Label: "File Count", Value: FormatNumber(in.Locale, fs.FileCount)},
			{Label: "Last Scanned", Value: orDefault(FormatTime(fs.LastUpdated, TimeLayout), "Unknown")},
		}
		v.Directories, v.MoreDirectories = directoryPreview(fs.Directories)
	}
	return v
}

// serviceRows lists services sorted by name
func serviceRows(services map[string]string) []ServiceRow {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]ServiceRow, len(names))
	for i, name := range names {
		status := services[name]
		rows[i] = ServiceRow{
			Name:   name,
			Status: strings.ToUpper(orDefault(status, "unknown")),
			Icon:   ServiceIcon(status),
			Color:  ServiceColor(status),
		}
	}
	return rows
}

func directoryPreview(dirs []models.IPDirectory) ([]DirectoryPreview, string) {
	shown := dirs
	if len(shown) > previewDirectories {
		shown = shown[:previewDirectories]
	}

	preview := make([]DirectoryPreview, len(shown))
	for i, dir := range shown {
		ifaces := dir.Interfaces
		if len(ifaces) > previewInterfaces {
			ifaces = ifaces[:previewInterfaces]
		}
		p := DirectoryPreview{IP: dir.IP, Interfaces: make([]Detail, len(ifaces))}
		for j, iface := range ifaces {
			p.Interfaces[j] = Detail{Label: iface.Name, Value: fmt.Sprintf("(%d files)", len(iface.Files))}
		}
		preview[i] = p
	}

	more := ""
	if n := len(dirs) - previewDirectories; n > 0 {
		more = fmt.Sprintf("... and %d more directories", n)
	}
	return preview, more
}

func sizeText(s models.Size) string {
	switch {
	case s.Text != "":
		return s.Text
	case s.Bytes > 0:
		return FormatBytes(s.Bytes)
	default:
		return "0 B"
	}
}

// DiscoveredDirectory summarises one discovered device directory
type DiscoveredDirectory struct {
	IP         string
	Interfaces []string
	Files      int
}

// DiscoveryView summarises the auto-created directory tree
type DiscoveryView struct {
	Panel
	Cards       []Card
	Directories []DiscoveredDirectory
}

// Discovery projects the file_structure domain as discovery totals
func Discovery(in Input) DiscoveryView {
	st := in.Snapshot.State(state.FileStructure)
	fs, _ := st.Value.(models.FileStructure)

	v := DiscoveryView{
		Panel: panelOf(ViewDiscovery, []state.DomainState{st}, len(fs.Directories) == 0, "No recent discoveries"),
	}

	ifaceTotal := 0
	for _, dir := range fs.Directories {
		d := DiscoveredDirectory{IP: dir.IP}
		for _, iface := range dir.Interfaces {
			d.Interfaces = append(d.Interfaces, iface.Name)
			d.Files += len(iface.Files)
		}
		ifaceTotal += len(dir.Interfaces)
		v.Directories = append(v.Directories, d)
	}
	sort.SliceStable(v.Directories, func(i, j int) bool {
		return v.Directories[i].IP < v.Directories[j].IP
	})

	v.Cards = []Card{
		{Label: "Active IP Addresses", Value: FormatNumber(in.Locale, int64(len(fs.Directories)))},
		{Label: "Detected Interfaces", Value: FormatNumber(in.Locale, int64(ifaceTotal))},
		{Label: "Auto-Created Directories", Value: FormatNumber(in.Locale, int64(len(fs.Directories)+ifaceTotal))},
		{Label: "Log Files", Value: FormatNumber(in.Locale, fs.FileCount)},
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" || s == "-" {
		return def
	}
	return s
}
