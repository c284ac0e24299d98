package projector

import (
	"fmt"
	"sort"

	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/state"
)

// StatusRow is one component of the legacy service health map
type StatusRow struct {
	Key   string
	Label string
	Value string
	Class string
	Icon  string
	Color string
}

func statusRows(health models.ServiceHealth) []StatusRow {
	keys := make([]string, 0, len(health))
	for k := range health {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]StatusRow, len(keys))
	for i, k := range keys {
		class := StatusClass(health[k])
		rows[i] = StatusRow{
			Key:   k,
			Label: FormatStatusKey(k),
			Value: health[k],
			Class: class,
			Icon:  StatusIcon(health[k]),
			Color: ClassColor(class),
		}
	}
	return rows
}

// OverviewView is the legacy overview section
type OverviewView struct {
	Panel
	Cards       []Card
	DiskBar     Bar
	LastUpdated string
	Services    []StatusRow
}

// Overview projects the overview and service_health domains
func Overview(in Input) OverviewView {
	st := in.Snapshot.State(state.Overview)
	v := OverviewView{
		Panel: panelOf(ViewOverview, []state.DomainState{st}, false, ""),
	}

	if o, ok := st.Value.(models.OverviewStats); ok {
		v.Cards = []Card{
			{Label: "Total Logs", Value: CompactNumber(o.TotalLogs)},
			{Label: "Active Devices", Value: CompactNumber(o.ActiveDevices)},
			{Label: "Signed Files", Value: CompactNumber(o.SignedFiles)},
			{Label: "Archived Files", Value: CompactNumber(o.ArchivedFiles)},
			{Label: "Errors", Value: CompactNumber(o.ErrorCount)},
		}
		p := o.DiskUsage.UsagePercent
		v.DiskBar = Bar{
			Label: "Disk Usage",
			Value: fmt.Sprintf("%s (%s / %s)", FormatPercent(p), FormatBytes(o.DiskUsage.Used), FormatBytes(o.DiskUsage.Total)),
			Width: PercentWidth(p),
			Color: DiskColor(p),
		}
		v.LastUpdated = FormatTime(o.LastUpdated.Time, LegacyTimeLayout)
	}

	if health, ok := in.Snapshot.State(state.ServiceHealth).Value.(models.ServiceHealth); ok {
		v.Services = statusRows(health)
	}
	return v
}

// ActivityRow is one line of the legacy recent activity table
type ActivityRow struct {
	Time     string
	Device   string
	SourceIP string
	Message  string
}

// DeviceOption is one entry of the device filter
type DeviceOption struct {
	Value string
	Label string
}

// ActivityView is the legacy recent log section
type ActivityView struct {
	Panel
	Rows    []ActivityRow
	Options []DeviceOption
}

// Activity projects the recent_activity domain and the device filter options
func Activity(in Input) ActivityView {
	st := in.Snapshot.State(state.RecentActivity)
	logs, _ := st.Value.([]models.RecentLog)

	v := ActivityView{
		Panel: panelOf(ViewActivity, []state.DomainState{st}, len(logs) == 0, "No recent logs"),
		Rows:  make([]ActivityRow, len(logs)),
	}
	for i, l := range logs {
		v.Rows[i] = ActivityRow{
			Time:     FormatTime(l.Timestamp.Time, LegacyTimeLayout),
			Device:   orDefault(l.DeviceName, orDefault(l.DeviceID, "-")),
			SourceIP: orDefault(l.SourceIP, "-"),
			Message:  Truncate(l.MessagePreview, MessageMaxLen),
		}
	}

	if devices, ok := in.Snapshot.State(state.Devices).Value.([]models.Device); ok {
		v.Options = deviceOptions(devices)
	}
	return v
}

// deviceOptions labels each device "id - name", falling back to the IP
func deviceOptions(devices []models.Device) []DeviceOption {
	opts := make([]DeviceOption, len(devices))
	for i, d := range devices {
		opts[i] = DeviceOption{
			Value: d.DeviceID,
			Label: fmt.Sprintf("%s - %s", d.DeviceID, orDefault(d.Name, d.IPAddress)),
		}
	}
	return opts
}

// DeviceRow is one line of the device table
type DeviceRow struct {
	ID          string
	Name        string
	IP          string
	Location    string
	Status      string
	StatusClass string
	StatusIcon  string
	StatusColor string
	LogCount    string
	LastLog     string
}

// DevicesView is the legacy device inventory
type DevicesView struct {
	Panel
	Rows []DeviceRow
}

// Devices projects the devices domain
func Devices(in Input) DevicesView {
	st := in.Snapshot.State(state.Devices)
	devices, _ := st.Value.([]models.Device)

	v := DevicesView{
		Panel: panelOf(ViewDevices, []state.DomainState{st}, len(devices) == 0, "No devices found"),
		Rows:  make([]DeviceRow, len(devices)),
	}
	for i, d := range devices {
		lastLog := "-"
		if d.LastLog != nil {
			lastLog = FormatTime(d.LastLog.Time, LegacyTimeLayout)
		}
		class := StatusClass(d.Status)
		v.Rows[i] = DeviceRow{
			ID:          d.DeviceID,
			Name:        orDefault(d.Name, "-"),
			IP:          orDefault(d.IPAddress, "-"),
			Location:    orDefault(d.Location, "-"),
			Status:      orDefault(d.Status, models.DeviceUnknown),
			StatusClass: class,
			StatusIcon:  StatusIcon(d.Status),
			StatusColor: ClassColor(class),
			LogCount:    FormatNumber(in.Locale, d.LogCount),
			LastLog:     lastLog,
		}
	}
	return v
}

// Segment is one slice of a breakdown chart
type Segment struct {
	Label   string
	Count   string
	Percent string
	Width   float64
	Color   string
}

// SignaturesView is the legacy signature verification section
type SignaturesView struct {
	Panel
	Segments []Segment
	Daily    []Bar
}

// Signatures projects the signatures domain
func Signatures(in Input) SignaturesView {
	st := in.Snapshot.State(state.Signatures)
	sig, _ := st.Value.(models.SignatureStatus)

	v := SignaturesView{
		Panel: panelOf(ViewSignatures, []state.DomainState{st},
			len(sig.StatusBreakdown) == 0 && len(sig.DailyCounts) == 0, "No signature data"),
	}

	for i, b := range sig.StatusBreakdown {
		v.Segments = append(v.Segments, Segment{
			Label:   orDefault(b.VerificationStatus, "unknown"),
			Count:   CompactNumber(b.Count),
			Percent: FormatPercent(b.Percentage),
			Width:   PercentWidth(b.Percentage),
			Color:   SegmentColor(i),
		})
	}

	values := make([]float64, len(sig.DailyCounts))
	for i, d := range sig.DailyCounts {
		values[i] = float64(d.Count)
	}
	widths := BarWidths(values)
	for i, d := range sig.DailyCounts {
		v.Daily = append(v.Daily, Bar{
			Label: d.Date,
			Value: CompactNumber(d.Count),
			Width: widths[i],
			Color: ColorBlue,
		})
	}
	return v
}

// ArchiveRow is one archived bundle
type ArchiveRow struct {
	FileName       string
	OriginalSize   string
	CompressedSize string
	Ratio          string
	CreatedAt      string
}

// ArchivesView is the legacy archive section
type ArchivesView struct {
	Panel
	Cards []Card
	Rows  []ArchiveRow
}

// Archives projects the archives domain
func Archives(in Input) ArchivesView {
	st := in.Snapshot.State(state.Archives)
	info, _ := st.Value.(models.ArchiveInfo)

	v := ArchivesView{
		Panel: panelOf(ViewArchives, []state.DomainState{st},
			info.Summary.TotalFiles == 0 && len(info.RecentArchives) == 0, "No archives yet"),
		Cards: []Card{
			{Label: "Archived Files", Value: CompactNumber(info.Summary.TotalFiles)},
			{Label: "Original Size", Value: FormatBytes(info.Summary.TotalOriginalSize)},
			{Label: "Compressed Size", Value: FormatBytes(info.Summary.TotalCompressedSize)},
			{Label: "Avg. Compression", Value: FormatPercent(info.Summary.AvgCompressionRatio)},
		},
	}
	for _, a := range info.RecentArchives {
		v.Rows = append(v.Rows, ArchiveRow{
			FileName:       orDefault(a.Name(), "-"),
			OriginalSize:   FormatBytes(a.OriginalSize),
			CompressedSize: FormatBytes(a.CompressedSize),
			Ratio:          FormatPercent(a.Ratio()),
			CreatedAt:      FormatTime(a.Created(), LegacyTimeLayout),
		})
	}
	return v
}

// ReportsView is the legacy compliance report section
type ReportsView struct {
	Panel
	Score        string
	ScoreColor   string
	Period       string
	CalculatedAt string

	// LastReport describes the most recent report generation, empty until one ran
	LastReport      string
	LastReportError bool
}

// Reports projects the compliance and report domains
func Reports(in Input) ReportsView {
	st := in.Snapshot.State(state.Compliance)
	v := ReportsView{
		Panel: panelOf(ViewReports, []state.DomainState{st}, false, ""),
	}

	if cs, ok := st.Value.(models.ComplianceScore); ok {
		v.Score = fmt.Sprintf("%.1f", cs.Score)
		v.ScoreColor = ScoreColor(cs.Score)
		if cs.PeriodDays > 0 {
			v.Period = fmt.Sprintf("Last %d days", cs.PeriodDays)
		}
		v.CalculatedAt = FormatTime(cs.CalculatedAt.Time, LegacyTimeLayout)
	}

	report := in.Snapshot.State(state.Report)
	switch r, ok := report.Value.(models.ReportResult); {
	case report.Err != nil:
		v.LastReport = "Report generation failed"
		v.LastReportError = true
	case ok && !r.Success:
		v.LastReport = "Report generation failed: " + orDefault(r.Error, "unknown error")
		v.LastReportError = true
	case ok:
		v.LastReport = fmt.Sprintf("Report generated. Compliance score: %.2f", r.ComplianceScore)
	case report.Loading:
		v.LastReport = "Generating report..."
	}
	return v
}

// ComplianceView is the legacy service health section
type ComplianceView struct {
	Panel
	Rows []StatusRow
}

// Compliance projects the service_health domain
func Compliance(in Input) ComplianceView {
	st := in.Snapshot.State(state.ServiceHealth)
	health, _ := st.Value.(models.ServiceHealth)

	return ComplianceView{
		Panel: panelOf(ViewCompliance, []state.DomainState{st}, len(health) == 0, "No service information available"),
		Rows:  statusRows(health),
	}
}
