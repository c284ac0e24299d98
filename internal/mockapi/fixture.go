package mockapi

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/logmaster/dashboard/internal/models"
)

var fixtureIPs = []string{"192.168.1.100", "192.168.1.101", "192.168.1.102", "10.0.0.50", "10.0.0.51"}

var fixtureFacilities = []string{"daemon", "auth", "kern", "local0", "user"}

var fixtureMessages = []string{
	"DHCP lease renewed for client",
	"user %s logged in from guest network",
	"firewall dropped packet from %s",
	"interface link state changed to up",
	"disk usage above threshold on %s",
	"authentication failure for \"admin\"",
	"NTP time synchronised",
	"hotspot session expired",
}

// Fixture is the canned dataset served by the mock backend. Safe for
// concurrent use.
type Fixture struct {
	mu      sync.RWMutex
	now     func() time.Time
	logs    []models.LogEntry
	devices []models.Device
	reports int
}

// NewFixture generates count log entries from a fixed seed so that runs
// are reproducible
func NewFixture(count int, now func() time.Time) *Fixture {
	if now == nil {
		now = time.Now
	}
	rng := rand.New(rand.NewSource(42))
	base := now()

	f := &Fixture{now: now}
	for i := 0; i < count; i++ {
		ip := fixtureIPs[rng.Intn(len(fixtureIPs))]
		msg := fixtureMessages[rng.Intn(len(fixtureMessages))]
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, ip)
		}
		f.logs = append(f.logs, models.LogEntry{
			ID:        fmt.Sprintf("log-%05d", i+1),
			Timestamp: base.Add(-time.Duration(i) * 37 * time.Second),
			IP:        ip,
			Interface: models.Interfaces[rng.Intn(len(models.Interfaces))],
			Facility:  fixtureFacilities[rng.Intn(len(fixtureFacilities))],
			Severity:  models.Severities[rng.Intn(len(models.Severities))],
			Message:   msg,
		})
	}

	statuses := []string{models.DeviceActive, models.DeviceActive, models.DeviceInactive, models.DeviceFailed, models.DeviceActive}
	for i, ip := range fixtureIPs {
		last := models.NewTime(base.Add(-time.Duration(i) * time.Hour))
		d := models.Device{
			DeviceID:  fmt.Sprintf("fw-%02d", i+1),
			IPAddress: ip,
			Location:  []string{"Lobby", "Cafe", "Restaurant", "Mall", "Campus"}[i],
			Status:    statuses[i],
			LastLog:   &last,
		}
		if i%2 == 0 {
			d.Name = fmt.Sprintf("Gateway %d", i+1)
		}
		for _, l := range f.logs {
			if l.IP == ip {
				d.LogCount++
			}
		}
		f.devices = append(f.devices, d)
	}
	return f
}

// LogQuery narrows the fixture logs
type LogQuery struct {
	IP        string
	Interface string
	Severity  string
	Search    string
	Limit     int
}

// Logs returns entries matching q, newest first
func (f *Fixture) Logs(q LogQuery) []models.LogEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	search := strings.ToLower(q.Search)
	out := []models.LogEntry{}
	for _, l := range f.logs {
		if q.IP != "" && l.IP != q.IP {
			continue
		}
		if q.Interface != "" && l.Interface != q.Interface {
			continue
		}
		if q.Severity != "" && l.Severity != q.Severity {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Message), search) {
			continue
		}
		out = append(out, l)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}

// Stats aggregates the fixture logs the way /api/v1/stats does
func (f *Fixture) Stats(metrics models.SystemMetrics) models.StatsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	now := f.now()
	stats := models.StatsSnapshot{
		TotalLogs:      int64(len(f.logs)),
		SystemStatus:   models.HealthHealthy,
		InterfaceStats: map[string]int64{},
		IPStats:        map[string]int64{},
		SystemMetrics:  metrics,
		LastUpdate:     now,
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, l := range f.logs {
		stats.InterfaceStats[l.Interface]++
		stats.IPStats[l.IP]++
		if !l.Timestamp.Before(dayStart) {
			stats.LogVolumeToday++
		}
		if now.Sub(l.Timestamp) < time.Hour {
			stats.LogVolumeHour++
		}
	}
	stats.ActiveBusinesses = int64(len(stats.IPStats))
	return stats
}

// FileStructure lays the fixture logs out as ip/interface/date.log files
func (f *Fixture) FileStructure() models.FileStructure {
	f.mu.RLock()
	defer f.mu.RUnlock()

	const basePath = "/var/log/logmaster"
	tree := map[string]map[string]map[string]bool{}
	for _, l := range f.logs {
		if tree[l.IP] == nil {
			tree[l.IP] = map[string]map[string]bool{}
		}
		if tree[l.IP][l.Interface] == nil {
			tree[l.IP][l.Interface] = map[string]bool{}
		}
		tree[l.IP][l.Interface][l.Timestamp.Format("2006-01-02")+".log"] = true
	}

	fs := models.FileStructure{BasePath: basePath, LastUpdated: f.now()}
	for _, ip := range sortedKeys(tree) {
		dir := models.IPDirectory{IP: ip, Path: basePath + "/" + ip}
		for _, iface := range sortedKeys(tree[ip]) {
			id := models.InterfaceDirectory{Name: iface, Path: dir.Path + "/" + iface}
			for _, name := range sortedKeys(tree[ip][iface]) {
				id.Files = append(id.Files, models.LogFile{Name: name, Size: 4096})
				fs.FileCount++
			}
			dir.Interfaces = append(dir.Interfaces, id)
		}
		fs.Directories = append(fs.Directories, dir)
	}
	fs.TotalSize = models.Size{Bytes: fs.FileCount * 4096}
	return fs
}

// Overview aggregates the legacy overview statistics
func (f *Fixture) Overview(disk models.DiskUsage) models.OverviewStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	o := models.OverviewStats{
		TotalLogs:   int64(len(f.logs)),
		DiskUsage:   disk,
		LastUpdated: models.NewTime(f.now()),
	}
	for _, d := range f.devices {
		if d.Status == models.DeviceActive {
			o.ActiveDevices++
		}
	}
	for _, l := range f.logs {
		if l.Severity == models.SeverityError {
			o.ErrorCount++
		}
	}
	o.SignedFiles = o.TotalLogs / 10
	o.ArchivedFiles = o.TotalLogs / 25
	return o
}

// RecentActivity returns legacy recent log rows, optionally for one device
func (f *Fixture) RecentActivity(deviceID string, limit int) []models.RecentLog {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := map[string]models.Device{}
	for _, d := range f.devices {
		names[d.IPAddress] = d
	}

	out := []models.RecentLog{}
	for _, l := range f.logs {
		d := names[l.IP]
		if deviceID != "" && d.DeviceID != deviceID {
			continue
		}
		preview := l.Message
		if r := []rune(preview); len(r) > 100 {
			preview = string(r[:100])
		}
		out = append(out, models.RecentLog{
			Timestamp:      models.NewTime(l.Timestamp),
			DeviceID:       d.DeviceID,
			DeviceName:     d.Name,
			SourceIP:       l.IP,
			MessagePreview: preview,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Devices returns the registered devices
func (f *Fixture) Devices() []models.Device {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Device, len(f.devices))
	copy(out, f.devices)
	return out
}

// Signatures returns the verification breakdown of the last days
func (f *Fixture) Signatures(days int) models.SignatureStatus {
	if days <= 0 {
		days = 7
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	total := int64(len(f.logs) / 10)
	invalid := total / 20
	status := models.SignatureStatus{
		StatusBreakdown: []models.StatusBreakdown{
			{VerificationStatus: "valid", Count: total - invalid},
			{VerificationStatus: "invalid", Count: invalid},
		},
	}
	for i := range status.StatusBreakdown {
		if total > 0 {
			status.StatusBreakdown[i].Percentage = round2(float64(status.StatusBreakdown[i].Count) / float64(total) * 100)
		}
	}

	now := f.now()
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		status.DailyCounts = append(status.DailyCounts, models.DailyCount{
			Date:  day.Format("2006-01-02"),
			Count: total/int64(days) + int64(i%3),
		})
	}
	return status
}

// Archives returns the archive summary
func (f *Fixture) Archives() models.ArchiveInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	now := f.now()
	info := models.ArchiveInfo{}
	for i := 1; i <= 3; i++ {
		original := int64(len(f.logs)) * 512 * int64(i)
		compressed := original / 4
		info.RecentArchives = append(info.RecentArchives, models.Archive{
			FileName:         fmt.Sprintf("logs-%s.tar.gz", now.AddDate(0, 0, -i).Format("2006-01-02")),
			OriginalSize:     original,
			CompressedSize:   compressed,
			CompressionRatio: 75,
			CreatedAt:        models.NewTime(now.AddDate(0, 0, -i)),
		})
		info.Summary.TotalOriginalSize += original
		info.Summary.TotalCompressedSize += compressed
	}
	info.Summary.TotalFiles = int64(len(info.RecentArchives))
	info.Summary.AvgCompressionRatio = 75
	return info
}

// ComplianceScore returns the score of the last days
func (f *Fixture) ComplianceScore(days int) models.ComplianceScore {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return models.ComplianceScore{
		Score:        f.scoreLocked(),
		PeriodDays:   days,
		CalculatedAt: models.NewTime(f.now()),
	}
}

// GenerateReport records a report run
func (f *Fixture) GenerateReport(req models.ReportRequest) models.ReportResult {
	f.mu.Lock()
	f.reports++
	score := f.scoreLocked()
	f.mu.Unlock()

	return models.ReportResult{
		Success:         true,
		ReportType:      req.ReportType,
		Period:          req.StartDate + " - " + req.EndDate,
		ComplianceScore: score,
		GeneratedAt:     models.NewTime(f.now()),
	}
}

// Reports returns the number of generated reports
func (f *Fixture) Reports() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.reports
}

func (f *Fixture) scoreLocked() float64 {
	if len(f.logs) == 0 {
		return 0
	}
	errors := 0
	for _, l := range f.logs {
		if l.Severity == models.SeverityError {
			errors++
		}
	}
	return round2(100 - float64(errors)/float64(len(f.logs))*20)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
