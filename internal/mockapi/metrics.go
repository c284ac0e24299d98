package mockapi

import (
	"context"
	"sync"
	"time"

	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/pkg/core/cache"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// MetricsSource supplies host metrics and disk usage
type MetricsSource interface {
	Metrics(ctx context.Context) models.SystemMetrics
	Disk(ctx context.Context) models.DiskUsage
}

// StaticMetrics always reports the same values
type StaticMetrics struct {
	Values    models.SystemMetrics
	DiskUsage models.DiskUsage
}

// DefaultStaticMetrics mirrors a lightly loaded log server
func DefaultStaticMetrics() StaticMetrics {
	return StaticMetrics{
		Values: models.SystemMetrics{
			CPUUsage:    12.5,
			MemoryUsage: 48.2,
			DiskUsage:   11.3,
			NetworkIO:   1.8,
			Uptime:      93784,
			LoadAverage: 0.42,
		},
		DiskUsage: models.DiskUsage{
			Total:        500 << 30,
			Used:         56 << 30,
			Free:         444 << 30,
			UsagePercent: 11.2,
		},
	}
}

func (s StaticMetrics) Metrics(context.Context) models.SystemMetrics { return s.Values }

func (s StaticMetrics) Disk(context.Context) models.DiskUsage { return s.DiskUsage }

// SampleTTL is how long a host sample is reused across requests
const SampleTTL = time.Second

// HostMetrics reads the metrics of the machine running the mock backend.
// Unreadable values fall back to the static defaults.
type HostMetrics struct {
	path     string
	fallback StaticMetrics
	log      zerolog.Logger

	samples *cache.Cache[models.SystemMetrics]
	disks   *cache.Cache[models.DiskUsage]

	mu       sync.Mutex
	lastNet  uint64
	lastRead time.Time
}

// NewHostMetrics reports disk usage of the filesystem holding path
func NewHostMetrics(path string, log zerolog.Logger) *HostMetrics {
	if path == "" {
		path = "/"
	}
	cfg := cache.Config{MaxItems: 1, TTL: SampleTTL}
	return &HostMetrics{
		path:     path,
		fallback: DefaultStaticMetrics(),
		log:      log,
		samples:  cache.New[models.SystemMetrics](cfg),
		disks:    cache.New[models.DiskUsage](cfg),
	}
}

// Metrics returns the latest host sample, taking a new one at most once per SampleTTL
func (h *HostMetrics) Metrics(ctx context.Context) models.SystemMetrics {
	m, _ := h.samples.GetOrSet("metrics", func() (models.SystemMetrics, error) {
		return h.sample(ctx), nil
	})
	return m
}

// sample reads CPU, memory, disk, load, uptime and network throughput
func (h *HostMetrics) sample(ctx context.Context) models.SystemMetrics {
	m := h.fallback.Values
	m.Timestamp = time.Now()

	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		m.CPUUsage = round2(pct[0])
	} else if err != nil {
		h.log.Debug().Err(err).Msg("cpu usage unavailable")
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		m.MemoryUsage = round2(vm.UsedPercent)
		m.MemoryTotal = int64(vm.Total)
		m.MemoryUsed = int64(vm.Used)
	} else {
		h.log.Debug().Err(err).Msg("memory usage unavailable")
	}

	if du, err := disk.UsageWithContext(ctx, h.path); err == nil {
		m.DiskUsage = round2(du.UsedPercent)
		m.DiskTotal = int64(du.Total)
		m.DiskUsed = int64(du.Used)
	} else {
		h.log.Debug().Err(err).Str("path", h.path).Msg("disk usage unavailable")
	}

	if up, err := host.UptimeWithContext(ctx); err == nil {
		m.Uptime = float64(up)
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		m.LoadAverage = round2(avg.Load1)
	}

	if counters, err := psnet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		m.NetworkBytesIn = int64(counters[0].BytesRecv)
		m.NetworkBytesOut = int64(counters[0].BytesSent)
		m.NetworkIO = h.throughput(counters[0].BytesRecv+counters[0].BytesSent, m.Timestamp)
	}
	return m
}

// throughput returns MB/s since the previous sample, 0 on the first one
func (h *HostMetrics) throughput(total uint64, at time.Time) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	rate := 0.0
	if !h.lastRead.IsZero() && total >= h.lastNet {
		if secs := at.Sub(h.lastRead).Seconds(); secs > 0 {
			rate = round2(float64(total-h.lastNet) / secs / (1 << 20))
		}
	}
	h.lastNet = total
	h.lastRead = at
	return rate
}

// Disk reports the filesystem holding the configured path
func (h *HostMetrics) Disk(ctx context.Context) models.DiskUsage {
	d, _ := h.disks.GetOrSet(h.path, func() (models.DiskUsage, error) {
		return h.readDisk(ctx), nil
	})
	return d
}

func (h *HostMetrics) readDisk(ctx context.Context) models.DiskUsage {
	du, err := disk.UsageWithContext(ctx, h.path)
	if err != nil {
		h.log.Debug().Err(err).Str("path", h.path).Msg("disk usage unavailable")
		return h.fallback.DiskUsage
	}
	return models.DiskUsage{
		Total:        int64(du.Total),
		Used:         int64(du.Used),
		Free:         int64(du.Free),
		UsagePercent: round2(du.UsedPercent),
	}
}
