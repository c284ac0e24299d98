package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/internal/filter"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/poller"
	"github.com/logmaster/dashboard/internal/projector"
	"github.com/logmaster/dashboard/pkg/core/config"
	"github.com/spf13/cobra"
)

// filterFlags are the log filter flags shared by logs and export
type filterFlags struct {
	ip       string
	iface    string
	severity string
	search   string
	limit    int
	deviceID string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ip, "ip", "", "filter by source IP (substring)")
	cmd.Flags().StringVar(&f.iface, "interface", "", "filter by interface")
	cmd.Flags().StringVar(&f.severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&f.search, "search", "", "filter by message text")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size: 50, 100, 500 or 1000 (default: logs.default_limit)")
	cmd.Flags().StringVar(&f.deviceID, "device", "", "device ID (legacy surface)")
}

// criteria validates the flags the same way the dashboard's filter bar does
func (f *filterFlags) criteria(cfg *config.Config) (filter.Criteria, error) {
	limit := f.limit
	if limit == 0 {
		limit = cfg.Logs.DefaultLimit
	}

	c := filter.Defaults()
	var err error
	for _, kv := range [][2]string{
		{filter.KeyIP, f.ip},
		{filter.KeyInterface, f.iface},
		{filter.KeySeverity, f.severity},
		{filter.KeySearch, f.search},
		{filter.KeyLimit, strconv.Itoa(limit)},
	} {
		if c, err = c.With(kv[0], kv[1]); err != nil {
			return c, err
		}
	}
	return c, nil
}

// fetchLogs reads one page of logs from the configured surface. The legacy
// surface only knows the recent-activity feed.
func (f *filterFlags) fetchLogs(ctx context.Context, cfg *config.Config, client *api.Client) ([]models.LogEntry, error) {
	c, err := f.criteria(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.API.Surface == config.SurfaceLegacy {
		q := filter.RecentQuery{DeviceID: f.deviceID, Limit: c.Limit}
		recent, err := client.LegacyRecentLogs(ctx, q.ToQuery())
		if err != nil {
			return nil, err
		}
		logs := make([]models.LogEntry, len(recent))
		for i, r := range recent {
			logs[i] = models.LogEntry{
				Timestamp: r.Timestamp.Time,
				IP:        r.SourceIP,
				Interface: orDevice(r),
				Message:   r.MessagePreview,
			}
		}
		return logs, nil
	}

	resp, err := client.Logs(ctx, c.ToQuery())
	if err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

func orDevice(r models.RecentLog) string {
	if r.DeviceName != "" {
		return r.DeviceName
	}
	return r.DeviceID
}

var (
	logsFlags    filterFlags
	logsWatch    bool
	logsInterval time.Duration
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the filtered log table",
	Long: `Print one page of logs from the backend, newest first.

With --watch the table is reprinted on every interval until interrupted.

Examples:
  logmaster logs --severity error --limit 50
  logmaster logs --interface HOTEL --watch --interval 5s
  logmaster logs --surface legacy --device fw-01`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsFlags.register(logsCmd)
	logsCmd.Flags().BoolVarP(&logsWatch, "watch", "w", false, "reprint the table on every interval")
	logsCmd.Flags().DurationVar(&logsInterval, "interval", 0, "watch interval (default: polling.logs)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg, "logmaster-cli", false)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}
	// Reject bad filters before the first request
	if _, err := logsFlags.criteria(cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	show := func(ctx context.Context) error {
		logs, err := logsFlags.fetchLogs(ctx, cfg, client)
		if err != nil {
			return err
		}
		printLogTable(out, logs, timeLayout(cfg))
		return nil
	}

	if !logsWatch {
		return show(cmd.Context())
	}

	interval := logsInterval
	if interval == 0 {
		interval = cfg.Polling.Logs.Duration
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := poller.New(poller.ParseOverlap(cfg.Polling.Overlap), log)
	scheduler.Start("logs", interval, func(ctx context.Context) {
		if err := show(ctx); err != nil {
			fmt.Fprintf(out, "[-] %s\n", err)
		}
	})
	scheduler.Trigger("logs")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return scheduler.Shutdown(shutdownCtx)
}

func timeLayout(cfg *config.Config) string {
	if cfg.API.Surface == config.SurfaceLegacy {
		return projector.LegacyTimeLayout
	}
	return projector.TimeLayout
}

func printLogTable(w io.Writer, logs []models.LogEntry, layout string) {
	if len(logs) == 0 {
		fmt.Fprintln(w, projector.NoLogsPlaceholder)
		return
	}

	sorted := make([]models.LogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	rows := make([][]string, len(sorted))
	severity := make([]string, len(sorted))
	for i, e := range sorted {
		rows[i] = []string{
			projector.FormatTime(e.Timestamp, layout),
			e.IP,
			e.Interface,
			e.Severity,
			projector.Truncate(e.Message, projector.MessageMaxLen),
		}
		severity[i] = projector.SeverityColor(e.Severity)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIME", "IP", "INTERFACE", "SEVERITY", "MESSAGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col == 3 && row >= 0 && row < len(severity) {
				return s.Foreground(lipgloss.Color(severity[row]))
			}
			return s
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d logs\n", len(logs))
}
