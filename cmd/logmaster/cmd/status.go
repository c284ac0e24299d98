package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/pkg/core/config"
	"github.com/logmaster/dashboard/pkg/core/health"
	"github.com/logmaster/dashboard/pkg/core/version"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe every endpoint of the configured surface",
	Long: `Probe every read endpoint of the configured API surface and print
whether it answers.

The command exits non-zero when any endpoint is unhealthy.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// surfaceEndpoints lists the read endpoints probed for a surface
func surfaceEndpoints(surface string) []string {
	if surface == config.SurfaceLegacy {
		return []string{
			api.EndpointOverview,
			api.EndpointLegacyRecent,
			api.EndpointDevices,
			api.EndpointSignatures,
			api.EndpointArchives,
			api.EndpointComplianceScore,
			api.EndpointServiceHealth,
		}
	}
	return []string{
		api.EndpointSystemStatus,
		api.EndpointStats,
		api.EndpointRecentLogs,
		api.EndpointLogs,
		api.EndpointSystemMetrics,
		api.EndpointFileStructure,
	}
}

// newStatusRegistry registers one HTTP probe per endpoint of the surface
func newStatusRegistry(cfg *config.Config) *health.Registry {
	hc := api.CreateRetryableClient(0, cfg.API.RetryWaitMin.Duration, cfg.API.RetryWaitMax.Duration)
	hc.HTTPClient.Timeout = cfg.API.RequestTimeout.Duration
	client := hc.StandardClient()

	base := strings.TrimRight(cfg.API.BaseURL, "/")
	registry := health.NewRegistry("logmaster", version.App)
	for _, endpoint := range surfaceEndpoints(cfg.API.Surface) {
		registry.Register(health.HTTPCheck(endpoint, base+endpoint, client))
	}
	return registry
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	timeout := cfg.API.RequestTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	report := newStatusRegistry(cfg).CheckWithTimeout(timeout)

	printStatus(cmd.OutOrStdout(), cfg, report)
	if !report.Healthy() {
		return fmt.Errorf("backend %s", report.Status)
	}
	return nil
}

func printStatus(w io.Writer, cfg *config.Config, report *health.Report) {
	fmt.Fprintln(w, "LogMaster Status")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Backend: %s (%s)\n", cfg.API.BaseURL, cfg.API.Surface)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "----------")

	for _, c := range report.Checks {
		icon := "[+]"
		if c.Status != health.StatusHealthy {
			icon = "[-]"
		}
		fmt.Fprintf(w, "  %s %-28s %-9s %s (%s)\n",
			icon, c.Name, c.Status, c.Message, c.Duration.Round(time.Millisecond))
	}

	fmt.Fprintln(w)
	if report.Healthy() {
		fmt.Fprintln(w, "All endpoints are reachable.")
	} else {
		fmt.Fprintln(w, "Some endpoints are not reachable.")
	}
}
