package cmd

import (
	"fmt"
	"time"

	"github.com/logmaster/dashboard/internal/controller"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/state"
	"github.com/spf13/cobra"
)

var (
	reportType  string
	reportStart string
	reportEnd   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a compliance report",
	Long: `Ask the backend to generate a compliance report (legacy surface).

Without dates the previous calendar month is used.

Examples:
  logmaster report
  logmaster report --type weekly --start 2026-10-05 --end 2026-10-11`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportType, "type", "t", "monthly", "report type: daily, weekly or monthly")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date YYYY-MM-DD")
}

func runReport(cmd *cobra.Command, args []string) error {
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

	ctrl, err := controller.New(controller.Options{Backend: client, Config: cfg, Logger: log})
	if err != nil {
		return err
	}
	defer ctrl.Close(cmd.Context())

	result, err := ctrl.Dispatch(cmd.Context(), controller.ActionGenerateReport, controller.Args{
		controller.ArgReportType: reportType,
		controller.ArgStartDate:  reportStart,
		controller.ArgEndDate:    reportEnd,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message)
	if r, ok := state.Get[models.ReportResult](ctrl.Store(), state.Report); ok {
		fmt.Fprintf(out, "  Type:      %s\n", r.ReportType)
		fmt.Fprintf(out, "  Period:    %s\n", r.Period)
		fmt.Fprintf(out, "  Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	}
	return nil
}
