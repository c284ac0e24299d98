// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive dashboard
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"time"

	"github.com/logmaster/dashboard/internal/controller"
	"github.com/logmaster/dashboard/internal/export"
	"github.com/logmaster/dashboard/internal/tui/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui", "tui"},
	Short:   "Start the interactive dashboard",
	Long: `Start the interactive LogMaster dashboard.

Views refresh on their own interval while shown. Logs are written to
general.log_file so they never disturb the screen.

Keys:
  Tab / 1-9   switch view
  r           refresh (retry after an error)
  /  i        edit search / IP filter (logs)
  f  s  l     cycle interface / severity / limit (logs)
  c           clear filters (logs)
  a           toggle auto-refresh (logs)
  e           export the log table to CSV (logs)
  d           cycle device (legacy activity)
  g           generate report (legacy reports)
  q / Ctrl+C  quit`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closer, err := newLogger(cfg, "logmaster-dashboard", true)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	ctrl, err := controller.New(controller.Options{
		Backend:  client,
		Config:   cfg,
		Logger:   log,
		Exporter: export.New(cfg.Export.Dir, log),
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ctrl.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("dashboard shutdown incomplete")
		}
	}()

	return dashboard.Run(ctrl)
}
