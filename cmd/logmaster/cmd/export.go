package cmd

import (
	"fmt"

	"github.com/logmaster/dashboard/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFlags filterFlags
	exportDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered log table to CSV",
	Long: `Fetch one page of logs with the given filters and write it to
logmaster-logs-YYYY-MM-DD.csv in the export directory.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default: export.dir)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	logs, err := exportFlags.fetchLogs(cmd.Context(), cfg, client)
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	path, err := export.New(dir, log).Export(logs)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d logs to %s\n", len(logs), path)
	return nil
}
