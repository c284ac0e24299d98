package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/logmaster/dashboard/internal/mockapi"
	"github.com/spf13/cobra"
)

var (
	mockAddr      string
	mockCount     int
	mockLive      bool
	mockAccessLog bool
)

var mockapiCmd = &cobra.Command{
	Use:     "mockapi",
	Aliases: []string{"mock"},
	Short:   "Serve a fixture backend",
	Long: `Serve both API surfaces from a generated fixture dataset.

With --live-metrics the system metrics and disk usage come from the
local host instead of fixed values.

Example:
  logmaster mockapi --addr 127.0.0.1:8000 --count 1000`,
	RunE: runMockAPI,
}

func init() {
	rootCmd.AddCommand(mockapiCmd)
	mockapiCmd.Flags().StringVar(&mockAddr, "addr", "", "listen address (default: mockapi.host:mockapi.port)")
	mockapiCmd.Flags().IntVar(&mockCount, "count", mockapi.DefaultLogCount, "number of generated log entries")
	mockapiCmd.Flags().BoolVar(&mockLive, "live-metrics", false, "report metrics of this host (default: mockapi.live_metrics)")
	mockapiCmd.Flags().BoolVar(&mockAccessLog, "access-log", false, "log every request")
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg, "logmaster-mockapi", false)
	if err != nil {
		return err
	}
	defer closer.Close()

	addr := mockAddr
	if addr == "" {
		addr = cfg.MockAPIAddress()
	}

	opts := mockapi.Options{
		Fixture:   mockapi.NewFixture(mockCount, nil),
		Logger:    log.With().Str("component", "mockapi").Logger(),
		AccessLog: mockAccessLog,
	}
	if mockLive || cfg.MockAPI.LiveMetrics {
		opts.Metrics = mockapi.NewHostMetrics(cfg.Export.Dir, log)
	}
	server := mockapi.New(opts)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(addr); err != nil {
			errCh <- err
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Mock API listening on http://%s\n", addr)

	select {
	case <-sigCh:
		fmt.Fprintln(cmd.OutOrStdout(), "\nStopping mock API...")
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
