package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/pkg/core/config"
	"github.com/logmaster/dashboard/pkg/core/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	baseURL  string
	surface  string
	locale   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "logmaster",
	Short: "LogMaster - log monitoring dashboard",
	Long: `LogMaster is a terminal dashboard for a LogMaster log collection backend.

It polls the backend REST API and shows statistics, the filterable log
table, system health and the directory discovery tree. The legacy
surface adds devices, signatures, archives and compliance reports.

Commands:
  dashboard  - interactive terminal dashboard
  logs       - print (or watch) the filtered log table
  export     - write the filtered log table to CSV
  status     - probe every endpoint of the configured surface
  report     - generate a compliance report
  mockapi    - serve a fixture backend for development`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints a failing command's error
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.Name(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $LOGMASTER_CONFIG or ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().StringVar(&surface, "surface", "", "API surface: v1 or legacy (overrides api.surface)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "number formatting locale (overrides general.locale)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides general.log_level)")
}

// loadConfig reads the configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if surface != "" {
		cfg.API.Surface = surface
	}
	if locale != "" {
		cfg.General.Locale = locale
	}
	if logLevel != "" {
		cfg.General.LogLevel = logLevel
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to stderr, or to the configured file when toFile is set
func newLogger(cfg *config.Config, service string, toFile bool) (zerolog.Logger, io.Closer, error) {
	lc := logging.DefaultLoggerConfig(service)
	lc.Level = cfg.General.LogLevel
	if toFile {
		lc.File = cfg.General.LogFile
	}

	log, closer, err := logging.NewLogger(lc)
	if err != nil {
		return log, closer, err
	}
	logging.SetLogger(log)
	return log, closer, nil
}

// newClient builds the REST client of the configured backend
func newClient(cfg *config.Config, log zerolog.Logger) (*api.Client, error) {
	return api.New(api.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.RequestTimeout.Duration,
		RetryMax:     cfg.API.RetryMax,
		RetryWaitMin: cfg.API.RetryWaitMin.Duration,
		RetryWaitMax: cfg.API.RetryWaitMax.Duration,
		Logger:       log.With().Str("component", "api").Logger(),
	})
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
