package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// API surfaces
const (
	SurfaceV1     = "v1"
	SurfaceLegacy = "legacy"
)

// Overlap policies for poll ticks
const (
	OverlapSkip  = "skip"
	OverlapAllow = "allow"
)

// ValidLimits are the page sizes the logs view offers
var ValidLimits = []int{50, 100, 500, 1000}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	API     APIConfig     `toml:"api" yaml:"api"`
	Polling PollingConfig `toml:"polling" yaml:"polling"`
	Logs    LogsConfig    `toml:"logs" yaml:"logs"`
	Export  ExportConfig  `toml:"export" yaml:"export"`
	MockAPI MockAPIConfig `toml:"mockapi" yaml:"mockapi"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name     string `toml:"name" yaml:"name"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	Locale   string `toml:"locale" yaml:"locale"`
}

// APIConfig holds the backend connection settings
type APIConfig struct {
	BaseURL        string   `toml:"base_url" yaml:"base_url"`
	Surface        string   `toml:"surface" yaml:"surface"`
	RequestTimeout Duration `toml:"request_timeout" yaml:"request_timeout"`
	RetryMax       int      `toml:"retry_max" yaml:"retry_max"`
	RetryWaitMin   Duration `toml:"retry_wait_min" yaml:"retry_wait_min"`
	RetryWaitMax   Duration `toml:"retry_wait_max" yaml:"retry_wait_max"`
}

// PollingConfig holds refresh intervals per view
type PollingConfig struct {
	Dashboard      Duration `toml:"dashboard" yaml:"dashboard"`
	Logs           Duration `toml:"logs" yaml:"logs"`
	System         Duration `toml:"system" yaml:"system"`
	Discovery      Duration `toml:"discovery" yaml:"discovery"`
	Health         Duration `toml:"health" yaml:"health"`
	Overview       Duration `toml:"overview" yaml:"overview"`
	Overlap        string   `toml:"overlap" yaml:"overlap"`
	FilterDebounce Duration `toml:"filter_debounce" yaml:"filter_debounce"`
}

// LogsConfig holds logs view settings
type LogsConfig struct {
	DefaultLimit int   `toml:"default_limit" yaml:"default_limit"`
	AutoRefresh  *bool `toml:"auto_refresh" yaml:"auto_refresh"`
}

// ExportConfig holds CSV export settings
type ExportConfig struct {
	Dir string `toml:"dir" yaml:"dir"`
}

// MockAPIConfig holds fixture backend settings
type MockAPIConfig struct {
	Host        string `toml:"host" yaml:"host"`
	Port        int    `toml:"port" yaml:"port"`
	LiveMetrics bool   `toml:"live_metrics" yaml:"live_metrics"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// AutoRefreshEnabled reports the configured logs auto-refresh, default on
func (l LogsConfig) AutoRefreshEnabled() bool {
	return l.AutoRefresh == nil || *l.AutoRefresh
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths and URLs
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the LOGMASTER_CONFIG environment
// variable or the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("LOGMASTER_CONFIG")
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			"./config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/logmaster/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "LogMaster"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFile == "" {
		c.General.LogFile = "$HOME/.logmaster/logmaster.log"
	}
	if c.General.Locale == "" {
		c.General.Locale = "en"
	}

	// API
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080"
	}
	if c.API.Surface == "" {
		c.API.Surface = SurfaceV1
	}
	if c.API.RetryWaitMin.Duration == 0 {
		c.API.RetryWaitMin.Duration = 500 * time.Millisecond
	}
	if c.API.RetryWaitMax.Duration == 0 {
		c.API.RetryWaitMax.Duration = 2 * time.Second
	}

	// Polling
	if c.Polling.Dashboard.Duration == 0 {
		c.Polling.Dashboard.Duration = 30 * time.Second
	}
	if c.Polling.Logs.Duration == 0 {
		c.Polling.Logs.Duration = 5 * time.Second
	}
	if c.Polling.System.Duration == 0 {
		c.Polling.System.Duration = 10 * time.Second
	}
	if c.Polling.Discovery.Duration == 0 {
		c.Polling.Discovery.Duration = 10 * time.Second
	}
	if c.Polling.Health.Duration == 0 {
		c.Polling.Health.Duration = 30 * time.Second
	}
	if c.Polling.Overview.Duration == 0 {
		c.Polling.Overview.Duration = 5 * time.Minute
	}
	if c.Polling.Overlap == "" {
		c.Polling.Overlap = OverlapSkip
	}

	// Logs
	if c.Logs.DefaultLimit == 0 {
		c.Logs.DefaultLimit = 100
	}

	// Export
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}

	// MockAPI
	if c.MockAPI.Host == "" {
		c.MockAPI.Host = "127.0.0.1"
	}
	if c.MockAPI.Port == 0 {
		c.MockAPI.Port = 8080
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.API.BaseURL = os.ExpandEnv(c.API.BaseURL)
	c.Export.Dir = os.ExpandEnv(c.Export.Dir)
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %q", c.API.BaseURL)
	}

	switch c.API.Surface {
	case SurfaceV1, SurfaceLegacy:
	default:
		return fmt.Errorf("invalid api.surface: %q (want %s or %s)", c.API.Surface, SurfaceV1, SurfaceLegacy)
	}

	switch c.Polling.Overlap {
	case OverlapSkip, OverlapAllow:
	default:
		return fmt.Errorf("invalid polling.overlap: %q (want %s or %s)", c.Polling.Overlap, OverlapSkip, OverlapAllow)
	}

	if c.API.RetryMax < 0 {
		return fmt.Errorf("invalid api.retry_max: %d", c.API.RetryMax)
	}

	if !IsValidLimit(c.Logs.DefaultLimit) {
		return fmt.Errorf("invalid logs.default_limit: %d (want one of %v)", c.Logs.DefaultLimit, ValidLimits)
	}

	return nil
}

// IsValidLimit reports whether n is one of ValidLimits
func IsValidLimit(n int) bool {
	for _, l := range ValidLimits {
		if l == n {
			return true
		}
	}
	return false
}

// MockAPIAddress returns the listen address of the fixture backend
func (c *Config) MockAPIAddress() string {
	return fmt.Sprintf("%s:%d", c.MockAPI.Host, c.MockAPI.Port)
}
