package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "300ms", 300 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()

			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.Name != "LogMaster" {
		t.Errorf("General.Name = %v, want LogMaster", cfg.General.Name)
	}
	if cfg.General.Locale != "en" {
		t.Errorf("General.Locale = %v, want en", cfg.General.Locale)
	}
	if cfg.API.Surface != SurfaceV1 {
		t.Errorf("API.Surface = %v, want %v", cfg.API.Surface, SurfaceV1)
	}
	if cfg.API.RetryMax != 0 {
		t.Errorf("API.RetryMax = %v, want 0", cfg.API.RetryMax)
	}
	if cfg.API.RequestTimeout.Duration != 0 {
		t.Errorf("API.RequestTimeout = %v, want 0", cfg.API.RequestTimeout.Duration)
	}

	intervals := map[string]struct {
		got  time.Duration
		want time.Duration
	}{
		"dashboard": {cfg.Polling.Dashboard.Duration, 30 * time.Second},
		"logs":      {cfg.Polling.Logs.Duration, 5 * time.Second},
		"system":    {cfg.Polling.System.Duration, 10 * time.Second},
		"discovery": {cfg.Polling.Discovery.Duration, 10 * time.Second},
		"health":    {cfg.Polling.Health.Duration, 30 * time.Second},
		"overview":  {cfg.Polling.Overview.Duration, 5 * time.Minute},
	}
	for name, iv := range intervals {
		if iv.got != iv.want {
			t.Errorf("Polling.%s = %v, want %v", name, iv.got, iv.want)
		}
	}

	if cfg.Polling.Overlap != OverlapSkip {
		t.Errorf("Polling.Overlap = %v, want %v", cfg.Polling.Overlap, OverlapSkip)
	}
	if cfg.Polling.FilterDebounce.Duration != 0 {
		t.Errorf("Polling.FilterDebounce = %v, want 0", cfg.Polling.FilterDebounce.Duration)
	}
	if cfg.Logs.DefaultLimit != 100 {
		t.Errorf("Logs.DefaultLimit = %v, want 100", cfg.Logs.DefaultLimit)
	}
	if !cfg.Logs.AutoRefreshEnabled() {
		t.Error("Logs.AutoRefreshEnabled() = false, want true")
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[general]
locale = "tr"
log_level = "debug"

[api]
base_url = "http://logs.example.com:9000"
surface = "legacy"
request_timeout = "15s"
retry_max = 2

[polling]
dashboard = "1m"
overlap = "allow"
filter_debounce = "300ms"

[logs]
default_limit = 500
auto_refresh = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Locale != "tr" {
		t.Errorf("General.Locale = %v, want tr", cfg.General.Locale)
	}
	if cfg.API.BaseURL != "http://logs.example.com:9000" {
		t.Errorf("API.BaseURL = %v", cfg.API.BaseURL)
	}
	if cfg.API.Surface != SurfaceLegacy {
		t.Errorf("API.Surface = %v, want legacy", cfg.API.Surface)
	}
	if cfg.API.RequestTimeout.Duration != 15*time.Second {
		t.Errorf("API.RequestTimeout = %v, want 15s", cfg.API.RequestTimeout.Duration)
	}
	if cfg.API.RetryMax != 2 {
		t.Errorf("API.RetryMax = %v, want 2", cfg.API.RetryMax)
	}
	if cfg.Polling.Dashboard.Duration != time.Minute {
		t.Errorf("Polling.Dashboard = %v, want 1m", cfg.Polling.Dashboard.Duration)
	}
	if cfg.Polling.Logs.Duration != 5*time.Second {
		t.Errorf("Polling.Logs = %v, want default 5s", cfg.Polling.Logs.Duration)
	}
	if cfg.Polling.Overlap != OverlapAllow {
		t.Errorf("Polling.Overlap = %v, want allow", cfg.Polling.Overlap)
	}
	if cfg.Polling.FilterDebounce.Duration != 300*time.Millisecond {
		t.Errorf("Polling.FilterDebounce = %v, want 300ms", cfg.Polling.FilterDebounce.Duration)
	}
	if cfg.Logs.DefaultLimit != 500 {
		t.Errorf("Logs.DefaultLimit = %v, want 500", cfg.Logs.DefaultLimit)
	}
	if cfg.Logs.AutoRefreshEnabled() {
		t.Error("Logs.AutoRefreshEnabled() = true, want false")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
api:
  base_url: http://127.0.0.1:8081
polling:
  system: 20s
mockapi:
  port: 9999
  live_metrics: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://127.0.0.1:8081" {
		t.Errorf("API.BaseURL = %v", cfg.API.BaseURL)
	}
	if cfg.Polling.System.Duration != 20*time.Second {
		t.Errorf("Polling.System = %v, want 20s", cfg.Polling.System.Duration)
	}
	if cfg.MockAPIAddress() != "127.0.0.1:9999" {
		t.Errorf("MockAPIAddress() = %v", cfg.MockAPIAddress())
	}
	if !cfg.MockAPI.LiveMetrics {
		t.Error("MockAPI.LiveMetrics = false, want true")
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("LOGMASTER_TEST_HOST", "backend.internal")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
base_url = "http://${LOGMASTER_TEST_HOST}:8080"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://backend.internal:8080" {
		t.Errorf("API.BaseURL = %v", cfg.API.BaseURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad syntax", "bad.toml", "[api\nbase_url = 1"},
		{"bad surface", "surface.toml", "[api]\nsurface = \"v2\""},
		{"bad overlap", "overlap.toml", "[polling]\noverlap = \"queue\""},
		{"bad limit", "limit.toml", "[logs]\ndefault_limit = 42"},
		{"bad url", "url.toml", "[api]\nbase_url = \"not a url\""},
		{"negative retries", "retry.toml", "[api]\nretry_max = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[general]\nlocale = \"tr\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("LOGMASTER_CONFIG", path)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Locale != "tr" {
		t.Errorf("General.Locale = %v, want tr", cfg.General.Locale)
	}
}

func TestIsValidLimit(t *testing.T) {
	for _, n := range []int{50, 100, 500, 1000} {
		if !IsValidLimit(n) {
			t.Errorf("IsValidLimit(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, 10, 99, 5000} {
		if IsValidLimit(n) {
			t.Errorf("IsValidLimit(%d) = true, want false", n)
		}
	}
}
