package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/logmaster/dashboard/internal/models"
	"github.com/stretchr/testify/suite"
)

// ClientTestSuite tests the fetch client against a mock backend
type ClientTestSuite struct {
	suite.Suite
	client      *Client
	mockBackend *httptest.Server

	mu        sync.Mutex
	lastQuery url.Values
	lastForm  url.Values
	lastReqID string
}

// SetupSuite runs once before all tests
func (s *ClientTestSuite) SetupSuite() {
	s.mockBackend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.lastQuery = r.URL.Query()
		s.lastReqID = r.Header.Get(RequestIDHeader)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case EndpointStats:
			json.NewEncoder(w).Encode(models.StatsSnapshot{
				TotalLogs:      1234567,
				SystemStatus:   "degraded",
				InterfaceStats: map[string]int64{"HOTEL": 10, "CAFE": 5},
			})
		case EndpointRecentLogs:
			w.Write([]byte(`{"logs": null, "count": 0}`))
		case EndpointLogs:
			json.NewEncoder(w).Encode(models.LogsResponse{
				Logs: []models.LogEntry{{ID: "1", IP: "10.0.0.1", Severity: "error", Message: "disk full"}},
			})
		case EndpointSystemStatus:
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "maintenance"}`))
		case EndpointSystemMetrics:
			w.Write([]byte("invalid json"))
		case EndpointDevices:
			w.Write([]byte(`[{"device_id": "fw-01", "status": "active", "log_count": 42}]`))
		case EndpointServiceHealth:
			w.Write([]byte(`{"database": "healthy", "service_rsyslog": "active"}`))
		case EndpointGenerateReport:
			if err := r.ParseForm(); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			s.mu.Lock()
			s.lastForm = r.PostForm
			s.mu.Unlock()
			json.NewEncoder(w).Encode(models.ReportResult{
				Success:         true,
				ReportType:      r.PostForm.Get("report_type"),
				Period:          r.PostForm.Get("start_date") + " - " + r.PostForm.Get("end_date"),
				ComplianceScore: 97.5,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	cfg := DefaultConfig()
	cfg.BaseURL = s.mockBackend.URL
	client, err := New(cfg)
	s.Require().NoError(err)
	s.client = client
}

// TearDownSuite runs once after all tests
func (s *ClientTestSuite) TearDownSuite() {
	if s.mockBackend != nil {
		s.mockBackend.Close()
	}
}

func (s *ClientTestSuite) TestStats() {
	stats, err := s.client.Stats(context.Background())
	s.NoError(err)
	s.Equal(int64(1234567), stats.TotalLogs)
	s.Equal(models.HealthUnknown, stats.SystemStatus)
	s.Equal(int64(5), stats.InterfaceStats["CAFE"])
}

func (s *ClientTestSuite) TestRequestIDHeader() {
	_, err := s.client.Stats(context.Background())
	s.Require().NoError(err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Len(s.lastReqID, 36)
}

func (s *ClientTestSuite) TestRecentLogsNullBecomesEmpty() {
	logs, err := s.client.RecentLogs(context.Background())
	s.NoError(err)
	s.NotNil(logs)
	s.Empty(logs)
}

func (s *ClientTestSuite) TestLogsSendsOnlyNonEmptyParams() {
	resp, err := s.client.Logs(context.Background(), Params{
		"ip":       "10.0.0.1",
		"severity": "error",
		"search":   "",
		"limit":    "500",
	})
	s.Require().NoError(err)
	s.Len(resp.Logs, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Equal("10.0.0.1", s.lastQuery.Get("ip"))
	s.Equal("500", s.lastQuery.Get("limit"))
	s.False(s.lastQuery.Has("search"))
	s.False(s.lastQuery.Has("interface"))
}

func (s *ClientTestSuite) TestHTTPError() {
	_, err := s.client.SystemStatus(context.Background())
	s.Require().Error(err)
	s.True(errors.Is(err, ErrHTTP))
	s.False(errors.Is(err, ErrNetwork))
	s.Equal(http.StatusServiceUnavailable, StatusCode(err))

	var fe *FetchError
	s.Require().True(errors.As(err, &fe))
	s.Equal(EndpointSystemStatus, fe.Endpoint)
	s.Equal(KindHTTP, fe.Kind)
}

func (s *ClientTestSuite) TestNotFound() {
	err := s.client.Get(context.Background(), "/api/v1/unknown", nil, &struct{}{})
	s.True(errors.Is(err, ErrHTTP))
	s.Equal(http.StatusNotFound, StatusCode(err))
}

func (s *ClientTestSuite) TestParseError() {
	_, err := s.client.SystemMetrics(context.Background())
	s.Require().Error(err)
	s.True(errors.Is(err, ErrParse))
	s.Equal(http.StatusOK, StatusCode(err))
}

func (s *ClientTestSuite) TestDevices() {
	devices, err := s.client.Devices(context.Background())
	s.NoError(err)
	s.Require().Len(devices, 1)
	s.Equal("fw-01", devices[0].DeviceID)
	s.Equal(int64(42), devices[0].LogCount)
}

func (s *ClientTestSuite) TestServiceHealth() {
	health, err := s.client.ServiceHealth(context.Background())
	s.NoError(err)
	s.Equal("active", health["service_rsyslog"])
}

func (s *ClientTestSuite) TestGenerateReport() {
	result, err := s.client.GenerateReport(context.Background(), models.ReportRequest{
		ReportType: models.ReportMonthly,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-30",
	})
	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal("monthly", result.ReportType)
	s.Equal("2026-09-01 - 2026-09-30", result.Period)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Equal("2026-09-01", s.lastForm.Get("start_date"))
}

func (s *ClientTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.client.Stats(ctx)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrNetwork))
	s.True(errors.Is(err, context.Canceled))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = addr
	cfg.Timeout = time.Second
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Stats(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Stats() error = %v, want network error", err)
	}
}

func TestClient_RetriesConnectionErrorsOnly(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.RetryMax = 3
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Stats(context.Background())
	if !errors.Is(err, ErrHTTP) {
		t.Fatalf("Stats() error = %v, want http error", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (HTTP statuses are not retried)", calls)
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost", "://bad"} {
		cfg := DefaultConfig()
		cfg.BaseURL = raw
		if _, err := New(cfg); err == nil {
			t.Errorf("New(%q) expected error", raw)
		}
	}
}

func TestClient_URLKeepsBasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://logs.example.com/proxy/"
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := client.url(EndpointLogs, Params{"limit": "50", "ip": "10.0.0.1", "search": ""})
	want := "http://logs.example.com/proxy/api/v1/logs?ip=10.0.0.1&limit=50"
	if got != want {
		t.Errorf("url() = %v, want %v", got, want)
	}
}
