package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixtureNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type MockAPITestSuite struct {
	suite.Suite
	server *Server
	ts     *httptest.Server
	client *api.Client
	ctx    context.Context
}

func (s *MockAPITestSuite) SetupTest() {
	s.server = New(Options{
		Fixture: NewFixture(200, func() time.Time { return fixtureNow }),
		Logger:  zerolog.Nop(),
	})
	s.ts = httptest.NewServer(s.server.Handler())

	cfg := api.DefaultConfig()
	cfg.BaseURL = s.ts.URL
	cfg.Logger = zerolog.Nop()
	client, err := api.New(cfg)
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *MockAPITestSuite) TearDownTest() {
	s.ts.Close()
}

func (s *MockAPITestSuite) TestStats() {
	stats, err := s.client.Stats(s.ctx)
	s.Require().NoError(err)

	s.Equal(int64(200), stats.TotalLogs)
	s.Equal(models.HealthHealthy, stats.SystemStatus)
	var sum int64
	for _, n := range stats.InterfaceStats {
		sum += n
	}
	s.Equal(stats.TotalLogs, sum)
	s.Equal(int64(len(stats.IPStats)), stats.ActiveBusinesses)
}

func (s *MockAPITestSuite) TestLogsFiltering() {
	resp, err := s.client.Logs(s.ctx, api.Params{"severity": models.SeverityError, "limit": "50"})
	s.Require().NoError(err)

	s.LessOrEqual(len(resp.Logs), 50)
	s.Equal(50, resp.Limit)
	for _, l := range resp.Logs {
		s.Equal(models.SeverityError, l.Severity)
	}

	resp, err = s.client.Logs(s.ctx, api.Params{"search": "NTP"})
	s.Require().NoError(err)
	for _, l := range resp.Logs {
		s.Contains(l.Message, "NTP")
	}

	resp, err = s.client.Logs(s.ctx, api.Params{"ip": "172.16.0.1"})
	s.Require().NoError(err)
	s.Empty(resp.Logs)
	s.NotNil(resp.Logs)
}

func (s *MockAPITestSuite) TestLogsInvalidLimit() {
	_, err := s.client.Logs(s.ctx, api.Params{"limit": "many"})
	s.Require().Error(err)
	s.ErrorIs(err, api.ErrHTTP)
	s.Equal(http.StatusBadRequest, api.StatusCode(err))
}

func (s *MockAPITestSuite) TestComponentEndpoints() {
	recent, err := s.client.RecentLogs(s.ctx)
	s.Require().NoError(err)
	s.Len(recent, 10)

	status, err := s.client.SystemStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.HealthHealthy, status.Status)
	s.Contains(status.Services, "rsyslog")

	metrics, err := s.client.SystemMetrics(s.ctx)
	s.Require().NoError(err)
	s.Equal(DefaultStaticMetrics().Values.CPUUsage, metrics.CPUUsage)

	fs, err := s.client.FileStructure(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(fs.Directories)
	s.Equal(fs.FileCount*4096, fs.TotalSize.Bytes)
}

func (s *MockAPITestSuite) TestLegacyEndpoints() {
	overview, err := s.client.Overview(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(200), overview.TotalLogs)
	s.Equal(int64(3), overview.ActiveDevices)

	devices, err := s.client.Devices(s.ctx)
	s.Require().NoError(err)
	s.Len(devices, 5)

	activity, err := s.client.LegacyRecentLogs(s.ctx, api.Params{"device_id": "fw-01", "limit": "5"})
	s.Require().NoError(err)
	s.LessOrEqual(len(activity), 5)
	for _, a := range activity {
		s.Equal("fw-01", a.DeviceID)
	}

	sig, err := s.client.Signatures(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(sig.DailyCounts, 3)

	archives, err := s.client.Archives(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), archives.Summary.TotalFiles)

	score, err := s.client.ComplianceScore(s.ctx)
	s.Require().NoError(err)
	s.Equal(30, score.PeriodDays)
	s.InDelta(90, score.Score, 10)

	health, err := s.client.ServiceHealth(s.ctx)
	s.Require().NoError(err)
	s.Equal("active", health["service_rsyslog"])
}

func (s *MockAPITestSuite) TestGenerateReport() {
	result, err := s.client.GenerateReport(s.ctx, models.ReportRequest{
		ReportType: models.ReportMonthly,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-30",
	})
	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal("2026-09-01 - 2026-09-30", result.Period)
	s.Equal(1, s.server.Fixture().Reports())

	_, err = s.client.GenerateReport(s.ctx, models.ReportRequest{ReportType: models.ReportDaily, StartDate: "yesterday"})
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, api.StatusCode(err))
}

func (s *MockAPITestSuite) TestInjectedFailure() {
	s.server.Fail(api.EndpointStats, http.StatusServiceUnavailable)

	_, err := s.client.Stats(s.ctx)
	s.Require().Error(err)
	s.Equal(http.StatusServiceUnavailable, api.StatusCode(err))

	s.server.Recover(api.EndpointStats)
	_, err = s.client.Stats(s.ctx)
	s.NoError(err)
}

func TestMockAPITestSuite(t *testing.T) {
	suite.Run(t, new(MockAPITestSuite))
}

func TestFixture_Deterministic(t *testing.T) {
	now := func() time.Time { return fixtureNow }
	a := NewFixture(50, now)
	b := NewFixture(50, now)
	assert.Equal(t, a.Logs(LogQuery{}), b.Logs(LogQuery{}))
}

func TestFixture_LogsNewestFirst(t *testing.T) {
	f := NewFixture(20, func() time.Time { return fixtureNow })
	logs := f.Logs(LogQuery{})
	require.Len(t, logs, 20)
	for i := 1; i < len(logs); i++ {
		assert.True(t, logs[i-1].Timestamp.After(logs[i].Timestamp))
	}
	assert.Equal(t, fixtureNow, logs[0].Timestamp)
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(Options{Logger: zerolog.Nop()})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestUnknownRoute(t *testing.T) {
	srv := New(Options{Logger: zerolog.Nop()})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/stats", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
}

func TestHostMetrics_ReusesSample(t *testing.T) {
	h := NewHostMetrics(t.TempDir(), zerolog.Nop())
	ctx := context.Background()

	first := h.Metrics(ctx)
	second := h.Metrics(ctx)
	assert.Equal(t, first.Timestamp, second.Timestamp, "second call within the TTL reuses the sample")
	assert.GreaterOrEqual(t, first.CPUUsage, 0.0)

	disk := h.Disk(ctx)
	assert.Greater(t, disk.Total, int64(0))
}
