package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/internal/filter"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/projector"
	"github.com/logmaster/dashboard/internal/state"
)

// Action is a user intent delivered by a renderer
type Action string

const (
	ActionRefresh           Action = "refresh"
	ActionRetry             Action = "retry"
	ActionToggleAutoRefresh Action = "toggle_auto_refresh"
	ActionClearFilters      Action = "clear_filters"
	ActionSetFilter         Action = "set_filter"
	ActionLoadLogs          Action = "load_logs"
	ActionLoadDevices       Action = "load_devices"
	ActionLoadCompliance    Action = "load_compliance"
	ActionExportCSV         Action = "export_csv"
	ActionGenerateReport    Action = "generate_report"
	ActionShow              Action = "show"
)

// Argument keys
const (
	ArgKey        = "key"
	ArgValue      = "value"
	ArgView       = "view"
	ArgDeviceID   = "device_id"
	ArgLimit      = "limit"
	ArgReportType = "report_type"
	ArgStartDate  = "start_date"
	ArgEndDate    = "end_date"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Args carries the parameters of an action
type Args map[string]string

// Result reports the outcome of an action for display
type Result struct {
	Message string
	// Path is set by export_csv
	Path string
}

type handler func(ctx context.Context, args Args) (Result, error)

func (c *Controller) actionTable() map[Action]handler {
	return map[Action]handler{
		ActionRefresh:           c.refresh,
		ActionRetry:             c.refresh,
		ActionToggleAutoRefresh: c.toggleAutoRefresh,
		ActionClearFilters:      c.clearFilters,
		ActionSetFilter:         c.setFilter,
		ActionLoadLogs:          c.loadRecentActivity,
		ActionLoadDevices:       c.reload(state.Devices),
		ActionLoadCompliance:    c.reload(state.Compliance),
		ActionExportCSV:         c.exportCSV,
		ActionGenerateReport:    c.generateReport,
		ActionShow:              c.show,
	}
}

// Actions returns every action the controller understands
func (c *Controller) Actions() []Action {
	return []Action{
		ActionRefresh, ActionRetry, ActionToggleAutoRefresh, ActionClearFilters,
		ActionSetFilter, ActionLoadLogs, ActionLoadDevices, ActionLoadCompliance,
		ActionExportCSV, ActionGenerateReport, ActionShow,
	}
}

// Dispatch runs action. Fetches it starts run in the background; export
// and report generation complete before Dispatch returns.
func (c *Controller) Dispatch(ctx context.Context, action Action, args Args) (Result, error) {
	h, ok := c.handlers[action]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return Result{}, ErrClosed
	}

	if args == nil {
		args = Args{}
	}
	c.log.Debug().Str("action", string(action)).Interface("args", args).Msg("dispatch")
	return h(ctx, args)
}

// refresh refetches every domain of the active view
func (c *Controller) refresh(context.Context, Args) (Result, error) {
	c.mu.Lock()
	spec := c.views[c.view]
	ctx := c.viewCtx
	c.mu.Unlock()

	if ctx == nil {
		ctx = c.ctx
	}
	domains := spec.domains
	if !c.Legacy() {
		domains = append([]state.Domain{state.Health}, domains...)
	}
	c.goLoad(ctx, domains...)
	return Result{}, nil
}

func (c *Controller) reload(d state.Domain) handler {
	return func(context.Context, Args) (Result, error) {
		c.goLoad(c.currentCtx(), d)
		return Result{}, nil
	}
}

func (c *Controller) toggleAutoRefresh(context.Context, Args) (Result, error) {
	c.mu.Lock()
	c.autoRefresh = !c.autoRefresh
	on := c.autoRefresh
	if c.view == projector.ViewLogs {
		c.remountLocked()
	}
	c.mu.Unlock()

	c.changed()
	if on {
		return Result{Message: "Auto-refresh enabled"}, nil
	}
	return Result{Message: "Auto-refresh disabled"}, nil
}

func (c *Controller) clearFilters(context.Context, Args) (Result, error) {
	c.filters.Clear()
	return Result{}, nil
}

func (c *Controller) setFilter(_ context.Context, args Args) (Result, error) {
	key, ok := args[ArgKey]
	if !ok {
		return Result{}, fmt.Errorf("%w: missing %s", ErrInvalidArgument, ArgKey)
	}
	if err := c.filters.Update(key, args[ArgValue]); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

// loadRecentActivity selects the device and limit of the activity list
// and reloads it. Missing arguments keep their current value.
func (c *Controller) loadRecentActivity(_ context.Context, args Args) (Result, error) {
	c.mu.Lock()
	q := c.recent
	c.mu.Unlock()

	if id, ok := args[ArgDeviceID]; ok {
		q.DeviceID = id
	}
	if raw, ok := args[ArgLimit]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Result{}, fmt.Errorf("%w: limit %q", ErrInvalidArgument, raw)
		}
		q.Limit = n
	}

	c.mu.Lock()
	c.recent = q
	c.mu.Unlock()

	c.goLoad(c.currentCtx(), state.RecentActivity)
	return Result{}, nil
}

// exportCSV writes the logs currently shown to a CSV file
func (c *Controller) exportCSV(context.Context, Args) (Result, error) {
	logs, _ := state.Get[[]models.LogEntry](c.store, state.Logs)
	path, err := c.exporter.Export(logs)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Message: fmt.Sprintf("Exported %d logs to %s", len(logs), path),
		Path:    path,
	}, nil
}

// generateReport posts a report request, defaulting to a monthly report
// of the previous calendar month, then reloads the compliance score
func (c *Controller) generateReport(ctx context.Context, args Args) (Result, error) {
	start, end := PreviousMonth(c.now())
	req := models.ReportRequest{
		ReportType: orDefault(args[ArgReportType], models.ReportMonthly),
		StartDate:  orDefault(args[ArgStartDate], start),
		EndDate:    orDefault(args[ArgEndDate], end),
	}
	if err := validateReport(req); err != nil {
		return Result{}, err
	}

	t := c.store.Begin(state.Report)
	result, err := c.backend.GenerateReport(ctx, req)
	if err != nil {
		c.store.Fail(t, err)
		c.log.Warn().Err(err).Str("type", req.ReportType).Msg("report generation failed")
		return Result{}, err
	}
	c.store.Succeed(t, *result)
	c.goLoad(c.currentCtx(), state.Compliance)

	c.log.Info().Str("type", req.ReportType).Str("period", result.Period).Msg("Report generated")
	if !result.Success {
		return Result{Message: "Report generation failed"}, nil
	}
	return Result{Message: fmt.Sprintf("Report generated. Compliance score: %.2f", result.ComplianceScore)}, nil
}

func (c *Controller) show(_ context.Context, args Args) (Result, error) {
	return Result{}, c.Show(projector.View(args[ArgView]))
}

// PreviousMonth returns the first and last day of the calendar month
// before now, formatted for a report request
func PreviousMonth(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := first.AddDate(0, -1, 0)
	end := first.AddDate(0, 0, -1)
	return start.Format(api.DateLayout), end.Format(api.DateLayout)
}

func validateReport(req models.ReportRequest) error {
	switch req.ReportType {
	case models.ReportDaily, models.ReportWeekly, models.ReportMonthly, models.ReportCompliance:
	default:
		return fmt.Errorf("%w: report type %q", ErrInvalidArgument, req.ReportType)
	}

	start, err := time.Parse(api.DateLayout, req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date %q", ErrInvalidArgument, req.StartDate)
	}
	end, err := time.Parse(api.DateLayout, req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date %q", ErrInvalidArgument, req.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidArgument)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// FilterKeys are the keys accepted by set_filter
var FilterKeys = []string{filter.KeyIP, filter.KeyInterface, filter.KeySeverity, filter.KeySearch, filter.KeyLimit}
