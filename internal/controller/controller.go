// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     controller
// Description: Binds views to poll tasks, view state and user actions
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/internal/export"
	"github.com/logmaster/dashboard/internal/filter"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/internal/poller"
	"github.com/logmaster/dashboard/internal/projector"
	"github.com/logmaster/dashboard/internal/state"
	"github.com/logmaster/dashboard/pkg/core/config"
	"github.com/rs/zerolog"
)

// DefaultSignatureDays is the window of the signatures view
const DefaultSignatureDays = 7

var (
	ErrUnknownView = errors.New("unknown view")
	ErrClosed      = errors.New("controller closed")
)

// Backend is the part of the REST client the controller fetches from
type Backend interface {
	Stats(ctx context.Context) (*models.StatsSnapshot, error)
	RecentLogs(ctx context.Context) ([]models.LogEntry, error)
	Logs(ctx context.Context, query api.Params) (*models.LogsResponse, error)
	SystemStatus(ctx context.Context) (*models.SystemStatus, error)
	SystemMetrics(ctx context.Context) (*models.SystemMetrics, error)
	FileStructure(ctx context.Context) (*models.FileStructure, error)

	Overview(ctx context.Context) (*models.OverviewStats, error)
	LegacyRecentLogs(ctx context.Context, query api.Params) ([]models.RecentLog, error)
	Devices(ctx context.Context) ([]models.Device, error)
	Signatures(ctx context.Context, days int) (*models.SignatureStatus, error)
	Archives(ctx context.Context) (*models.ArchiveInfo, error)
	ComplianceScore(ctx context.Context) (*models.ComplianceScore, error)
	ServiceHealth(ctx context.Context) (models.ServiceHealth, error)
	GenerateReport(ctx context.Context, req models.ReportRequest) (*models.ReportResult, error)
}

// Options configures a Controller
type Options struct {
	Backend  Backend
	Config   *config.Config
	Logger   zerolog.Logger
	Exporter *export.Exporter
	// Now defaults to time.Now
	Now func() time.Time
}

// Controller owns the view state of one dashboard session
type Controller struct {
	backend   Backend
	cfg       *config.Config
	log       zerolog.Logger
	exporter  *export.Exporter
	now       func() time.Time
	scheduler *poller.Scheduler
	store     *state.Store
	filters   *filter.Model
	views     map[projector.View]viewSpec
	order     []projector.View
	handlers  map[Action]handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	view        projector.View
	viewCtx     context.Context
	viewCancel  context.CancelFunc
	autoRefresh bool
	recent      filter.RecentQuery
	started     bool
	closed      bool
	listeners   []func()
}

// New creates a controller for the configured API surface. Nothing is
// fetched until Start.
func New(opts Options) (*Controller, error) {
	if opts.Backend == nil {
		return nil, errors.New("controller: backend is required")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Exporter == nil {
		opts.Exporter = export.New(opts.Config.Export.Dir, opts.Logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		backend:     opts.Backend,
		cfg:         opts.Config,
		log:         opts.Logger.With().Str("component", "controller").Logger(),
		exporter:    opts.Exporter,
		now:         opts.Now,
		scheduler:   poller.New(poller.ParseOverlap(opts.Config.Polling.Overlap), opts.Logger),
		store:       state.New(),
		ctx:         ctx,
		cancel:      cancel,
		autoRefresh: opts.Config.Logs.AutoRefreshEnabled(),
		recent:      filter.DefaultRecentQuery(),
	}

	if opts.Config.API.Surface == config.SurfaceLegacy {
		c.views, c.order = legacyViews, legacyOrder
	} else {
		c.views, c.order = v1Views, v1Order
	}

	c.filters = filter.NewModel(c.filtersChanged,
		filter.WithLimit(opts.Config.Logs.DefaultLimit),
		filter.WithDebounce(opts.Config.Polling.FilterDebounce.Duration))
	c.handlers = c.actionTable()
	c.store.Subscribe(func(state.Domain) { c.changed() })
	return c, nil
}

// Legacy reports whether the controller drives the legacy surface
func (c *Controller) Legacy() bool {
	return c.cfg.API.Surface == config.SurfaceLegacy
}

// Views returns the navigable views in display order
func (c *Controller) Views() []projector.View {
	out := make([]projector.View, len(c.order))
	copy(out, c.order)
	return out
}

// DefaultView is the view shown after Start
func (c *Controller) DefaultView() projector.View {
	return c.order[0]
}

// Store exposes the view state
func (c *Controller) Store() *state.Store {
	return c.store
}

// Filters exposes the filter model of the logs view
func (c *Controller) Filters() *filter.Model {
	return c.filters
}

// OnChange registers fn to run after every state, view or setting change.
// fn runs on the goroutine that caused the change and must not block.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Start begins the session-wide fetches and shows the default view
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.mu.Unlock()

	if c.Legacy() {
		c.goLoad(c.ctx, legacyInitial...)
	} else {
		c.scheduler.Start(headerTask, c.cfg.Polling.Health.Duration, func(ctx context.Context) {
			c.load(ctx, state.Health)
		})
		c.scheduler.Trigger(headerTask)
	}

	c.log.Info().Str("surface", c.cfg.API.Surface).Msg("Dashboard started")
	return c.Show(c.DefaultView())
}

// Show unmounts the current view and mounts v. The new view fetches
// immediately; in-flight fetches of the old view are cancelled.
func (c *Controller) Show(v projector.View) error {
	spec, ok := c.views[v]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.unmountLocked()
	c.view = v
	c.mountLocked(spec)
	c.mu.Unlock()

	c.log.Debug().Str("view", string(v)).Msg("view shown")
	c.changed()
	return nil
}

// View returns the active view
func (c *Controller) View() projector.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// AutoRefresh reports whether the logs view polls
func (c *Controller) AutoRefresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoRefresh
}

// RecentQuery returns the device and limit of the activity view
func (c *Controller) RecentQuery() filter.RecentQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent
}

// Display projects the current state for rendering
func (c *Controller) Display() projector.Display {
	c.mu.Lock()
	view, auto := c.view, c.autoRefresh
	c.mu.Unlock()

	return projector.Project(projector.Input{
		View:        view,
		Snapshot:    c.store.Snapshot(),
		Filters:     c.filters.Criteria(),
		AutoRefresh: auto,
		Locale:      c.cfg.General.Locale,
		Now:         c.now(),
	})
}

// Close stops every poll task, cancels in-flight fetches and waits for
// them or ctx
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.unmountLocked()
	c.mu.Unlock()

	c.cancel()
	err := c.scheduler.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	c.log.Info().Msg("Dashboard stopped")
	return err
}

func (c *Controller) mountLocked(spec viewSpec) {
	c.viewCtx, c.viewCancel = context.WithCancel(c.ctx)

	if spec.interval == nil || (spec.autoRefreshOnly && !c.autoRefresh) {
		c.goLoad(c.viewCtx, spec.domains...)
		return
	}

	id := taskID(c.view)
	domains := spec.domains
	c.scheduler.Start(id, spec.interval(c.cfg.Polling), func(ctx context.Context) {
		c.loadAll(ctx, domains)
	})
	c.scheduler.Trigger(id)
}

func (c *Controller) unmountLocked() {
	if c.view != "" {
		c.scheduler.Stop(taskID(c.view))
	}
	if c.viewCancel != nil {
		c.viewCancel()
		c.viewCancel = nil
	}
}

// remountLocked restarts the active view, used when a setting changes
// what it polls
func (c *Controller) remountLocked() {
	spec := c.views[c.view]
	c.unmountLocked()
	c.mountLocked(spec)
}

func (c *Controller) currentCtx() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewCtx != nil {
		return c.viewCtx
	}
	return c.ctx
}

// goLoad fetches domains in the background, tracked for Close
func (c *Controller) goLoad(ctx context.Context, domains ...state.Domain) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.loadAll(ctx, domains)
	}()
}

// loadAll fetches domains concurrently and returns when all settled
func (c *Controller) loadAll(ctx context.Context, domains []state.Domain) {
	if len(domains) == 1 {
		c.load(ctx, domains[0])
		return
	}

	var wg sync.WaitGroup
	for _, d := range domains {
		wg.Add(1)
		go func(d state.Domain) {
			defer wg.Done()
			c.load(ctx, d)
		}(d)
	}
	wg.Wait()
}

// load runs one fetch of d through the store
func (c *Controller) load(ctx context.Context, d state.Domain) {
	t := c.store.Begin(d)
	v, err := c.fetch(ctx, d)

	switch {
	case err == nil:
		c.store.Succeed(t, v)
	case ctx.Err() != nil:
		c.store.Abandon(t)
	default:
		c.log.Warn().Err(err).Str("domain", string(d)).Msg("fetch failed")
		c.store.Fail(t, err)
	}
}

func (c *Controller) fetch(ctx context.Context, d state.Domain) (any, error) {
	switch d {
	case state.Stats:
		return deref(c.backend.Stats(ctx))
	case state.RecentLogs:
		return c.backend.RecentLogs(ctx)
	case state.Logs:
		resp, err := c.backend.Logs(ctx, c.filters.ToQuery())
		if err != nil {
			return nil, err
		}
		if resp.Logs == nil {
			return []models.LogEntry{}, nil
		}
		return resp.Logs, nil
	case state.Health, state.SystemStatus:
		return deref(c.backend.SystemStatus(ctx))
	case state.SystemMetrics:
		return deref(c.backend.SystemMetrics(ctx))
	case state.FileStructure:
		return deref(c.backend.FileStructure(ctx))
	case state.Overview:
		return deref(c.backend.Overview(ctx))
	case state.RecentActivity:
		return c.backend.LegacyRecentLogs(ctx, c.RecentQuery().ToQuery())
	case state.Devices:
		return c.backend.Devices(ctx)
	case state.Signatures:
		return deref(c.backend.Signatures(ctx, DefaultSignatureDays))
	case state.Archives:
		return deref(c.backend.Archives(ctx))
	case state.Compliance:
		return deref(c.backend.ComplianceScore(ctx))
	case state.ServiceHealth:
		return c.backend.ServiceHealth(ctx)
	default:
		return nil, fmt.Errorf("no fetch for domain %q", d)
	}
}

// deref stores snapshots by value so views never share them with the client
func deref[T any](v *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return *v, nil
}

func (c *Controller) filtersChanged(filter.Criteria) {
	c.mu.Lock()
	onLogs := c.view == projector.ViewLogs && !c.closed
	c.mu.Unlock()

	if onLogs {
		c.goLoad(c.currentCtx(), state.Logs)
	}
	c.changed()
}

func (c *Controller) changed() {
	c.mu.Lock()
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
