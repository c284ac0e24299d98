// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     poller
// Description: Named repeating fetch tasks on top of robfig/cron
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package poller

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/logmaster/dashboard/pkg/core/logging"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Overlap decides what happens when a tick fires while the previous run
// of the same task is still in flight
type Overlap int

const (
	// OverlapSkip drops the tick
	OverlapSkip Overlap = iota
	// OverlapAllow starts another run concurrently
	OverlapAllow
)

// ParseOverlap converts a config value, defaulting to OverlapSkip
func ParseOverlap(s string) Overlap {
	if s == "allow" {
		return OverlapAllow
	}
	return OverlapSkip
}

// Task is one tick of a repeating job. ctx is cancelled when the task is
// stopped, replaced or the scheduler shuts down.
type Task func(ctx context.Context)

// MinInterval is the smallest supported tick interval
const MinInterval = time.Second

type registration struct {
	entryID  cron.EntryID
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	running  *atomic.Int32
	job      cron.Job
}

// Scheduler runs named tasks at fixed intervals
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	overlap Overlap
	tasks   map[string]*registration
	log     zerolog.Logger
	closed  bool
	wg      sync.WaitGroup
}

// New creates and starts a scheduler
func New(overlap Overlap, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(logging.NewCronLogger(log)))
	c.Start()

	return &Scheduler{
		cron:    c,
		overlap: overlap,
		tasks:   make(map[string]*registration),
		log:     log,
	}
}

// Start registers task under id and runs it every interval. A task
// already registered under id is stopped first.
func (s *Scheduler) Start(id string, interval time.Duration, task Task) {
	if interval < MinInterval {
		interval = MinInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.stopLocked(id)

	ctx, cancel := context.WithCancel(context.Background())
	reg := &registration{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		running:  &atomic.Int32{},
	}

	var job cron.Job = cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		reg.running.Add(1)
		defer reg.running.Add(-1)
		task(ctx)
	})
	if s.overlap == OverlapSkip {
		job = cron.NewChain(cron.SkipIfStillRunning(logging.NewCronLogger(s.log.With().Str("task", id).Logger()))).Then(job)
	}

	reg.job = job
	reg.entryID = s.cron.Schedule(cron.Every(interval), job)
	s.tasks[id] = reg

	s.log.Debug().Str("task", id).Dur("interval", interval).Msg("poll task started")
}

// Trigger runs task id once now, outside its schedule, honouring the
// overlap policy. It reports false when no such task is registered.
func (s *Scheduler) Trigger(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.tasks[id]
	if !ok || s.closed {
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		reg.job.Run()
	}()
	return true
}

// Stop cancels the task registered under id. Stopping an unknown or
// already stopped task is a no-op.
func (s *Scheduler) Stop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(id)
}

func (s *Scheduler) stopLocked(id string) {
	reg, ok := s.tasks[id]
	if !ok {
		return
	}
	s.cron.Remove(reg.entryID)
	reg.cancel()
	delete(s.tasks, id)

	s.log.Debug().Str("task", id).Msg("poll task stopped")
}

// Active returns the ids of all registered tasks, sorted
func (s *Scheduler) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Interval returns the effective interval of a registered task
func (s *Scheduler) Interval(id string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.tasks[id]
	if !ok {
		return 0, false
	}
	return reg.interval, true
}

// Running reports whether a tick of task id is currently in flight
func (s *Scheduler) Running(id string) bool {
	s.mu.Lock()
	reg, ok := s.tasks[id]
	s.mu.Unlock()

	return ok && reg.running.Load() > 0
}

// Shutdown stops all tasks and waits for in-flight ticks or ctx
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for id := range s.tasks {
		s.stopLocked(id)
	}
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
