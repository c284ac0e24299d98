// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     state
// Description: Per-domain view state (snapshot, loading, error)
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package state

import (
	"sort"
	"sync"
	"time"
)

// Domain names one independently fetched piece of view state
type Domain string

// Component surface domains
const (
	Stats         Domain = "stats"
	RecentLogs    Domain = "recent_logs"
	Logs          Domain = "logs"
	SystemStatus  Domain = "system_status"
	SystemMetrics Domain = "system_metrics"
	FileStructure Domain = "file_structure"
	Health        Domain = "health"
)

// Legacy surface domains
const (
	Overview       Domain = "overview"
	RecentActivity Domain = "recent_activity"
	Devices        Domain = "devices"
	Signatures     Domain = "signatures"
	Archives       Domain = "archives"
	Compliance     Domain = "compliance"
	ServiceHealth  Domain = "service_health"
	Report         Domain = "report"
)

// Ticket identifies one fetch of a domain. Tickets are issued in
// increasing order per store.
type Ticket struct {
	Domain Domain
	Seq    uint64
}

// DomainState is a copy of one domain's state
type DomainState struct {
	// Value is the last successfully fetched snapshot, nil until the first success
	Value     any
	Loading   bool
	Err       error
	UpdatedAt time.Time
}

// HasValue reports whether a snapshot has ever been stored
func (d DomainState) HasValue() bool {
	return d.Value != nil
}

type entry struct {
	DomainState
	begun   uint64
	settled uint64
}

// Listener is called after every accepted transition
type Listener func(Domain)

// Store holds the view state of all domains
type Store struct {
	mu        sync.RWMutex
	seq       uint64
	entries   map[Domain]*entry
	listeners []Listener
	now       func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		entries: make(map[Domain]*entry),
		now:     time.Now,
	}
}

// Subscribe registers fn for change notifications. fn runs on the
// goroutine that caused the transition and must not block.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Begin marks domain as loading and clears its error
func (s *Store) Begin(d Domain) Ticket {
	s.mu.Lock()
	s.seq++
	t := Ticket{Domain: d, Seq: s.seq}
	e := s.entryLocked(d)
	e.begun = t.Seq
	e.Loading = true
	e.Err = nil
	s.mu.Unlock()

	s.notify(d)
	return t
}

// Succeed replaces the domain snapshot wholesale. It returns false and
// changes nothing when a newer fetch of the domain has already settled.
func (s *Store) Succeed(t Ticket, value any) bool {
	s.mu.Lock()
	e := s.entryLocked(t.Domain)
	if t.Seq < e.settled {
		s.mu.Unlock()
		return false
	}
	e.settled = t.Seq
	e.Value = value
	e.Err = nil
	e.UpdatedAt = s.now()
	e.Loading = e.begun > t.Seq
	s.mu.Unlock()

	s.notify(t.Domain)
	return true
}

// Fail records err and keeps the previous snapshot. It returns false and
// changes nothing when a newer fetch of the domain has already settled.
func (s *Store) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	e := s.entryLocked(t.Domain)
	if t.Seq < e.settled {
		s.mu.Unlock()
		return false
	}
	e.settled = t.Seq
	e.Err = err
	e.Loading = e.begun > t.Seq
	s.mu.Unlock()

	s.notify(t.Domain)
	return true
}

// Abandon settles a fetch that was cancelled before it completed. The
// snapshot and error are left untouched; only the loading flag follows
// the newest outstanding fetch.
func (s *Store) Abandon(t Ticket) bool {
	s.mu.Lock()
	e := s.entryLocked(t.Domain)
	if t.Seq < e.settled {
		s.mu.Unlock()
		return false
	}
	e.settled = t.Seq
	e.Loading = e.begun > t.Seq
	s.mu.Unlock()

	s.notify(t.Domain)
	return true
}

// Reset drops everything known about domain
func (s *Store) Reset(d Domain) {
	s.mu.Lock()
	delete(s.entries, d)
	s.mu.Unlock()

	s.notify(d)
}

// Get returns the snapshot of domain
func (s *Store) Get(d Domain) (any, bool) {
	st := s.State(d)
	return st.Value, st.HasValue()
}

// Loading reports whether a fetch of domain is outstanding
func (s *Store) Loading(d Domain) bool {
	return s.State(d).Loading
}

// Err returns the error of the last settled fetch of domain
func (s *Store) Err(d Domain) error {
	return s.State(d).Err
}

// UpdatedAt returns when domain last succeeded
func (s *Store) UpdatedAt(d Domain) time.Time {
	return s.State(d).UpdatedAt
}

// State returns a copy of domain's state
func (s *Store) State(d Domain) DomainState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[d]; ok {
		return e.DomainState
	}
	return DomainState{}
}

// Snapshot copies the state of every known domain
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.entries))
	for d, e := range s.entries {
		snap[d] = e.DomainState
	}
	return snap
}

// Domains returns all known domains, sorted
func (s *Store) Domains() []Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domains := make([]Domain, 0, len(s.entries))
	for d := range s.entries {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i] < domains[j] })
	return domains
}

func (s *Store) entryLocked(d Domain) *entry {
	e, ok := s.entries[d]
	if !ok {
		e = &entry{}
		s.entries[d] = e
	}
	return e
}

func (s *Store) notify(d Domain) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(d)
	}
}

// Snapshot is an immutable copy of all domain states
type Snapshot map[Domain]DomainState

// State returns the state of d, zero if unknown
func (s Snapshot) State(d Domain) DomainState {
	return s[d]
}

// Value returns the snapshot of domain d as T
func Value[T any](s Snapshot, d Domain) (T, bool) {
	v, ok := s[d].Value.(T)
	return v, ok
}

// Get returns the snapshot of domain d in store as T
func Get[T any](store *Store, d Domain) (T, bool) {
	v, ok := store.State(d).Value.(T)
	return v, ok
}
