// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     filter
// Description: Log filter criteria and their query parameter form
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/logmaster/dashboard/internal/api"
	"github.com/logmaster/dashboard/internal/models"
	"github.com/logmaster/dashboard/pkg/core/config"
)

// Filter keys
const (
	KeyIP        = "ip"
	KeyInterface = "interface"
	KeySeverity  = "severity"
	KeySearch    = "search"
	KeyLimit     = "limit"
)

// DefaultLimit is the page size after Clear
const DefaultLimit = 100

var (
	ErrUnknownKey   = errors.New("unknown filter key")
	ErrInvalidValue = errors.New("invalid filter value")
	ErrInvalidLimit = errors.New("invalid limit")
)

// Criteria are the user-selected log filters
type Criteria struct {
	IP        string
	Interface string
	Severity  string
	Search    string
	Limit     int
}

// Defaults returns the cleared criteria
func Defaults() Criteria {
	return Criteria{Limit: DefaultLimit}
}

// Active reports whether any narrowing filter is set. The page size does
// not count as a filter.
func (c Criteria) Active() bool {
	return c.IP != "" || c.Interface != "" || c.Severity != "" || c.Search != ""
}

// ToQuery returns the query parameters for /api/v1/logs. Empty fields are
// omitted and so is the limit when it equals the backend default.
func (c Criteria) ToQuery() api.Params {
	p := api.Params{
		KeyIP:        c.IP,
		KeyInterface: c.Interface,
		KeySeverity:  c.Severity,
		KeySearch:    c.Search,
	}
	if c.Limit != 0 && c.Limit != DefaultLimit {
		p[KeyLimit] = strconv.Itoa(c.Limit)
	}
	for k, v := range p {
		if v == "" {
			delete(p, k)
		}
	}
	return p
}

// With returns a copy of c with key set to value
func (c Criteria) With(key, value string) (Criteria, error) {
	switch key {
	case KeyIP:
		c.IP = strings.TrimSpace(value)
	case KeyInterface:
		if value != "" && !contains(models.Interfaces, value) {
			return c, fmt.Errorf("%w: interface %q", ErrInvalidValue, value)
		}
		c.Interface = value
	case KeySeverity:
		if value != "" && !contains(models.Severities, value) {
			return c, fmt.Errorf("%w: severity %q", ErrInvalidValue, value)
		}
		c.Severity = value
	case KeySearch:
		c.Search = value
	case KeyLimit:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || !config.IsValidLimit(n) {
			return c, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidLimit, value, config.ValidLimits)
		}
		c.Limit = n
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return c, nil
}

// Model owns the current criteria and reports changes. Safe for
// concurrent use.
type Model struct {
	mu       sync.Mutex
	criteria Criteria
	onChange func(Criteria)
	debounce time.Duration
	timer    *time.Timer
}

// Option configures a Model
type Option func(*Model)

// WithDebounce delays change notifications until no change happened for d.
// Zero notifies on every change.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		m.debounce = d
	}
}

// WithLimit sets the initial page size
func WithLimit(limit int) Option {
	return func(m *Model) {
		if config.IsValidLimit(limit) {
			m.criteria.Limit = limit
		}
	}
}

// NewModel creates a model with default criteria. onChange may be nil.
func NewModel(onChange func(Criteria), opts ...Option) *Model {
	m := &Model{
		criteria: Defaults(),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Criteria returns a copy of the current criteria
func (m *Model) Criteria() Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.criteria
}

// Active reports whether any narrowing filter is set
func (m *Model) Active() bool {
	return m.Criteria().Active()
}

// ToQuery returns the query parameters of the current criteria
func (m *Model) ToQuery() api.Params {
	return m.Criteria().ToQuery()
}

// Update sets one filter field. Invalid input leaves the criteria unchanged.
func (m *Model) Update(key, value string) error {
	m.mu.Lock()
	next, err := m.criteria.With(key, value)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.criteria = next
	m.mu.Unlock()

	m.changed()
	return nil
}

// Clear resets all fields to their defaults
func (m *Model) Clear() {
	m.mu.Lock()
	m.criteria = Defaults()
	m.mu.Unlock()

	m.changed()
}

// Flush delivers a pending debounced notification immediately
func (m *Model) Flush() {
	m.mu.Lock()
	pending := m.timer != nil && m.timer.Stop()
	m.timer = nil
	m.mu.Unlock()

	if pending {
		m.notify()
	}
}

func (m *Model) changed() {
	if m.onChange == nil {
		return
	}
	if m.debounce <= 0 {
		m.notify()
		return
	}

	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		if m.timer != t {
			m.mu.Unlock()
			return
		}
		m.timer = nil
		m.mu.Unlock()
		m.notify()
	})
	m.timer = t
	m.mu.Unlock()
}

func (m *Model) notify() {
	if m.onChange != nil {
		m.onChange(m.Criteria())
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
