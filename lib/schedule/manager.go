// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gemstone/gemstone/lib/clock"
)

// ManagerConfig configures a Manager. The zero value is usable: real
// clock, discarded logs, no callback, no state file.
type ManagerConfig struct {
	// Clock drives the poll loop. Nil means the real clock; tests
	// inject a fake.
	Clock clock.Clock

	// Logger receives operational messages. Nil means logs are
	// discarded.
	Logger *slog.Logger

	// OnDue is invoked once per due schedule on each poll. A panic in
	// the callback is logged and suppressed; it never stops the poll
	// loop.
	OnDue func(*Schedule)

	// StatePath, when non-empty, is where the manager persists each
	// schedule's last due time across restarts. Entries are restored
	// on Add only while the schedule's rule fingerprint still
	// matches.
	StatePath string

	// PollInterval overrides the once-per-minute poll. Zero means
	// time.Minute.
	PollInterval time.Duration
}

// Manager holds a collection of named schedules and polls them once a
// minute, invoking OnDue for each schedule due at that poll. Names are
// unique case-insensitively.
//
// The schedule list is serialized with an internal mutex. The
// schedules themselves follow the Schedule single-writer contract: the
// poll loop is their writer, so callers must not invoke IsDue or
// SetRule on a managed schedule while Run is active.
type Manager struct {
	clk       clock.Clock
	logger    *slog.Logger
	onDue     func(*Schedule)
	statePath string
	interval  time.Duration

	mu        sync.Mutex
	schedules []*Schedule
	restored  map[string]stateEntry
}

// NewManager creates a Manager. When StatePath is set, a prior
// snapshot is loaded immediately; a snapshot that cannot be read is an
// error so that corruption does not silently erase history.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	m := &Manager{
		clk:       cfg.Clock,
		logger:    cfg.Logger,
		onDue:     cfg.OnDue,
		statePath: cfg.StatePath,
		interval:  cfg.PollInterval,
		restored:  map[string]stateEntry{},
	}
	if m.clk == nil {
		m.clk = clock.Real()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.interval <= 0 {
		m.interval = time.Minute
	}

	if m.statePath != "" {
		entries, err := loadState(m.statePath)
		if err != nil {
			return nil, err
		}
		m.restored = entries
	}
	return m, nil
}

// Add registers a schedule. Errors when another schedule already holds
// the same name, compared case-insensitively. If a persisted state
// entry exists for the name and its fingerprint matches the schedule's
// current rule, the schedule's LastDueAt is restored from it.
func (m *Manager) Add(s *Schedule) error {
	key := strings.ToLower(s.Name())

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.schedules {
		if strings.EqualFold(existing.Name(), s.Name()) {
			return fmt.Errorf("schedule: duplicate name %q", s.Name())
		}
	}

	if entry, ok := m.restored[key]; ok {
		if entry.Fingerprint == s.Fingerprint() {
			s.lastDueAt = entry.LastDueAt
		} else {
			m.logger.Info("discarding stale state entry",
				"schedule", s.Name(), "rule", s.Rule())
			delete(m.restored, key)
		}
	}

	m.schedules = append(m.schedules, s)
	return nil
}

// Remove unregisters the schedule with the given name
// (case-insensitive). Reports whether a schedule was removed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.schedules {
		if strings.EqualFold(s.Name(), name) {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the schedule with the given name (case-insensitive), or
// nil.
func (m *Manager) Find(name string) *Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.schedules {
		if strings.EqualFold(s.Name(), name) {
			return s
		}
	}
	return nil
}

// Schedules returns the registered schedules in insertion order. The
// slice is a copy; the schedules are not.
func (m *Manager) Schedules() []*Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Schedule, len(m.schedules))
	copy(out, m.schedules)
	return out
}

// Run polls the schedules once per interval until ctx is canceled. It
// always returns nil after a clean shutdown; poll-level problems are
// logged, not returned, so one bad callback cannot stop the loop.
func (m *Manager) Run(ctx context.Context) error {
	ticker := m.clk.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("schedule manager started", "interval", m.interval)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("schedule manager stopped")
			return nil
		case now := <-ticker.C:
			m.poll(now)
		}
	}
}

// poll checks every schedule against now and fires OnDue for each
// match. When any schedule fired and a state path is configured, the
// snapshot is rewritten.
func (m *Manager) poll(now time.Time) {
	fired := false
	for _, s := range m.Schedules() {
		if !s.isDueAt(now) {
			continue
		}
		fired = true
		m.logger.Info("schedule due",
			"schedule", s.Name(), "rule", s.Rule(), "at", s.LastDueAt())
		m.notify(s)
	}

	if fired && m.statePath != "" {
		if err := m.saveSnapshot(); err != nil {
			m.logger.Error("persisting schedule state", "error", err)
		}
	}
}

// notify invokes the OnDue callback, suppressing any panic it raises.
func (m *Manager) notify(s *Schedule) {
	if m.onDue == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			m.logger.Error("schedule callback panicked",
				"schedule", s.Name(), "panic", recovered)
		}
	}()
	m.onDue(s)
}

// saveSnapshot writes the current last-due state of every registered
// schedule that has come due at least once.
func (m *Manager) saveSnapshot() error {
	entries := map[string]stateEntry{}
	for _, s := range m.Schedules() {
		if s.LastDueAt().IsZero() {
			continue
		}
		entries[strings.ToLower(s.Name())] = stateEntry{
			Fingerprint: s.Fingerprint(),
			LastDueAt:   s.LastDueAt(),
		}
	}
	return saveState(m.statePath, entries)
}
