// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gemstone/gemstone/lib/clock"
)

// DefaultRule matches every minute.
const DefaultRule = "* * * * *"

// ruleParts is one parsed rule: the five fields in rule order. A
// Schedule swaps its ruleParts as a single value on rule assignment,
// so readers never observe a half-applied rule.
type ruleParts struct {
	minute    *Part
	hour      *Part
	day       *Part
	month     *Part
	dayOfWeek *Part
}

func (p ruleParts) all() [5]*Part {
	return [5]*Part{p.minute, p.hour, p.day, p.month, p.dayOfWeek}
}

// rule reconstructs the 5-field text, single-space separated.
func (p ruleParts) rule() string {
	texts := make([]string, 0, 5)
	for _, part := range p.all() {
		texts = append(texts, part.Text())
	}
	return strings.Join(texts, " ")
}

func (p ruleParts) describe() string {
	texts := make([]string, 0, 5)
	for _, part := range p.all() {
		texts = append(texts, part.Describe())
	}
	return strings.Join(texts, ", ")
}

// matches reports whether all five fields accept t.
func (p ruleParts) matches(t time.Time) bool {
	for _, part := range p.all() {
		if !part.Matches(t) {
			return false
		}
	}
	return true
}

// anyEmpty reports whether any field carries no legal values. Normal
// construction never produces such a part; the search routines still
// guard against it so a schedule that can never match returns its
// sentinel instead of walking the whole representable range.
func (p ruleParts) anyEmpty() bool {
	for _, part := range p.all() {
		if len(part.values) == 0 {
			return true
		}
	}
	return false
}

// Schedule is a named cron-style schedule: five value-set fields
// (minute, hour, day-of-month, month, day-of-week) and an evaluation
// zone, either UTC or the local system zone.
//
// A Schedule is not internally synchronized. IsDue and SetRule are
// single-writer operations; PreviousTimeDue and NextTimeDue are pure
// and may run concurrently with each other, but not with SetRule.
type Schedule struct {
	name         string
	useLocalTime bool
	parts        ruleParts
	description  string
	lastDueAt    time.Time
	clk          clock.Clock
}

// New creates a Schedule from a 5-field rule. An empty rule means
// DefaultRule. Errors on an empty name or a malformed rule. When
// useLocalTime is true the schedule evaluates timestamps in the local
// system zone; otherwise in UTC.
func New(name, rule string, useLocalTime bool) (*Schedule, error) {
	if name == "" {
		return nil, fmt.Errorf("schedule: name must not be empty")
	}
	if rule == "" {
		rule = DefaultRule
	}

	s := &Schedule{
		name:         name,
		useLocalTime: useLocalTime,
		clk:          clock.Real(),
	}
	// Seed with a match-any rule so the parts are never nil, then
	// apply the requested rule.
	s.parts = mustParts(DefaultRule)
	s.description = s.parts.describe()
	if err := s.SetRule(rule); err != nil {
		return nil, err
	}
	return s, nil
}

// mustParts parses a rule known to be valid.
func mustParts(rule string) ruleParts {
	parts, err := parseRule(rule)
	if err != nil {
		panic("schedule: " + err.Error())
	}
	return parts
}

// parseRule splits rule into exactly 5 whitespace-separated fields and
// parses each. All five are parsed before any result is returned, so a
// caller can commit the whole rule or none of it.
func parseRule(rule string) (ruleParts, error) {
	fields := strings.Fields(rule)
	if len(fields) != 5 {
		return ruleParts{}, fmt.Errorf("schedule: rule %q: expected 5 fields, got %d", rule, len(fields))
	}

	units := [5]TimeUnit{UnitMinute, UnitHour, UnitDay, UnitMonth, UnitDayOfWeek}
	var parsed [5]*Part
	for i, unit := range units {
		part, err := NewPart(fields[i], unit)
		if err != nil {
			return ruleParts{}, err
		}
		parsed[i] = part
	}
	return ruleParts{
		minute:    parsed[0],
		hour:      parsed[1],
		day:       parsed[2],
		month:     parsed[3],
		dayOfWeek: parsed[4],
	}, nil
}

// Name returns the schedule name.
func (s *Schedule) Name() string { return s.name }

// SetName renames the schedule. Errors on an empty name.
func (s *Schedule) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("schedule: name must not be empty")
	}
	s.name = name
	return nil
}

// Rule returns the canonical 5-field rule text, reconstructed from the
// parsed fields with single spaces. Assigning a schedule its own Rule
// is a no-op.
func (s *Schedule) Rule() string { return s.parts.rule() }

// SetRule replaces all five fields from rule. On error the previous
// rule remains fully in effect.
func (s *Schedule) SetRule(rule string) error {
	parts, err := parseRule(rule)
	if err != nil {
		return err
	}
	s.parts = parts
	s.description = parts.describe()
	return nil
}

// UseLocalTime reports whether the schedule evaluates in the local
// system zone rather than UTC.
func (s *Schedule) UseLocalTime() bool { return s.useLocalTime }

// SetUseLocalTime selects the evaluation zone.
func (s *Schedule) SetUseLocalTime(local bool) { s.useLocalTime = local }

// Description returns the human-readable rule summary, one clause per
// field joined with ", ".
func (s *Schedule) Description() string { return s.description }

// LastDueAt returns the timestamp of the most recent successful IsDue
// call, or the zero time if the schedule has never been due.
func (s *Schedule) LastDueAt() time.Time { return s.lastDueAt }

// Part returns the parsed field for the given unit, or nil for a value
// outside the TimeUnit enum.
func (s *Schedule) Part(unit TimeUnit) *Part {
	switch unit {
	case UnitMinute:
		return s.parts.minute
	case UnitHour:
		return s.parts.hour
	case UnitDay:
		return s.parts.day
	case UnitMonth:
		return s.parts.month
	case UnitDayOfWeek:
		return s.parts.dayOfWeek
	}
	return nil
}

// SetClock replaces the time source consulted by IsDue. Production
// code keeps the default real clock; tests inject a fake.
func (s *Schedule) SetClock(c clock.Clock) { s.clk = c }

// IsDue samples the clock and reports whether the schedule matches the
// current minute in its evaluation zone. On a match it records the
// sampled time as LastDueAt. Intended for once-per-minute polling.
func (s *Schedule) IsDue() bool {
	return s.isDueAt(s.clk.Now())
}

// isDueAt is IsDue with an explicit "now", shared with the Manager's
// poll loop.
func (s *Schedule) isDueAt(now time.Time) bool {
	current := s.toScheduleZone(now)
	if !s.parts.matches(current) {
		return false
	}
	s.lastDueAt = current
	return true
}

// DueAt reports whether the schedule matches t in its evaluation zone.
// Unlike IsDue it is pure: it neither reads the clock nor records
// LastDueAt.
func (s *Schedule) DueAt(t time.Time) bool {
	return s.parts.matches(s.toScheduleZone(t))
}

// toScheduleZone converts t into the schedule's evaluation zone.
func (s *Schedule) toScheduleZone(t time.Time) time.Time {
	if s.useLocalTime {
		return t.Local()
	}
	return t.UTC()
}

// Equal reports whether other has the same name and the same canonical
// rule text. Two independently constructed schedules with identical
// name and rule are equal.
func (s *Schedule) Equal(other *Schedule) bool {
	if other == nil {
		return false
	}
	return s.name == other.name && s.Rule() == other.Rule()
}

// Fingerprint returns the hex SHA256 digest of the canonical rule
// text. Schedules with the same rule share a fingerprint regardless of
// name; the manager state file uses it to detect rule changes.
func (s *Schedule) Fingerprint() string {
	digest := sha256.Sum256([]byte(s.Rule()))
	return hex.EncodeToString(digest[:])
}
