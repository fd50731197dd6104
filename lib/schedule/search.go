// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import "time"

// Sentinel bounds for the due-time search. NextTimeDue returns
// MaxDueTime and PreviousTimeDue returns MinDueTime when no matching
// timestamp exists within the searchable range.
var (
	MinDueTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDueTime = time.Date(9999, time.December, 31, 23, 59, 0, 0, time.UTC)
)

// NextTimeDue returns the earliest matching timestamp strictly after
// target (at minute granularity), evaluated in the schedule's zone.
// Pure: LastDueAt is not touched. Returns MaxDueTime when no match
// exists before the end of the searchable range.
func (s *Schedule) NextTimeDue(target time.Time) time.Time {
	return s.searchDue(target, 1)
}

// PreviousTimeDue returns the latest matching timestamp strictly
// before target (at minute granularity), evaluated in the schedule's
// zone. Pure: LastDueAt is not touched. Returns MinDueTime when no
// match exists after the start of the searchable range.
func (s *Schedule) PreviousTimeDue(target time.Time) time.Time {
	return s.searchDue(target, -1)
}

// searchDue walks the candidate timestamp away from target one unit at
// a time, coarse to fine. Each pass re-checks from the month level, so
// a skip that crosses a coarser boundary (a day step that leaves the
// month, an hour step that leaves the day) is re-validated before any
// finer field is consulted.
//
// Day-level semantics follow long-established cron behavior: a day
// matches the schedule only when day-of-month AND day-of-week both
// match, and the day is skipped when either rejects it.
func (s *Schedule) searchDue(target time.Time, direction int) time.Time {
	parts := s.parts
	if parts.anyEmpty() {
		return sentinel(direction)
	}

	cursor := s.toScheduleZone(target).Truncate(time.Minute)
	cursor = cursor.Add(time.Duration(direction) * time.Minute)

	for {
		if cursor.Before(MinDueTime) || cursor.After(MaxDueTime) {
			return sentinel(direction)
		}

		if !parts.month.Matches(cursor) {
			cursor = stepMonth(cursor, direction)
			continue
		}

		if !parts.day.Matches(cursor) || !parts.dayOfWeek.Matches(cursor) {
			cursor = stepDay(cursor, direction)
			continue
		}

		if !parts.hour.Matches(cursor) {
			cursor = stepHour(cursor, direction)
			continue
		}

		if !parts.minute.Matches(cursor) {
			cursor = cursor.Add(time.Duration(direction) * time.Minute)
			continue
		}

		return cursor
	}
}

func sentinel(direction int) time.Time {
	if direction > 0 {
		return MaxDueTime
	}
	return MinDueTime
}

// stepMonth moves forward to the first minute of the next month, or
// backward to the last minute of the previous month.
func stepMonth(t time.Time, direction int) time.Time {
	if direction > 0 {
		return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	}
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.Add(-time.Minute)
}

// stepDay moves forward to midnight of the next day, or backward to
// the last minute of the previous day.
func stepDay(t time.Time, direction int) time.Time {
	if direction > 0 {
		return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
	}
	startOfDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return startOfDay.Add(-time.Minute)
}

// stepHour moves forward to the top of the next hour, or backward to
// the last minute of the previous hour.
func stepHour(t time.Time, direction int) time.Time {
	if direction > 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, t.Location())
	}
	startOfHour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return startOfHour.Add(-time.Minute)
}
