// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Package schedule evaluates UNIX-crontab-style schedule rules.
//
// A rule is five whitespace-separated fields in order:
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12)
//	│ │ │ │ ┌───────────── day of week (0-6, 0=Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Each field is one of five syntaxes: the wildcard (*), a stepped
// wildcard (*/15), an inclusive range (9-17), a stepped range
// (0-30/5), or a comma-separated value list (1,15,30). The grammar is
// purely numeric; named days and months are not supported.
//
// A [Schedule] owns the five parsed fields as one immutable unit,
// matches the current minute with [Schedule.IsDue], and computes the
// nearest matching timestamps around an arbitrary time with
// [Schedule.NextTimeDue] and [Schedule.PreviousTimeDue]. Evaluation
// happens in UTC or the local system zone, selected per schedule.
//
// A [Manager] holds named schedules, polls them once a minute, and
// invokes a callback for each schedule that comes due, optionally
// persisting last-due times across restarts.
package schedule
