// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Command gemstone-scheduler runs schedules from a definitions file.
// It polls once per minute and, for each schedule that comes due, runs
// the schedule's command (if any) and logs the event. With --state,
// last-due times survive restarts as long as the rule is unchanged.
//
//	gemstone-scheduler --config /etc/gemstone/schedules.yaml \
//	    --state /var/lib/gemstone/scheduler.state
package main
