// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Command gemstone-schedule inspects cron-style schedule rules from
// the command line: describe a rule's parsed fields, list its next or
// previous occurrences around a timestamp, or test whether it matches
// a specific minute.
//
//	gemstone-schedule describe "*/15 9-17 * * 1-5"
//	gemstone-schedule next --from 2026-03-01T00:00:00Z --count 3 "0 12 * * *"
//	gemstone-schedule previous "0 2 * * 0"
//	gemstone-schedule check --at 2026-03-02T09:00:00Z "0 9 * * 1-5"
package main
