// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/gemstone/gemstone/lib/schedule"
	"github.com/gemstone/gemstone/lib/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch args[0] {
	case "--version":
		fmt.Printf("gemstone-schedule %s\n", version.Info())
		return 0
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "describe":
		return runDescribe(args[1:])
	case "next":
		return runOccurrences(args[1:], "next")
	case "previous":
		return runOccurrences(args[1:], "previous")
	case "check":
		return runCheck(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: gemstone-schedule <command> [flags] <rule>

Commands:
  describe   Parse a rule and print a per-field description.
  next       Print the next occurrences of a rule after a timestamp.
  previous   Print the previous occurrences of a rule before a timestamp.
  check      Exit 0 if the rule matches the given timestamp.

The rule is five fields: minute hour day-of-month month day-of-week,
for example "*/15 9-17 * * 1-5".

Run 'gemstone-schedule <command> --help' for command flags.
`)
}

// ruleFromArgs builds a throwaway schedule from the single positional
// rule argument.
func ruleFromArgs(positional []string, local bool) (*schedule.Schedule, error) {
	if len(positional) != 1 {
		return nil, fmt.Errorf("expected exactly one rule argument, got %d", len(positional))
	}
	return schedule.New("cli", positional[0], local)
}

func runDescribe(args []string) int {
	flags := pflag.NewFlagSet("describe", pflag.ContinueOnError)
	local := flags.Bool("local", false, "evaluate in the local system zone instead of UTC")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	s, err := ruleFromArgs(flags.Args(), *local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	fmt.Printf("rule: %s\n", s.Rule())
	fmt.Printf("description: %s\n", s.Description())
	for _, unit := range []schedule.TimeUnit{
		schedule.UnitMinute, schedule.UnitHour, schedule.UnitDay,
		schedule.UnitMonth, schedule.UnitDayOfWeek,
	} {
		part := s.Part(unit)
		fmt.Printf("  %-12s %-20s %v\n", unit.String()+":", part.Syntax(), part.Values())
	}
	return 0
}

func runOccurrences(args []string, command string) int {
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	from := flags.String("from", "", "reference timestamp (RFC 3339, default now)")
	count := flags.Int("count", 1, "number of occurrences to print")
	local := flags.Bool("local", false, "evaluate in the local system zone instead of UTC")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	s, err := ruleFromArgs(flags.Args(), *local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	cursor := time.Now()
	if *from != "" {
		cursor, err = time.Parse(time.RFC3339, *from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: parsing --from: %v\n", err)
			return 2
		}
	}

	for i := 0; i < *count; i++ {
		var due time.Time
		if command == "next" {
			due = s.NextTimeDue(cursor)
			if due.Equal(schedule.MaxDueTime) {
				fmt.Fprintln(os.Stderr, "error: no further occurrence in the searchable range")
				return 1
			}
		} else {
			due = s.PreviousTimeDue(cursor)
			if due.Equal(schedule.MinDueTime) {
				fmt.Fprintln(os.Stderr, "error: no earlier occurrence in the searchable range")
				return 1
			}
		}
		fmt.Println(due.Format(time.RFC3339))
		cursor = due
	}
	return 0
}

func runCheck(args []string) int {
	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	at := flags.String("at", "", "timestamp to test (RFC 3339, default now)")
	local := flags.Bool("local", false, "evaluate in the local system zone instead of UTC")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	s, err := ruleFromArgs(flags.Args(), *local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	moment := time.Now()
	if *at != "" {
		moment, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: parsing --at: %v\n", err)
			return 2
		}
	}

	if s.DueAt(moment) {
		fmt.Println("due")
		return 0
	}
	fmt.Println("not due")
	return 1
}
