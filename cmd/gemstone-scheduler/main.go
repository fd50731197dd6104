// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/gemstone/gemstone/lib/config"
	"github.com/gemstone/gemstone/lib/schedule"
	"github.com/gemstone/gemstone/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("gemstone-scheduler", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the schedule definitions file (required)")
	statePath := flags.String("state", "", "path to the last-due state snapshot (optional)")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, or error")
	showVersion := flags.Bool("version", false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("gemstone-scheduler %s\n", version.Info())
		return nil
	}
	if *configPath == "" {
		return fmt.Errorf("--config is required")
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	file, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	schedules, err := file.Build()
	if err != nil {
		return err
	}

	commands := make(map[string]string)
	for _, definition := range file.Schedules {
		if definition.Command != "" {
			commands[strings.ToLower(definition.Name)] = definition.Command
		}
	}

	manager, err := schedule.NewManager(schedule.ManagerConfig{
		Logger:    logger,
		StatePath: *statePath,
		OnDue: func(s *schedule.Schedule) {
			command, ok := commands[strings.ToLower(s.Name())]
			if !ok {
				return
			}
			go runCommand(logger, s.Name(), command)
		},
	})
	if err != nil {
		return err
	}

	for _, s := range schedules {
		if err := manager.Add(s); err != nil {
			return err
		}
	}
	logger.Info("loaded schedules", "count", len(schedules), "config", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return manager.Run(ctx)
}

// runCommand executes a due schedule's shell command and logs the
// outcome. Runs in its own goroutine so a slow command cannot delay
// the next poll.
func runCommand(logger *slog.Logger, name, command string) {
	logger.Info("running command", "schedule", name, "command", command)
	output, err := exec.Command("/bin/sh", "-c", command).CombinedOutput()
	if err != nil {
		logger.Error("command failed",
			"schedule", name, "error", err, "output", string(output))
		return
	}
	logger.Info("command finished", "schedule", name)
}

func parseLevel(text string) (slog.Level, error) {
	switch strings.ToLower(text) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", text)
}
