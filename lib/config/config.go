// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads schedule definitions for the scheduler daemon.
//
// A definitions file is YAML (.yaml, .yml) or JSON with comments and
// trailing commas (.json, .jsonc):
//
//	schedules:
//	  - name: nightly-backup
//	    rule: "0 2 * * *"
//	    command: "backup.sh --full"
//	  - name: weekday-report
//	    rule: "0 9 * * 1-5"
//	    local_time: true
//
// Loading validates everything before returning anything: every rule
// must parse, every name must be non-empty and unique
// (case-insensitively). A file with one bad entry loads nothing.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/gemstone/gemstone/lib/schedule"
)

// Definition is one schedule entry in a definitions file.
type Definition struct {
	// Name identifies the schedule. Required, unique within the file
	// ignoring case.
	Name string `yaml:"name" json:"name"`

	// Rule is the 5-field schedule rule. Empty means every minute.
	Rule string `yaml:"rule" json:"rule"`

	// LocalTime selects evaluation in the local system zone instead
	// of UTC.
	LocalTime bool `yaml:"local_time" json:"local_time"`

	// Command is an optional shell command the daemon runs when the
	// schedule comes due.
	Command string `yaml:"command" json:"command"`
}

// File is a parsed and validated definitions file.
type File struct {
	Schedules []Definition `yaml:"schedules" json:"schedules"`
}

// Load reads and validates the definitions file at path. The format is
// chosen by extension: .yaml/.yml or .json/.jsonc.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var file File
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: %s: unsupported extension %q (want .yaml, .yml, .json, or .jsonc)", path, extension)
	}

	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &file, nil
}

// validate checks every definition. It builds each schedule the same
// way Build will, so a file that validates cannot fail to build.
func (f *File) validate() error {
	if len(f.Schedules) == 0 {
		return fmt.Errorf("no schedules defined")
	}

	seen := make(map[string]bool)
	for i, definition := range f.Schedules {
		if definition.Name == "" {
			return fmt.Errorf("schedule #%d: name is required", i+1)
		}
		key := strings.ToLower(definition.Name)
		if seen[key] {
			return fmt.Errorf("schedule #%d: duplicate name %q", i+1, definition.Name)
		}
		seen[key] = true

		if _, err := schedule.New(definition.Name, definition.Rule, definition.LocalTime); err != nil {
			return fmt.Errorf("schedule %q: %w", definition.Name, err)
		}
	}
	return nil
}

// Build constructs a Schedule per definition, in file order.
func (f *File) Build() ([]*schedule.Schedule, error) {
	schedules := make([]*schedule.Schedule, 0, len(f.Schedules))
	for _, definition := range f.Schedules {
		s, err := schedule.New(definition.Name, definition.Rule, definition.LocalTime)
		if err != nil {
			return nil, fmt.Errorf("config: schedule %q: %w", definition.Name, err)
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}
