// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "schedules.yaml", `
schedules:
  - name: nightly-backup
    rule: "0 2 * * *"
    command: "backup.sh --full"
  - name: weekday-report
    rule: "0 9 * * 1-5"
    local_time: true
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(file.Schedules) != 2 {
		t.Fatalf("len(Schedules) = %d, want 2", len(file.Schedules))
	}
	if file.Schedules[0].Command != "backup.sh --full" {
		t.Errorf("Command = %q", file.Schedules[0].Command)
	}
	if !file.Schedules[1].LocalTime {
		t.Error("LocalTime not set for weekday-report")
	}

	schedules, err := file.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := schedules[0].Rule(); got != "0 2 * * *" {
		t.Errorf("Rule = %q", got)
	}
	if !schedules[1].UseLocalTime() {
		t.Error("built schedule lost local_time")
	}
}

func TestLoadJSONCWithComments(t *testing.T) {
	path := writeFile(t, "schedules.jsonc", `{
  // nightly maintenance window
  "schedules": [
    {
      "name": "nightly-backup",
      "rule": "0 2 * * *", // trailing comma below is fine too
    },
  ],
}`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(file.Schedules) != 1 || file.Schedules[0].Name != "nightly-backup" {
		t.Errorf("Schedules = %+v", file.Schedules)
	}
}

func TestLoadEmptyRuleMeansEveryMinute(t *testing.T) {
	path := writeFile(t, "schedules.yaml", `
schedules:
  - name: heartbeat
`)
	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	schedules, err := file.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := schedules[0].Rule(); got != "* * * * *" {
		t.Errorf("Rule = %q, want \"* * * * *\"", got)
	}
}

func TestLoadRejectsWholeFileOnOneBadEntry(t *testing.T) {
	path := writeFile(t, "schedules.yaml", `
schedules:
  - name: good
    rule: "0 2 * * *"
  - name: bad
    rule: "0 2 * *"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded with a malformed rule")
	}
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	path := writeFile(t, "schedules.yaml", `
schedules:
  - name: backup
    rule: "0 2 * * *"
  - name: BACKUP
    rule: "0 3 * * *"
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded with case-variant duplicate names")
	}
	if !strings.Contains(err.Error(), "duplicate name") {
		t.Errorf("error = %q, want mention of duplicate name", err)
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	path := writeFile(t, "schedules.yaml", `
schedules:
  - rule: "0 2 * * *"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded with a nameless schedule")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := writeFile(t, "schedules.yaml", "schedules: []\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded with no schedules")
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "schedules.toml", "schedules = []\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded with an unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported extension") {
		t.Errorf("error = %q, want mention of unsupported extension", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded for a missing file")
	}
}
