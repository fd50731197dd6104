// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gemstone/gemstone/lib/codec"
)

// stateEntry records, per schedule, when it last came due and the
// fingerprint of the rule it was running at the time. A restored entry
// is honored only when the fingerprint still matches; a schedule whose
// rule changed starts over with no history.
type stateEntry struct {
	Fingerprint string    `cbor:"fingerprint"`
	LastDueAt   time.Time `cbor:"last_due_at"`
}

// stateFile is the on-disk snapshot, keyed by lowercased schedule
// name.
type stateFile struct {
	Schedules map[string]stateEntry `cbor:"schedules"`
}

// loadState reads a snapshot. A missing file is an empty snapshot, not
// an error.
func loadState(path string) (map[string]stateEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]stateEntry{}, nil
		}
		return nil, fmt.Errorf("schedule: reading state file: %w", err)
	}

	var file stateFile
	if err := codec.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("schedule: parsing state file %s: %w", path, err)
	}
	if file.Schedules == nil {
		file.Schedules = map[string]stateEntry{}
	}
	return file.Schedules, nil
}

// saveState writes a snapshot atomically: temporary file in the same
// directory, fsync, rename into place. Readers never observe a partial
// snapshot.
func saveState(path string, entries map[string]stateEntry) error {
	data, err := codec.Marshal(stateFile{Schedules: entries})
	if err != nil {
		return fmt.Errorf("schedule: encoding state: %w", err)
	}

	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("schedule: creating temporary state file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("schedule: writing temporary state file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("schedule: syncing temporary state file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("schedule: closing temporary state file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("schedule: renaming state file into place: %w", err)
	}

	// Make the rename durable across power loss.
	if parent, err := os.Open(filepath.Dir(path)); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}
