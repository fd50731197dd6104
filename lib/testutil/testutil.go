// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds small helpers for tests that coordinate with
// goroutines over channels. Each helper carries its own timeout so a
// broken test fails with a message instead of hanging.
package testutil

import (
	"testing"
	"time"
)

// Receive reads one value from ch within timeout or fails the test.
func Receive[T any](t *testing.T, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while %s", what)
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v while %s", timeout, what)
	}
	panic("unreachable")
}

// Closed waits for ch to be closed (or deliver a value) within timeout
// or fails the test.
func Closed(t *testing.T, ch <-chan struct{}, timeout time.Duration, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v while %s", timeout, what)
	}
}
