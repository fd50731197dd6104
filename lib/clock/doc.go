// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that schedule
// evaluation and polling loops can be tested deterministically.
//
// Production code accepts a Clock instead of calling time.Now or
// time.NewTicker directly. Real() returns the standard library
// behavior. NewFake(start) returns a clock that only moves when
// Advance is called, delivering any due ticks synchronously.
//
// A goroutine under test may create its ticker after the test calls
// Advance, losing the tick. WaitForTickers blocks until the expected
// number of tickers exist, closing that race.
package clock
