// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"time"
)

// Receive reads one value from ch within timeout, or fails the test.
//
//	event := testutil.Receive(t, events, 5*time.Second, "index event")
func Receive[T any](t testing.TB, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while waiting for %s", what)
		}
		return value
	case <-time.After(timeout): //nolint:realclock test hang prevention
		t.Fatalf("timed out after %v waiting for %s", timeout, what)
	}
	panic("unreachable")
}

// NoReceive fails the test if ch yields a value within wait. Closing
// the channel does not count as a value.
func NoReceive[T any](t testing.TB, ch <-chan T, wait time.Duration, what string) {
	t.Helper()
	select {
	case value, ok := <-ch:
		if ok {
			t.Fatalf("unexpected %s: %v", what, value)
		}
	case <-time.After(wait): //nolint:realclock bounded negative check
	}
}

// Closed waits for ch to be closed (draining any values) within
// timeout, or fails the test.
func Closed[T any](t testing.TB, ch <-chan T, timeout time.Duration, what string) {
	t.Helper()
	deadline := time.After(timeout) //nolint:realclock test hang prevention
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("timed out after %v waiting for %s to close", timeout, what)
		}
	}
}
