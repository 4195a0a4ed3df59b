// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for the data
// browser's timers.
//
// Every debounce window, enter/exit transition, and resize coalescing
// delay in toolshed is scheduled through a Clock instead of the time
// package directly. In production, Real() provides the standard library
// behavior (wrapped by the terminal front end so callbacks run on the
// bubbletea event loop). In tests, Fake() provides a deterministic clock
// that advances only when Advance is called.
//
// # Wiring Pattern
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	table, _ := datatable.New(datatable.Config[Tool]{Clock: c, ...})
//	table.Search("drill")
//	c.Advance(500 * time.Millisecond) // debounce fires synchronously
//
// FakeClock invokes AfterFunc callbacks synchronously inside Advance, in
// deadline order, on the goroutine that called Advance. That matches the
// single-threaded model of the table: callbacks never race with the code
// that scheduled them.
package clock
