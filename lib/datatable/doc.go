// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package datatable implements a headless tabular data browser: row
// selection, local or delegated filtering with debounced search,
// sorting, pagination, a responsive table/card view switch, a floating
// bulk-action bar with timed enter and exit transitions, and an
// exclusive per-row action menu.
//
// A [Table] owns no rendering. Front ends (see lib/tableui) feed it
// rows, resize events and user intents, and read back a [Snapshot]
// describing what to draw. All timers go through an injected
// [clock.Clock], so every behavior is testable with a fake clock and
// no real-time waits.
//
// Data flow:
//
//	rows -> FilterCoordinator -> sort -> Paginator -> Snapshot.Rows
//	                    Selection, MenuOwner (independent of paging)
//	                    Responsive (chooses table or card renderer)
//
// The table is single-threaded: every method must be called from the
// host's event loop, and the clock must deliver callbacks on that same
// loop.
package datatable
