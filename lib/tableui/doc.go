// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tableui is the bubbletea front end for a [datatable.Table].
//
// The Model renders the table's snapshot either as aligned columns or,
// below the table's breakpoint, as stacked cards. It owns only view
// concerns (cursor, scroll offset, which overlay has focus); selection,
// filtering, paging, the bulk-action bar and the row menu all live in
// the headless table and are driven through its operations.
//
// The table's timers must run on the bubbletea event loop. [LoopClock]
// wraps a real clock so that an expired timer posts a message to the
// program and the callback runs inside Update, on the same goroutine
// as every other table mutation. A timer stopped before its message is
// processed never runs. [StatusLogHandler] routes warning and error
// log records into the status bar the same way.
//
// Layout, top to bottom:
//
//	header    title, navigation summary, search input, facet chips
//	body      [sidebar |] column header + rows, or cards
//	footer    page dots, counts
//	help      key help, or the latest status message
//
// The sidebar belongs to the navigation shell, which has its own
// responsive selector and breakpoint independent of the table's.
package tableui
