// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal primitives shared by toolshed's
// bubbletea front ends: the colour theme, dropdown menus (single and
// multi-select), ANSI-aware overlay compositing, eased transitions for
// animated overlays, change highlighting, and a scrollbar.
//
// Nothing here knows about tables or tools. A front end owns its data
// and layout; it asks this package to render the pieces that look the
// same everywhere.
package tui
