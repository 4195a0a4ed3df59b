// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads toolshed configuration.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]) or the TOOLSHED_CONFIG environment variable (via
// [Load]). The file is merged over [Default], so it only needs the
// keys it changes. YAML is the default format; files ending in .json
// or .jsonc are parsed as JSON with comments. Unknown keys are errors
// so that typos do not silently fall back to defaults.
//
// Timing fields are Go duration strings ("500ms") parsed by
// [Config.Durations]. Path fields expand ${HOME} and ${VAR:-default}.
// Command-line flags override file values; that merge happens in the
// command, not here.
//
// This package depends on no other toolshed packages.
package config
