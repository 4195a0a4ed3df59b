// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the error conventions of the toolshed command:
// categorized errors with optional remediation hints, and an exit
// error for commands that already printed their own output.
//
// main calls [ExitCode] on the error returned by a command to choose
// the process exit status, so scripts can tell bad input from a
// missing file from a bug without parsing messages.
package cli
