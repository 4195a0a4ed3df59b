// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [Receive], [NoReceive] and [Closed] wrap the select-with-timeout
// pattern for channel assertions. They are the only place tests use
// wall-clock timeouts; everything else runs on clock.Fake.
//
// [WriteFile] and [ReplaceFile] set up inventory files for loader and
// watcher tests.
//
// All helpers call t.Fatalf on failure.
package testutil
