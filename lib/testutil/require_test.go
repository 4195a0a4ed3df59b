// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"testing"
	"time"
)

func TestReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := Receive(t, ch, time.Second, "value"); got != 7 {
		t.Errorf("Receive = %d, want 7", got)
	}
}

func TestNoReceiveAcceptsClosed(t *testing.T) {
	ch := make(chan int)
	close(ch)
	NoReceive(t, ch, 10*time.Millisecond, "value")
}

func TestClosedDrains(t *testing.T) {
	ch := make(chan int, 2)
	ch <- 1
	ch <- 2
	close(ch)
	Closed(t, ch, time.Second, "channel")
}

func TestReplaceFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "tools.jsonl", "old")
	ReplaceFile(t, path, "new")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
}
