// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/toolshed/lib/cli"
	"github.com/bureau-foundation/toolshed/lib/config"
	"github.com/bureau-foundation/toolshed/lib/inventory"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := t.TempDir()
	snapshot := filepath.Join(directory, "tools.cbor.zst")
	jsonl := filepath.Join(directory, "tools.jsonl")

	var stderr bytes.Buffer
	if err := run([]string{"snapshot", "testdata/tools.jsonl", snapshot}, &bytes.Buffer{}, &stderr); err != nil {
		t.Fatalf("snapshot to cbor: %v", err)
	}
	if !strings.Contains(stderr.String(), "wrote 5 tools") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if err := run([]string{"snapshot", snapshot, jsonl}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("snapshot to jsonl: %v", err)
	}

	original, err := inventory.Load("testdata/tools.jsonl", inventory.Keys{})
	if err != nil {
		t.Fatal(err)
	}
	converted, err := inventory.Load(jsonl, inventory.Keys{})
	if err != nil {
		t.Fatal(err)
	}
	if len(converted) != len(original) {
		t.Fatalf("converted %d tools, want %d", len(converted), len(original))
	}
	for position := range original {
		if !converted[position].Equal(original[position]) {
			t.Errorf("tool %d = %+v, want %+v", position, converted[position], original[position])
		}
	}
}

func TestSnapshotSealed(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := t.TempDir()

	var identity bytes.Buffer
	if err := run([]string{"keygen"}, &identity, &bytes.Buffer{}); err != nil {
		t.Fatalf("keygen: %v", err)
	}
	var recipient string
	for _, line := range strings.Split(identity.String(), "\n") {
		if value, ok := strings.CutPrefix(line, "# public key: "); ok {
			recipient = value
		}
	}
	if !strings.HasPrefix(recipient, "age1") {
		t.Fatalf("keygen output has no public key:\n%s", identity.String())
	}
	identityPath := filepath.Join(directory, "identity.txt")
	if err := os.WriteFile(identityPath, identity.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	sealedPath := filepath.Join(directory, "tools.cbor.lz4.age")
	if err := run([]string{"snapshot", "-r", recipient, "testdata/tools.jsonl", sealedPath}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("sealed snapshot: %v", err)
	}
	plain := filepath.Join(directory, "plain.jsonl")
	if err := run([]string{"snapshot", "-i", identityPath, sealedPath, plain}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("opening sealed snapshot: %v", err)
	}
	if tools, err := inventory.Load(plain, inventory.Keys{}); err != nil || len(tools) != 5 {
		t.Errorf("decrypted inventory = %d tools, %v", len(tools), err)
	}
}

func TestSnapshotErrors(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := t.TempDir()
	existing := filepath.Join(directory, "exists.jsonl")
	if err := os.WriteFile(existing, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"arguments", []string{"snapshot", "only-one"}, 2, "2 arguments"},
		{"exists", []string{"snapshot", "testdata/tools.jsonl", existing}, 4, "already exists"},
		{"missing input", []string{"snapshot", filepath.Join(directory, "absent.jsonl"), filepath.Join(directory, "out.cbor")}, 3, "absent.jsonl"},
		{"sealed without recipients", []string{"snapshot", "testdata/tools.jsonl", filepath.Join(directory, "out.cbor.age")}, 2, "no recipients"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := run(test.args, &bytes.Buffer{}, &bytes.Buffer{})
			if code := cli.ExitCode(err); code != test.code {
				t.Errorf("exit code = %d (%v), want %d", code, err, test.code)
			}
			if err != nil && !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q missing %q", err, test.want)
			}
		})
	}

	if err := run([]string{"snapshot", "--force", "testdata/tools.jsonl", existing}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Errorf("--force overwrite: %v", err)
	}
}
