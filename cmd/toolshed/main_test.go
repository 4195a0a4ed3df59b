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
)

func parseFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	flagSet, flags := newFlagSet()
	if err := flagSet.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return resolveConfig(flagSet, flags)
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolshed.yaml")
	content := "table:\n  page_size: 10\n  fuzzy: true\ndata:\n  file: from-config.jsonl\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseFlags(t, "--config", path, "--page-size", "5", "--select-scope", "filtered", "--delegated")
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Table.PageSize != 5 {
		t.Errorf("page size = %d, want flag value 5", cfg.Table.PageSize)
	}
	if !cfg.Table.Fuzzy {
		t.Error("fuzzy from config lost")
	}
	if cfg.Table.SelectScope != config.ScopeFiltered || !cfg.Table.Delegated {
		t.Errorf("table = %+v", cfg.Table)
	}
	if cfg.Data.File != "from-config.jsonl" {
		t.Errorf("file = %q, want config value", cfg.Data.File)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{"no file", nil, "no inventory file", 2},
		{"bad scope", []string{"--file", "x.jsonl", "--select-scope", "all"}, "table.select_scope", 2},
		{"bad page size", []string{"--file", "x.jsonl", "--page-size", "0"}, "table.page_size", 2},
		{"missing config", []string{"--config", "/nonexistent/toolshed.yaml"}, "config file not found", 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseFlags(t, test.args...)
			if err == nil {
				t.Fatal("resolveConfig = nil error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q missing %q", err, test.want)
			}
			if code := cli.ExitCode(err); code != test.code {
				t.Errorf("exit code = %d, want %d", code, test.code)
			}
		})
	}
}

func TestRunRejectsNonTerminal(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	var stderr bytes.Buffer
	err := run([]string{"--file", "testdata/tools.jsonl"}, &bytes.Buffer{}, &stderr)
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Fatalf("run() error = %v, want terminal error", err)
	}
}

func TestRunUsageErrors(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	for _, args := range [][]string{{"--no-such-flag"}, {"--file", "x.jsonl", "extra"}} {
		err := run(args, &bytes.Buffer{}, &bytes.Buffer{})
		if cli.ExitCode(err) != 2 {
			t.Errorf("run(%v) = %v, want a validation error", args, err)
		}
	}
}

func TestRunHelp(t *testing.T) {
	var stderr bytes.Buffer
	if err := run([]string{"--help"}, &bytes.Buffer{}, &stderr); err != nil {
		t.Fatalf("run(--help) = %v", err)
	}
	for _, want := range []string{"toolshed snapshot", "--delegated", "--select-scope"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}
