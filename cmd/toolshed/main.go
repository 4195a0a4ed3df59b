// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// toolshed is a terminal browser for a workshop tool inventory.
//
// The inventory is a JSONL file (one tool per line) or a CBOR snapshot
// written by "toolshed snapshot", optionally zstd or lz4 compressed and
// age encrypted. With --watch the file is followed via inotify and
// changed rows flash in place.
//
// Filtering runs in memory by default. With --delegated, search and
// category changes go to a search service that answers after a
// simulated backend latency, the way a server-backed table would.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toolshed/lib/cli"
	"github.com/bureau-foundation/toolshed/lib/config"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if cli.Printed(err) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "snapshot":
			return runSnapshot(args[1:], stderr)
		case "keygen":
			return runKeygen(args[1:], stdout, stderr)
		}
	}

	flagSet, flags := newFlagSet()
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet, stderr)
			return nil
		}
		return cli.Validation("%w", err).WithHint("Run 'toolshed --help' for usage.")
	}
	if flags.help {
		printHelp(flagSet, stderr)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return cli.Validation("unexpected argument: %s", rest[0])
	}

	cfg, err := resolveConfig(flagSet, flags)
	if err != nil {
		return err
	}
	return runBrowser(cfg, stderr)
}

// flagValues holds the parsed browser flags. Flags override config
// file values only when given explicitly.
type flagValues struct {
	configPath  string
	file        string
	delegated   bool
	fuzzy       bool
	pageSize    int
	selectScope string
	watch       bool
	logOutput   string
	logLevel    string
	help        bool
}

func newFlagSet() (*pflag.FlagSet, *flagValues) {
	flags := &flagValues{}
	flagSet := pflag.NewFlagSet("toolshed", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&flags.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&flags.file, "file", "", "inventory file: .jsonl, or a .cbor snapshot (.zst/.lz4, .age)")
	flagSet.BoolVar(&flags.delegated, "delegated", false, "filter through the search service instead of in memory")
	flagSet.BoolVar(&flags.fuzzy, "fuzzy", false, "fuzzy search instead of substring")
	flagSet.IntVar(&flags.pageSize, "page-size", 0, "rows per page")
	flagSet.StringVar(&flags.selectScope, "select-scope", "", "what select-all selects: page or filtered")
	flagSet.BoolVar(&flags.watch, "watch", false, "reload the inventory file when it changes")
	flagSet.StringVar(&flags.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	flagSet.BoolVarP(&flags.help, "help", "h", false, "show help")
	return flagSet, flags
}

// resolveConfig loads the config file and applies explicit flags.
func resolveConfig(flagSet *pflag.FlagSet, flags *flagValues) (*config.Config, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flagSet.Changed("file") {
		cfg.Data.File = flags.file
	}
	if flagSet.Changed("delegated") {
		cfg.Table.Delegated = flags.delegated
	}
	if flagSet.Changed("fuzzy") {
		cfg.Table.Fuzzy = flags.fuzzy
	}
	if flagSet.Changed("page-size") {
		cfg.Table.PageSize = flags.pageSize
	}
	if flagSet.Changed("select-scope") {
		cfg.Table.SelectScope = flags.selectScope
	}
	if flagSet.Changed("watch") {
		cfg.Data.Watch = flags.watch
	}
	if flagSet.Changed("log-output") {
		cfg.Logging.Output = flags.logOutput
	}
	if flagSet.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err)
	}
	if cfg.Data.File == "" {
		return nil, cli.Validation("no inventory file").
			WithHint("Pass --file tools.jsonl or set data.file in the config.")
	}
	return cfg, nil
}

func printHelp(flagSet *pflag.FlagSet, output io.Writer) {
	fmt.Fprintf(output, `toolshed: browse a workshop tool inventory in the terminal.

Usage:
  toolshed [flags]
  toolshed snapshot [--force] IN OUT
  toolshed keygen

Examples:
  # Browse a JSONL inventory and follow edits to it
  toolshed --file tools.jsonl --watch

  # Write a compressed, encrypted snapshot and browse it
  toolshed snapshot tools.jsonl tools.cbor.zst.age
  toolshed --file tools.cbor.zst.age

Keys: / search, f filter by category, space select, a select all,
enter row menu, o details, c columns, s sort, n/p page, ? help,
q quit.

Flags:
`)
	flagSet.SetOutput(output)
	flagSet.PrintDefaults()
	flagSet.SetOutput(io.Discard)
}
