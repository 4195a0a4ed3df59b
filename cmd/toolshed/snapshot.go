// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toolshed/lib/cli"
	"github.com/bureau-foundation/toolshed/lib/config"
	"github.com/bureau-foundation/toolshed/lib/inventory"
	"github.com/bureau-foundation/toolshed/lib/sealed"
)

// runSnapshot converts an inventory between formats. The output format
// follows the output name: ".jsonl" writes JSONL; a name containing
// ".cbor" writes a snapshot, compressed for ".zst" or ".lz4" and
// encrypted to the configured recipients for ".age".
func runSnapshot(args []string, stderr io.Writer) error {
	var configPath string
	var recipients []string
	var identityFile string
	var force bool

	flagSet := pflag.NewFlagSet("toolshed snapshot", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringSliceVarP(&recipients, "recipient", "r", nil, "age public key to encrypt to (repeatable)")
	flagSet.StringVarP(&identityFile, "identity", "i", "", "age identity file for reading sealed input")
	flagSet.BoolVar(&force, "force", false, "overwrite OUT if it exists")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			fmt.Fprintln(stderr, "Usage: toolshed snapshot [--force] [-r age1...] [-i identity.txt] IN OUT")
			flagSet.SetOutput(stderr)
			flagSet.PrintDefaults()
			return nil
		}
		return cli.Validation("%w", err)
	}
	if flagSet.NArg() != 2 {
		return cli.Validation("snapshot takes 2 arguments, got %d", flagSet.NArg()).
			WithHint("Usage: toolshed snapshot IN OUT")
	}
	input, output := flagSet.Arg(0), flagSet.Arg(1)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("recipient") {
		cfg.Data.Recipients = recipients
	}
	if flagSet.Changed("identity") {
		cfg.Data.IdentityFile = identityFile
	}
	keys, err := loadKeys(cfg)
	if err != nil {
		return err
	}
	if sealed.IsSealed(output) && len(keys.Recipients) == 0 {
		return cli.Validation("%s is sealed but no recipients are configured", output).
			WithHint("Pass -r age1... or set data.recipients in the config.")
	}

	if !force {
		if _, err := os.Stat(output); err == nil {
			return cli.Conflict("%s already exists", output).WithHint("Pass --force to overwrite it.")
		}
	}

	tools, err := inventory.Load(input, keys)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cli.NotFound("%w", err)
		}
		return cli.Validation("cannot load tools from %s: %w", input, err)
	}

	if inventory.FormatForPath(output) == inventory.FormatSnapshot {
		err = inventory.WriteSnapshot(output, tools, time.Now(), keys)
	} else {
		err = writeJSONLFile(output, tools)
	}
	if err != nil {
		return cli.Internal("writing %s: %w", output, err)
	}
	fmt.Fprintf(stderr, "wrote %s to %s\n", plural(len(tools), "tool"), output)
	return nil
}

// writeJSONLFile atomically replaces path with tools as JSONL.
func writeJSONLFile(path string, tools []inventory.Tool) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(temporary.Name())

	writer := bufio.NewWriter(temporary)
	if err := inventory.WriteJSONL(writer, tools); err != nil {
		temporary.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Close(); err != nil {
		return err
	}
	return os.Rename(temporary.Name(), path)
}

// runKeygen prints a new age identity on stdout and its public key on
// stderr, like age-keygen.
func runKeygen(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return cli.Validation("keygen takes no arguments")
	}
	identity, recipient, err := sealed.GenerateIdentity()
	if err != nil {
		return cli.Internal("generating identity: %w", err)
	}
	fmt.Fprintf(stdout, "# created: %s\n# public key: %s\n%s\n", time.Now().Format(time.RFC3339), recipient, identity)
	fmt.Fprintf(stderr, "Public key: %s\n", recipient)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("config file not found: %w", err)
		}
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}
