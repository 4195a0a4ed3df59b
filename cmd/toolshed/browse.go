// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/bureau-foundation/toolshed/lib/cli"
	"github.com/bureau-foundation/toolshed/lib/clock"
	"github.com/bureau-foundation/toolshed/lib/config"
	"github.com/bureau-foundation/toolshed/lib/datatable"
	"github.com/bureau-foundation/toolshed/lib/inventory"
	"github.com/bureau-foundation/toolshed/lib/sealed"
	"github.com/bureau-foundation/toolshed/lib/tableui"
	"github.com/bureau-foundation/toolshed/lib/tui"
)

// changeBuffer bounds queued live changes between the index and the
// event loop.
const changeBuffer = 64

// runBrowser loads the inventory and runs the TUI until the user quits.
func runBrowser(cfg *config.Config, stderr io.Writer) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Validation("toolshed needs an interactive terminal").
			WithHint("Use 'toolshed snapshot IN OUT' to convert inventories non-interactively.")
	}

	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return cli.Validation("%w", err)
	}
	startupLogger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	keys, err := loadKeys(cfg)
	if err != nil {
		return err
	}
	tools, err := inventory.Load(cfg.Data.File, keys)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cli.NotFound("%w", err).WithHint("Check data.file or --file.")
		}
		return cli.Validation("cannot load tools from %s: %w", cfg.Data.File, err)
	}
	startupLogger.Debug("inventory loaded", "path", cfg.Data.File, "tools", len(tools))

	index := inventory.NewIndex(tools...)
	defer index.Close()

	// Background logging goes to the status bar instead of stderr,
	// which would corrupt the alternate screen.
	ref := tableui.NewProgramRef()
	logger, closeLog, err := backgroundLogger(cfg.Logging.Output, level, ref)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Data.Watch {
		watcher, err := inventory.Watch(cfg.Data.File, index, inventory.WatchOptions{Keys: keys, Logger: logger})
		if err != nil {
			return cli.Internal("watching %s: %w", cfg.Data.File, err)
		}
		defer watcher.Stop()
	}

	durations, err := cfg.Durations()
	if err != nil {
		return cli.Validation("%w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := &tableui.CommandQueue{}
	base := clock.Real()
	loopClock := tableui.NewLoopClock(base, ref)
	browser := &browser{
		index:  index,
		queue:  queue,
		logger: logger,
		search: inventory.NewSearchService(index, durations.SearchLatency, base),
		clock:  base,
		ctx:    ctx,
	}

	table, err := datatable.New(browser.tableConfig(cfg, durations, loopClock))
	if err != nil {
		return cli.Internal("building table: %w", err)
	}
	defer table.Close()
	browser.table = table
	browser.table.SetRows(index.All())

	theme := tui.DefaultTheme
	options := tableui.Options[inventory.Tool]{
		Table:     table,
		Title:     "Toolshed",
		Theme:     &theme,
		Card:      inventory.CardLines,
		StyleCell: styleCell(theme),
		Commands:  queue,
		Changes:   forwardChanges(ctx, index),
		Reload:    browser.reload,
		Clock:     loopClock,
	}
	if !cfg.Navigation.Disabled {
		options.Sidebar = browser.sidebar
		options.NavigationBreakpoint = cfg.Navigation.Breakpoint
	}

	program := tea.NewProgram(tableui.NewModel(options), tea.WithAltScreen(), tea.WithMouseCellMotion())
	ref.Attach(program)
	_, err = program.Run()
	return err
}

// loadKeys reads the age identities and recipients for sealed
// snapshots.
func loadKeys(cfg *config.Config) (inventory.Keys, error) {
	keys := inventory.Keys{Recipients: cfg.Data.Recipients}
	if cfg.Data.IdentityFile == "" {
		return keys, nil
	}
	identities, err := sealed.LoadIdentities(cfg.Data.IdentityFile)
	if err != nil {
		return keys, cli.Validation("%w", err).WithHint("Generate one with 'toolshed keygen > identity.txt'.")
	}
	keys.Identities = identities
	return keys, nil
}

// forwardChanges turns index events into row changes for the model.
func forwardChanges(ctx context.Context, index *inventory.Index) <-chan tableui.Change {
	events := index.Subscribe()
	changes := make(chan tableui.Change, changeBuffer)
	go func() {
		defer close(changes)
		for event := range events {
			change := tableui.Change{ID: event.ToolID, Removed: event.Kind == inventory.EventRemove}
			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}()
	return changes
}

// styleCell colours the status column by status.
func styleCell(theme tui.Theme) func(columnID string, tool inventory.Tool, text string) string {
	return func(columnID string, tool inventory.Tool, text string) string {
		if columnID != inventory.ColumnStatus {
			return text
		}
		return lipgloss.NewStyle().Foreground(theme.StatusColor(string(tool.Status))).Render(text)
	}
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}
