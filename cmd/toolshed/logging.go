// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/toolshed/lib/cli"
	"github.com/bureau-foundation/toolshed/lib/tableui"
)

// backgroundLogger returns the logger used while the TUI runs. Records
// at Info and above reach the status bar; with output set, records at
// level and above are also written to that file as JSON.
func backgroundLogger(output string, level slog.Level, ref *tableui.ProgramRef) (*slog.Logger, func(), error) {
	statusHandler := tableui.NewStatusLogHandler(max(level, slog.LevelInfo), ref)
	if output == "" {
		return slog.New(statusHandler), func() {}, nil
	}
	fileHandler, closeFile, err := openFileLogHandler(output, level)
	if err != nil {
		return nil, nil, cli.Validation("cannot open log file %s: %w", output, err)
	}
	return slog.New(fanoutHandler{statusHandler, fileHandler}), closeFile, nil
}

// openFileLogHandler creates a JSON handler writing to path, which is
// created or truncated.
func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler sends each record to every handler enabled for its
// level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
