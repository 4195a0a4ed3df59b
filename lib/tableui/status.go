// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// statusFadeDelay is how long a status message replaces the help line.
const statusFadeDelay = 5 * time.Second

// statusMsg delivers a log record to the Model's status line.
type statusMsg struct {
	Text  string
	Level slog.Level
}

// statusFadeMsg clears the status line if no newer message arrived.
type statusFadeMsg struct {
	sequence int
}

// StatusLogHandler is a slog.Handler that shows records at or above
// its level in the Model's status line. Records are rendered as
// "message (key=value, ...)". Handlers derived with WithAttrs and
// WithGroup share the root handler's ProgramRef.
type StatusLogHandler struct {
	level   slog.Leveler
	program *ProgramRef
	attrs   []slog.Attr
	group   string
}

// NewStatusLogHandler returns a handler that sends records through
// program.
func NewStatusLogHandler(level slog.Leveler, program *ProgramRef) *StatusLogHandler {
	return &StatusLogHandler{level: level, program: program}
}

// Enabled reports whether level reaches the status line.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and posts it to the program.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		key := attr.Key
		if handler.group != "" {
			key = handler.group + "." + key
		}
		parts = append(parts, key+"="+attr.Value.String())
		return true
	})

	text := record.Message
	if len(parts) > 0 {
		text += " (" + strings.Join(parts, ", ") + ")"
	}
	handler.program.Send(statusMsg{Text: text, Level: record.Level})
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	derived.attrs = append(derived.attrs, handler.attrs...)
	for _, attr := range attrs {
		if handler.group != "" {
			attr.Key = handler.group + "." + attr.Key
		}
		derived.attrs = append(derived.attrs, attr)
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys.
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	if handler.group != "" {
		derived.group = handler.group + "." + name
	} else {
		derived.group = name
	}
	return &derived
}
