// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// maxBacklog bounds the messages held before a program is attached.
const maxBacklog = 256

// ProgramRef is a late-bound handle to the running bubbletea program.
// The clock and the log handler are created before the program exists;
// messages they send before Attach are held and delivered on Attach.
type ProgramRef struct {
	mu      sync.Mutex
	sink    func(tea.Msg)
	backlog []tea.Msg
}

// NewProgramRef returns an unattached reference.
func NewProgramRef() *ProgramRef {
	return &ProgramRef{}
}

// Attach delivers all future messages to program. Each Send runs on
// its own goroutine: tea.Program.Send blocks until the event loop
// reads it, and senders include code running inside Update.
func (ref *ProgramRef) Attach(program *tea.Program) {
	ref.SetSink(func(message tea.Msg) {
		go program.Send(message)
	})
}

// SetSink delivers all future messages to sink, after flushing the
// backlog. Tests use it to capture messages synchronously.
func (ref *ProgramRef) SetSink(sink func(tea.Msg)) {
	ref.mu.Lock()
	ref.sink = sink
	backlog := ref.backlog
	ref.backlog = nil
	ref.mu.Unlock()

	for _, message := range backlog {
		sink(message)
	}
}

// Send delivers message to the program, or holds it until Attach. The
// oldest held message is dropped once the backlog is full.
func (ref *ProgramRef) Send(message tea.Msg) {
	ref.mu.Lock()
	sink := ref.sink
	if sink == nil {
		if len(ref.backlog) >= maxBacklog {
			ref.backlog = ref.backlog[1:]
		}
		ref.backlog = append(ref.backlog, message)
		ref.mu.Unlock()
		return
	}
	ref.mu.Unlock()
	sink(message)
}

// CommandQueue collects tea.Cmds produced by table callbacks (which
// cannot return commands themselves). The Model drains it after every
// Update. A nil queue is valid and always empty.
type CommandQueue struct {
	mu       sync.Mutex
	commands []tea.Cmd
}

// Push schedules command for the next Update.
func (queue *CommandQueue) Push(command tea.Cmd) {
	if command == nil {
		return
	}
	queue.mu.Lock()
	defer queue.mu.Unlock()
	queue.commands = append(queue.commands, command)
}

func (queue *CommandQueue) drain() []tea.Cmd {
	if queue == nil {
		return nil
	}
	queue.mu.Lock()
	defer queue.mu.Unlock()
	commands := queue.commands
	queue.commands = nil
	return commands
}
