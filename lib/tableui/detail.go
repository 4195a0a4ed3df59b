// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/toolshed/lib/tui"
)

// DetailMsg opens the detail pane. Body is markdown.
type DetailMsg struct {
	Title string
	Body  string
}

// ShowDetail returns a command that opens the detail pane. Row action
// callbacks push it onto the CommandQueue.
func ShowDetail(title, body string) tea.Cmd {
	return func() tea.Msg {
		return DetailMsg{Title: title, Body: body}
	}
}

// detailPane is a scrollable full-screen view of one record.
type detailPane struct {
	title    string
	body     string
	viewport viewport.Model
}

func (model *Model[R]) openDetail(message DetailMsg) {
	model.closeDropdown()
	model.detail = &detailPane{
		title:    message.Title,
		body:     message.Body,
		viewport: viewport.New(model.width, model.detailHeight()),
	}
	model.layoutDetail()
	model.focus = FocusDetail
}

func (model *Model[R]) closeDetail() {
	model.detail = nil
	model.focus = FocusTable
}

// layoutDetail re-renders the body for the current terminal size.
func (model *Model[R]) layoutDetail() {
	if model.detail == nil {
		return
	}
	model.detail.viewport.Width = model.width
	model.detail.viewport.Height = model.detailHeight()
	content := tui.RenderMarkdown(model.detail.body, model.theme, model.width-2)
	if content == "" {
		content = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No notes")
	}
	model.detail.viewport.SetContent(content)
}

func (model Model[R]) detailHeight() int {
	return max(model.height-headerLines-footerLines, 1)
}

func (model *Model[R]) handleDetailKeys(message tea.KeyMsg) tea.Cmd {
	if key.Matches(message, model.keys.Back) || key.Matches(message, model.keys.Quit) {
		model.closeDetail()
		return nil
	}
	var command tea.Cmd
	model.detail.viewport, command = model.detail.viewport.Update(message)
	return command
}

func (model Model[R]) renderDetail() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	lines := []string{fitLine(title.Render(model.detail.title), model.width)}
	lines = append(lines, strings.Split(model.detail.viewport.View(), "\n")...)
	position := fmt.Sprintf("%3.0f%%", model.detail.viewport.ScrollPercent()*100)
	lines = append(lines, fitLine(faint.Render(position), model.width))
	lines = append(lines, fitLine(faint.Render("esc close  ↑/↓ scroll"), model.width))
	return strings.Join(lines, "\n")
}
