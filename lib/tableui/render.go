// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/toolshed/lib/datatable"
	"github.com/bureau-foundation/toolshed/lib/tui"
)

// Pages beyond this count switch the pager from dots to "3/12".
const maxPagerDots = 10

// View implements tea.Model.
func (model Model[R]) View() string {
	if !model.ready {
		return "Initializing…"
	}
	if model.detail != nil {
		return model.renderDetail()
	}
	snapshot := model.table.Snapshot()

	lines := make([]string, 0, model.height)
	lines = append(lines, fitLine(model.renderHeader(snapshot), model.width))

	body := model.renderBody(snapshot)
	if model.sidebarShown() {
		body = model.withSidebar(body)
	}
	lines = append(lines, body...)
	lines = append(lines, fitLine(model.renderPager(snapshot), model.width))
	lines = append(lines, fitLine(model.renderHelpLine(), model.width))
	view := strings.Join(lines, "\n")

	if snapshot.BulkPhase != datatable.PhaseHidden {
		bar := model.renderBulkBar(snapshot)
		revealed := tui.SlideRows(len(bar), snapshot.BulkProgress, snapshot.BulkPhase == datatable.PhaseExiting)
		if revealed > 0 {
			y := model.height - footerLines - revealed
			view = tui.SpliceOverlay(view, bar[:revealed], model.areaOffset(), y)
		}
	}
	if model.dropdown != nil {
		view = tui.SpliceOverlay(view, model.dropdown.Render(model.theme), model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	if model.help.ShowAll {
		view = model.overlayFullHelp(view)
	}
	return view
}

// renderHeader builds the title line: title, row counts, the search
// input or active query, active facets, and the collapsed navigation.
func (model Model[R]) renderHeader(snapshot datatable.Snapshot[R]) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	parts := []string{title.Render(model.options.Title)}
	counts := fmt.Sprintf("%d/%d", snapshot.FilteredRows, snapshot.TotalRows)
	parts = append(parts, faint.Render(counts))

	switch {
	case model.focus == FocusSearch:
		parts = append(parts, model.search.View())
	case snapshot.Filter.Query != "":
		parts = append(parts, faint.Render("/"+snapshot.Filter.Query))
	}
	if facets := snapshot.Filter.Facets.Values(); len(facets) > 0 {
		parts = append(parts, faint.Render("["+strings.Join(facets, ", ")+"]"))
	}
	if sorting := snapshot.Sort; sorting.ColumnID != "" {
		arrow := "▲"
		if sorting.Descending {
			arrow = "▼"
		}
		if column, ok := model.table.Columns().Lookup(sorting.ColumnID); ok {
			parts = append(parts, faint.Render(column.Title+arrow))
		}
	}
	if model.options.Sidebar != nil && !model.sidebarShown() {
		parts = append(parts, faint.Render(strings.Join(model.options.Sidebar(), " · ")))
	}
	return strings.Join(parts, "  ")
}

// renderBody returns exactly bodyHeight lines of areaWidth columns.
func (model Model[R]) renderBody(snapshot datatable.Snapshot[R]) []string {
	height := model.bodyHeight()
	width := model.areaWidth()

	var lines []string
	switch {
	case snapshot.Loading:
		lines = []string{model.spinner.View() + " Loading…"}
	case snapshot.Empty:
		if !snapshot.Compact {
			lines = append(lines, model.renderColumnHeader(snapshot))
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No results"))
	case snapshot.Compact:
		lines = model.renderCards(snapshot, width-scrollbarWidth, height)
	default:
		lines = model.renderTabular(snapshot, width-scrollbarWidth, height)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	scrollbar := model.scrollbar(snapshot, height)
	for index := range lines {
		lines[index] = fitLine(lines[index], width-scrollbarWidth)
		if scrollbar != nil {
			lines[index] += scrollbar[index]
		} else {
			lines[index] += " "
		}
	}
	return lines
}

func (model Model[R]) scrollbar(snapshot datatable.Snapshot[R], height int) []string {
	if snapshot.Loading || snapshot.Empty {
		return nil
	}
	visible := height
	if !snapshot.Compact {
		visible = height - 1
	}
	total := len(snapshot.Rows)
	if snapshot.Compact && total > 0 {
		// Approximate: cards of the first row's height.
		visible = max(1, height/model.cardHeight(snapshot.Rows[0]))
	}
	if total <= visible {
		return nil
	}
	bar := tui.Scrollbar{Height: height, Total: total, Visible: visible, Offset: model.scrollOffset}
	return bar.Render(model.theme, model.focus == FocusTable)
}

func checkbox(checked bool) string {
	if checked {
		return "[x] "
	}
	return "[ ] "
}

func headerCheckbox(state datatable.CheckState) string {
	switch state {
	case datatable.Checked:
		return "[x] "
	case datatable.Indeterminate:
		return "[-] "
	default:
		return "[ ] "
	}
}

func (model Model[R]) renderColumnHeader(snapshot datatable.Snapshot[R]) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	active := style.Underline(true).Foreground(model.theme.AccentColor)

	var builder strings.Builder
	if snapshot.SelectionEnabled {
		builder.WriteString(headerCheckbox(snapshot.Header))
	} else {
		builder.WriteString(strings.Repeat(" ", checkboxWidth))
	}
	widths := model.columnWidths()
	for index, column := range snapshot.Columns {
		text := column.Header()
		if snapshot.Sort.ColumnID == column.ID {
			if snapshot.Sort.Descending {
				text += " ▼"
			} else {
				text += " ▲"
			}
		}
		cell := padCell(text, widths[index])
		if index == model.columnCursor {
			builder.WriteString(active.Render(cell))
		} else {
			builder.WriteString(style.Render(cell))
		}
	}
	return builder.String()
}

func (model Model[R]) renderTabular(snapshot datatable.Snapshot[R], width, height int) []string {
	lines := []string{model.renderColumnHeader(snapshot)}
	widths := model.columnWidths()
	now := model.clock.Now()

	for index := model.scrollOffset; index < len(snapshot.Rows) && len(lines) < height; index++ {
		row := snapshot.Rows[index]
		id := model.table.RowID(row)
		current := index == model.cursor

		var builder strings.Builder
		if snapshot.SelectionEnabled {
			builder.WriteString(checkbox(model.table.IsSelected(id)))
		} else {
			builder.WriteString(strings.Repeat(" ", checkboxWidth))
		}
		for position, column := range snapshot.Columns {
			text := padCell(column.Cell(row), widths[position])
			if model.options.StyleCell != nil {
				text = model.options.StyleCell(column.ID, row, text)
			}
			builder.WriteString(text)
		}
		if current && snapshot.RowActionsEnabled {
			builder.WriteString("⋯ ")
		}
		lines = append(lines, model.styleRow(builder.String(), id, current, now, width))
	}
	return lines
}

// styleRow applies cursor, selection and change-flash styling.
func (model Model[R]) styleRow(line, id string, current bool, now time.Time, width int) string {
	style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if model.table.IsSelected(id) {
		style = style.Foreground(model.theme.CheckedForeground)
	}
	if intensity, kind := model.flashes.Intensity(id, now); intensity > 0.5 {
		if kind == tui.FlashRemove {
			style = style.Foreground(model.theme.FlashRemove)
		} else {
			style = style.Foreground(model.theme.FlashPut)
		}
	}
	if current {
		style = style.Background(model.theme.SelectedBackground)
	}
	return style.Render(fitLine(line, width))
}

// cardLines renders one row as a card, without the trailing spacer.
func (model Model[R]) cardLines(row R) []string {
	var content []string
	if model.options.Card != nil {
		content = model.options.Card(row)
	} else {
		for _, column := range model.table.Columns().Visible() {
			content = append(content, column.Title+": "+column.Cell(row))
		}
	}
	if len(content) == 0 {
		content = []string{model.table.RowID(row)}
	}
	return content
}

// cardHeight is the rendered height of a card, including the spacer.
func (model Model[R]) cardHeight(row R) int {
	return len(model.cardLines(row)) + 1
}

func (model Model[R]) renderCards(snapshot datatable.Snapshot[R], width, height int) []string {
	var lines []string
	now := model.clock.Now()
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	for index := model.scrollOffset; index < len(snapshot.Rows) && len(lines) < height; index++ {
		row := snapshot.Rows[index]
		id := model.table.RowID(row)
		current := index == model.cursor

		for position, text := range model.cardLines(row) {
			prefix := strings.Repeat(" ", checkboxWidth)
			if position == 0 && snapshot.SelectionEnabled {
				prefix = checkbox(model.table.IsSelected(id))
			}
			line := prefix + text
			if position == 0 && snapshot.RowActionsEnabled {
				line = fitLine(line, width-2) + " " + faint.Render("⋯")
			}
			lines = append(lines, model.styleRow(line, id, current, now, width))
		}
		lines = append(lines, "")
	}
	return lines
}

func (model Model[R]) renderPager(snapshot datatable.Snapshot[R]) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	var left string
	if snapshot.PaginationEnabled && snapshot.PageCount > 1 {
		pager := model.pager
		if snapshot.PageCount > maxPagerDots {
			pager.Type = paginator.Arabic
		}
		pager.TotalPages = snapshot.PageCount
		pager.Page = snapshot.PageIndex
		left = pager.View()
	}
	if snapshot.SelectedCount > 0 {
		left += faint.Render(fmt.Sprintf("  %d selected", snapshot.SelectedCount))
	}
	return left
}

func (model Model[R]) renderHelpLine() string {
	if model.status == "" {
		return model.help.ShortHelpView(model.keys.ShortHelp())
	}
	color := model.theme.HelpText
	switch {
	case model.statusLevel >= slog.LevelError:
		color = model.theme.ErrorText
	case model.statusLevel >= slog.LevelWarn:
		color = model.theme.WarningText
	}
	return lipgloss.NewStyle().Foreground(color).Render(model.status)
}

// renderBulkBar renders the two-line floating bar over the bottom of
// the table area.
func (model Model[R]) renderBulkBar(snapshot datatable.Snapshot[R]) []string {
	width := model.areaWidth()
	background := lipgloss.NewStyle().
		Background(model.theme.OverlayBackground).
		Foreground(model.theme.OverlayForeground)
	accent := background.Foreground(model.theme.AccentColor).Bold(true)

	parts := []string{accent.Render(fmt.Sprintf("%d selected", snapshot.SelectedCount))}
	for _, action := range model.table.BulkActions() {
		label := action.Label
		if action.Key != "" {
			label = "[" + action.Key + "] " + label
		}
		parts = append(parts, background.Render(label))
	}
	summary := strings.Join(parts, background.Render("   "))
	hint := background.Foreground(model.theme.FaintText).Render("x clear  esc clear  space toggle")

	inner := max(0, width-2)
	return []string{
		tui.PadOverlayLine(ansi.Truncate(summary, inner, "…"), inner, background),
		tui.PadOverlayLine(ansi.Truncate(hint, inner, "…"), inner, background),
	}
}

func (model Model[R]) withSidebar(body []string) []string {
	sidebar := model.options.Sidebar()
	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render("│")
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	for index := range body {
		var entry string
		if index < len(sidebar) {
			entry = sidebar[index]
		}
		body[index] = style.Render(fitLine(" "+entry, sidebarWidth)) + divider + body[index]
	}
	return body
}

func (model Model[R]) overlayFullHelp(view string) string {
	background := lipgloss.NewStyle().
		Background(model.theme.OverlayBackground).
		Foreground(model.theme.OverlayForeground)
	content := strings.Split(model.help.FullHelpView(model.keys.FullHelp()), "\n")
	width := 0
	for _, line := range content {
		width = max(width, ansi.StringWidth(line))
	}
	lines := make([]string, len(content))
	for index, line := range content {
		lines[index] = tui.PadOverlayLine(line, width, background)
	}
	x, y := tui.CenterAnchor(model.width, model.height, width+2, len(lines))
	return tui.SpliceOverlay(view, lines, x, y)
}

// padCell truncates or pads text to exactly width columns, leaving a
// one-column gutter.
func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return " "
	}
	return fitLine(text, width-1) + " "
}

// fitLine truncates or pads an ANSI-styled line to width columns.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	visible := ansi.StringWidth(line)
	if visible > width {
		return ansi.Truncate(line, width, "…")
	}
	return line + strings.Repeat(" ", width-visible)
}
