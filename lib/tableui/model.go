// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/toolshed/lib/clock"
	"github.com/bureau-foundation/toolshed/lib/datatable"
	"github.com/bureau-foundation/toolshed/lib/tui"
)

// Terminal breakpoints, in columns. The table switches to cards below
// DefaultDataColumns; the navigation sidebar collapses below
// DefaultNavigationColumns.
const (
	DefaultDataColumns       = 100
	DefaultNavigationColumns = 130
)

// Layout constants.
const (
	checkboxWidth  = 4  // "[x] "
	actionWidth    = 2  // "⋯ " on the cursor row
	scrollbarWidth = 1  // right edge
	sidebarWidth   = 24 // navigation sidebar, excluding the divider
	headerLines    = 1
	footerLines    = 2
)

// FocusRegion identifies which part of the browser receives keys.
type FocusRegion int

const (
	// FocusTable routes keys to row navigation and table operations.
	FocusTable FocusRegion = iota
	// FocusSearch routes keys to the search input.
	FocusSearch
	// FocusMenu routes keys to the open row action menu.
	FocusMenu
	// FocusFacets routes keys to the facet picker.
	FocusFacets
	// FocusColumns routes keys to the column visibility picker.
	FocusColumns
	// FocusDetail routes keys to the open detail pane.
	FocusDetail
)

// Change reports that a live data source modified one record.
type Change struct {
	ID      string
	Removed bool
}

// RowsMsg delivers rows produced asynchronously, typically the result
// of a delegated search. Messages with a Sequence lower than one
// already applied are stale and dropped.
type RowsMsg[R any] struct {
	Sequence uint64
	Rows     []R
	Err      error
}

// changeMsg wraps a Change for the event loop.
type changeMsg struct {
	change Change
}

// animationTickMsg re-renders while the bulk bar slides or rows flash.
type animationTickMsg struct{}

// Options configures a Model. Table is required.
type Options[R any] struct {
	Table *datatable.Table[R]

	// Title is shown at the left of the header line.
	Title string

	// Theme and Keys default to tui.DefaultTheme and DefaultKeyMap.
	Theme *tui.Theme
	Keys  *KeyMap

	// Card renders one row for the compact layout. Nil renders
	// "Title: value" for every visible column.
	Card func(row R) []string

	// StyleCell decorates an already truncated cell. Nil leaves cells
	// plain.
	StyleCell func(columnID string, row R, text string) string

	// Sidebar supplies the navigation shell's lines. When the terminal
	// is narrower than NavigationBreakpoint they collapse into the
	// header line. Nil disables the shell.
	Sidebar              func() []string
	NavigationBreakpoint int

	// Commands carries tea.Cmds pushed by table callbacks.
	Commands *CommandQueue

	// Changes streams live updates; Reload supplies the fresh rows for
	// each one.
	Changes <-chan Change
	Reload  func() []R

	// Clock timestamps change flashes. Defaults to clock.Real().
	Clock clock.Clock
}

// Model is the bubbletea model of the table browser.
type Model[R any] struct {
	table   *datatable.Table[R]
	options Options[R]
	theme   tui.Theme
	keys    KeyMap
	clock   clock.Clock

	help    help.Model
	search  textinput.Model
	spinner spinner.Model
	pager   paginator.Model

	nav     *datatable.Responsive
	flashes *tui.FlashTracker

	width  int
	height int
	ready  bool

	focus        FocusRegion
	cursor       int
	columnCursor int
	scrollOffset int

	// dropdown is the open menu or picker; nil unless focus is
	// FocusMenu, FocusFacets or FocusColumns. menuActions maps its
	// options back to row actions.
	dropdown    *tui.DropdownOverlay
	menuActions []datatable.RowAction

	// detail is the open detail pane; nil unless focus is FocusDetail.
	detail *detailPane

	status         string
	statusLevel    slog.Level
	statusSequence int

	rowsSequence uint64
	spinning     bool
	ticking      bool
}

// NewModel returns a browser over options.Table.
func NewModel[R any](options Options[R]) Model[R] {
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	navBreakpoint := options.NavigationBreakpoint
	if navBreakpoint <= 0 {
		navBreakpoint = DefaultNavigationColumns
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 128
	search.SetValue(options.Table.Snapshot().Filter.Query)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = "●"
	pager.InactiveDot = "○"

	return Model[R]{
		table:   options.Table,
		options: options,
		theme:   theme,
		keys:    keys,
		clock:   options.Clock,
		help:    help.New(),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		pager:   pager,
		nav:     datatable.NewResponsive(navBreakpoint, options.Clock, 0, nil),
		flashes: tui.NewFlashTracker(),
	}
}

// Init implements tea.Model.
func (model Model[R]) Init() tea.Cmd {
	if model.options.Changes == nil {
		return nil
	}
	return listenForChange(model.options.Changes)
}

func listenForChange(channel <-chan Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-channel
		if !ok {
			return nil
		}
		return changeMsg{change: change}
	}
}

// Focus returns the focused region.
func (model Model[R]) Focus() FocusRegion {
	return model.focus
}

// Cursor returns the cursor's index within the current page.
func (model Model[R]) Cursor() int {
	return model.cursor
}

// Update implements tea.Model.
func (model Model[R]) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var commands []tea.Cmd

	switch message := message.(type) {
	case tea.KeyMsg:
		command, quit := model.handleKey(message)
		if quit {
			return model, tea.Quit
		}
		commands = append(commands, command)

	case tea.MouseMsg:
		if model.detail != nil {
			var command tea.Cmd
			model.detail.viewport, command = model.detail.viewport.Update(message)
			commands = append(commands, command)
		} else {
			model.handleMouse(message)
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.help.Width = message.Width
		model.table.Resize(message.Width)
		model.nav.Observe(message.Width)
		model.layoutDetail()

	case DetailMsg:
		model.openDetail(message)

	case timerFiredMsg:
		message.run()

	case RowsMsg[R]:
		if message.Sequence >= model.rowsSequence {
			model.rowsSequence = message.Sequence
			model.table.SetLoading(false)
			if message.Err != nil {
				model.setStatus(message.Err.Error(), slog.LevelError)
				commands = append(commands, model.statusFade())
			} else {
				model.table.SetRows(message.Rows)
			}
		}

	case changeMsg:
		kind := tui.FlashPut
		if message.change.Removed {
			kind = tui.FlashRemove
		}
		model.flashes.Mark(message.change.ID, kind, model.clock.Now())
		if model.options.Reload != nil {
			model.table.SetRows(model.options.Reload())
		}
		if model.options.Changes != nil {
			commands = append(commands, listenForChange(model.options.Changes))
		}

	case statusMsg:
		model.setStatus(message.Text, message.Level)
		commands = append(commands, model.statusFade())

	case statusFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}

	case animationTickMsg:
		model.ticking = false

	case spinner.TickMsg:
		if model.table.Loading() {
			var command tea.Cmd
			model.spinner, command = model.spinner.Update(message)
			commands = append(commands, command)
		} else {
			model.spinning = false
		}
	}

	model.syncMenu()
	model.clampCursor()
	if model.table.Loading() && !model.spinning {
		model.spinning = true
		commands = append(commands, model.spinner.Tick)
	}
	commands = append(commands, model.animation())
	commands = append(commands, model.options.Commands.drain()...)
	return model, tea.Batch(commands...)
}

// animation schedules a re-render tick while anything animates.
func (model *Model[R]) animation() tea.Cmd {
	if model.ticking {
		return nil
	}
	phase := model.table.BulkBar().Phase()
	animating := phase == datatable.PhaseEntering || phase == datatable.PhaseExiting
	if !animating && !model.flashes.Active(model.clock.Now()) {
		return nil
	}
	model.ticking = true
	return tea.Tick(tui.TransitionTickInterval, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

func (model *Model[R]) setStatus(text string, level slog.Level) {
	model.status = text
	model.statusLevel = level
	model.statusSequence++
}

func (model *Model[R]) statusFade() tea.Cmd {
	sequence := model.statusSequence
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{sequence: sequence}
	})
}

// handleKey routes a key by focus. quit reports a quit request.
func (model *Model[R]) handleKey(message tea.KeyMsg) (command tea.Cmd, quit bool) {
	switch model.focus {
	case FocusSearch:
		return model.handleSearchKeys(message), false
	case FocusMenu:
		model.handleMenuKeys(message)
		return nil, false
	case FocusFacets, FocusColumns:
		model.handlePickerKeys(message)
		return nil, false
	case FocusDetail:
		return model.handleDetailKeys(message), false
	}

	snapshot := model.table.Snapshot()
	switch {
	case key.Matches(message, model.keys.Quit):
		return nil, true

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)

	case key.Matches(message, model.keys.Left):
		model.moveColumnCursor(-1)

	case key.Matches(message, model.keys.Right):
		model.moveColumnCursor(1)

	case key.Matches(message, model.keys.ToggleRow):
		if row, ok := model.cursorRow(); ok {
			model.table.ToggleRow(model.table.RowID(row))
		}

	case key.Matches(message, model.keys.ToggleAll):
		model.table.ToggleAll()

	case key.Matches(message, model.keys.ClearSelection):
		model.table.ClearSelection()

	case key.Matches(message, model.keys.Search):
		model.focus = FocusSearch
		return model.search.Focus(), false

	case key.Matches(message, model.keys.Facets):
		model.openFacetPicker()

	case key.Matches(message, model.keys.Columns):
		if snapshot.ColumnVisibilityEnabled {
			model.openColumnPicker()
		}

	case key.Matches(message, model.keys.Sort):
		model.sortByColumnCursor()

	case key.Matches(message, model.keys.NextPage):
		if model.table.NextPage() {
			model.cursor, model.scrollOffset = 0, 0
		}

	case key.Matches(message, model.keys.PreviousPage):
		if model.table.PreviousPage() {
			model.cursor, model.scrollOffset = 0, 0
		}

	case key.Matches(message, model.keys.OpenMenu):
		model.openRowMenu()

	case key.Matches(message, model.keys.Activate):
		if row, ok := model.cursorRow(); ok {
			model.table.ClickRow(model.table.RowID(row))
		}

	case key.Matches(message, model.keys.Back):
		switch {
		case snapshot.SelectedCount > 0:
			model.table.ClearSelection()
		case snapshot.Filter.Query != "":
			model.search.SetValue("")
			model.table.Search("")
			model.table.FlushFilters()
		}

	case key.Matches(message, model.keys.Help):
		model.help.ShowAll = !model.help.ShowAll

	default:
		model.runBulkShortcut(message.String())
	}
	return nil, false
}

func (model *Model[R]) handleSearchKeys(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyEnter:
		model.table.FlushFilters()
		model.search.Blur()
		model.focus = FocusTable
		return nil
	case tea.KeyEsc:
		model.search.SetValue("")
		model.table.Search("")
		model.table.FlushFilters()
		model.search.Blur()
		model.focus = FocusTable
		return nil
	}

	before := model.search.Value()
	var command tea.Cmd
	model.search, command = model.search.Update(message)
	if value := model.search.Value(); value != before {
		model.table.Search(value)
		model.cursor, model.scrollOffset = 0, 0
	}
	return command
}

func (model *Model[R]) runBulkShortcut(pressed string) {
	if model.table.Selection().Len() == 0 {
		return
	}
	for _, action := range model.table.BulkActions() {
		if action.Key != "" && action.Key == pressed {
			model.table.RunBulkAction(action.ID)
			return
		}
	}
}

func (model *Model[R]) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *Model[R]) moveColumnCursor(delta int) {
	visible := len(model.table.Columns().Visible())
	if visible == 0 {
		return
	}
	model.columnCursor = (model.columnCursor + delta + visible) % visible
}

func (model *Model[R]) sortByColumnCursor() {
	visible := model.table.Columns().Visible()
	if model.columnCursor >= len(visible) {
		return
	}
	column := visible[model.columnCursor]
	if !model.table.ToggleSort(column.ID) {
		model.setStatus(column.Title+" is not sortable", slog.LevelInfo)
	}
}

// cursorRow returns the row under the cursor on the current page.
func (model Model[R]) cursorRow() (R, bool) {
	page := model.table.Page()
	if model.cursor < 0 || model.cursor >= len(page) {
		var zero R
		return zero, false
	}
	return page[model.cursor], true
}

// clampCursor keeps the cursor on the page and visible.
func (model *Model[R]) clampCursor() {
	count := len(model.table.Page())
	if model.cursor >= count {
		model.cursor = count - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	if visible := len(model.table.Columns().Visible()); model.columnCursor >= visible {
		model.columnCursor = max(0, visible-1)
	}
	model.ensureCursorVisible()
}

func (model *Model[R]) ensureCursorVisible() {
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	for model.scrollOffset < model.cursor && !model.fits(model.scrollOffset, model.cursor) {
		model.scrollOffset++
	}
}

// fits reports whether rows first..last all fit in the body.
func (model Model[R]) fits(first, last int) bool {
	height := model.bodyHeight()
	if !model.table.Compact() {
		return last-first < height-1
	}
	page := model.table.Page()
	used := 0
	for index := first; index <= last && index < len(page); index++ {
		used += model.cardHeight(page[index])
	}
	return used <= height
}

func (model Model[R]) bodyHeight() int {
	return max(1, model.height-headerLines-footerLines)
}

// areaOffset is the x coordinate where the table area begins.
func (model Model[R]) areaOffset() int {
	if model.sidebarShown() {
		return sidebarWidth + 1
	}
	return 0
}

func (model Model[R]) areaWidth() int {
	return max(1, model.width-model.areaOffset())
}

func (model Model[R]) sidebarShown() bool {
	return model.options.Sidebar != nil && model.nav.Width() > 0 && !model.nav.Compact()
}

// rowAtY maps a screen row to a page row index.
func (model Model[R]) rowAtY(y int) (int, bool) {
	page := model.table.Page()
	top := headerLines
	if !model.table.Compact() {
		relative := y - top - 1
		if relative < 0 || relative >= model.bodyHeight()-1 {
			return 0, false
		}
		index := model.scrollOffset + relative
		return index, index < len(page)
	}
	position := top
	for index := model.scrollOffset; index < len(page); index++ {
		height := model.cardHeight(page[index])
		if y >= position && y < position+height {
			return index, true
		}
		position += height
		if position >= top+model.bodyHeight() {
			break
		}
	}
	return 0, false
}

// rowScreenY returns the first screen row of page row index.
func (model Model[R]) rowScreenY(index int) int {
	if !model.table.Compact() {
		return headerLines + 1 + index - model.scrollOffset
	}
	page := model.table.Page()
	position := headerLines
	for current := model.scrollOffset; current < index && current < len(page); current++ {
		position += model.cardHeight(page[current])
	}
	return position
}

func (model *Model[R]) handleMouse(message tea.MouseMsg) {
	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.moveCursor(-1)
		return
	case tea.MouseButtonWheelDown:
		model.moveCursor(1)
		return
	}
	if message.Action != tea.MouseActionPress || message.Button != tea.MouseButtonLeft {
		return
	}

	if model.dropdown != nil {
		if !model.dropdown.Contains(message.X, message.Y) {
			model.closeDropdown()
			return
		}
		if index := model.dropdown.OptionAtY(message.Y); index >= 0 {
			model.dropdown.Cursor = index
			if model.focus == FocusMenu {
				model.confirmMenu()
			} else {
				model.togglePickerOption()
			}
		}
		return
	}

	x := message.X - model.areaOffset()
	if x < 0 {
		return
	}
	if !model.table.Compact() && message.Y == headerLines {
		model.clickHeader(x)
		return
	}
	index, ok := model.rowAtY(message.Y)
	if !ok {
		return
	}
	model.cursor = index
	row := model.table.Page()[index]
	if x < checkboxWidth {
		model.table.ToggleRow(model.table.RowID(row))
		return
	}
	model.table.ClickRow(model.table.RowID(row))
}

// clickHeader toggles the header checkbox or sorts by the clicked
// column.
func (model *Model[R]) clickHeader(x int) {
	if x < checkboxWidth {
		model.table.ToggleAll()
		return
	}
	position := checkboxWidth
	visible := model.table.Columns().Visible()
	for index, width := range model.columnWidths() {
		if x >= position && x < position+width {
			model.columnCursor = index
			model.table.ToggleSort(visible[index].ID)
			return
		}
		position += width
	}
}

// columnWidths distributes the tabular width across visible columns.
func (model Model[R]) columnWidths() []int {
	available := model.areaWidth() - checkboxWidth - actionWidth - scrollbarWidth
	return model.table.Columns().Widths(max(0, available))
}
