// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab identifies which board is active.
type Tab int

const (
	// TabUsers shows the people board: rows whose ledger names carry
	// mention delimiters.
	TabUsers Tab = iota
	// TabThings shows everything else.
	TabThings
)

// defaultReloadInterval is how often the viewer polls its source when
// the caller does not override it.
const defaultReloadInterval = 2 * time.Second

// loadTimeout bounds a single source load. File reads finish
// instantly; this guards the socket path when the service is wedged.
const loadTimeout = 10 * time.Second

// boardsMsg delivers the result of an asynchronous source load.
type boardsMsg struct {
	boards Boards
	err    error
	at     time.Time
}

// reloadTickMsg drives the periodic reload timer.
type reloadTickMsg struct{}

// Model is the top-level bubbletea model for the karma viewer TUI.
type Model struct {
	source         Source
	theme          Theme
	keys           KeyMap
	reloadInterval time.Duration

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Active board and filter.
	activeTab   Tab
	filter      FilterModel
	sortByScore bool

	// Data state. boards is the last successful load; matches is the
	// filtered and sorted view of the active board.
	boards  Boards
	matches []Match
	loaded  bool

	cursor       int
	scrollOffset int

	loadError string
	loadedAt  time.Time
}

// NewModel creates a Model polling the given source. A zero
// reloadInterval uses the default.
func NewModel(source Source, theme Theme, reloadInterval time.Duration) Model {
	if reloadInterval <= 0 {
		reloadInterval = defaultReloadInterval
	}
	return Model{
		source:         source,
		theme:          theme,
		keys:           DefaultKeyMap,
		reloadInterval: reloadInterval,
	}
}

// Init implements tea.Model. Kicks off the first load and the reload
// timer.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.loadBoards(), model.scheduleReload())
}

// loadBoards returns a tea.Cmd that loads standings from the source
// in a background goroutine and delivers them as a boardsMsg.
func (model Model) loadBoards() tea.Cmd {
	source := model.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		boards, err := source.Load(ctx)
		return boardsMsg{boards: boards, err: err, at: time.Now()}
	}
}

// scheduleReload returns a tea.Cmd that sends a reloadTickMsg after
// the reload interval.
func (model Model) scheduleReload() tea.Cmd {
	return tea.Tick(model.reloadInterval, func(time.Time) tea.Msg {
		return reloadTickMsg{}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		// When the filter input has focus, all input routes there
		// first (so 'q', 's', '1' are filter text, not commands).
		if model.filter.Active {
			return model.handleFilterKeys(message)
		}

		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.TabUsers):
			model.switchTab(TabUsers)

		case key.Matches(message, model.keys.TabThings):
			model.switchTab(TabThings)

		case key.Matches(message, model.keys.TabNext):
			if model.activeTab == TabUsers {
				model.switchTab(TabThings)
			} else {
				model.switchTab(TabUsers)
			}

		case key.Matches(message, model.keys.FilterActivate):
			model.filter.Active = true
			// Reset list position so results are visible from the
			// top as the user types.
			model.cursor = 0
			model.scrollOffset = 0

		case key.Matches(message, model.keys.FilterClear):
			if model.filter.Input != "" {
				model.filter.Clear()
				model.rebuildMatches()
			}

		case key.Matches(message, model.keys.SortToggle):
			model.sortByScore = !model.sortByScore
			model.rebuildMatches()

		case key.Matches(message, model.keys.Reload):
			return model, model.loadBoards()

		default:
			model.handleListKeys(message)
		}

	case boardsMsg:
		if message.err != nil {
			// Keep showing the previous standings; surface the error
			// in the help bar until a load succeeds.
			model.loadError = message.err.Error()
			model.loaded = true
			return model, nil
		}
		model.boards = message.boards
		model.loadError = ""
		model.loadedAt = message.at
		model.loaded = true
		model.rebuildMatches()

	case reloadTickMsg:
		return model, tea.Batch(model.loadBoards(), model.scheduleReload())

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.ensureCursorVisible()
	}
	return model, nil
}

// handleFilterKeys processes keystrokes when the filter input has focus.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		// ctrl+c always quits, even in filter mode.
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		// 'q' is a regular character in filter mode.
		model.filter.HandleRune('q')
		model.applyFilterInput()
		return model, nil

	case key.Matches(message, model.keys.FilterClear):
		// Esc: if there's filter text, clear it; if already empty,
		// exit filter mode.
		if model.filter.Input != "" {
			model.filter.Input = ""
			model.applyFilterInput()
		} else {
			model.filter.Active = false
		}
		return model, nil

	case message.Type == tea.KeyEnter:
		// Confirm filter and return to list navigation.
		model.filter.Active = false
		return model, nil

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilterInput()
		}
		return model, nil

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.applyFilterInput()
		return model, nil
	}

	return model, nil
}

// applyFilterInput re-filters after the query text changed and snaps
// the cursor to the top so the best matches are visible.
func (model *Model) applyFilterInput() {
	model.rebuildMatches()
	model.cursor = 0
	model.scrollOffset = 0
}

// handleListKeys processes navigation keys when the list has focus.
func (model *Model) handleListKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.matches)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.PageUp):
		model.cursor = clamp(model.cursor-model.visibleHeight(), 0, len(model.matches)-1)

	case key.Matches(message, model.keys.PageDown):
		model.cursor = clamp(model.cursor+model.visibleHeight(), 0, len(model.matches)-1)

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		if len(model.matches) > 0 {
			model.cursor = len(model.matches) - 1
		}
	}

	model.ensureCursorVisible()
}

// switchTab changes the active board. The filter is scoped to a
// board, so switching clears it.
func (model *Model) switchTab(tab Tab) {
	if model.activeTab == tab {
		return
	}
	model.activeTab = tab
	model.filter.Clear()
	model.cursor = 0
	model.scrollOffset = 0
	model.rebuildMatches()
}

// rebuildMatches recomputes the visible rows for the active board:
// filter first, then ordering. With a filter active, fzf score order
// wins; otherwise the sort toggle picks between the board's
// alphabetical order and net score descending.
func (model *Model) rebuildMatches() {
	rows := model.boards.People
	if model.activeTab == TabThings {
		rows = model.boards.Things
	}

	model.matches = model.filter.Apply(rows)

	if model.filter.Input == "" && model.sortByScore {
		sort.SliceStable(model.matches, func(i, j int) bool {
			return model.matches[i].Row.Net > model.matches[j].Row.Net
		})
	}

	if len(model.matches) == 0 {
		model.cursor = 0
		model.scrollOffset = 0
	} else if model.cursor >= len(model.matches) {
		model.cursor = len(model.matches) - 1
	}
	model.ensureCursorVisible()
}

// visibleHeight returns the number of data rows that fit between the
// chrome: tab bar (1), column header (1), bottom separator (1), and
// help bar (1).
func (model Model) visibleHeight() int {
	return model.height - 4
}

// ensureCursorVisible adjusts scrollOffset so the cursor is within
// the visible window.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}

	maxOffset := len(model.matches) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}

	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready || !model.loaded {
		return "Loading..."
	}

	if len(model.boards.People) == 0 && len(model.boards.Things) == 0 &&
		model.filter.Input == "" && !model.filter.Active {
		return model.renderEmpty()
	}

	var sections []string

	// Top chrome line: either the tab bar or the filter bar. The
	// filter bar replaces the tab bar so the layout doesn't shift.
	filterView := model.filter.View(model.theme, model.width)
	if filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderTabBar())
	}

	renderer := NewListRenderer(model.theme, model.width)
	sections = append(sections, renderer.RenderHeader())

	visible := model.visibleHeight()
	if visible < 0 {
		visible = 0
	}

	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.matches); index++ {
		match := model.matches[index]
		rows = append(rows, renderer.RenderRow(match, index == model.cursor, match.Positions))
	}

	// Pad empty rows so the separator and help bar stay pinned to
	// the bottom of the window.
	emptyStyle := lipgloss.NewStyle().Width(model.width)
	for len(rows) < visible {
		rows = append(rows, emptyStyle.Render(""))
	}
	sections = append(sections, strings.Join(rows, "\n"))

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	sections = append(sections, model.renderHelp())

	return strings.Join(sections, "\n")
}

// renderEmpty renders the full-frame empty state when no karma has
// been recorded yet. Uses the bot's own phrase for the situation.
func (model Model) renderEmpty() string {
	text := "No karma yet!"
	if model.loadError != "" {
		text = "Cannot load standings: " + model.loadError
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Width(model.width - 4)

	return lipgloss.Place(
		model.width, model.height,
		lipgloss.Center, lipgloss.Center,
		messageStyle.Render(text),
	)
}

// tabDefs is the fixed list of tab definitions for the tab bar.
var tabDefs = []struct {
	label string
	tab   Tab
}{
	{"1:Users", TabUsers},
	{"2:Things", TabThings},
}

// renderTabBar renders the tab labels embedded in a horizontal rule
// with board counts on the right:
//
//	─── 1:Users ─── 2:Things ──────── 12 users  5 things  12:04:05 ─
func (model Model) renderTabBar() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)
	statsStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")

	leftParts := sep + sep + sep
	cursor := 3

	for index, tabDef := range tabDefs {
		leftParts += " "
		cursor++

		if model.activeTab == tabDef.tab {
			leftParts += activeStyle.Render(tabDef.label)
		} else {
			leftParts += inactiveStyle.Render(tabDef.label)
		}
		cursor += lipgloss.Width(tabDef.label)

		leftParts += " "
		cursor++

		sepCount := 3
		if index == len(tabDefs)-1 {
			sepCount = 1
		}
		for range sepCount {
			leftParts += sep
			cursor++
		}
	}

	statsText := fmt.Sprintf("%d users  %d things",
		len(model.boards.People), len(model.boards.Things))
	if model.sortByScore {
		statsText += "  by net"
	}
	if !model.loadedAt.IsZero() {
		statsText += "  " + model.loadedAt.Format("15:04:05")
	}
	statsRendered := statsStyle.Render(statsText)
	statsWidth := lipgloss.Width(statsText)

	rightPortion := " " + statsRendered + " " + sep
	rightWidth := 1 + statsWidth + 1 + 1

	fillCount := model.width - cursor - rightWidth
	if fillCount < 1 {
		fillCount = 1
	}
	fill := ""
	for range fillCount {
		fill += sep
	}

	return leftParts + fill + rightPortion
}

// renderHelp renders the bottom help bar with key hints, the cursor
// position, the data source, and any load error.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	help := " q quit  ↑↓ navigate  1/2 boards  / filter  s sort  r reload"

	if total := len(model.matches); total > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, total)
	} else if model.filter.Input != "" {
		help += "  (no matches)"
	}

	help = style.Render(help)

	if model.loadError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(model.theme.NegativeScore).
			Bold(true)
		help += "  " + errorStyle.Render("load failed: "+model.loadError)
	} else {
		sourceStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		help += "  " + sourceStyle.Render(model.source.Description())
	}

	return help
}

func clamp(value, low, high int) int {
	if high < low {
		return low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
