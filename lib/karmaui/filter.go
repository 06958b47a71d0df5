// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/chameleon/lib/leaderboard"
)

// FilterModel holds the fuzzy filter state. The filter composes with
// tabs: the tab chooses the board (users or things), and the filter
// narrows it by name without touching the source.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// Match is one row that survived the filter, with its fzf score and
// the rune positions matched in the name (for highlighting).
type Match struct {
	Row       leaderboard.Row
	Score     int
	Positions []int
}

// Apply fuzzy-matches the filter against each row's name and returns
// the survivors sorted by score, best first. Ties keep the board's
// alphabetical order. An empty filter returns every row unscored.
func (filter *FilterModel) Apply(rows []leaderboard.Row) []Match {
	if filter.Input == "" {
		matches := make([]Match, len(rows))
		for i, row := range rows {
			matches[i] = Match{Row: row}
		}
		return matches
	}

	pattern := []rune(filter.Input)
	slab := util.MakeSlab(100*1024, 2048)

	var matches []Match
	for _, row := range rows {
		result := fuzzyMatch(row.Name, pattern, slab)
		if result.Score <= 0 {
			continue
		}
		matches = append(matches, Match{
			Row:       row,
			Score:     result.Score,
			Positions: result.Positions,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// HandleRune processes a character typed while the filter is active.
// Returns true if the input changed.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text. When
// inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}
