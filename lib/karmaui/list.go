// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Column widths for the numeric columns. The name column fills the
// remaining space. Each width includes one leading space of separation
// from the column to its left, via right-alignment.
const (
	columnWidthPluses  = 8
	columnWidthMinuses = 9
	columnWidthNet     = 6

	// minimumNameWidth keeps the name column readable on absurdly
	// narrow terminals.
	minimumNameWidth = 8
)

// ListRenderer handles the table-style rendering of leaderboard rows
// within a given width.
type ListRenderer struct {
	theme Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// nameWidth returns the space available for the name column.
func (renderer ListRenderer) nameWidth() int {
	width := renderer.width - columnWidthPluses - columnWidthMinuses - columnWidthNet - 1
	if width < minimumNameWidth {
		width = minimumNameWidth
	}
	return width
}

// RenderHeader renders the column header row.
func (renderer ListRenderer) RenderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.HeaderForeground).
		Bold(true)

	nameStyle := headerStyle.Width(renderer.nameWidth())
	numberStyle := headerStyle.Align(lipgloss.Right)

	row := " " +
		nameStyle.Render("Name") +
		numberStyle.Width(columnWidthPluses).Render("Pluses") +
		numberStyle.Width(columnWidthMinuses).Render("Minuses") +
		numberStyle.Width(columnWidthNet).Render("Net")

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// RenderRow renders a single leaderboard row. The selected flag
// controls highlight styling. matchPositions contains rune indices in
// the name that matched the current filter query; when non-empty,
// those characters are highlighted.
//
// Row layout: " " + name (flex) + pluses + minuses + net, numbers
// right-aligned in fixed columns:
//
//	 coffee                 7        2      5
//	 Ada Lovelace          12        0     12
func (renderer ListRenderer) RenderRow(row Match, selected bool, matchPositions []int) string {
	displayedName := row.Row.Name
	nameWidth := renderer.nameWidth()
	if ansi.StringWidth(displayedName) > nameWidth {
		displayedName = ansi.Truncate(displayedName, nameWidth-1, "…")
	}

	if selected {
		return renderer.renderSelectedRow(row, displayedName, matchPositions)
	}
	return renderer.renderNormalRow(row, displayedName, matchPositions)
}

// renderNormalRow renders a row with per-column foreground colors on
// the default terminal background.
func (renderer ListRenderer) renderNormalRow(row Match, displayedName string, matchPositions []int) string {
	nameStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.NormalText)

	var nameRendered string
	if len(matchPositions) > 0 {
		highlightStyle := nameStyle.
			Background(renderer.theme.MatchBackground).
			Bold(true)
		nameRendered = highlightName(displayedName, matchPositions, nameStyle, highlightStyle)
	} else {
		nameRendered = nameStyle.Render(displayedName)
	}
	nameRendered += strings.Repeat(" ", renderer.nameWidth()-ansi.StringWidth(displayedName))

	rendered := " " + nameRendered +
		renderer.renderNumber(row.Row.Pluses, columnWidthPluses, renderer.theme.PositiveScore) +
		renderer.renderNumber(row.Row.Minuses, columnWidthMinuses, renderer.theme.NegativeScore) +
		renderer.renderNumber(row.Row.Net, columnWidthNet, renderer.theme.ScoreColor(row.Row.Net))

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(rendered)
}

// renderSelectedRow renders the selected row with a highlight
// background. All text uses the selected foreground color; filter
// matches use bold+underline since a background tint would be
// invisible against the selection highlight.
func (renderer ListRenderer) renderSelectedRow(row Match, displayedName string, matchPositions []int) string {
	baseStyle := lipgloss.NewStyle().
		Background(renderer.theme.SelectedBackground).
		Foreground(renderer.theme.SelectedForeground)

	var nameRendered string
	if len(matchPositions) > 0 {
		highlightStyle := baseStyle.Bold(true).Underline(true)
		nameRendered = highlightName(displayedName, matchPositions, baseStyle, highlightStyle)
	} else {
		nameRendered = baseStyle.Render(displayedName)
	}
	nameRendered += baseStyle.Render(strings.Repeat(" ", renderer.nameWidth()-ansi.StringWidth(displayedName)))

	rendered := baseStyle.Render(" ") + nameRendered +
		baseStyle.Render(padNumber(row.Row.Pluses, columnWidthPluses)) +
		baseStyle.Render(padNumber(row.Row.Minuses, columnWidthMinuses)) +
		baseStyle.Bold(true).Render(padNumber(row.Row.Net, columnWidthNet))

	return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(rendered)
}

func (renderer ListRenderer) renderNumber(value, width int, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(padNumber(value, width))
}

func padNumber(value, width int) string {
	return fmt.Sprintf("%*d", width, value)
}

// highlightName renders a name with character-level highlighting at
// the given rune positions. Positions index into the original name;
// indices past the displayed (possibly truncated) text are ignored.
// Consecutive runs of same-style characters are batched into a single
// Render call to keep ANSI output compact.
func highlightName(displayed string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	positionSet := make(map[int]bool, len(positions))
	for _, position := range positions {
		positionSet[position] = true
	}

	runes := []rune(displayed)
	var result strings.Builder
	runStart := 0
	isHighlighted := len(runes) > 0 && positionSet[0]

	for index := 1; index <= len(runes); index++ {
		currentHighlighted := index < len(runes) && positionSet[index]
		if currentHighlighted != isHighlighted || index == len(runes) {
			chunk := string(runes[runStart:index])
			if isHighlighted {
				result.WriteString(highlightStyle.Render(chunk))
			} else {
				result.WriteString(baseStyle.Render(chunk))
			}
			runStart = index
			isHighlighted = currentHighlighted
		}
	}

	return result.String()
}
