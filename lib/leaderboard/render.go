// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package leaderboard

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var tableHeaders = [4]string{"Name", "Pluses", "Minuses", "Net Score"}

// RenderTable renders rows as a markdown pipe table: one header row,
// one dash separator row, then one row per entry, every cell
// left-aligned and padded to its column width. With no rows the
// result is just the header and separator.
//
//	| Name  | Pluses | Minuses | Net Score |
//	| ----- | ------ | ------- | --------- |
//	| testA | 5      | 0       | 5         |
//
// Widths count runes, so multibyte display names stay aligned.
func RenderTable(rows []Row) string {
	widths := [4]int{}
	for i, header := range tableHeaders {
		widths[i] = utf8.RuneCountInString(header)
	}
	cells := make([][4]string, len(rows))
	for r, row := range rows {
		cells[r] = [4]string{
			row.Name,
			fmt.Sprintf("%d", row.Pluses),
			fmt.Sprintf("%d", row.Minuses),
			fmt.Sprintf("%d", row.Net),
		}
		for i, cell := range cells[r] {
			if width := utf8.RuneCountInString(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	var builder strings.Builder
	writeRow := func(columns [4]string) {
		for i, column := range columns {
			builder.WriteString("| ")
			builder.WriteString(column)
			builder.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(column)))
			builder.WriteString(" ")
		}
		builder.WriteString("|\n")
	}

	writeRow(tableHeaders)
	writeRow([4]string{
		strings.Repeat("-", widths[0]),
		strings.Repeat("-", widths[1]),
		strings.Repeat("-", widths[2]),
		strings.Repeat("-", widths[3]),
	})
	for _, row := range cells {
		writeRow(row)
	}
	return strings.TrimSuffix(builder.String(), "\n")
}
