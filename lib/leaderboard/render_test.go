// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package leaderboard

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderTable(t *testing.T) {
	rows := []Row{
		{Name: "Ada Lovelace", Pluses: 7, Minuses: 2, Net: 5},
		{Name: "testA", Pluses: 5, Minuses: 0, Net: 5},
	}
	golden(t).Assert(t, "table_populated", []byte(RenderTable(rows)))
}

func TestRenderTableEmpty(t *testing.T) {
	golden(t).Assert(t, "table_empty", []byte(RenderTable(nil)))
}

// parseRows splits a rendered table back into trimmed cell tuples,
// skipping the header and separator. Padding widths are layout, not
// contract; the cell values are.
func parseRows(t *testing.T, table string) [][]string {
	t.Helper()
	lines := strings.Split(table, "\n")
	if len(lines) < 2 {
		t.Fatalf("table has %d lines, want at least header and separator", len(lines))
	}
	var rows [][]string
	for _, line := range lines[2:] {
		cells := strings.Split(strings.Trim(line, "|"), "|")
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestRenderTableCellValues(t *testing.T) {
	table := RenderTable([]Row{
		{Name: "testA", Pluses: 5, Minuses: 0, Net: 5},
		{Name: "mondays", Pluses: 1, Minuses: 4, Net: -3},
	})

	rows := parseRows(t, table)
	want := [][]string{
		{"testA", "5", "0", "5"},
		{"mondays", "1", "4", "-3"},
	}
	if len(rows) != len(want) {
		t.Fatalf("parsed %d rows, want %d", len(rows), len(want))
	}
	for r := range want {
		for c := range want[r] {
			if rows[r][c] != want[r][c] {
				t.Errorf("row %d cell %d = %q, want %q", r, c, rows[r][c], want[r][c])
			}
		}
	}
}

func TestRenderTableHeader(t *testing.T) {
	lines := strings.Split(RenderTable(nil), "\n")
	headerCells := strings.Split(strings.Trim(lines[0], "|"), "|")
	want := []string{"Name", "Pluses", "Minuses", "Net Score"}
	if len(headerCells) != len(want) {
		t.Fatalf("header has %d cells, want %d", len(headerCells), len(want))
	}
	for i, cell := range headerCells {
		if strings.TrimSpace(cell) != want[i] {
			t.Errorf("header cell %d = %q, want %q", i, strings.TrimSpace(cell), want[i])
		}
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator line = %q, want dashes", lines[1])
	}
}

func TestRenderHTML(t *testing.T) {
	people := []Row{{Name: "Ada Lovelace", Pluses: 7, Minuses: 2, Net: 5}}
	things := []Row{{Name: "cake", Pluses: 5, Minuses: 0, Net: 5}}

	html, err := RenderHTML(people, things)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	for _, want := range []string{
		"<h2>User leaderboard</h2>",
		"<h2>Thing leaderboard</h2>",
		"<table>",
		"<th>Name</th>",
		"<td>Ada Lovelace</td>",
		"<td>cake</td>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderHTML output missing %q\n%s", want, html)
		}
	}
}
