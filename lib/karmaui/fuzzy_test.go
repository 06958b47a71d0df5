// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"sort"
	"testing"
)

func TestFuzzyMatchBasic(t *testing.T) {
	result := fuzzyMatch("Ada Lovelace", []rune("love"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) == 0 {
		t.Fatal("expected non-empty match positions")
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	// "alc" should match "Ada Lovelace" — a from Ada, l from Lovelace,
	// c from Lovelace.
	result := fuzzyMatch("Ada Lovelace", []rune("alc"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous fuzzy match")
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := fuzzyMatch("coffee", []rune("xyz"), nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for no match, got %d", result.Score)
	}
	if len(result.Positions) != 0 {
		t.Errorf("expected empty positions for no match, got %v", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	// Pattern is lowercase, the name is capitalized. Both sides are
	// lowercased before matching, so this should match.
	result := fuzzyMatch("Grace Hopper", []rune("grace"), nil)
	if result.Score <= 0 {
		t.Fatalf("expected case-insensitive match, got score=%d", result.Score)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := fuzzyMatch("anything", []rune{}, nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func TestFuzzyMatchPositionsAscending(t *testing.T) {
	// fzf reports positions backwards; the wrapper sorts them so
	// highlighting can walk the name left to right.
	result := fuzzyMatch("deploy-bot", []rune("dbt"), nil)
	if result.Score <= 0 {
		t.Fatal("expected match")
	}
	if !sort.IntsAreSorted(result.Positions) {
		t.Errorf("positions %v not ascending", result.Positions)
	}
	for _, position := range result.Positions {
		if position < 0 || position >= len([]rune("deploy-bot")) {
			t.Errorf("position %d out of bounds", position)
		}
	}
}
