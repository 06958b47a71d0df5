// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	// Configure fzf's boundary bonus weights. "default" favors matches
	// at word boundaries, which reads naturally for display names.
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against one text.
// Score is 0 when the pattern did not match; Positions holds the rune
// indices of the matched characters, ascending.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's V2 matcher case-insensitively: both sides are
// lowercased before matching, so "ada" finds "Ada Lovelace". The slab
// is fzf's scratch allocation buffer; nil is valid and simply
// allocates per call.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 || text == "" {
		return FuzzyResult{}
	}

	lowered := strings.ToLower(string(pattern))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, []rune(lowered), true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		// fzf backtracks from the end of the match, so the positions
		// arrive in descending order.
		match.Positions = *positions
		sort.Ints(match.Positions)
	}
	return match
}
