// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karma

import "fmt"

// Item is one tracked subject and its running plus and minus counts.
// The net score is always derived from the counters, never stored.
type Item struct {
	Name    string `json:"name"`
	Pluses  int    `json:"pluses"`
	Minuses int    `json:"minuses"`
}

// Net returns pluses minus minuses.
func (i Item) Net() int { return i.Pluses - i.Minuses }

// Describe renders the item's full standing as a sentence:
//
//	cake has 3 pluses and 1 minus for a total of 2 points.
//
// Counter words are singular exactly when the value is 1.
func (i Item) Describe() string {
	return fmt.Sprintf("%s has %d %s and %d %s for a total of %d %s.",
		i.Name,
		i.Pluses, pluralize(i.Pluses, "plus", "pluses"),
		i.Minuses, pluralize(i.Minuses, "minus", "minuses"),
		i.Net(), pluralize(i.Net(), "point", "points"))
}

func pluralize(value int, singular, plural string) string {
	if value == 1 {
		return singular
	}
	return plural
}
