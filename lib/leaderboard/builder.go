// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package leaderboard

import (
	"context"
	"sort"
	"strings"

	"github.com/bureau-foundation/chameleon/lib/karma"
)

// Row is one leaderboard line.
type Row struct {
	Name    string
	Pluses  int
	Minuses int
	Net     int
}

// UserResolver resolves a platform user ID to a display name.
// lib/leaderboard only consumes the interface; the Slack session
// provides the production implementation.
type UserResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Build partitions items into people and things and resolves people
// names through resolver. Ledger names carrying mention delimiters
// ("<@U123>" for users, "<!here>" for broadcasts) are people;
// everything else is a thing. A nil resolver, a resolution error, or
// an empty display name falls back to the ID with the delimiters
// stripped, so one unresolvable user never sinks the whole board.
//
// Both partitions are sorted ascending by the name shown.
func Build(ctx context.Context, items []karma.Item, resolver UserResolver) (people, things []Row) {
	for _, item := range items {
		row := Row{
			Name:    item.Name,
			Pluses:  item.Pluses,
			Minuses: item.Minuses,
			Net:     item.Net(),
		}
		if isMention(item.Name) {
			row.Name = resolveName(ctx, resolver, stripDelimiters(item.Name))
			people = append(people, row)
		} else {
			things = append(things, row)
		}
	}
	sortRows(people)
	sortRows(things)
	return people, things
}

func isMention(name string) bool {
	return strings.HasPrefix(name, "<@") || strings.HasPrefix(name, "<!")
}

// stripDelimiters removes the mention wrapping: "<@U123>" → "U123",
// "<!here>" → "here".
func stripDelimiters(name string) string {
	return strings.TrimRight(strings.TrimLeft(name, "<@!"), ">")
}

func resolveName(ctx context.Context, resolver UserResolver, userID string) string {
	if resolver == nil {
		return userID
	}
	displayName, err := resolver.DisplayName(ctx, userID)
	if err != nil || displayName == "" {
		return userID
	}
	return displayName
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
}
