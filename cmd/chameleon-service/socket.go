// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/chameleon/lib/codec"
	"github.com/bureau-foundation/chameleon/lib/karma"
	"github.com/bureau-foundation/chameleon/lib/leaderboard"
	"github.com/bureau-foundation/chameleon/lib/service"
	"github.com/bureau-foundation/chameleon/lib/version"
)

// registerActions registers the admin socket actions the chameleon
// CLI calls. The socket is a local Unix socket with filesystem
// permissions as the only access control, so no action is
// authenticated.
func (s *chameleonService) registerActions(server *service.SocketServer) {
	server.Handle("status", s.handleStatusAction)
	server.Handle("karma", s.handleKarmaAction)
	server.Handle("leaderboard", s.handleLeaderboardAction)
	server.Handle("stats", s.handleStatsAction)
}

// statusResponse answers the "status" action.
type statusResponse struct {
	UptimeSeconds int    `cbor:"uptime_seconds"`
	Items         int    `cbor:"items"`
	Version       string `cbor:"version"`
}

func (s *chameleonService) handleStatusAction(_ context.Context, _ []byte) (any, error) {
	return statusResponse{
		UptimeSeconds: int(s.clock.Now().Sub(s.startedAt).Seconds()),
		Items:         s.ledger.Len(),
		Version:       version.Short(),
	}, nil
}

// karmaRequest carries the "karma" action's item field.
type karmaRequest struct {
	Item string `cbor:"item"`
}

// karmaResponse answers the "karma" action. Tracked is false when the
// item has no ledger record; the counts are then zero.
type karmaResponse struct {
	Name    string `cbor:"name"`
	Pluses  int    `cbor:"pluses"`
	Minuses int    `cbor:"minuses"`
	Net     int    `cbor:"net"`
	Tracked bool   `cbor:"tracked"`
}

func (s *chameleonService) handleKarmaAction(_ context.Context, raw []byte) (any, error) {
	var request karmaRequest
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding karma request: %w", err)
	}
	if request.Item == "" {
		return nil, fmt.Errorf("missing required field: item")
	}

	// Normalize the way message parsing does, so "chameleon karma
	// @coffee" and a pasted "coffee++" both find the ledger key.
	subject, err := karma.ExtractSubject(request.Item)
	if err != nil {
		return nil, fmt.Errorf("item %q has no usable subject", request.Item)
	}

	item, tracked := s.bot.Standing(subject)
	if !tracked {
		item = karma.Item{Name: subject}
	}
	return karmaResponse{
		Name:    item.Name,
		Pluses:  item.Pluses,
		Minuses: item.Minuses,
		Net:     item.Net(),
		Tracked: tracked,
	}, nil
}

// boardRow is one leaderboard entry on the wire.
type boardRow struct {
	Name    string `cbor:"name"`
	Pluses  int    `cbor:"pluses"`
	Minuses int    `cbor:"minuses"`
	Net     int    `cbor:"net"`
}

// leaderboardResponse answers the "leaderboard" action with raw rows;
// the CLI renders its own tables from them.
type leaderboardResponse struct {
	People []boardRow `cbor:"people"`
	Things []boardRow `cbor:"things"`
}

func (s *chameleonService) handleLeaderboardAction(ctx context.Context, _ []byte) (any, error) {
	people, things, err := s.bot.Boards(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboardResponse{
		People: toBoardRows(people),
		Things: toBoardRows(things),
	}, nil
}

func toBoardRows(rows []leaderboard.Row) []boardRow {
	out := make([]boardRow, len(rows))
	for i, row := range rows {
		out[i] = boardRow{
			Name:    row.Name,
			Pluses:  row.Pluses,
			Minuses: row.Minuses,
			Net:     row.Net,
		}
	}
	return out
}

// statsResponse answers the "stats" action with ledger-wide totals.
type statsResponse struct {
	Items   int `cbor:"items"`
	Pluses  int `cbor:"pluses"`
	Minuses int `cbor:"minuses"`
	Net     int `cbor:"net"`
}

func (s *chameleonService) handleStatsAction(_ context.Context, _ []byte) (any, error) {
	items := s.bot.Items()
	response := statsResponse{Items: len(items)}
	for _, item := range items {
		response.Pluses += item.Pluses
		response.Minuses += item.Minuses
	}
	response.Net = response.Pluses - response.Minuses
	return response, nil
}
