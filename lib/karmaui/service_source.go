// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/chameleon/lib/leaderboard"
	"github.com/bureau-foundation/chameleon/lib/service"
)

// SocketSource implements [Source] by querying a running service's
// admin socket. Standings come back with user IDs already resolved to
// display names through the service's Slack session, so this is the
// preferred backend when the service is up.
type SocketSource struct {
	socketPath string
	client     *service.Client
}

// socketBoardRow is the client-side CBOR decoding target for one
// leaderboard entry. Mirrors the service's wire format.
type socketBoardRow struct {
	Name    string `cbor:"name"`
	Pluses  int    `cbor:"pluses"`
	Minuses int    `cbor:"minuses"`
	Net     int    `cbor:"net"`
}

// socketBoardsResponse mirrors the service's leaderboard response.
type socketBoardsResponse struct {
	People []socketBoardRow `cbor:"people"`
	Things []socketBoardRow `cbor:"things"`
}

// NewSocketSource creates a source querying the admin socket at
// socketPath. The socket does not need to exist yet; each Load dials
// fresh, so a viewer started before the service simply shows the
// connection error until the service comes up.
func NewSocketSource(socketPath string) *SocketSource {
	return &SocketSource{
		socketPath: socketPath,
		client:     service.NewClient(socketPath),
	}
}

func (source *SocketSource) Load(ctx context.Context) (Boards, error) {
	var response socketBoardsResponse
	if err := source.client.Call(ctx, "leaderboard", nil, &response); err != nil {
		return Boards{}, fmt.Errorf("querying leaderboard: %w", err)
	}
	return Boards{
		People: toRows(response.People),
		Things: toRows(response.Things),
	}, nil
}

func (source *SocketSource) Description() string {
	return source.socketPath
}

func toRows(wire []socketBoardRow) []leaderboard.Row {
	rows := make([]leaderboard.Row, len(wire))
	for i, entry := range wire {
		rows[i] = leaderboard.Row{
			Name:    entry.Name,
			Pluses:  entry.Pluses,
			Minuses: entry.Minuses,
			Net:     entry.Net,
		}
	}
	return rows
}
