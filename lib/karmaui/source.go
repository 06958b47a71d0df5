// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"context"

	"github.com/bureau-foundation/chameleon/lib/karmastore"
	"github.com/bureau-foundation/chameleon/lib/leaderboard"
)

// Boards is a point-in-time view of both leaderboards.
type Boards struct {
	People []leaderboard.Row
	Things []leaderboard.Row
}

// Source abstracts karma data access for the TUI. Implementations are
// a ledger file reader ([FileSource]) and an admin socket client
// ([SocketSource]). The TUI code is identical regardless of backend.
//
// Load is called from a bubbletea command goroutine on startup and on
// every reload tick, so implementations must be safe for sequential
// calls but need no internal locking.
type Source interface {
	// Load returns the current standings. A missing or empty ledger
	// is not an error; it returns empty boards.
	Load(ctx context.Context) (Boards, error)

	// Description identifies the backend for the status bar, e.g.
	// the ledger file path or the socket path.
	Description() string
}

// FileSource reads standings directly from a ledger file. User rows
// keep their raw Slack IDs (there is no API session to resolve display
// names through); the socket-backed source shows resolved names.
type FileSource struct {
	store *karmastore.Store
}

// NewFileSource creates a source reading the ledger file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{store: karmastore.New(path)}
}

func (source *FileSource) Load(ctx context.Context) (Boards, error) {
	items, err := source.store.Snapshot()
	if err != nil {
		return Boards{}, err
	}
	people, things := leaderboard.Build(ctx, items, nil)
	return Boards{People: people, Things: things}, nil
}

func (source *FileSource) Description() string {
	return source.store.Path()
}
