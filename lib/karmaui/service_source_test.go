// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmaui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bureau-foundation/chameleon/lib/service"
	"github.com/bureau-foundation/chameleon/lib/testutil"
)

// startLeaderboardServer runs an admin socket server whose
// "leaderboard" action returns the given boards, and blocks until the
// socket file exists.
func startLeaderboardServer(t *testing.T, socketPath string, response socketBoardsResponse) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := service.NewSocketServer(socketPath, logger)
	server.Handle("leaderboard", func(ctx context.Context, raw []byte) (any, error) {
		return response, nil
	})

	go func() {
		if err := server.Serve(t.Context()); err != nil {
			t.Errorf("Serve: %v", err)
		}
	}()

	for {
		if _, err := os.Stat(socketPath); err == nil {
			return
		}
		if t.Context().Err() != nil {
			t.Fatalf("socket %s did not appear before test context expired", socketPath)
		}
		runtime.Gosched()
	}
}

func TestSocketSourceLoad(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "admin.sock")
	startLeaderboardServer(t, socketPath, socketBoardsResponse{
		People: []socketBoardRow{
			{Name: "Ada Lovelace", Pluses: 12, Minuses: 0, Net: 12},
			{Name: "Grace Hopper", Pluses: 7, Minuses: 2, Net: 5},
		},
		Things: []socketBoardRow{
			{Name: "coffee", Pluses: 30, Minuses: 1, Net: 29},
		},
	})

	source := NewSocketSource(socketPath)
	boards, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(boards.People) != 2 {
		t.Fatalf("len(People) = %d, want 2", len(boards.People))
	}
	if boards.People[0].Name != "Ada Lovelace" || boards.People[0].Net != 12 {
		t.Errorf("People[0] = %+v, want Ada Lovelace net 12", boards.People[0])
	}
	if len(boards.Things) != 1 {
		t.Fatalf("len(Things) = %d, want 1", len(boards.Things))
	}
	if boards.Things[0].Pluses != 30 || boards.Things[0].Minuses != 1 {
		t.Errorf("Things[0] = %+v, want 30 pluses and 1 minus", boards.Things[0])
	}
}

func TestSocketSourceLoadNoServer(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "absent.sock")

	source := NewSocketSource(socketPath)
	_, err := source.Load(context.Background())
	if err == nil {
		t.Fatal("Load succeeded against a socket that does not exist")
	}
	if !strings.Contains(err.Error(), "querying leaderboard") {
		t.Errorf("error = %q, want context about querying the leaderboard", err)
	}
}

func TestSocketSourceDescription(t *testing.T) {
	source := NewSocketSource("/run/chameleon/admin.sock")
	if got := source.Description(); got != "/run/chameleon/admin.sock" {
		t.Errorf("Description() = %q, want the socket path", got)
	}
}
