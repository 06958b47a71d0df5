// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/bureau-foundation/chameleon/lib/leaderboard"
	"github.com/bureau-foundation/chameleon/lib/version"
)

// statusHandler builds the HTTP handler for the status server: a JSON
// liveness endpoint, an HTML leaderboard page, and (when a signing
// secret is configured) the Events API webhook receiver.
func (s *chameleonService) statusHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/leaderboard", s.handleLeaderboardPage)
	if s.signingSecret != nil {
		mux.HandleFunc("/slack/events", s.handleSlackEvents)
	}
	return mux
}

// healthzResponse is the /healthz body.
type healthzResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int    `json:"uptime_seconds"`
	Items         int    `json:"items"`
	Version       string `json:"version"`
}

func (s *chameleonService) handleHealthz(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(writer, "", http.StatusMethodNotAllowed)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(healthzResponse{
		Status:        "ok",
		UptimeSeconds: int(s.clock.Now().Sub(s.startedAt).Seconds()),
		Items:         s.ledger.Len(),
		Version:       version.Short(),
	}); err != nil {
		s.logger.Debug("writing healthz response failed", "error", err)
	}
}

func (s *chameleonService) handleLeaderboardPage(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(writer, "", http.StatusMethodNotAllowed)
		return
	}

	people, things, err := s.bot.Boards(request.Context())
	if err != nil {
		s.logger.Error("building leaderboard page failed", "error", err)
		http.Error(writer, "", http.StatusInternalServerError)
		return
	}

	page, err := leaderboard.RenderHTML(people, things)
	if err != nil {
		s.logger.Error("rendering leaderboard page failed", "error", err)
		http.Error(writer, "", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(writer, page); err != nil {
		s.logger.Debug("writing leaderboard page failed", "error", err)
	}
}
