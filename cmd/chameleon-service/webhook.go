// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/bureau-foundation/chameleon/slack"
)

// maxEventBody caps an Events API request body. Slack keeps event
// payloads small; the cap only guards against junk aimed at the port.
const maxEventBody = 1 << 20

// handleSlackEvents receives Events API webhook deliveries, for
// workspaces configured for HTTP delivery instead of Socket Mode.
// Nothing in the request is trusted before the signature check
// passes.
func (s *chameleonService) handleSlackEvents(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(writer, "", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxEventBody))
	if err != nil {
		s.logger.Warn("reading webhook body failed", "error", err)
		http.Error(writer, "", http.StatusBadRequest)
		return
	}

	if err := slack.VerifySignature(
		s.signingSecret.Bytes(),
		request.Header.Get(slack.TimestampHeader),
		body,
		request.Header.Get(slack.SignatureHeader),
		s.clock.Now(),
	); err != nil {
		s.logger.Warn("rejecting webhook request", "error", err)
		http.Error(writer, "", http.StatusUnauthorized)
		return
	}

	var payload slack.EventsAPIPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.logger.Warn("malformed webhook payload", "error", err)
		http.Error(writer, "", http.StatusBadRequest)
		return
	}

	switch payload.Type {
	case "url_verification":
		// Endpoint setup handshake: echo the challenge back.
		writer.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(writer).Encode(map[string]string{
			"challenge": payload.Challenge,
		}); err != nil {
			s.logger.Debug("writing challenge response failed", "error", err)
		}
	case "event_callback":
		s.dispatchWebhookEvent(request, payload.Event)
		writer.WriteHeader(http.StatusOK)
	default:
		s.logger.Debug("ignoring webhook payload", "type", payload.Type)
		writer.WriteHeader(http.StatusOK)
	}
}

// dispatchWebhookEvent routes the inner event of an event_callback
// through the same message pipeline Socket Mode feeds. Replies post
// before the 200 goes back; Slack allows three seconds, which is
// plenty for one chat.postMessage.
func (s *chameleonService) dispatchWebhookEvent(request *http.Request, raw json.RawMessage) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		s.logger.Warn("malformed event in webhook payload", "error", err)
		return
	}
	if probe.Type != "message" {
		s.logger.Debug("ignoring webhook event", "type", probe.Type)
		return
	}

	var event slack.MessageEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		s.logger.Warn("malformed message event in webhook payload", "error", err)
		return
	}
	s.handleMessage(request.Context(), &event)
}
