// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/net/websocket"

	"github.com/bureau-foundation/chameleon/lib/clock"
	"github.com/bureau-foundation/chameleon/lib/netutil"
	"github.com/bureau-foundation/chameleon/lib/secret"
)

// socketModeOrigin is the Origin header for the WebSocket handshake.
// Slack does not validate it, but the handshake requires one.
const socketModeOrigin = "https://slack.com"

// SocketModeConfig configures the Socket Mode event loop.
type SocketModeConfig struct {
	// Client is used to mint WebSocket URLs via apps.connections.open.
	// Required.
	Client *Client

	// AppToken is the app-level token (xapp-...). Required.
	AppToken *secret.Buffer

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// Clock is used for reconnect backoff. Nil uses the real clock.
	Clock clock.Clock

	// MaxBackoff is the maximum duration between reconnect attempts
	// after consecutive failures. The loop uses exponential backoff
	// starting at 1 second. Default: 30 seconds.
	MaxBackoff time.Duration

	// OnMessage is called for each "message" event. Nil means message
	// events are acknowledged and dropped.
	OnMessage func(ctx context.Context, event *MessageEvent)

	// OnSlashCommand is called for each slash command. The returned
	// text is sent in the acknowledgement as an ephemeral reply to the
	// invoking user; return "" to acknowledge without replying. Nil
	// means commands are acknowledged and dropped.
	//
	// Slack expects the acknowledgement within 3 seconds, so the
	// handler must not block on slow work.
	OnSlashCommand func(ctx context.Context, command *SlashCommand) string
}

// RunSocketMode maintains a Socket Mode connection until ctx is
// cancelled: it opens a WebSocket, acknowledges and dispatches
// incoming envelopes, and reconnects with exponential backoff when
// the connection drops. Slack-initiated disconnects (connection
// refresh) reconnect immediately without backoff.
//
// Returns nil when ctx is cancelled. Configuration errors (missing
// required fields) are returned immediately.
func RunSocketMode(ctx context.Context, config SocketModeConfig) error {
	if config.Client == nil {
		return errors.New("slack: socket mode requires a Client")
	}
	if config.AppToken == nil {
		return errors.New("slack: socket mode requires an AppToken")
	}
	if config.Logger == nil {
		return errors.New("slack: socket mode requires a Logger")
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	maxBackoff := config.MaxBackoff
	if maxBackoff == 0 {
		maxBackoff = 30 * time.Second
	}

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return nil
		}

		connected, err := runSocketConnection(ctx, &config)
		if ctx.Err() != nil {
			return nil
		}

		if connected && err == nil {
			// The connection worked and ended with a server-requested
			// disconnect. Reconnect immediately with fresh backoff.
			backoff = time.Second
			continue
		}
		if err != nil {
			config.Logger.Warn("socket mode connection failed",
				"error", err,
				"retry_in", backoff,
			)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-config.Clock.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// runSocketConnection opens one WebSocket connection and processes
// envelopes until the connection ends. Returns connected=true once a
// hello envelope has been received (the signal that backoff should
// reset). A nil error means the connection ended in an expected way
// (server disconnect, clean close).
func runSocketConnection(ctx context.Context, config *SocketModeConfig) (connected bool, err error) {
	wsURL, err := config.Client.OpenConnection(ctx, config.AppToken)
	if err != nil {
		return false, err
	}

	wsConfig, err := websocket.NewConfig(wsURL, socketModeOrigin)
	if err != nil {
		return false, fmt.Errorf("slack: invalid socket mode URL %q: %w", wsURL, err)
	}
	conn, err := websocket.DialConfig(wsConfig)
	if err != nil {
		return false, fmt.Errorf("slack: dialing socket mode: %w", err)
	}
	defer conn.Close()

	// Unblock the Receive call when the context is cancelled.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var envelope Envelope
		if err := websocket.JSON.Receive(conn, &envelope); err != nil {
			if ctx.Err() != nil {
				return connected, nil
			}
			if errors.Is(err, io.EOF) || netutil.IsExpectedCloseError(err) {
				// Server closed without a disconnect envelope. Treat
				// as an ordinary connection rotation.
				return connected, nil
			}
			return connected, fmt.Errorf("slack: reading envelope: %w", err)
		}

		switch envelope.Type {
		case EnvelopeHello:
			connected = true
			config.Logger.Info("socket mode connected")

		case EnvelopeDisconnect:
			config.Logger.Info("socket mode disconnect requested", "reason", envelope.Reason)
			return connected, nil

		case EnvelopeEventsAPI:
			// Acknowledge before dispatching: Slack redelivers
			// unacknowledged envelopes after 3 seconds, and the
			// handler may take longer (it posts replies over HTTP).
			acknowledge(conn, config.Logger, envelope.EnvelopeID, nil)
			dispatchEventsAPI(ctx, config, &envelope)

		case EnvelopeSlashCommands:
			handleSlashCommand(ctx, config, conn, &envelope)

		default:
			// Unknown envelope types still need acknowledgement or
			// Slack will redeliver them forever.
			if envelope.EnvelopeID != "" {
				acknowledge(conn, config.Logger, envelope.EnvelopeID, nil)
			}
			config.Logger.Debug("ignoring envelope", "type", envelope.Type)
		}
	}
}

// dispatchEventsAPI decodes an events_api envelope and routes message
// events to the configured handler. Unknown inner event types are
// logged and dropped.
func dispatchEventsAPI(ctx context.Context, config *SocketModeConfig, envelope *Envelope) {
	var payload EventsAPIPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		config.Logger.Warn("malformed events_api payload", "error", err)
		return
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload.Event, &probe); err != nil {
		config.Logger.Warn("malformed event in events_api payload", "error", err)
		return
	}

	switch probe.Type {
	case "message":
		if config.OnMessage == nil {
			return
		}
		var event MessageEvent
		if err := json.Unmarshal(payload.Event, &event); err != nil {
			config.Logger.Warn("malformed message event", "error", err)
			return
		}
		config.OnMessage(ctx, &event)
	default:
		config.Logger.Debug("ignoring event", "type", probe.Type)
	}
}

// handleSlashCommand decodes a slash_commands envelope, runs the
// handler, and acknowledges with the handler's reply text.
func handleSlashCommand(ctx context.Context, config *SocketModeConfig, conn *websocket.Conn, envelope *Envelope) {
	var command SlashCommand
	if err := json.Unmarshal(envelope.Payload, &command); err != nil {
		config.Logger.Warn("malformed slash command payload", "error", err)
		acknowledge(conn, config.Logger, envelope.EnvelopeID, nil)
		return
	}

	var reply string
	if config.OnSlashCommand != nil {
		reply = config.OnSlashCommand(ctx, &command)
	}

	if reply == "" || !envelope.AcceptsResponsePayload {
		acknowledge(conn, config.Logger, envelope.EnvelopeID, nil)
		return
	}
	acknowledge(conn, config.Logger, envelope.EnvelopeID, &commandReply{
		ResponseType: "ephemeral",
		Text:         reply,
	})
}

// acknowledge sends an envelope acknowledgement. Failures are logged
// and otherwise ignored: Slack will redeliver the envelope, and the
// read loop surfaces the broken connection separately.
func acknowledge(conn *websocket.Conn, logger *slog.Logger, envelopeID string, payload any) {
	ack := acknowledgement{EnvelopeID: envelopeID}
	if payload != nil {
		ack.Payload = payload
	}
	if err := websocket.JSON.Send(conn, ack); err != nil {
		logger.Warn("failed to acknowledge envelope", "envelope_id", envelopeID, "error", err)
	}
}
