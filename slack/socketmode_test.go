// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSocketModeServers runs a fake Slack: an HTTP endpoint answering
// apps.connections.open with the URL of a local WebSocket server. The
// script runs against the server side of the first connection only;
// reconnections (the loop redials as soon as a connection ends) just
// hold their connection open until the test cancels the run context.
func newSocketModeServers(t *testing.T, script func(conn *websocket.Conn)) *Client {
	t.Helper()

	var connections atomic.Int64
	wsServer := httptest.NewServer(websocket.Handler(func(conn *websocket.Conn) {
		if connections.Add(1) > 1 {
			websocket.JSON.Send(conn, Envelope{Type: EnvelopeHello})
			var discard json.RawMessage
			for websocket.JSON.Receive(conn, &discard) == nil {
			}
			return
		}
		script(conn)
	}))
	t.Cleanup(wsServer.Close)
	wsURL := "ws" + strings.TrimPrefix(wsServer.URL, "http")

	apiServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/apps.connections.open" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{"ok": true, "url": wsURL})
	}))
	t.Cleanup(apiServer.Close)

	client, err := NewClient(ClientConfig{BaseURL: apiServer.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestRunSocketModeDispatchesMessages(t *testing.T) {
	received := make(chan *MessageEvent, 1)
	acks := make(chan acknowledgement, 1)

	client := newSocketModeServers(t, func(conn *websocket.Conn) {
		websocket.JSON.Send(conn, Envelope{Type: EnvelopeHello})

		payload, _ := json.Marshal(EventsAPIPayload{
			Type:  "event_callback",
			Event: json.RawMessage(`{"type":"message","channel":"C1","user":"U1","text":"cake++"}`),
		})
		websocket.JSON.Send(conn, Envelope{
			Type:       EnvelopeEventsAPI,
			EnvelopeID: "env-1",
			Payload:    payload,
		})

		var ack acknowledgement
		if err := websocket.JSON.Receive(conn, &ack); err == nil {
			acks <- ack
		}

		// End this connection the way Slack rotates one; the loop
		// reconnects without backoff.
		websocket.JSON.Send(conn, Envelope{Type: EnvelopeDisconnect, Reason: "refresh_requested"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunSocketMode(ctx, SocketModeConfig{
			Client:   client,
			AppToken: testBuffer(t, "xapp-test"),
			Logger:   testLogger(),
			OnMessage: func(_ context.Context, event *MessageEvent) {
				received <- event
			},
		})
	}()

	select {
	case event := <-received:
		if event.Text != "cake++" || event.User != "U1" {
			t.Errorf("event = %+v, want cake++ from U1", event)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the message event")
	}

	select {
	case ack := <-acks:
		if ack.EnvelopeID != "env-1" {
			t.Errorf("ack envelope_id = %q, want env-1", ack.EnvelopeID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the acknowledgement")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunSocketMode = %v, want nil on cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunSocketMode did not return after cancellation")
	}
}

func TestRunSocketModeSlashCommandReply(t *testing.T) {
	acks := make(chan map[string]any, 1)

	client := newSocketModeServers(t, func(conn *websocket.Conn) {
		websocket.JSON.Send(conn, Envelope{Type: EnvelopeHello})

		payload, _ := json.Marshal(SlashCommand{
			Command: "/k",
			Text:    "coffee",
			UserID:  "U7",
		})
		websocket.JSON.Send(conn, Envelope{
			Type:                   EnvelopeSlashCommands,
			EnvelopeID:             "env-2",
			AcceptsResponsePayload: true,
			Payload:                payload,
		})

		var ack map[string]any
		if err := websocket.JSON.Receive(conn, &ack); err == nil {
			acks <- ack
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- RunSocketMode(ctx, SocketModeConfig{
			Client:   client,
			AppToken: testBuffer(t, "xapp-test"),
			Logger:   testLogger(),
			OnSlashCommand: func(_ context.Context, command *SlashCommand) string {
				if command.Command != "/k" || command.Text != "coffee" {
					t.Errorf("command = %+v", command)
				}
				return "coffee has 1 plus and 0 minuses for a total of 1 point."
			},
		})
	}()

	select {
	case ack := <-acks:
		if ack["envelope_id"] != "env-2" {
			t.Errorf("ack envelope_id = %v, want env-2", ack["envelope_id"])
		}
		payload, ok := ack["payload"].(map[string]any)
		if !ok {
			t.Fatalf("ack %v carries no reply payload", ack)
		}
		if payload["response_type"] != "ephemeral" {
			t.Errorf("response_type = %v, want ephemeral", payload["response_type"])
		}
		if text, _ := payload["text"].(string); !strings.Contains(text, "coffee has 1 plus") {
			t.Errorf("reply text = %q", text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the acknowledgement")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunSocketMode = %v, want nil on cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunSocketMode did not return after cancellation")
	}
}
