// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import "encoding/json"

// Envelope types Slack sends over a Socket Mode connection.
const (
	EnvelopeHello         = "hello"
	EnvelopeDisconnect    = "disconnect"
	EnvelopeEventsAPI     = "events_api"
	EnvelopeSlashCommands = "slash_commands"
)

// Envelope is the outer frame of every Socket Mode message. Envelopes
// of type "events_api" and "slash_commands" must be acknowledged by
// echoing EnvelopeID back; Slack redelivers unacknowledged envelopes
// with an incremented RetryAttempt.
type Envelope struct {
	Type                   string          `json:"type"`
	EnvelopeID             string          `json:"envelope_id,omitempty"`
	AcceptsResponsePayload bool            `json:"accepts_response_payload,omitempty"`
	RetryAttempt           int             `json:"retry_attempt,omitempty"`
	RetryReason            string          `json:"retry_reason,omitempty"`
	Payload                json.RawMessage `json:"payload,omitempty"`

	// Reason is set on "disconnect" envelopes: "warning",
	// "refresh_requested", or "too_many_websockets".
	Reason string `json:"reason,omitempty"`
}

// acknowledgement is the frame sent back for an envelope. Payload is
// included only when the envelope accepts a response (slash commands
// use this for the immediate reply).
type acknowledgement struct {
	EnvelopeID string `json:"envelope_id"`
	Payload    any    `json:"payload,omitempty"`
}

// commandReply is the response payload for a slash command
// acknowledgement. ResponseType "ephemeral" shows the text only to
// the invoking user; "in_channel" posts it publicly.
type commandReply struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// EventsAPIPayload is the payload of an "events_api" envelope: the
// same event_callback wrapper the Events API delivers over HTTP. The
// inner Event is raw because its shape depends on Event's "type".
type EventsAPIPayload struct {
	Type    string          `json:"type"`
	TeamID  string          `json:"team_id"`
	EventID string          `json:"event_id"`
	Event   json.RawMessage `json:"event"`

	// Challenge is set on "url_verification" payloads during Events
	// API endpoint setup. Only seen over HTTP, never in Socket Mode.
	Challenge string `json:"challenge,omitempty"`
}

// MessageEvent is a "message" event from a channel the bot is in.
type MessageEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	Channel string `json:"channel"`
	User    string `json:"user"`
	Text    string `json:"text"`
	TS      string `json:"ts"`

	// BotID is set when the message was authored by a bot (including
	// this one). Such messages are never karma input.
	BotID string `json:"bot_id,omitempty"`

	// ThreadTS is set when the message is a thread reply.
	ThreadTS string `json:"thread_ts,omitempty"`

	ChannelType string `json:"channel_type,omitempty"`
}

// SlashCommand is the payload of a "slash_commands" envelope.
type SlashCommand struct {
	Command     string `json:"command"`
	Text        string `json:"text"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	ResponseURL string `json:"response_url"`
	TriggerID   string `json:"trigger_id"`
}
