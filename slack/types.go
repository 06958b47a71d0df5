// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

// User is a Slack workspace member as returned by users.info and
// users.list. Only the fields Chameleon reads are declared; the API
// returns many more.
type User struct {
	ID      string  `json:"id"`
	TeamID  string  `json:"team_id"`
	Name    string  `json:"name"`
	Deleted bool    `json:"deleted"`
	IsBot   bool    `json:"is_bot"`
	Profile Profile `json:"profile"`
}

// Profile holds the display fields of a user. DisplayName is what
// members see in the client; it may be empty, in which case RealName
// (and finally the account name) is the fallback.
type Profile struct {
	RealName    string `json:"real_name"`
	DisplayName string `json:"display_name"`
}

// authTestResponse is returned by auth.test. It identifies the
// workspace and the bot's own user so incoming events from the bot
// itself can be filtered out.
type authTestResponse struct {
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
	BotID  string `json:"bot_id"`
}

// postMessageRequest is the body of chat.postMessage.
type postMessageRequest struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

// postMessageResponse is returned by chat.postMessage.
type postMessageResponse struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

// userInfoResponse is returned by users.info.
type userInfoResponse struct {
	User User `json:"user"`
}

// usersListResponse is one page of users.list. A non-empty
// next_cursor means more pages follow.
type usersListResponse struct {
	Members          []User `json:"members"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

// connectionsOpenResponse is returned by apps.connections.open: the
// WebSocket URL for a Socket Mode connection.
type connectionsOpenResponse struct {
	URL string `json:"url"`
}
