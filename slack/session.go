// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bureau-foundation/chameleon/lib/secret"
)

// BotSession is an authenticated connection to one Slack workspace.
// It binds the bot token to a Client and caches the bot's own
// identity (from auth.test) plus resolved user display names.
//
// BotSession is safe for concurrent use.
type BotSession struct {
	client   *Client
	botToken *secret.Buffer

	// Identity from auth.test, fixed for the session lifetime.
	userID string
	botID  string
	team   string

	// displayNames caches user ID → display name. Slack rate-limits
	// users.info aggressively (Tier 4, but still), and karma events
	// re-mention the same handful of users constantly.
	mu           sync.Mutex
	displayNames map[string]string
}

// NewSession authenticates the bot token with auth.test and returns a
// session. The token buffer remains owned by the caller; it must stay
// open for the session's lifetime.
func (c *Client) NewSession(ctx context.Context, botToken *secret.Buffer) (*BotSession, error) {
	body, err := c.callAPI(ctx, "auth.test", botToken, nil)
	if err != nil {
		return nil, fmt.Errorf("slack: auth.test failed: %w", err)
	}

	var auth authTestResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("slack: parsing auth.test response: %w", err)
	}

	c.logger.Info("authenticated with slack",
		"team", auth.Team,
		"user", auth.User,
		"user_id", auth.UserID,
		"bot_id", auth.BotID,
	)

	return &BotSession{
		client:       c,
		botToken:     botToken,
		userID:       auth.UserID,
		botID:        auth.BotID,
		team:         auth.Team,
		displayNames: make(map[string]string),
	}, nil
}

// UserID returns the bot's own user ID (e.g., "U0123456789").
// Incoming message events with this user are the bot's own replies
// and must not be processed.
func (s *BotSession) UserID() string { return s.userID }

// BotID returns the bot's bot ID (the "B..." identifier carried by
// bot-authored message events).
func (s *BotSession) BotID() string { return s.botID }

// Team returns the workspace name from auth.test.
func (s *BotSession) Team() string { return s.team }

// PostMessage posts text to a channel and returns the message
// timestamp. The text is sent as-is; Slack renders mrkdwn
// formatting (code fences, <@U...> mentions) on its side.
func (s *BotSession) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	body, err := s.client.callAPI(ctx, "chat.postMessage", s.botToken, postMessageRequest{
		Channel: channelID,
		Text:    text,
	})
	if err != nil {
		return "", fmt.Errorf("slack: posting to %s: %w", channelID, err)
	}

	var response postMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("slack: parsing chat.postMessage response: %w", err)
	}
	return response.TS, nil
}

// UserInfo fetches a user record by ID via users.info. Does not
// consult or populate the display name cache; use DisplayName for
// resolved names.
func (s *BotSession) UserInfo(ctx context.Context, userID string) (*User, error) {
	body, err := s.client.callAPI(ctx, "users.info", s.botToken, map[string]string{"user": userID})
	if err != nil {
		return nil, fmt.Errorf("slack: fetching user %s: %w", userID, err)
	}

	var response userInfoResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("slack: parsing users.info response: %w", err)
	}
	return &response.User, nil
}

// DisplayName resolves a user ID to the name members see in the
// client: the profile display name, falling back to the real name,
// falling back to the account name. Results are cached for the
// session lifetime; workspace renames are rare enough that a stale
// name until restart is acceptable.
func (s *BotSession) DisplayName(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	if name, ok := s.displayNames[userID]; ok {
		s.mu.Unlock()
		return name, nil
	}
	s.mu.Unlock()

	user, err := s.UserInfo(ctx, userID)
	if err != nil {
		return "", err
	}

	name := user.Profile.DisplayName
	if name == "" {
		name = user.Profile.RealName
	}
	if name == "" {
		name = user.Name
	}

	s.mu.Lock()
	s.displayNames[userID] = name
	s.mu.Unlock()
	return name, nil
}

// ListUsers fetches all workspace members via users.list, following
// cursor pagination until the last page. Deleted users and bots are
// included; callers filter as needed.
func (s *BotSession) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	cursor := ""
	for {
		request := map[string]any{"limit": 200}
		if cursor != "" {
			request["cursor"] = cursor
		}

		body, err := s.client.callAPI(ctx, "users.list", s.botToken, request)
		if err != nil {
			return nil, fmt.Errorf("slack: listing users: %w", err)
		}

		var page usersListResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("slack: parsing users.list response: %w", err)
		}
		users = append(users, page.Members...)

		cursor = page.ResponseMetadata.NextCursor
		if cursor == "" {
			return users, nil
		}
	}
}
