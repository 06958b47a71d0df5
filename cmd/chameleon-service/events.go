// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"strings"

	"github.com/bureau-foundation/chameleon/lib/bot"
	"github.com/bureau-foundation/chameleon/lib/karma"
	"github.com/bureau-foundation/chameleon/slack"
)

// slashUsage is the reply for a /k invocation that does not parse.
const slashUsage = "Hmmm... this doesn't look right. Syntax is '/k SUBJECT (++|--) [FLAVOR]'"

// handleMessage handles a channel message, whether delivered over
// Socket Mode or the Events API webhook. It runs the karma pipeline
// and posts the reply, if any, back to the source channel.
func (s *chameleonService) handleMessage(ctx context.Context, event *slack.MessageEvent) {
	// Messages with a subtype are edits, joins, and other channel
	// chatter; messages with a bot ID come from bots, including this
	// one. Neither is karma input.
	if event.Subtype != "" || event.BotID != "" {
		return
	}
	if event.User == "" || event.User == s.session.UserID() {
		return
	}

	reply, err := s.bot.HandleMessage(ctx, bot.Message{User: event.User, Text: event.Text})
	if err != nil {
		s.logger.Error("handling message failed",
			"channel", event.Channel,
			"user", event.User,
			"error", err,
		)
		return
	}
	if reply == "" {
		return
	}

	if _, err := s.session.PostMessage(ctx, event.Channel, reply); err != nil {
		s.logger.Error("posting reply failed", "channel", event.Channel, "error", err)
	}
}

// handleSlashCommand routes /k and /leaderboard. The returned text is
// delivered as an ephemeral reply to the invoking user; karma changes
// themselves are posted publicly so the channel sees them, same as a
// message-based bump.
func (s *chameleonService) handleSlashCommand(ctx context.Context, command *slack.SlashCommand) string {
	switch command.Command {
	case "/k":
		return s.handleKarmaCommand(ctx, command)
	case "/leaderboard":
		return s.handleLeaderboardCommand(ctx)
	default:
		s.logger.Debug("ignoring slash command", "command", command.Command)
		return ""
	}
}

// handleKarmaCommand implements /k:
//
//	/k SUBJECT        the subject's standing, shown only to the caller
//	/k SUBJECT ++     award a point, result posted to the channel
//	/k SUBJECT --     deduct a point, result posted to the channel
//
// Anything after the operator is tolerated flavor text.
func (s *chameleonService) handleKarmaCommand(ctx context.Context, command *slack.SlashCommand) string {
	fields := strings.Fields(command.Text)
	if len(fields) == 0 {
		return slashUsage
	}

	if len(fields) == 1 {
		subject, err := karma.ExtractSubject(fields[0])
		if err != nil {
			return slashUsage
		}
		item, tracked := s.bot.Standing(subject)
		if !tracked {
			item = karma.Item{Name: subject}
		}
		return item.Describe()
	}

	op := fields[1]
	if op != "++" && op != "--" {
		return slashUsage
	}

	// Feed the synthesized message through the same pipeline as
	// channel text, so the self-karma and URL guards apply to slash
	// input too.
	reply, err := s.bot.HandleMessage(ctx, bot.Message{
		User: command.UserID,
		Text: fields[0] + op,
	})
	if err != nil {
		s.logger.Error("slash karma failed", "user", command.UserID, "error", err)
		return "Recording that didn't work, sorry. Try again in a moment."
	}
	if reply == "" {
		return slashUsage
	}

	if _, err := s.session.PostMessage(ctx, command.ChannelID, reply); err != nil {
		s.logger.Error("posting slash reply failed", "channel", command.ChannelID, "error", err)
		// The ledger already changed; show the caller the result even
		// though the channel post failed.
		return reply
	}
	return ""
}

// handleLeaderboardCommand implements /leaderboard: the standings,
// shown only to the caller.
func (s *chameleonService) handleLeaderboardCommand(ctx context.Context) string {
	empty, people, things, err := s.bot.Leaderboard(ctx)
	if err != nil {
		s.logger.Error("building leaderboard failed", "error", err)
		return "The leaderboard is unavailable right now, sorry."
	}
	if empty != "" {
		return empty
	}
	return people + "\n" + things
}
