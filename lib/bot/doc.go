// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bot implements the karma bot's two entry points over the
// parsing, ledger, and leaderboard machinery.
//
// [Bot.HandleMessage] takes one inbound message and returns the reply
// to post, or "" when the message warrants none: not a karma
// operation, a decrement that is really a pasted URL, or a subject
// that normalizes to nothing. Self-karma attempts return fixed
// admonishments without touching the ledger.
//
// [Bot.Leaderboard] re-reads the persisted ledger and returns either
// the "No karma yet!" sentinel or the two fenced board sections,
// never both.
//
// The Bot is transport-agnostic: the Slack event loop, the slash
// command handlers, and the admin socket all feed it the same way.
package bot
