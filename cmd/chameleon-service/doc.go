// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Chameleon-service is the karma bot service. It connects to Slack
// over Socket Mode, watches channel messages for karma operations
// ("subject++", "subject--"), keeps the standings in a JSON ledger
// file, and answers the /k and /leaderboard slash commands.
//
// # Startup
//
// Configuration comes from a YAML file named by --config or the
// CHAMELEON_CONFIG environment variable. Slack credentials resolve in
// order: the SLACK_BOT_TOKEN / SLACK_APP_TOKEN environment variables,
// plaintext token files, then an age-encrypted bundle written by
// "chameleon seal" and opened with the service's identity file. The
// ledger file is loaded before anything connects; a malformed ledger
// is a startup failure, never a silent reset.
//
// # Runtime
//
// Four loops run until SIGINT/SIGTERM: the Socket Mode event loop,
// the admin socket server, the optional status HTTP server, and the
// cron runner with the ledger backup and karma digest jobs. Shutdown
// drains each in turn.
//
// # Admin socket
//
// The chameleon CLI connects to a Unix socket and sends one CBOR
// request per connection. The "action" field selects the operation:
// status, karma, leaderboard, stats.
package main
