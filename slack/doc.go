// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package slack is a minimal Slack client covering what Chameleon
// needs: posting messages, resolving user display names, and
// receiving events.
//
// The package speaks two Slack surfaces:
//
//   - Web API: JSON-over-HTTPS method calls (chat.postMessage,
//     users.info, auth.test). [Client] holds the transport;
//     [BotSession] binds a bot token to it and caches workspace
//     identity.
//   - Socket Mode: a WebSocket connection over which Slack pushes
//     events (messages, slash commands) to the bot without a public
//     HTTP endpoint. [RunSocketMode] manages the connection,
//     acknowledgements, and reconnects.
//
// For deployments that prefer HTTP event delivery over Socket Mode,
// [VerifySignature] implements Slack's v0 request signing check for
// an Events API webhook endpoint.
//
// Tokens are held in mmap-backed [secret.Buffer] values so they stay
// out of swap and core dumps. The caller owns the buffers; this
// package reads them but never closes them.
package slack
