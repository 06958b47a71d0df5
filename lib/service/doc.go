// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides shared process infrastructure for the
// Chameleon service binary.
//
// The running service exposes two local surfaces alongside its Slack
// connection:
//
//   - Admin socket: a CBOR request-response protocol on a Unix socket.
//     The CLI uses it to inspect karma standings, leaderboards, and
//     service status without going through Slack. [SocketServer] is
//     the serving side, [Client] the calling side.
//   - HTTP server: a TCP listener for the health endpoint, the HTML
//     leaderboard page, and (when configured) the Slack Events API
//     webhook. [HTTPServer] manages listener lifecycle and graceful
//     shutdown; the caller provides the http.Handler.
//
// Both servers follow the same lifecycle: construct, register
// handlers, then Serve(ctx) until the context is cancelled. The
// service's main() composes these building blocks directly rather
// than subclassing a framework.
//
// # Authentication
//
// The admin socket carries no caller authentication. Filesystem
// permissions on the socket path determine who can reach it: the
// service creates the socket in a directory writable only by its own
// user. Anyone who can open the socket is trusted to run admin
// actions, the same trust model as sending the process a signal.
package service
