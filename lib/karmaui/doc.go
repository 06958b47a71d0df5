// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package karmaui implements the interactive terminal viewer for
// karma standings. It renders the same two boards the bot posts to
// chat (users and things) as a navigable table with tab switching,
// fzf-style fuzzy filtering, and a sort toggle between display name
// and net score.
//
// Data comes through the [Source] interface. [FileSource] reads the
// ledger file directly and needs no running service; [SocketSource]
// queries a chameleon-service admin socket, which also gets user IDs
// resolved to display names. Both are polled on a timer, so standings
// update live while karma is awarded.
//
// The top-level type is [Model], a bubbletea model; cmd/chameleon-viewer
// wires it to a terminal.
package karmaui
