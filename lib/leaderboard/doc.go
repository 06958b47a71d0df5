// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package leaderboard turns ledger snapshots into rendered standings.
//
// [Build] partitions items into people and things: ledger names
// wrapped in platform mention delimiters ("<@U123>", "<!here>") are
// people, everything else is a thing. People names go through a
// [UserResolver] so boards show display names instead of opaque IDs;
// when resolution fails the stripped raw ID stands in, and the board
// is produced regardless. Both partitions sort ascending by the name
// shown.
//
// [RenderTable] produces the markdown pipe table used in chat replies
// and, via [RenderHTML], on the service status page.
package leaderboard
