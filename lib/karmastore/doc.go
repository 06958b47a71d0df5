// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package karmastore persists the karma ledger as a JSON file.
//
// The file holds a flat array of items, nothing else: no wrapper
// object, no version field. An empty ledger is the two-byte array
// "[]". Writes go through a temporary file in the same directory,
// fsync, and rename, so a reader never observes a partial ledger and
// a crash mid-write leaves the previous contents intact.
//
// [Store.Load] is the startup path: a missing file is created empty,
// while any parse failure (including a zero-length file) is an error
// for the caller to treat as fatal. [Store.Snapshot] is the display
// path: missing and empty both mean "no standings yet" and return nil
// without error.
//
// [Store.Backup] writes zstd-compressed, BLAKE3-named copies of the
// ledger into a backup directory and prunes old ones. Backups whose
// content digest matches the newest existing backup are skipped.
package karmastore
