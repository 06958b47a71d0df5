// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps Slack tokens and age identities out of places
// memory leaks to: swap, core dumps, and the Go heap.
//
// A [Buffer] owns an anonymous mmap region that is mlocked (never
// swapped) and marked MADV_DONTDUMP (never dumped). Because the
// region is not Go-managed memory, the collector cannot duplicate it
// during compaction, so zeroing it on Close actually destroys the
// secret.
//
// [NewFromBytes] copies a secret in and scrubs the source slice;
// [ReadFromPath] loads one from a token file or stdin with the same
// discipline for every intermediate copy. [Buffer.Bytes] hands out a
// view into the protected region; [Buffer.String] is a deliberate
// escape hatch that copies onto the heap for APIs that require a
// string. Accessing a closed buffer panics, which turns
// use-after-free of a credential into a crash instead of a leak.
package secret
