// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package karma implements the karma message grammar and the
// in-memory ledger behind it.
//
// A karma operation is a chat message whose first whitespace token
// ends in "++" (award a point) or "--" (deduct a point), with at most
// one space between the token and the operator. [Classify] maps a
// message to an [Op]; [ExtractSubject] normalizes the first token into
// the ledger key by stripping the trailing operator and a single
// leading "#" or "@". Platform mention syntax such as "<@U123>" is
// preserved verbatim so that downstream consumers can distinguish
// people from things.
//
// [Ledger] holds the standings for one store file. Every mutation
// persists the full item list through a [Store] before returning, and
// a single mutex serializes the read-modify-write cycle, so the file
// on disk never mixes two updates.
//
// Two guards keep the grammar from misfiring: [IsSelfReference]
// detects senders bumping themselves, and [LooksLikeURL] detects
// pasted links whose "--" path segments would otherwise register as
// decrements.
package karma
