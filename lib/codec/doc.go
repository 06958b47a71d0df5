// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Chameleon's standard CBOR encoding
// configuration.
//
// Chameleon uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: the Slack Web API, the karma
//     ledger file on disk, phrase table overrides, and CLI output.
//   - CBOR for the internal protocol: the admin socket that the CLI
//     and monitoring tools use to talk to a running service.
//
// This package provides the shared CBOR encoding and decoding modes so
// that both ends of the admin socket encode identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (the admin socket):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct Tag Rules
//
// The struct tag on a type documents its serialization format:
//
//   - `cbor` tag: this type is ONLY ever serialized as CBOR. It will
//     never be marshaled to JSON or printed by CLI tooling. Example:
//     the admin socket response envelope.
//   - `json` tag: this type may be serialized as BOTH JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor`
//     tags are absent, so a single `json` tag controls field naming
//     and omitempty for both formats. Examples: karma items and
//     leaderboard rows, which cross the admin socket as CBOR and are
//     then printed by the CLI as JSON.
//
// Never use both `cbor` and `json` tags on the same field. The tag
// choice documents the contract — doubling up is noise that obscures
// whether a type participates in JSON serialization.
package codec
