// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snark supplies the flavor phrases that open karma replies.
//
// A [Picker] draws uniformly from a positive table for increments and
// a negative table for decrements. The built-in tables ship with the
// binary; deployments can replace them with a JSONC file loaded via
// [LoadTables]. Randomness is injected at construction so tests can
// pin the selection.
package snark
