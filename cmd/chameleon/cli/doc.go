// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the chameleon
// operator CLI.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/chameleon/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). This is
// implemented in suggest.go.
//
// Commands signal a handled non-zero exit (service down, item not
// found) by returning [ExitError]; main checks for the ExitCode
// interface to distinguish that from an unexpected error to display.
// [NewCommandLogger] builds the slog logger for command diagnostics,
// and [WriteJSON] is the shared --json output path.
package cli
