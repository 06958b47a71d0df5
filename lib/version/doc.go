// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version carries build metadata for chameleon binaries.
//
// Release builds inject [Version], [GitCommit], [GitDirty], and
// [BuildTime] with -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/chameleon/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Binaries built without injection (development builds, go test)
// report "0.1.0-dev" and "unknown" placeholders.
//
// [Print] implements the shared --version handling of the chameleon
// binaries. [Full] adds toolchain and platform detail for the CLI's
// version command, and [Short] is the bare version reported in
// status payloads.
package version
