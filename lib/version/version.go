// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time through -ldflags -X. Development builds and test
// binaries run with the defaults below.
var (
	// GitCommit is the short SHA the binary was built from.
	GitCommit = "unknown"

	// GitDirty is "true" when the build tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version, set by hand for releases.
	Version = "0.1.0-dev"
)

// Info renders the one-line version string, for example
// "0.1.0-dev (abc1234-dirty, 2026-08-24T10:00:00Z)".
func Info() string {
	commit := GitCommit
	if GitDirty == "true" {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Full returns Info followed by the Go toolchain version and the
// target platform, indented one level per line. The CLI's version
// command prints this.
func Full() string {
	lines := []string{
		Info(),
		"  go: " + runtime.Version(),
		"  platform: " + runtime.GOOS + "/" + runtime.GOARCH,
	}
	return strings.Join(lines, "\n")
}

// Short returns the bare semantic version. Status payloads report
// this rather than the full build string.
func Short() string {
	return Version
}

// Print writes "<binary> <version info>" to stdout. Shared by the
// --version handling of every chameleon binary.
func Print(binaryName string) {
	fmt.Printf("%s %s\n", binaryName, Info())
}
