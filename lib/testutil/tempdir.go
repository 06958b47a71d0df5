// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"testing"
)

// SocketDir returns a short-pathed temporary directory for Unix
// domain sockets, removed when the test finishes.
//
// sun_path caps socket paths at 108 bytes. t.TempDir() nests under
// TMPDIR, which CI systems sometimes point at trees deep enough to
// blow that cap, so the directory goes directly in /tmp instead.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "chameleon-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(directory) })
	return directory
}
