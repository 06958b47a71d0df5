// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"os"
)

// Fatal reports err on stderr in the "error: ..." form shared by the
// chameleon binaries, then exits with status 1. It is for main()
// itself, where the structured logger may not exist yet; code past
// startup should log and return errors instead.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
