// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command chameleon is the operator CLI for the chameleon karma bot.
// It queries a running chameleon-service over its admin socket and
// manages the service's age identity and sealed Slack token bundle.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/commands"
	"github.com/bureau-foundation/chameleon/lib/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("chameleon")
		return
	}
	if err := run(); err != nil {
		// Commands that print their own diagnostics (like status)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
