// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// chameleon-viewer is a standalone TUI for browsing karma standings.
//
// Two modes of operation:
//
// Socket mode (default): queries a running chameleon-service over its
// admin socket. Standings arrive with Slack user IDs resolved to
// display names through the service's API session.
//
// File mode (--file): reads the karma ledger file directly. Works
// without a running service, but user rows show raw Slack IDs since
// there is no session to resolve them through.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/chameleon/lib/config"
	"github.com/bureau-foundation/chameleon/lib/karmaui"
	"github.com/bureau-foundation/chameleon/lib/process"
	"github.com/bureau-foundation/chameleon/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		filePath   string
		socketPath string
		reload     time.Duration
	)

	flagSet := pflag.NewFlagSet("chameleon-viewer", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "", "read the karma ledger file directly instead of the admin socket")
	flagSet.StringVar(&socketPath, "socket", config.DefaultAdminSocket, "admin socket of a running chameleon-service")
	flagSet.DurationVar(&reload, "reload", 0, "reload interval (default 2s)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the other
	// chameleon binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("chameleon-viewer")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	var source karmaui.Source
	if filePath != "" {
		source = karmaui.NewFileSource(filePath)
	} else {
		source = karmaui.NewSocketSource(socketPath)
	}

	// Probe the terminal background before bubbletea takes over the
	// screen; the OSC query would corrupt the alt-screen display.
	theme := karmaui.DetectTheme()

	model := karmaui.NewModel(source, theme, reload)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Chameleon karma viewer — interactive terminal UI for the standings.

By default, connects to a running chameleon-service over its admin
socket, which resolves Slack user IDs to display names. Use --file to
read a karma ledger file directly instead; that works without the
service but shows raw user IDs.

Usage:
  chameleon-viewer [flags]

Keys:
  1 / 2      switch between the user and thing boards
  tab        toggle boards
  up / down  move the cursor
  /          fuzzy-filter by name
  s          toggle name order vs. net score order
  r          reload now
  q          quit

Flags:
%s`, flagSet.FlagUsages())
}
