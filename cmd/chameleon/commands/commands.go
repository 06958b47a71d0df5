// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete chameleon CLI command tree.
package commands

import (
	"fmt"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
	"github.com/bureau-foundation/chameleon/lib/version"
)

// Root builds and returns the complete chameleon CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "chameleon",
		Description: `Chameleon: karma bot for Slack.

Query the karma ledger of a running chameleon-service over its admin
socket, and manage the sealed Slack token bundle the service starts
from.`,
		Subcommands: []*cli.Command{
			KarmaCommand(),
			LeaderboardCommand(),
			StatusCommand(),
			StatsCommand(),
			KeygenCommand(),
			SealCommand(),
			RestoreCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("chameleon %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check that the service is up",
				Command:     "chameleon status",
			},
			{
				Description: "Look up one item's karma",
				Command:     "chameleon karma coffee",
			},
			{
				Description: "Show the user and thing leaderboards",
				Command:     "chameleon leaderboard",
			},
			{
				Description: "Generate a service identity",
				Command:     "chameleon keygen --output /etc/chameleon/identity.key",
			},
			{
				Description: "Seal the Slack tokens for the service",
				Command:     "chameleon seal --identity /etc/chameleon/identity.key --output /etc/chameleon/tokens.sealed",
			},
		},
	}
}
