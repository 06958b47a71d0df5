// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
	"github.com/bureau-foundation/chameleon/lib/leaderboard"
)

// leaderboardParams holds the parameters for the leaderboard command.
type leaderboardParams struct {
	socket     adminSocket
	jsonOutput bool
}

// LeaderboardCommand prints both leaderboards via the admin socket.
func LeaderboardCommand() *cli.Command {
	var params leaderboardParams

	return &cli.Command{
		Name:    "leaderboard",
		Summary: "Print the rendered leaderboards",
		Description: `Print the user and thing leaderboards from the service's current
ledger. Rows are sorted by display name; the service resolves Slack
user IDs to real names where it can.`,
		Usage: "chameleon leaderboard [flags]",
		Examples: []cli.Example{
			{
				Description: "Print both boards",
				Command:     "chameleon leaderboard",
			},
			{
				Description: "Row data as JSON",
				Command:     "chameleon leaderboard --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("leaderboard", pflag.ContinueOnError)
			params.socket.addFlag(flagSet)
			flagSet.BoolVar(&params.jsonOutput, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runLeaderboard(&params)
		},
	}
}

// boardRow mirrors one row of the service's leaderboard response.
type boardRow struct {
	Name    string `cbor:"name"    json:"name"`
	Pluses  int    `cbor:"pluses"  json:"pluses"`
	Minuses int    `cbor:"minuses" json:"minuses"`
	Net     int    `cbor:"net"     json:"net"`
}

// leaderboardResponse mirrors the service's leaderboard action
// response.
type leaderboardResponse struct {
	People []boardRow `cbor:"people"`
	Things []boardRow `cbor:"things"`
}

// leaderboardResult is the JSON output of the leaderboard command.
type leaderboardResult struct {
	People []boardRow `json:"people"`
	Things []boardRow `json:"things"`
}

func runLeaderboard(params *leaderboardParams) error {
	ctx, cancel := callContext()
	defer cancel()

	var response leaderboardResponse
	if err := params.socket.client().Call(ctx, "leaderboard", nil, &response); err != nil {
		return fmt.Errorf("fetching leaderboard: %w", err)
	}

	if params.jsonOutput {
		return cli.WriteJSON(leaderboardResult{
			People: response.People,
			Things: response.Things,
		})
	}

	if len(response.People) == 0 && len(response.Things) == 0 {
		fmt.Println("No karma yet!")
		return nil
	}

	fmt.Println("User leaderboard:")
	fmt.Println(leaderboard.RenderTable(toRows(response.People)))
	fmt.Println()
	fmt.Println("Thing leaderboard:")
	fmt.Println(leaderboard.RenderTable(toRows(response.Things)))
	return nil
}

func toRows(entries []boardRow) []leaderboard.Row {
	rows := make([]leaderboard.Row, len(entries))
	for i, entry := range entries {
		rows[i] = leaderboard.Row{
			Name:    entry.Name,
			Pluses:  entry.Pluses,
			Minuses: entry.Minuses,
			Net:     entry.Net,
		}
	}
	return rows
}
