// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
)

// statsParams holds the parameters for the stats command.
type statsParams struct {
	socket     adminSocket
	jsonOutput bool
}

// StatsCommand prints aggregate ledger counters.
func StatsCommand() *cli.Command {
	var params statsParams

	return &cli.Command{
		Name:    "stats",
		Summary: "Show aggregate ledger counters",
		Description: `Print totals across the whole ledger: tracked items, plus and minus
counts, and the overall net score.`,
		Usage: "chameleon stats [flags]",
		Examples: []cli.Example{
			{
				Description: "Print ledger totals",
				Command:     "chameleon stats",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("stats", pflag.ContinueOnError)
			params.socket.addFlag(flagSet)
			flagSet.BoolVar(&params.jsonOutput, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runStats(&params)
		},
	}
}

// statsResponse mirrors the service's stats action response.
type statsResponse struct {
	Items   int `cbor:"items"`
	Pluses  int `cbor:"pluses"`
	Minuses int `cbor:"minuses"`
	Net     int `cbor:"net"`
}

// statsResult is the JSON output of the stats command.
type statsResult struct {
	Items   int `json:"items"`
	Pluses  int `json:"pluses"`
	Minuses int `json:"minuses"`
	Net     int `json:"net"`
}

func runStats(params *statsParams) error {
	ctx, cancel := callContext()
	defer cancel()

	var response statsResponse
	if err := params.socket.client().Call(ctx, "stats", nil, &response); err != nil {
		return fmt.Errorf("fetching stats: %w", err)
	}

	if params.jsonOutput {
		return cli.WriteJSON(statsResult{
			Items:   response.Items,
			Pluses:  response.Pluses,
			Minuses: response.Minuses,
			Net:     response.Net,
		})
	}

	fmt.Printf("Items:   %d\n", response.Items)
	fmt.Printf("Pluses:  %d\n", response.Pluses)
	fmt.Printf("Minuses: %d\n", response.Minuses)
	fmt.Printf("Net:     %d\n", response.Net)
	return nil
}
