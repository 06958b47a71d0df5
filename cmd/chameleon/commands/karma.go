// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
	"github.com/bureau-foundation/chameleon/lib/karma"
)

// karmaParams holds the parameters for the karma command.
type karmaParams struct {
	socket     adminSocket
	jsonOutput bool
}

// KarmaCommand looks up a single item's standing via the admin socket.
func KarmaCommand() *cli.Command {
	var params karmaParams

	return &cli.Command{
		Name:    "karma",
		Summary: "Look up an item's standing",
		Description: `Print the full standing line for one tracked item: pluses, minuses,
and the net score. Items that have never been bumped report zero
counts.`,
		Usage: "chameleon karma <item> [flags]",
		Examples: []cli.Example{
			{
				Description: "Look up coffee's karma",
				Command:     "chameleon karma coffee",
			},
			{
				Description: "Machine-readable output",
				Command:     "chameleon karma coffee --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("karma", pflag.ContinueOnError)
			params.socket.addFlag(flagSet)
			flagSet.BoolVar(&params.jsonOutput, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one item required (got %d)", len(args))
			}
			return runKarma(&params, args[0])
		},
	}
}

// karmaResponse mirrors the service's karma action response.
type karmaResponse struct {
	Name    string `cbor:"name"`
	Pluses  int    `cbor:"pluses"`
	Minuses int    `cbor:"minuses"`
	Net     int    `cbor:"net"`
	Tracked bool   `cbor:"tracked"`
}

// karmaResult is the JSON output of the karma command.
type karmaResult struct {
	Name    string `json:"name"`
	Pluses  int    `json:"pluses"`
	Minuses int    `json:"minuses"`
	Net     int    `json:"net"`
	Tracked bool   `json:"tracked"`
}

func runKarma(params *karmaParams, item string) error {
	ctx, cancel := callContext()
	defer cancel()

	var response karmaResponse
	err := params.socket.client().Call(ctx, "karma", map[string]any{"item": item}, &response)
	if err != nil {
		return fmt.Errorf("fetching karma for %q: %w", item, err)
	}

	if params.jsonOutput {
		return cli.WriteJSON(karmaResult{
			Name:    response.Name,
			Pluses:  response.Pluses,
			Minuses: response.Minuses,
			Net:     response.Net,
			Tracked: response.Tracked,
		})
	}

	standing := karma.Item{
		Name:    response.Name,
		Pluses:  response.Pluses,
		Minuses: response.Minuses,
	}
	fmt.Println(standing.Describe())
	return nil
}
