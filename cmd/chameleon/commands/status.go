// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
)

// statusParams holds the parameters for the status command.
type statusParams struct {
	socket     adminSocket
	jsonOutput bool
}

// StatusCommand reports whether the service is up, and its vitals.
func StatusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Show service liveness and vitals",
		Description: `Check that chameleon-service is running and report its uptime,
version, and the number of tracked items.

Exits 1 when the service is unreachable, so the command doubles as a
health probe in scripts.`,
		Usage: "chameleon status [flags]",
		Examples: []cli.Example{
			{
				Description: "Check the service",
				Command:     "chameleon status",
			},
			{
				Description: "Health probe with JSON output",
				Command:     "chameleon status --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			params.socket.addFlag(flagSet)
			flagSet.BoolVar(&params.jsonOutput, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runStatus(&params)
		},
	}
}

// statusResponse mirrors the service's status action response.
type statusResponse struct {
	UptimeSeconds int    `cbor:"uptime_seconds"`
	Items         int    `cbor:"items"`
	Version       string `cbor:"version"`
}

// statusResult is the JSON output of the status command.
type statusResult struct {
	UptimeSeconds int    `json:"uptime_seconds"`
	Items         int    `json:"items"`
	Version       string `json:"version"`
}

func runStatus(params *statusParams) error {
	ctx, cancel := callContext()
	defer cancel()

	var response statusResponse
	if err := params.socket.client().Call(ctx, "status", nil, &response); err != nil {
		// A handled outcome, not an error to dump: the probe answer
		// is "down", and the exit code carries it.
		fmt.Fprintf(os.Stderr, "chameleon-service unreachable: %v\n", err)
		return &cli.ExitError{Code: 1}
	}

	if params.jsonOutput {
		return cli.WriteJSON(statusResult{
			UptimeSeconds: response.UptimeSeconds,
			Items:         response.Items,
			Version:       response.Version,
		})
	}

	uptime := time.Duration(response.UptimeSeconds) * time.Second
	fmt.Printf("chameleon-service: ok\n")
	fmt.Printf("  Version: %s\n", response.Version)
	fmt.Printf("  Uptime:  %s\n", formatDuration(uptime))
	fmt.Printf("  Items:   %d\n", response.Items)
	return nil
}

// formatDuration formats a duration as a human-readable string with
// days, hours, minutes, and seconds.
func formatDuration(duration time.Duration) string {
	days := int(duration.Hours()) / 24
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
