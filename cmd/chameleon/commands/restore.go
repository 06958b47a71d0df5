// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
	"github.com/bureau-foundation/chameleon/lib/karma"
	"github.com/bureau-foundation/chameleon/lib/karmastore"
)

// restoreParams holds the parameters for the restore command.
type restoreParams struct {
	outputPath string
	force      bool
}

// RestoreCommand decompresses a ledger backup.
func RestoreCommand() *cli.Command {
	var params restoreParams

	return &cli.Command{
		Name:    "restore",
		Summary: "Decompress a ledger backup",
		Description: `Decompress a backup written by the service's backup job and print
the ledger JSON it holds. With --output, the ledger is written to a
file instead.

Stop the service before writing over its live ledger file: the
service owns that file while running, and a concurrent restore would
be lost on the next karma bump.`,
		Usage: "chameleon restore <backup-file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Inspect a backup",
				Command:     "chameleon restore /var/backups/chameleon/karma-20260412T070000Z-ab12cd34.json.zst",
			},
			{
				Description: "Restore the live ledger (service stopped)",
				Command:     "chameleon restore karma-20260412T070000Z-ab12cd34.json.zst --output /var/lib/chameleon/karma.json --force",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("restore", pflag.ContinueOnError)
			flagSet.StringVar(&params.outputPath, "output", "", "ledger file to write instead of stdout")
			flagSet.BoolVar(&params.force, "force", false, "overwrite an existing output file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one backup file required (got %d)", len(args))
			}
			return runRestore(&params, args[0])
		},
	}
}

func runRestore(params *restoreParams, backupPath string) error {
	data, err := karmastore.RestoreBackup(backupPath)
	if err != nil {
		return err
	}

	// Backups hold ledger JSON by construction; anything else means
	// the path points at the wrong file. Catch that before an operator
	// installs it as the live ledger.
	var items []karma.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("backup %s does not hold a karma ledger: %w", backupPath, err)
	}

	if params.outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if !params.force {
		if _, err := os.Stat(params.outputPath); err == nil {
			return fmt.Errorf("ledger file %s already exists (use --force to overwrite)", params.outputPath)
		}
	}
	if err := os.WriteFile(params.outputPath, data, 0600); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Restored %d items to %s\n", len(items), params.outputPath)
	return nil
}
