// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
	"github.com/bureau-foundation/chameleon/lib/sealed"
)

// keygenParams holds the parameters for the keygen command.
type keygenParams struct {
	outputPath string
	force      bool
}

// KeygenCommand generates the service's age identity.
func KeygenCommand() *cli.Command {
	var params keygenParams

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age identity for token sealing",
		Description: `Generate an age x25519 keypair. With --output, the private key is
written to the identity file (mode 0600) the service reads at
startup; without it, the private key goes to stderr for manual
safekeeping. The public key always goes to stdout — pass it to
"chameleon seal --recipient", or skip tracking it and point seal at
the identity file with --identity.`,
		Usage: "chameleon keygen [flags]",
		Examples: []cli.Example{
			{
				Description: "Write the service identity file",
				Command:     "chameleon keygen --output /etc/chameleon/identity.key",
			},
			{
				Description: "Print the keypair without writing anything",
				Command:     "chameleon keygen",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flagSet.StringVar(&params.outputPath, "output", "", "identity file to write (private key, mode 0600)")
			flagSet.BoolVar(&params.force, "force", false, "overwrite an existing identity file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runKeygen(&params)
		},
	}
}

func runKeygen(params *keygenParams) error {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return fmt.Errorf("generating keypair: %w", err)
	}
	defer keypair.Close()

	if params.outputPath == "" {
		fmt.Fprintf(os.Stderr, "# Private key (keep this secret — store securely):\n")
		fmt.Fprintf(os.Stderr, "%s\n", keypair.PrivateKey.String())
		fmt.Fprintf(os.Stdout, "%s\n", keypair.PublicKey)
		return nil
	}

	if !params.force {
		if _, err := os.Stat(params.outputPath); err == nil {
			return fmt.Errorf("identity file %s already exists (use --force to overwrite)", params.outputPath)
		}
	}
	if err := os.WriteFile(params.outputPath, []byte(keypair.PrivateKey.String()+"\n"), 0600); err != nil {
		return fmt.Errorf("writing identity file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote identity to %s\n", params.outputPath)
	fmt.Fprintf(os.Stdout, "%s\n", keypair.PublicKey)
	return nil
}
