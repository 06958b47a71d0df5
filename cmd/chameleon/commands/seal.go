// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/chameleon/cmd/chameleon/cli"
	"github.com/bureau-foundation/chameleon/lib/sealed"
	"github.com/bureau-foundation/chameleon/lib/secret"
)

// sealParams holds the parameters for the seal command.
type sealParams struct {
	recipients   []string
	identityPath string
	outputPath   string
	force        bool
}

// SealCommand encrypts the Slack tokens into the sealed bundle the
// service starts from.
func SealCommand() *cli.Command {
	var params sealParams

	return &cli.Command{
		Name:    "seal",
		Summary: "Seal Slack tokens for the service",
		Description: `Read the Slack bot token (xoxb-...) and app token (xapp-...) and
write them as an age-encrypted bundle. On a terminal the tokens are
prompted with echo disabled; with stdin piped, the bot token and app
token are read as the first two lines.

Recipients come from --recipient (an age public key, repeatable)
and/or --identity (derive the public key from an identity file, as
written by "chameleon keygen --output"). The service decrypts the
bundle at startup with its identity file.`,
		Usage: "chameleon seal --output <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Seal to the service's own identity",
				Command:     "chameleon seal --identity /etc/chameleon/identity.key --output /etc/chameleon/tokens.sealed",
			},
			{
				Description: "Seal to an explicit key plus an operator backup key",
				Command:     "chameleon seal --recipient age1service... --recipient age1backup... --output tokens.sealed",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("seal", pflag.ContinueOnError)
			flagSet.StringArrayVar(&params.recipients, "recipient", nil, "age public key to seal to (repeatable)")
			flagSet.StringVar(&params.identityPath, "identity", "", "derive a recipient from this identity file")
			flagSet.StringVar(&params.outputPath, "output", "", "sealed bundle file to write (required)")
			flagSet.BoolVar(&params.force, "force", false, "overwrite an existing output file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return runSeal(&params)
		},
	}
}

func runSeal(params *sealParams) error {
	if params.outputPath == "" {
		return fmt.Errorf("--output is required")
	}

	recipients := append([]string(nil), params.recipients...)
	if params.identityPath != "" {
		identity, err := secret.ReadFromPath(params.identityPath)
		if err != nil {
			return fmt.Errorf("reading identity file: %w", err)
		}
		defer identity.Close()

		recipient, err := sealed.RecipientFromIdentity(identity)
		if err != nil {
			return fmt.Errorf("deriving recipient from %s: %w", params.identityPath, err)
		}
		recipients = append(recipients, recipient)
	}
	if len(recipients) == 0 {
		return fmt.Errorf("at least one --recipient or --identity is required")
	}
	for _, recipient := range recipients {
		if err := sealed.ParsePublicKey(recipient); err != nil {
			return fmt.Errorf("recipient %q: %w", recipient, err)
		}
	}

	if !params.force {
		if _, err := os.Stat(params.outputPath); err == nil {
			return fmt.Errorf("output file %s already exists (use --force to overwrite)", params.outputPath)
		}
	}

	botToken, appToken, err := readTokens()
	if err != nil {
		return err
	}
	defer botToken.Close()
	defer appToken.Close()

	// The Bundle strings are brief heap copies; SealBundle zeros its
	// JSON intermediate and the ciphertext is safe to store.
	ciphertext, err := sealed.SealBundle(&sealed.Bundle{
		BotToken: botToken.String(),
		AppToken: appToken.String(),
	}, recipients)
	if err != nil {
		return fmt.Errorf("sealing tokens: %w", err)
	}

	if err := os.WriteFile(params.outputPath, []byte(ciphertext+"\n"), 0600); err != nil {
		return fmt.Errorf("writing sealed bundle: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Sealed token bundle written to %s\n", params.outputPath)
	fmt.Fprintf(os.Stderr, "Recipients:\n%s\n", sealed.FormatRecipients(recipients))
	return nil
}

// readTokens collects the bot and app tokens: prompted with echo
// disabled on a terminal, read as two lines when stdin is piped.
func readTokens() (botToken, appToken *secret.Buffer, err error) {
	stdinFd := int(os.Stdin.Fd())

	if !term.IsTerminal(stdinFd) {
		scanner := bufio.NewScanner(os.Stdin)
		readLine := func(name string) (*secret.Buffer, error) {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("reading %s: %w", name, err)
				}
				return nil, fmt.Errorf("missing %s on stdin", name)
			}
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				return nil, fmt.Errorf("%s is empty", name)
			}
			return secret.NewFromBytes(line)
		}

		botToken, err = readLine("bot token")
		if err != nil {
			return nil, nil, err
		}
		appToken, err = readLine("app token")
		if err != nil {
			botToken.Close()
			return nil, nil, err
		}
		return botToken, appToken, nil
	}

	prompt := func(label string) (*secret.Buffer, error) {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		tokenBytes, err := term.ReadPassword(stdinFd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", label, err)
		}

		trimmed := bytes.TrimSpace(tokenBytes)
		if len(trimmed) == 0 {
			secret.Zero(tokenBytes)
			return nil, fmt.Errorf("%s is empty", label)
		}
		buffer, err := secret.NewFromBytes(trimmed)
		secret.Zero(tokenBytes)
		if err != nil {
			return nil, err
		}
		return buffer, nil
	}

	botToken, err = prompt("Bot token (xoxb-...)")
	if err != nil {
		return nil, nil, err
	}
	appToken, err = prompt("App token (xapp-...)")
	if err != nil {
		botToken.Close()
		return nil, nil, err
	}
	return botToken, appToken, nil
}
