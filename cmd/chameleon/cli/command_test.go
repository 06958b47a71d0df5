// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "chameleon",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "karma",
				Run: func(args []string) error {
					called = "karma"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"karma"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "karma" {
		t.Errorf("dispatched to %q, want %q", called, "karma")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "chameleon",
		Subcommands: []*Command{
			{
				Name: "token",
				Subcommands: []*Command{
					{
						Name: "seal",
						Run: func(args []string) error {
							called = "token seal"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"token", "seal", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "token seal" {
		t.Errorf("dispatched to %q, want %q", called, "token seal")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var socketPath string
	var item string

	command := &Command{
		Name: "karma",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("karma", pflag.ContinueOnError)
			flagSet.StringVar(&socketPath, "socket", "/default.sock", "socket path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				item = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--socket", "/custom.sock", "coffee"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if socketPath != "/custom.sock" {
		t.Errorf("socketPath = %q, want %q", socketPath, "/custom.sock")
	}
	if item != "coffee" {
		t.Errorf("item = %q, want %q", item, "coffee")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "leaderboard",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("leaderboard", pflag.ContinueOnError)
			flagSet.Bool("json", false, "output as JSON")
			flagSet.String("socket", "/default.sock", "socket path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--sokcet", "/x.sock"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --socket") {
		t.Errorf("error = %q, want suggestion for '--socket'", errStr)
	}
	// Suggestion should be on the same line as the error, not buried.
	if !strings.Contains(errStr, "sokcet") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	// Should include a pointer to --help.
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "leaderboard",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("leaderboard", pflag.ContinueOnError)
			flagSet.Bool("json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "chameleon",
		Subcommands: []*Command{
			{Name: "karma"},
			{Name: "leaderboard"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"kamra"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"karma\"") {
		t.Errorf("error = %q, want suggestion for 'karma'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "chameleon",
		Subcommands: []*Command{
			{Name: "karma"},
			{Name: "leaderboard"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "chameleon",
				Summary: "karma bot operations",
				Subcommands: []*Command{
					{Name: "karma", Summary: "Look up an item's standing"},
				},
			}

			err := root.Execute([]string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "chameleon",
		Subcommands: []*Command{
			{Name: "karma", Summary: "Look up an item's standing"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "chameleon",
		Description: "Karma bot operator CLI.",
		Subcommands: []*Command{
			{Name: "karma", Summary: "Look up an item's standing"},
			{Name: "leaderboard", Summary: "Print the rendered leaderboards"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Look up coffee's karma",
				Command:     "chameleon karma coffee",
			},
			{
				Description: "Seal Slack tokens for the service",
				Command:     "chameleon seal --recipient age1... --output tokens.sealed",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Karma bot operator CLI.",
		"Usage:",
		"chameleon <command> [flags]",
		"Commands:",
		"karma",
		"Look up an item's standing",
		"leaderboard",
		"Print the rendered leaderboards",
		"Examples:",
		"chameleon karma coffee",
		"chameleon seal",
		"Run 'chameleon <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "karma",
		Summary: "Look up an item's standing",
		Usage:   "chameleon karma <item> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("karma", pflag.ContinueOnError)
			flagSet.String("socket", "/run/chameleon/admin.sock", "admin socket path")
			flagSet.Bool("json", false, "output as JSON")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"chameleon karma <item> [flags]",
		"Flags:",
		"socket",
		"json",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "chameleon"}
	token := &Command{Name: "token", parent: root}
	seal := &Command{Name: "seal", parent: token}

	if got := root.fullName(); got != "chameleon" {
		t.Errorf("root.fullName() = %q, want %q", got, "chameleon")
	}
	if got := token.fullName(); got != "chameleon token" {
		t.Errorf("token.fullName() = %q, want %q", got, "chameleon token")
	}
	if got := seal.fullName(); got != "chameleon token seal" {
		t.Errorf("seal.fullName() = %q, want %q", got, "chameleon token seal")
	}
}
