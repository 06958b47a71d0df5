// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/chameleon/lib/config"
	"github.com/bureau-foundation/chameleon/lib/sealed"
)

func TestResolveTokensFromEnvironment(t *testing.T) {
	tokens, err := resolveTokens(config.Default(), config.Env{
		BotToken: "xoxb-from-env",
		AppToken: "xapp-from-env",
	})
	if err != nil {
		t.Fatalf("resolveTokens() error: %v", err)
	}
	defer tokens.Close()

	if got := tokens.BotToken.String(); got != "xoxb-from-env" {
		t.Errorf("bot token = %q, want %q", got, "xoxb-from-env")
	}
	if got := tokens.AppToken.String(); got != "xapp-from-env" {
		t.Errorf("app token = %q, want %q", got, "xapp-from-env")
	}
}

func TestResolveTokensPartialEnvironment(t *testing.T) {
	_, err := resolveTokens(config.Default(), config.Env{BotToken: "xoxb-only"})
	if err == nil {
		t.Fatal("expected error when only SLACK_BOT_TOKEN is set")
	}
	_, err = resolveTokens(config.Default(), config.Env{AppToken: "xapp-only"})
	if err == nil {
		t.Fatal("expected error when only SLACK_APP_TOKEN is set")
	}
}

func TestResolveTokensFromFiles(t *testing.T) {
	tempDir := t.TempDir()
	botPath := filepath.Join(tempDir, "bot.token")
	appPath := filepath.Join(tempDir, "app.token")
	if err := os.WriteFile(botPath, []byte("xoxb-from-file\n"), 0600); err != nil {
		t.Fatalf("writing bot token file: %v", err)
	}
	if err := os.WriteFile(appPath, []byte("xapp-from-file\n"), 0600); err != nil {
		t.Fatalf("writing app token file: %v", err)
	}

	configuration := config.Default()
	configuration.Slack.BotTokenFile = botPath
	configuration.Slack.AppTokenFile = appPath

	tokens, err := resolveTokens(configuration, config.Env{})
	if err != nil {
		t.Fatalf("resolveTokens() error: %v", err)
	}
	defer tokens.Close()

	if got := tokens.BotToken.String(); got != "xoxb-from-file" {
		t.Errorf("bot token = %q, want %q", got, "xoxb-from-file")
	}
	if got := tokens.AppToken.String(); got != "xapp-from-file" {
		t.Errorf("app token = %q, want %q", got, "xapp-from-file")
	}
}

func TestResolveTokensPartialFiles(t *testing.T) {
	configuration := config.Default()
	configuration.Slack.BotTokenFile = filepath.Join(t.TempDir(), "bot.token")

	_, err := resolveTokens(configuration, config.Env{})
	if err == nil {
		t.Fatal("expected error when only bot_token_file is set")
	}
}

func TestResolveTokensFromSealedBundle(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	defer keypair.Close()

	ciphertext, err := sealed.SealBundle(&sealed.Bundle{
		BotToken: "xoxb-sealed",
		AppToken: "xapp-sealed",
	}, []string{keypair.PublicKey})
	if err != nil {
		t.Fatalf("SealBundle() error: %v", err)
	}

	tempDir := t.TempDir()
	bundlePath := filepath.Join(tempDir, "tokens.sealed")
	identityPath := filepath.Join(tempDir, "identity.key")
	if err := os.WriteFile(bundlePath, []byte(ciphertext+"\n"), 0600); err != nil {
		t.Fatalf("writing bundle file: %v", err)
	}
	if err := os.WriteFile(identityPath, []byte(keypair.PrivateKey.String()+"\n"), 0600); err != nil {
		t.Fatalf("writing identity file: %v", err)
	}

	configuration := config.Default()
	configuration.Slack.SealedTokenFile = bundlePath
	configuration.Slack.IdentityFile = identityPath

	tokens, err := resolveTokens(configuration, config.Env{})
	if err != nil {
		t.Fatalf("resolveTokens() error: %v", err)
	}
	defer tokens.Close()

	if got := tokens.BotToken.String(); got != "xoxb-sealed" {
		t.Errorf("bot token = %q, want %q", got, "xoxb-sealed")
	}
	if got := tokens.AppToken.String(); got != "xapp-sealed" {
		t.Errorf("app token = %q, want %q", got, "xapp-sealed")
	}
}

func TestResolveTokensEnvironmentWins(t *testing.T) {
	tempDir := t.TempDir()
	botPath := filepath.Join(tempDir, "bot.token")
	appPath := filepath.Join(tempDir, "app.token")
	os.WriteFile(botPath, []byte("xoxb-from-file"), 0600)
	os.WriteFile(appPath, []byte("xapp-from-file"), 0600)

	configuration := config.Default()
	configuration.Slack.BotTokenFile = botPath
	configuration.Slack.AppTokenFile = appPath

	tokens, err := resolveTokens(configuration, config.Env{
		BotToken: "xoxb-from-env",
		AppToken: "xapp-from-env",
	})
	if err != nil {
		t.Fatalf("resolveTokens() error: %v", err)
	}
	defer tokens.Close()

	if got := tokens.BotToken.String(); got != "xoxb-from-env" {
		t.Errorf("bot token = %q, want the environment value %q", got, "xoxb-from-env")
	}
}

func TestResolveTokensNoSource(t *testing.T) {
	_, err := resolveTokens(config.Default(), config.Env{})
	if err == nil {
		t.Fatal("expected error with no token source configured")
	}
	if !strings.Contains(err.Error(), "chameleon seal") {
		t.Errorf("error = %q, want a pointer to \"chameleon seal\"", err)
	}
}

func TestResolveSigningSecretFromEnvironment(t *testing.T) {
	buffer, err := resolveSigningSecret(config.Default(), config.Env{SigningSecret: "wigwam"})
	if err != nil {
		t.Fatalf("resolveSigningSecret() error: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "wigwam" {
		t.Errorf("signing secret = %q, want %q", got, "wigwam")
	}
}

func TestResolveSigningSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signing-secret")
	if err := os.WriteFile(path, []byte("wigwam-from-file\n"), 0600); err != nil {
		t.Fatalf("writing signing secret file: %v", err)
	}

	configuration := config.Default()
	configuration.Slack.SigningSecretFile = path

	buffer, err := resolveSigningSecret(configuration, config.Env{})
	if err != nil {
		t.Fatalf("resolveSigningSecret() error: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "wigwam-from-file" {
		t.Errorf("signing secret = %q, want %q", got, "wigwam-from-file")
	}
}

func TestResolveSigningSecretUnconfigured(t *testing.T) {
	buffer, err := resolveSigningSecret(config.Default(), config.Env{})
	if err != nil {
		t.Fatalf("resolveSigningSecret() error: %v", err)
	}
	if buffer != nil {
		t.Errorf("signing secret = %v, want nil when unconfigured", buffer)
	}
}
