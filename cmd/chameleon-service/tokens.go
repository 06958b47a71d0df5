// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bureau-foundation/chameleon/lib/config"
	"github.com/bureau-foundation/chameleon/lib/sealed"
	"github.com/bureau-foundation/chameleon/lib/secret"
)

// resolveTokens loads the Slack bot and app tokens from the highest-
// priority source that is configured:
//
//  1. SLACK_BOT_TOKEN / SLACK_APP_TOKEN environment variables
//  2. plaintext token files from the configuration
//  3. the sealed bundle, decrypted with the identity file
//
// A source must supply both tokens; mixing sources is an error, since
// a half-applied override is invariably a deployment mistake.
func resolveTokens(configuration *config.Config, environment config.Env) (*sealed.Tokens, error) {
	if environment.BotToken != "" || environment.AppToken != "" {
		if environment.BotToken == "" {
			return nil, fmt.Errorf("SLACK_APP_TOKEN is set but SLACK_BOT_TOKEN is not")
		}
		if environment.AppToken == "" {
			return nil, fmt.Errorf("SLACK_BOT_TOKEN is set but SLACK_APP_TOKEN is not")
		}
		return tokensFromStrings(environment.BotToken, environment.AppToken)
	}

	slackConfig := configuration.Slack
	if slackConfig.BotTokenFile != "" || slackConfig.AppTokenFile != "" {
		if slackConfig.BotTokenFile == "" {
			return nil, fmt.Errorf("slack.app_token_file is set but slack.bot_token_file is not")
		}
		if slackConfig.AppTokenFile == "" {
			return nil, fmt.Errorf("slack.bot_token_file is set but slack.app_token_file is not")
		}
		return tokensFromFiles(slackConfig.BotTokenFile, slackConfig.AppTokenFile)
	}

	if slackConfig.SealedTokenFile != "" {
		return tokensFromBundle(slackConfig.SealedTokenFile, slackConfig.IdentityFile)
	}

	return nil, fmt.Errorf("no slack tokens configured: set SLACK_BOT_TOKEN and " +
		"SLACK_APP_TOKEN, configure token files, or configure a sealed bundle " +
		"(see \"chameleon seal\")")
}

// resolveSigningSecret loads the Events API signing secret, env
// variable over file, or returns nil when webhook delivery is not
// configured at all.
func resolveSigningSecret(configuration *config.Config, environment config.Env) (*secret.Buffer, error) {
	if environment.SigningSecret != "" {
		buffer, err := secret.NewFromBytes([]byte(environment.SigningSecret))
		if err != nil {
			return nil, fmt.Errorf("storing signing secret: %w", err)
		}
		return buffer, nil
	}
	if path := configuration.Slack.SigningSecretFile; path != "" {
		buffer, err := secret.ReadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("reading signing secret file: %w", err)
		}
		return buffer, nil
	}
	return nil, nil
}

func tokensFromStrings(botToken, appToken string) (*sealed.Tokens, error) {
	botBuffer, err := secret.NewFromBytes([]byte(botToken))
	if err != nil {
		return nil, fmt.Errorf("storing bot token: %w", err)
	}
	appBuffer, err := secret.NewFromBytes([]byte(appToken))
	if err != nil {
		botBuffer.Close()
		return nil, fmt.Errorf("storing app token: %w", err)
	}
	return &sealed.Tokens{BotToken: botBuffer, AppToken: appBuffer}, nil
}

func tokensFromFiles(botTokenPath, appTokenPath string) (*sealed.Tokens, error) {
	botBuffer, err := secret.ReadFromPath(botTokenPath)
	if err != nil {
		return nil, fmt.Errorf("reading bot token file: %w", err)
	}
	appBuffer, err := secret.ReadFromPath(appTokenPath)
	if err != nil {
		botBuffer.Close()
		return nil, fmt.Errorf("reading app token file: %w", err)
	}
	return &sealed.Tokens{BotToken: botBuffer, AppToken: appBuffer}, nil
}

func tokensFromBundle(bundlePath, identityPath string) (*sealed.Tokens, error) {
	identity, err := secret.ReadFromPath(identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity file: %w", err)
	}
	defer identity.Close()
	if err := sealed.ParsePrivateKey(identity); err != nil {
		return nil, fmt.Errorf("identity file %s: %w", identityPath, err)
	}

	ciphertext, err := os.ReadFile(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("reading sealed token bundle: %w", err)
	}

	tokens, err := sealed.OpenBundle(strings.TrimSpace(string(ciphertext)), identity)
	if err != nil {
		return nil, fmt.Errorf("opening sealed token bundle %s: %w", bundlePath, err)
	}
	return tokens, nil
}
