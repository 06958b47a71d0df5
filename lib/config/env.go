// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env carries the process-environment surface of the service. The
// token variables are the historical deployment interface and win
// over any file-based token source when set.
type Env struct {
	// ConfigPath is the configuration file, CHAMELEON_CONFIG.
	ConfigPath string `env:"CHAMELEON_CONFIG"`

	// BotToken is the xoxb- Web API token.
	BotToken string `env:"SLACK_BOT_TOKEN"`

	// AppToken is the xapp- Socket Mode token.
	AppToken string `env:"SLACK_APP_TOKEN"`

	// SigningSecret is the Events API signing secret, for webhook
	// delivery. Wins over slack.signing_secret_file.
	SigningSecret string `env:"SLACK_SIGNING_SECRET"`

	// LedgerPath overrides ledger.path from the file.
	LedgerPath string `env:"KARMA_FILE_PATH"`
}

// ParseEnv reads the environment variables into an Env.
func ParseEnv() (Env, error) {
	var environment Env
	if err := env.Parse(&environment); err != nil {
		return Env{}, fmt.Errorf("parsing environment: %w", err)
	}
	return environment, nil
}
