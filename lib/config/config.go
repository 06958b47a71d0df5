// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/chameleon/lib/cron"
)

// DefaultAdminSocket is where the service listens for CLI requests
// when admin.socket_path is not configured. The chameleon CLI uses
// the same default for its --socket flag.
const DefaultAdminSocket = "/run/chameleon/admin.sock"

// Config is the service configuration for chameleon.
type Config struct {
	// Ledger configures the karma file and its backups.
	Ledger LedgerConfig `yaml:"ledger"`

	// Slack configures the platform connection.
	Slack SlackConfig `yaml:"slack"`

	// Admin configures the local admin socket.
	Admin AdminConfig `yaml:"admin"`

	// Status configures the HTTP status endpoint. An empty listen
	// address disables it.
	Status StatusConfig `yaml:"status"`

	// Digest configures scheduled leaderboard posts. An empty
	// schedule disables them.
	Digest DigestConfig `yaml:"digest"`

	// Phrases optionally replaces the built-in snark tables.
	Phrases PhrasesConfig `yaml:"phrases"`
}

// LedgerConfig configures the karma ledger file.
type LedgerConfig struct {
	// Path is the karma JSON file. Created on first run.
	Path string `yaml:"path"`

	// BackupDir receives compressed ledger backups. Empty disables
	// backups.
	BackupDir string `yaml:"backup_dir"`

	// BackupSchedule is a 5-field cron expression (UTC) for backups.
	// Default: daily at 03:00.
	BackupSchedule string `yaml:"backup_schedule"`

	// BackupKeep is how many backups to retain. 0 keeps all.
	BackupKeep int `yaml:"backup_keep"`
}

// SlackConfig configures the platform connection.
type SlackConfig struct {
	// APIURL is the Web API base. Overridden in tests; the default
	// is the public endpoint.
	APIURL string `yaml:"api_url"`

	// BotTokenFile and AppTokenFile hold the plaintext tokens, one
	// per line. Ignored when the corresponding environment variable
	// is set or a sealed bundle is configured.
	BotTokenFile string `yaml:"bot_token_file"`
	AppTokenFile string `yaml:"app_token_file"`

	// SealedTokenFile is an age-encrypted token bundle written by
	// "chameleon seal"; IdentityFile is the age identity that
	// decrypts it.
	SealedTokenFile string `yaml:"sealed_token_file"`
	IdentityFile    string `yaml:"identity_file"`

	// SigningSecretFile holds the app's signing secret. Setting it
	// (or SLACK_SIGNING_SECRET) mounts an Events API webhook
	// receiver on the status server, for workspaces that deliver
	// events over HTTP instead of Socket Mode. Requires
	// status.listen_address.
	SigningSecretFile string `yaml:"signing_secret_file"`
}

// AdminConfig configures the local admin socket.
type AdminConfig struct {
	// SocketPath is the Unix socket the CLI talks to.
	SocketPath string `yaml:"socket_path"`
}

// StatusConfig configures the HTTP status endpoint.
type StatusConfig struct {
	// ListenAddress is the host:port to serve /healthz and
	// /leaderboard on. Empty disables the server.
	ListenAddress string `yaml:"listen_address"`
}

// DigestConfig configures scheduled leaderboard posts.
type DigestConfig struct {
	// Channel is where the digest is posted.
	Channel string `yaml:"channel"`

	// Schedule is a 5-field cron expression (UTC). Empty disables
	// the digest.
	Schedule string `yaml:"schedule"`
}

// PhrasesConfig points at an optional phrase override file.
type PhrasesConfig struct {
	// File is a JSONC file with "positive" and "negative" arrays.
	// Empty keeps the built-in tables.
	File string `yaml:"file"`
}

// Default returns the baseline configuration the file is loaded over.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Path:           "${HOME}/.local/state/chameleon/karma.json",
			BackupSchedule: "0 3 * * *",
			BackupKeep:     14,
		},
		Slack: SlackConfig{
			APIURL: "https://slack.com/api/",
		},
		Admin: AdminConfig{
			SocketPath: DefaultAdminSocket,
		},
	}
}

// Load loads configuration from the CHAMELEON_CONFIG environment
// variable. Fails when the variable is unset; there are no fallbacks.
func Load() (*Config, error) {
	path := os.Getenv("CHAMELEON_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("CHAMELEON_CONFIG environment variable not set; " +
			"set it to the path of your chameleon.yaml config file, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path. The file is the single
// source of truth; the only expansion performed is ${VAR} and
// ${VAR:-default} in path fields, for portability across homes.
func LoadFile(path string) (*Config, error) {
	configuration := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, configuration); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	configuration.expandVariables()
	return configuration, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	variables := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Ledger.Path = expandVars(c.Ledger.Path, variables)
	c.Ledger.BackupDir = expandVars(c.Ledger.BackupDir, variables)
	c.Slack.BotTokenFile = expandVars(c.Slack.BotTokenFile, variables)
	c.Slack.AppTokenFile = expandVars(c.Slack.AppTokenFile, variables)
	c.Slack.SealedTokenFile = expandVars(c.Slack.SealedTokenFile, variables)
	c.Slack.IdentityFile = expandVars(c.Slack.IdentityFile, variables)
	c.Slack.SigningSecretFile = expandVars(c.Slack.SigningSecretFile, variables)
	c.Admin.SocketPath = expandVars(c.Admin.SocketPath, variables)
	c.Phrases.File = expandVars(c.Phrases.File, variables)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, variables map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := variables[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem at
// once.
func (c *Config) Validate() error {
	var errs []error

	if c.Ledger.Path == "" {
		errs = append(errs, fmt.Errorf("ledger.path is required"))
	}
	if c.Ledger.BackupKeep < 0 {
		errs = append(errs, fmt.Errorf("ledger.backup_keep must not be negative"))
	}
	if c.Ledger.BackupDir != "" && c.Ledger.BackupSchedule != "" {
		if _, err := cron.Parse(c.Ledger.BackupSchedule); err != nil {
			errs = append(errs, fmt.Errorf("ledger.backup_schedule: %w", err))
		}
	}

	if c.Slack.APIURL == "" {
		errs = append(errs, fmt.Errorf("slack.api_url is required"))
	}
	if c.Slack.SealedTokenFile != "" && c.Slack.IdentityFile == "" {
		errs = append(errs, fmt.Errorf("slack.identity_file is required when slack.sealed_token_file is set"))
	}
	if c.Slack.SigningSecretFile != "" && c.Status.ListenAddress == "" {
		errs = append(errs, fmt.Errorf("status.listen_address is required when slack.signing_secret_file is set (the webhook receiver mounts on the status server)"))
	}

	if c.Admin.SocketPath == "" {
		errs = append(errs, fmt.Errorf("admin.socket_path is required"))
	}

	if c.Digest.Schedule != "" {
		if _, err := cron.Parse(c.Digest.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("digest.schedule: %w", err))
		}
		if c.Digest.Channel == "" {
			errs = append(errs, fmt.Errorf("digest.channel is required when digest.schedule is set"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
