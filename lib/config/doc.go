// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads chameleon service configuration.
//
// Configuration comes from a single YAML file named by the
// CHAMELEON_CONFIG environment variable or a --config flag. There is
// no automatic discovery: deterministic, auditable configuration with
// no hidden overrides.
//
// The file is unmarshaled over [Default], then ${VAR} and
// ${VAR:-default} references in path fields are expanded, then
// [Config.Validate] reports every problem at once via errors.Join.
//
// Secrets never live in the file. Tokens arrive either through the
// historical environment variables (SLACK_BOT_TOKEN, SLACK_APP_TOKEN,
// parsed by [ParseEnv]) or through the sealed token bundle the file
// points at.
package config
