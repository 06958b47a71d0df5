// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxSecretSize caps how much ReadFromPath will consume. Slack tokens
// and age identities are under a kilobyte; anything past this is a
// wrong file, not a secret.
const maxSecretSize = 1 << 20

// ReadFromPath loads a secret from the file at path, or from stdin
// when path is "-". Surrounding whitespace (including the trailing
// newline every editor adds) is trimmed. Every intermediate copy is
// zeroed; the secret ends up only in the returned Buffer, which the
// caller must Close.
func ReadFromPath(path string) (*Buffer, error) {
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		Zero(raw)
		return nil, fmt.Errorf("secret: %s is empty", describeSource(path))
	}

	buffer, err := NewFromBytes(trimmed)
	// trimmed aliases raw, so NewFromBytes zeroed the middle; this
	// clears the trimmed whitespace around it.
	Zero(raw)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

// readRaw reads the full secret source, bounded by maxSecretSize.
func readRaw(path string) ([]byte, error) {
	var source io.Reader
	if path == "-" {
		source = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("secret: %w", err)
		}
		defer file.Close()
		source = file
	}

	raw, err := io.ReadAll(io.LimitReader(source, maxSecretSize+1))
	if err != nil {
		return nil, fmt.Errorf("secret: reading %s: %w", describeSource(path), err)
	}
	if len(raw) > maxSecretSize {
		Zero(raw)
		return nil, errors.New("secret: source exceeds 1 MiB, refusing to treat it as a secret")
	}
	return raw, nil
}

func describeSource(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
