// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/chameleon/lib/karma"
)

// Store reads and writes one karma ledger file.
type Store struct {
	path string
}

// New returns a store for the ledger file at path. The parent
// directory must already exist.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file location.
func (s *Store) Path() string { return s.path }

// Load reads the ledger file at startup. When the file does not exist
// it is created holding an empty array, so a fresh deployment starts
// clean without manual setup. Anything unparseable, including a
// zero-length file, is an error: a ledger that existed but cannot be
// read back should stop the service rather than silently reset
// everyone's karma.
func (s *Store) Load() ([]karma.Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := s.Save(nil); err != nil {
			return nil, fmt.Errorf("creating ledger file: %w", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}

	items, err := parseLedger(data)
	if err != nil {
		return nil, fmt.Errorf("parsing ledger file %s: %w", s.path, err)
	}
	return items, nil
}

// Snapshot reads the ledger for display. Unlike Load, a missing or
// empty file simply means there are no standings yet: both return
// (nil, nil). A non-empty file that fails to parse is still an error.
func (s *Store) Snapshot() ([]karma.Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	items, err := parseLedger(data)
	if err != nil {
		return nil, fmt.Errorf("parsing ledger file %s: %w", s.path, err)
	}
	return items, nil
}

// Save atomically replaces the ledger file with items. A nil slice
// writes the empty array.
func (s *Store) Save(items []karma.Item) error {
	if items == nil {
		items = []karma.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	// Trailing newline for clean file content.
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	return nil
}

func parseLedger(data []byte) ([]karma.Item, error) {
	var items []karma.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// writeFileAtomic writes data to a temporary file in the same
// directory, fsyncs it, renames it over path, then syncs the parent
// directory so the rename survives power loss.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	// Write, sync, close, in that order. If any step fails, remove
	// the temporary file and report the first error.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming into place: %w", err)
	}

	if parent, err := os.Open(filepath.Dir(path)); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}
