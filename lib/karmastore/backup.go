// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmastore

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// Backup file names sort lexically in chronological order:
//
//	karma-20260412T070000Z-ab12cd34.json.zst
//
// The trailing component is the first 8 hex characters of the BLAKE3
// digest of the uncompressed ledger bytes, so an unchanged ledger is
// recognizable without decompressing anything.
const (
	backupPrefix = "karma-"
	backupSuffix = ".json.zst"
	backupStamp  = "20060102T150405Z"
)

// zstdEncoder and zstdDecoder are reused across calls. Both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("karmastore: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("karmastore: zstd decoder initialization failed: " + err.Error())
	}
}

// Backup writes a compressed copy of the ledger file into directory,
// creating it if needed. When the newest existing backup carries the
// same content digest, the ledger has not changed and nothing is
// written. After a successful write, backups beyond keep are pruned,
// oldest first (keep <= 0 disables pruning).
//
// Returns the name of the written file, or "" when the backup was
// skipped as unchanged.
func (s *Store) Backup(directory string, now time.Time, keep int) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("reading ledger file: %w", err)
	}

	digest := blake3.Sum256(data)
	digestPrefix := hex.EncodeToString(digest[:4])

	if err := os.MkdirAll(directory, 0700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	existing, err := listBackups(directory)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 && backupDigest(existing[len(existing)-1]) == digestPrefix {
		return "", nil
	}

	name := backupPrefix + now.UTC().Format(backupStamp) + "-" + digestPrefix + backupSuffix
	compressed := zstdEncoder.EncodeAll(data, nil)
	if err := writeFileAtomic(filepath.Join(directory, name), compressed, 0600); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", name, err)
	}

	if keep > 0 {
		existing = append(existing, name)
		sort.Strings(existing)
		for _, stale := range existing[:max(0, len(existing)-keep)] {
			if err := os.Remove(filepath.Join(directory, stale)); err != nil {
				return name, fmt.Errorf("pruning backup %s: %w", stale, err)
			}
		}
	}
	return name, nil
}

// RestoreBackup decompresses the named backup file and returns the
// ledger bytes it holds.
func RestoreBackup(path string) ([]byte, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	data, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing backup %s: %w", path, err)
	}
	return data, nil
}

// listBackups returns the backup file names in directory, sorted
// lexically (which is chronological given the name format).
func listBackups(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing backup directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// backupDigest extracts the digest component of a backup file name,
// or "" when the name does not follow the format.
func backupDigest(name string) string {
	trimmed := strings.TrimPrefix(name, backupPrefix)
	trimmed = strings.TrimSuffix(trimmed, backupSuffix)
	_, digest, found := strings.Cut(trimmed, "-")
	if !found {
		return ""
	}
	return digest
}
