// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karmastore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/chameleon/lib/karma"
)

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.json")
	store := New(path)

	items, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Load returned %d items, want 0", len(items))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("created file holds %q, want %q", got, "[]")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "karma.json"))
	want := []karma.Item{
		{Name: "<@U123>", Pluses: 7, Minuses: 2},
		{Name: "cake", Pluses: 5},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load returned %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, err := New(path).Load(); err == nil {
		t.Fatal("Load on malformed file = nil, want error")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	// A zero-length file means a ledger existed and was lost, not a
	// fresh deployment. Refusing to parse it stops the service before
	// it overwrites anything.
	path := filepath.Join(t.TempDir(), "karma.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, err := New(path).Load(); err == nil {
		t.Fatal("Load on empty file = nil, want error")
	}
}

func TestSnapshotLenient(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{"missing_file", func(t *testing.T, path string) {}},
		{"empty_file", func(t *testing.T, path string) {
			if err := os.WriteFile(path, nil, 0o600); err != nil {
				t.Fatalf("writing file: %v", err)
			}
		}},
		{"empty_array", func(t *testing.T, path string) {
			if err := os.WriteFile(path, []byte("[]\n"), 0o600); err != nil {
				t.Fatalf("writing file: %v", err)
			}
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "karma.json")
			test.prepare(t, path)
			items, err := New(path).Snapshot()
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("Snapshot returned %d items, want 0", len(items))
			}
		})
	}
}

func TestSnapshotRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.json")
	if err := os.WriteFile(path, []byte("~~~"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, err := New(path).Snapshot(); err == nil {
		t.Fatal("Snapshot on malformed file = nil, want error")
	}
}

func TestSaveAtomicReplacesContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karma.json")
	store := New(path)

	if err := store.Save([]karma.Item{{Name: "old", Pluses: 1}}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save([]karma.Item{{Name: "new", Minuses: 1}}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	items, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].Name != "new" {
		t.Errorf("Load = %+v, want only the second write", items)
	}

	// No temporary file left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temporary file %s left behind", entry.Name())
		}
	}
}

func TestSaveFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.json")
	if err := New(path).Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("file mode = %o, want 600", mode)
	}
}
