// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snark

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/tidwall/jsonc"
)

// Picker selects flavor phrases for karma replies. The zero value is
// not usable; construct one with NewPicker or NewPickerWithTables.
type Picker struct {
	positive []string
	negative []string
	intn     func(n int) int
}

// NewPicker returns a picker over the built-in phrase tables with
// non-deterministic selection.
func NewPicker() *Picker {
	picker, err := NewPickerWithTables(positivePhrases, negativePhrases, rand.IntN)
	if err != nil {
		// The built-in tables are never empty.
		panic(err)
	}
	return picker
}

// NewPickerWithTables returns a picker over caller-supplied tables.
// intn must return a value in [0, n); tests pass a deterministic
// function. Both tables must be non-empty.
func NewPickerWithTables(positive, negative []string, intn func(n int) int) (*Picker, error) {
	if len(positive) == 0 {
		return nil, fmt.Errorf("snark: positive phrase table is empty")
	}
	if len(negative) == 0 {
		return nil, fmt.Errorf("snark: negative phrase table is empty")
	}
	if intn == nil {
		return nil, fmt.Errorf("snark: intn function is nil")
	}
	return &Picker{positive: positive, negative: negative, intn: intn}, nil
}

// Positive returns one phrase for an increment reply.
func (p *Picker) Positive() string {
	return p.positive[p.intn(len(p.positive))]
}

// Negative returns one phrase for a decrement reply.
func (p *Picker) Negative() string {
	return p.negative[p.intn(len(p.negative))]
}

// tablesFile is the on-disk shape of a phrase override file.
type tablesFile struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// LoadTables reads a phrase override file: JSONC (JSON extended with
// comments and trailing commas) holding "positive" and "negative"
// string arrays. Both arrays must be non-empty.
func LoadTables(path string) (positive, negative []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading phrase file: %w", err)
	}
	stripped := jsonc.ToJSON(data)

	var tables tablesFile
	if err := json.Unmarshal(stripped, &tables); err != nil {
		return nil, nil, fmt.Errorf("parsing phrase file %s: %w", path, err)
	}
	if len(tables.Positive) == 0 {
		return nil, nil, fmt.Errorf("phrase file %s: no positive phrases", path)
	}
	if len(tables.Negative) == 0 {
		return nil, nil, fmt.Errorf("phrase file %s: no negative phrases", path)
	}
	return tables.Positive, tables.Negative, nil
}
