// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karma

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Op identifies the karma operation a message carries.
type Op int

const (
	// OpNone means the message is not a karma operation.
	OpNone Op = iota
	// OpIncrement awards the subject a point ("subject++").
	OpIncrement
	// OpDecrement deducts a point from the subject ("subject--").
	OpDecrement
)

// String returns the operation name for logs.
func (o Op) String() string {
	switch o {
	case OpIncrement:
		return "increment"
	case OpDecrement:
		return "decrement"
	default:
		return "none"
	}
}

// ErrNoSubject is returned by ExtractSubject when the message has no
// usable subject token. Callers treat it as "not an operation" rather
// than a reportable failure.
var ErrNoSubject = errors.New("karma: message has no subject")

var (
	// The operator may be glued to the subject or separated from it
	// by a single space; anything after it is ignored.
	incrementPattern = regexp.MustCompile(`^\S+\s?\+\+.*$`)
	decrementPattern = regexp.MustCompile(`^\S+\s?--.*$`)

	// A whole token shaped like an http(s) URL: scheme, host, optional
	// port, optional path or query.
	urlTokenPattern = regexp.MustCompile(`^https?://[A-Za-z0-9.-]+(?::[0-9]+)?(?:[/?]\S*)?$`)
)

// Classify reports which operation, if any, the message text carries.
// Only the first whitespace token decides; trailing text is ignored.
// A token that could read as both operations classifies as an
// increment.
func Classify(text string) Op {
	switch {
	case incrementPattern.MatchString(text):
		return OpIncrement
	case decrementPattern.MatchString(text):
		return OpDecrement
	default:
		return OpNone
	}
}

// ExtractSubject normalizes the first whitespace token of text into a
// ledger key: one trailing "++" or "--" is stripped if present, then
// exactly one leading "#" or "@". Case is preserved, as are platform
// mention delimiters like "<@U123>". Returns ErrNoSubject when the
// text has no tokens or normalization leaves nothing.
func ExtractSubject(text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoSubject, text)
	}

	subject := fields[0]
	switch {
	case strings.HasSuffix(subject, "++"):
		subject = strings.TrimSuffix(subject, "++")
	case strings.HasSuffix(subject, "--"):
		subject = strings.TrimSuffix(subject, "--")
	}
	if len(subject) > 0 && (subject[0] == '#' || subject[0] == '@') {
		subject = subject[1:]
	}
	if subject == "" {
		return "", fmt.Errorf("%w: %q", ErrNoSubject, text)
	}
	return subject, nil
}

// IsSelfReference reports whether the sender appears in the message.
// The check is substring containment, not token equality: a sender ID
// embedded anywhere in the text counts as self-karma.
func IsSelfReference(userID, text string) bool {
	if userID == "" {
		return false
	}
	return strings.Contains(text, userID)
}

// LooksLikeURL reports whether any whitespace token of text is an
// http(s) URL containing "--". Such messages match the decrement
// grammar purely because of the link ("https://example.com/a--b"
// would otherwise deduct from "https://example.com/a"), so decrement
// handling drops them without a reply. Increments have no equivalent
// hazard: "++" does not occur in URLs the way "--" does.
func LooksLikeURL(text string) bool {
	for _, token := range strings.Fields(text) {
		if !strings.Contains(token, "--") {
			continue
		}
		if urlTokenPattern.MatchString(token) {
			return true
		}
	}
	return false
}
