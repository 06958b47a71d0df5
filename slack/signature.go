// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxSignatureAge is how far a request timestamp may lag (or lead)
// the verifier's clock before the request is rejected as a possible
// replay. Slack's own guidance is five minutes.
const MaxSignatureAge = 5 * time.Minute

// Headers carrying the signature material on an Events API request.
const (
	SignatureHeader = "X-Slack-Signature"
	TimestampHeader = "X-Slack-Request-Timestamp"
)

// VerifySignature verifies Slack's v0 request signature on an Events
// API webhook request. The signature header has the form "v0=<hex>"
// where <hex> is HMAC-SHA256 over "v0:<timestamp>:<body>" keyed with
// the app's signing secret. The timestamp is the raw value of the
// X-Slack-Request-Timestamp header (Unix seconds).
//
// Returns nil if the signature is valid and fresh, or an error
// describing the verification failure. The error message is safe to
// log but does not include the expected signature (to avoid leaking
// the secret via error messages).
func VerifySignature(secret []byte, timestamp string, body []byte, signature string, now time.Time) error {
	if len(secret) == 0 {
		return errors.New("slack signature: signing secret is empty")
	}
	if timestamp == "" {
		return errors.New("slack signature: timestamp is empty")
	}
	if signature == "" {
		return errors.New("slack signature: signature is empty")
	}

	requestUnix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("slack signature: invalid timestamp %q: %w", timestamp, err)
	}
	age := now.Sub(time.Unix(requestUnix, 0))
	if age > MaxSignatureAge || age < -MaxSignatureAge {
		return fmt.Errorf("slack signature: timestamp %s outside the %s replay window", timestamp, MaxSignatureAge)
	}

	hexSignature, found := strings.CutPrefix(signature, "v0=")
	if !found {
		return fmt.Errorf("slack signature: missing v0= prefix in %q", signature)
	}
	signatureBytes, err := hex.DecodeString(hexSignature)
	if err != nil {
		return fmt.Errorf("slack signature: invalid hex signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	expected := mac.Sum(nil)

	if subtle.ConstantTimeCompare(expected, signatureBytes) != 1 {
		return errors.New("slack signature: signature mismatch")
	}
	return nil
}

// SignRequest computes the v0 signature for a request body and
// timestamp. Used by tests and by tools that replay saved event
// payloads against a local webhook endpoint.
func SignRequest(secret []byte, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}
