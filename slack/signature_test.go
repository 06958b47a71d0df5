// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"strconv"
	"testing"
	"time"
)

func TestVerifySignature(t *testing.T) {
	secret := []byte("8f742231b10e8888abcd99yyyzzz85a5")
	now := time.Unix(1700000000, 0)
	timestamp := strconv.FormatInt(now.Unix(), 10)
	body := []byte(`{"type":"event_callback"}`)

	t.Run("valid round trip", func(t *testing.T) {
		signature := SignRequest(secret, timestamp, body)
		if err := VerifySignature(secret, timestamp, body, signature, now); err != nil {
			t.Errorf("VerifySignature rejected its own signature: %v", err)
		}
	})

	t.Run("tampered body", func(t *testing.T) {
		signature := SignRequest(secret, timestamp, body)
		tampered := []byte(`{"type":"event_callback","evil":true}`)
		if err := VerifySignature(secret, timestamp, tampered, signature, now); err == nil {
			t.Error("expected rejection of tampered body")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		signature := SignRequest([]byte("other-secret"), timestamp, body)
		if err := VerifySignature(secret, timestamp, body, signature, now); err == nil {
			t.Error("expected rejection of signature from a different secret")
		}
	})

	t.Run("stale timestamp", func(t *testing.T) {
		stale := strconv.FormatInt(now.Add(-6*time.Minute).Unix(), 10)
		signature := SignRequest(secret, stale, body)
		if err := VerifySignature(secret, stale, body, signature, now); err == nil {
			t.Error("expected rejection outside the replay window")
		}
	})

	t.Run("future timestamp", func(t *testing.T) {
		future := strconv.FormatInt(now.Add(6*time.Minute).Unix(), 10)
		signature := SignRequest(secret, future, body)
		if err := VerifySignature(secret, future, body, signature, now); err == nil {
			t.Error("expected rejection of a timestamp ahead of the clock")
		}
	})

	t.Run("missing version prefix", func(t *testing.T) {
		if err := VerifySignature(secret, timestamp, body, "deadbeef", now); err == nil {
			t.Error("expected rejection of a signature without the v0= prefix")
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		signature := SignRequest(secret, timestamp, body)
		if err := VerifySignature(nil, timestamp, body, signature, now); err == nil {
			t.Error("expected rejection of empty secret")
		}
		if err := VerifySignature(secret, "", body, signature, now); err == nil {
			t.Error("expected rejection of empty timestamp")
		}
		if err := VerifySignature(secret, timestamp, body, "", now); err == nil {
			t.Error("expected rejection of empty signature")
		}
	})
}
