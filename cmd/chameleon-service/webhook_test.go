// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/chameleon/lib/secret"
	"github.com/bureau-foundation/chameleon/slack"
)

// webhookSigningKey is the signing secret for webhook tests. A string
// constant, because secret.NewFromBytes zeroes the slice it is given.
const webhookSigningKey = "test-signing-secret"

// withSigningSecret arms the service's webhook receiver.
func withSigningSecret(t *testing.T, service *chameleonService) {
	t.Helper()
	buffer, err := secret.NewFromBytes([]byte(webhookSigningKey))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	t.Cleanup(func() { buffer.Close() })
	service.signingSecret = buffer
}

// signedWebhookRequest builds a POST /slack/events request signed at
// the given instant.
func signedWebhookRequest(at time.Time, body string) *http.Request {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	request := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	request.Header.Set(slack.TimestampHeader, timestamp)
	request.Header.Set(slack.SignatureHeader,
		slack.SignRequest([]byte(webhookSigningKey), timestamp, []byte(body)))
	return request
}

func TestWebhookURLVerification(t *testing.T) {
	service, _ := newTestService(t, serviceOptions{})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedWebhookRequest(testEpoch,
		`{"type":"url_verification","challenge":"c0ffee"}`))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	var response struct {
		Challenge string `json:"challenge"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("decoding challenge response: %v", err)
	}
	if response.Challenge != "c0ffee" {
		t.Errorf("challenge = %q, want %q", response.Challenge, "c0ffee")
	}
}

func TestWebhookDeliversMessage(t *testing.T) {
	fake := newFakeSlack(t)
	fake.names["U1"] = "Alice"
	session := fake.newSession(t)

	service, _ := newTestService(t, serviceOptions{
		session:  session,
		resolver: session,
	})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedWebhookRequest(testEpoch,
		`{"type":"event_callback","event":`+
			`{"type":"message","channel":"C1","user":"U1","text":"coffee++"}}`))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}

	posts := fake.allPosts()
	if len(posts) != 1 {
		t.Fatalf("post count = %d, want 1", len(posts))
	}
	if posts[0].Channel != "C1" {
		t.Errorf("reply channel = %q, want %q", posts[0].Channel, "C1")
	}
	want := "Groovy. coffee now has 1 points, thanks to Alice."
	if posts[0].Text != want {
		t.Errorf("reply = %q, want %q", posts[0].Text, want)
	}

	if item, ok := service.bot.Standing("coffee"); !ok || item.Pluses != 1 {
		t.Errorf("Standing(coffee) = %+v, %v, want 1 plus", item, ok)
	}
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	fake := newFakeSlack(t)
	session := fake.newSession(t)

	service, _ := newTestService(t, serviceOptions{session: session})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedWebhookRequest(testEpoch,
		`{"type":"event_callback","event":`+
			`{"type":"reaction_added","user":"U1","reaction":"thumbsup"}}`))

	// Unhandled event types still get a 200; Slack retries anything
	// else.
	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if posts := fake.allPosts(); len(posts) != 0 {
		t.Errorf("post count = %d, want 0: %+v", len(posts), posts)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	service, _ := newTestService(t, serviceOptions{})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	body := `{"type":"url_verification","challenge":"c0ffee"}`
	request := signedWebhookRequest(testEpoch, body)
	request.Header.Set(slack.SignatureHeader, "v0=deadbeef")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestWebhookRejectsStaleTimestamp(t *testing.T) {
	service, clk := newTestService(t, serviceOptions{})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	// Correctly signed, but the clock has moved past the replay
	// window by the time the request lands.
	request := signedWebhookRequest(testEpoch, `{"type":"url_verification","challenge":"x"}`)
	clk.Advance(slack.MaxSignatureAge + time.Second)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestWebhookRejectsTamperedBody(t *testing.T) {
	service, _ := newTestService(t, serviceOptions{})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	// Signature computed over a different body than the one sent.
	timestamp := strconv.FormatInt(testEpoch.Unix(), 10)
	request := httptest.NewRequest(http.MethodPost, "/slack/events",
		strings.NewReader(`{"type":"event_callback","event":{"type":"message","text":"coffee++"}}`))
	request.Header.Set(slack.TimestampHeader, timestamp)
	request.Header.Set(slack.SignatureHeader,
		slack.SignRequest([]byte(webhookSigningKey), timestamp, []byte(`{"type":"url_verification"}`)))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	service, _ := newTestService(t, serviceOptions{})
	withSigningSecret(t, service)
	handler := service.statusHandler()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/slack/events", nil))

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusMethodNotAllowed)
	}
}

func TestWebhookNotMountedWithoutSecret(t *testing.T) {
	service, _ := newTestService(t, serviceOptions{})
	handler := service.statusHandler()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedWebhookRequest(testEpoch, `{}`))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
}
