// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
	"time"
)

// sampleRequest is a representative admin socket request using cbor
// struct tags (the convention for purely-internal types).
type sampleRequest struct {
	Action  string `cbor:"action"`
	Subject string `cbor:"subject,omitempty"`
	Count   int    `cbor:"count"`
}

// sampleItem uses json struct tags (the convention for types that
// serve both JSON and CBOR, relying on fxamacker's fallback).
type sampleItem struct {
	Name    string `json:"name"`
	Pluses  int    `json:"pluses"`
	Minuses int    `json:"minuses"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRequest{
		Action:  "karma",
		Subject: "GraceHopper",
		Count:   42,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleRequest
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	request := sampleRequest{
		Action:  "status",
		Subject: "coffee",
		Count:   7,
	}

	first, err := Marshal(request)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}

	second, err := Marshal(request)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	requests := []sampleRequest{
		{Action: "karma", Subject: "GraceHopper", Count: 1},
		{Action: "leaderboard", Count: 2},
		{Action: "status", Count: 0},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, request := range requests {
		if err := encoder.Encode(request); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range requests {
		var got sampleRequest
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode request %d: %v", i, err)
		}
		if got != want {
			t.Errorf("request %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	// Types with json tags (no cbor tags) should encode/decode
	// correctly through our modes, using json tag names as CBOR
	// map keys.
	original := sampleItem{Name: "coffee", Pluses: 12, Minuses: 3}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleItem
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	// A zero-value omitempty field should not appear in output.
	withSubject := sampleRequest{Action: "a", Subject: "x", Count: 1}
	withoutSubject := sampleRequest{Action: "a", Count: 1}

	dataWith, err := Marshal(withSubject)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutSubject)
	if err != nil {
		t.Fatal(err)
	}

	// The encoding without the subject field should be shorter
	// because the omitted field is not present.
	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestTimeEncodesAsText(t *testing.T) {
	// time.Time implements encoding.TextMarshaler, so the
	// TextMarshalerTextString setting makes it a CBOR text string in
	// RFC 3339 form. Decoding into any must therefore yield a string,
	// not a map.
	type statusPayload struct {
		StartedAt time.Time `json:"started_at"`
	}

	started := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	data, err := Marshal(statusPayload{StartedAt: started})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var generic map[string]any
	if err := Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	text, ok := generic["started_at"].(string)
	if !ok {
		t.Fatalf("started_at decoded as %T, want string", generic["started_at"])
	}
	if text != "2026-03-14T09:26:53Z" {
		t.Errorf("started_at = %q, want %q", text, "2026-03-14T09:26:53Z")
	}

	var decoded statusPayload
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal into struct: %v", err)
	}
	if !decoded.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", decoded.StartedAt, started)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var request sampleRequest
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &request)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	// Verify that []byte fields encode as CBOR byte strings (major
	// type 2), not text strings. This matters for carrying
	// pre-serialized JSON payloads across the admin socket.
	type envelope struct {
		Payload []byte `cbor:"payload"`
	}

	original := envelope{Payload: []byte(`{"name":"coffee"}`)}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded envelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !bytes.Equal(decoded.Payload, original.Payload) {
		t.Errorf("byte string roundtrip: got %q, want %q", decoded.Payload, original.Payload)
	}
}

func BenchmarkMarshal(b *testing.B) {
	request := sampleRequest{
		Action:  "karma",
		Subject: "GraceHopper",
		Count:   42,
	}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(request)
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	request := sampleRequest{
		Action:  "karma",
		Subject: "GraceHopper",
		Count:   42,
	}
	data, err := Marshal(request)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		var decoded sampleRequest
		Unmarshal(data, &decoded)
	}
}
