// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// The two package-level modes are built once at program start. An
// invalid option set is a programming error, so construction panics
// rather than returning an error nobody checks.
var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

// mustEncMode builds the encoder: Core Deterministic Encoding
// (RFC 8949 §4.2) so the same logical value always produces the same
// bytes, with sorted map keys, smallest integer widths, and no
// indefinite-length items.
func mustEncMode() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	// time.Time in status payloads carries its canonical RFC 3339
	// text form through MarshalText. Without this option such fields
	// would encode through their exported structure, or as empty
	// maps, and the CLI would lose the text form it prints.
	options.TextMarshaler = cbor.TextMarshalerTextString
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: building CBOR encode mode: " + err.Error())
	}
	return mode
}

// mustDecMode builds the decoder. Unknown fields are ignored, which
// lets an old CLI talk to a newer service.
func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{
		// When decoding into an any-typed target the library has to
		// pick a concrete map type, and its default is
		// map[interface{}]interface{} because CBOR permits
		// non-string keys. Chameleon only ever uses string keys, and
		// map[string]any is what encoding/json and the rest of the
		// code expect, so force it. Struct targets are unaffected.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Mirror of TextMarshaler on the encode side: TextUnmarshaler
		// types come back from CBOR text strings via UnmarshalText.
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: building CBOR decode mode: " + err.Error())
	}
	return mode
}

// Marshal encodes v with the deterministic encoder.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder and Decoder alias the underlying stream types so consumers
// import lib/codec alone, never fxamacker/cbor directly.
type (
	Encoder = cbor.Encoder
	Decoder = cbor.Decoder
)

// RawMessage is an undecoded CBOR value. Handlers use it to defer
// decoding of action-specific fields, and responses use it to splice
// pre-encoded payloads into an envelope.
type RawMessage = cbor.RawMessage

// NewEncoder returns a stream encoder writing deterministic CBOR
// to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder reading from r with the shared
// decode configuration.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}
