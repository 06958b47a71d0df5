// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides network and HTTP I/O utilities for Chameleon.
//
// ReadResponse bounds HTTP response body reads at MaxResponseSize so a
// misbehaving server cannot drive unbounded allocation. It is meant for
// JSON API responses (the Slack Web API), not for streaming transfers,
// which should be read incrementally with io.Copy.
//
// IsExpectedCloseError classifies the errors a WebSocket or socket read
// produces during normal connection teardown, so the Socket Mode loop
// can tell a routine connection rotation from a real failure.
package netutil

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// MaxResponseSize is the bound on API response body reads: 16 MB. The
// largest response Chameleon ever handles is a users.list page, which
// stays well under a megabyte; the limit only exists to cap what a
// pathological server can make us allocate.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// IsExpectedCloseError reports whether err is a normal connection
// termination: EOF, closed connection, broken pipe, or connection
// reset. Slack rotates Socket Mode connections roughly every few
// hours and does not always deliver a disconnect envelope first, so
// the surviving read fails with one of these. None of them should be
// logged as errors.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}
