// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net"
	"time"

	"github.com/bureau-foundation/chameleon/lib/codec"
)

// dialTimeout bounds the connect phase only; the server side enforces
// its own read and write deadlines once connected.
const dialTimeout = 5 * time.Second

// responseReadTimeout is how long Call waits for the reply after the
// request is written. It spans handler execution, so it is sized to
// the server's readTimeout plus writeTimeout.
const responseReadTimeout = 45 * time.Second

// maxResponseSize mirrors the server's maxRequestSize.
const maxResponseSize = 1 << 20

// ServiceError carries an ok=false reply from the service: which
// action failed and the message the handler produced. Transport and
// decode failures are plain errors, so errors.As on *ServiceError
// distinguishes "the service said no" from "could not ask".
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error on %q: %s", e.Action, e.Message)
}

// Client talks to a chameleon admin socket. Every Call dials a fresh
// connection, mirroring the server's one-exchange-per-connection
// protocol. Access control is the socket file's permissions; requests
// carry no credentials.
type Client struct {
	socketPath string
}

// NewClient returns a client for the admin socket at socketPath. The
// socket may not exist yet; dialing happens per Call.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Call performs one request-response exchange.
//
// fields holds the action-specific request fields, nil for actions
// without any; Call adds the "action" key itself, so fields must not
// contain one. On ok=true, response data (if any) is CBOR-decoded
// into result when result is non-nil. On ok=false the return is a
// *ServiceError with the handler's message.
func (c *Client) Call(ctx context.Context, action string, fields map[string]any, result any) error {
	request := make(map[string]any, len(fields)+1)
	maps.Copy(request, fields)
	request["action"] = action

	response, err := c.exchange(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %q on %s: %w", action, c.socketPath, err)
	}

	if !response.OK {
		return &ServiceError{Action: action, Message: response.Error}
	}

	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding response data for %q: %w", action, err)
		}
	}
	return nil
}

// exchange dials, writes the request, and reads back one Response.
func (c *Client) exchange(ctx context.Context, request map[string]any) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	// CBOR is self-delimiting, so the server does not need the EOF,
	// but half-closing the write side lets its read loop finish
	// cleanly instead of waiting out its deadline.
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	conn.SetReadDeadline(time.Now().Add(responseReadTimeout))
	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&response); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response, nil
}
