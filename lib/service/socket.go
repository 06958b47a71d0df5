// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/bureau-foundation/chameleon/lib/codec"
)

// ActionFunc handles one admin socket request. It receives the full
// CBOR request bytes (the "action" routing field included) and decodes
// whatever action-specific fields it needs from them.
//
// The returned value becomes the "data" field of the success response,
// CBOR-encoded. Return nil for actions with nothing to report; the
// response is then a bare {ok: true}. A returned error produces an
// {ok: false} response carrying err.Error().
type ActionFunc func(ctx context.Context, raw []byte) (any, error)

// Response is the envelope every admin socket reply is wrapped in.
// Exactly one of Error and Data is populated, and only when OK is
// false or the handler returned a value, respectively.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}

// SocketServer answers CBOR requests on a Unix socket, one
// request-response exchange per connection. The client writes a
// single CBOR map with an "action" field, the server routes it to the
// matching registered handler, writes one Response, and closes.
//
// Register every action with Handle before Serve; requests naming an
// unregistered action get an error Response.
type SocketServer struct {
	socketPath string
	handlers   map[string]ActionFunc
	logger     *slog.Logger

	// inflight counts connections currently being handled so Serve
	// can drain them before returning after cancellation.
	inflight sync.WaitGroup
}

// NewSocketServer prepares a server for the socket at socketPath.
// Nothing is bound until Serve runs.
func NewSocketServer(socketPath string, logger *slog.Logger) *SocketServer {
	return &SocketServer{
		socketPath: socketPath,
		handlers:   make(map[string]ActionFunc),
		logger:     logger,
	}
}

// Handle registers the handler for an action name. Registration is
// setup-time only: call it before Serve, and at most once per action.
// A duplicate registration panics.
func (s *SocketServer) Handle(action string, handler ActionFunc) {
	if _, taken := s.handlers[action]; taken {
		panic(fmt.Sprintf("service.SocketServer: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// Serve binds the Unix socket and dispatches requests until ctx is
// cancelled, then stops accepting, drains in-flight handlers, and
// removes the socket file. A stale socket file left by a previous
// process is removed before binding.
func (s *SocketServer) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()

	// Accept has no context form; closing the listener is how
	// cancellation reaches it.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("admin socket listening", "path", s.socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.inflight.Wait()
	return nil
}

// readTimeout bounds the wait for the client's request bytes. Clients
// send immediately after dialing, so hitting this means a hung peer.
const readTimeout = 30 * time.Second

// writeTimeout bounds writing the response back.
const writeTimeout = 10 * time.Second

// maxRequestSize caps a single CBOR request at 1 MiB. Admin requests
// are tiny (an action name plus a subject or a count); the cap only
// matters against a misbehaving client trying to exhaust memory.
const maxRequestSize = 1 << 20

func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))

	// One CBOR value is the whole request. CBOR is self-delimiting,
	// so the decoder knows where it ends without any length prefix.
	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			// Connected and hung up without sending anything.
			return
		}
		s.respond(conn, errorResponse(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	s.respond(conn, s.dispatch(ctx, raw))
}

// dispatch routes one decoded request to its handler and folds the
// outcome into the Response that goes on the wire.
func (s *SocketServer) dispatch(ctx context.Context, raw codec.RawMessage) Response {
	var envelope struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &envelope); err != nil {
		return errorResponse(fmt.Sprintf("invalid request: %v", err))
	}
	if envelope.Action == "" {
		return errorResponse("missing required field: action")
	}

	handler, known := s.handlers[envelope.Action]
	if !known {
		return errorResponse(fmt.Sprintf("unknown action %q", envelope.Action))
	}

	result, err := handler(ctx, []byte(raw))
	if err != nil {
		s.logger.Debug("action failed",
			"action", envelope.Action,
			"error", err,
		)
		return errorResponse(err.Error())
	}

	response := Response{OK: true}
	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			return errorResponse(fmt.Sprintf("internal: marshaling response: %v", err))
		}
		response.Data = data
	}
	return response
}

func errorResponse(message string) Response {
	return Response{Error: message}
}

// respond writes the response and gives up quietly on failure. The
// connection closes either way, and an error Response already reached
// the log at the point it was built.
func (s *SocketServer) respond(conn net.Conn, response Response) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("response write failed", "error", err)
	}
}
