// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// defaultShutdownTimeout bounds the drain of in-flight requests when
// HTTPServerConfig leaves ShutdownTimeout zero.
const defaultShutdownTimeout = 10 * time.Second

// HTTPServer runs an http.Handler on a TCP listener with the same
// lifecycle contract as SocketServer: Serve(ctx) blocks until the
// context falls, then drains in-flight requests before returning.
// The chameleon service mounts its health endpoint, the HTML
// leaderboard page, and (when configured for webhook delivery instead
// of Socket Mode) the Slack Events API receiver on one of these.
//
// The server owns listener lifecycle and shutdown only. Routing,
// signature checks, and payload handling belong to the injected
// handler.
type HTTPServer struct {
	address         string
	handler         http.Handler
	logger          *slog.Logger
	shutdownTimeout time.Duration

	// ready closes once the listener is bound, at which point addr
	// holds the resolved listen address.
	ready chan struct{}
	addr  net.Addr
}

// HTTPServerConfig configures an HTTPServer.
type HTTPServerConfig struct {
	// Address is the TCP listen address, ":8080" or
	// "127.0.0.1:9000" style. Required.
	Address string

	// Handler receives every request. Required.
	Handler http.Handler

	// ShutdownTimeout is how long graceful shutdown waits for
	// in-flight requests. Zero means defaultShutdownTimeout.
	ShutdownTimeout time.Duration

	// Logger is the structured logger. Required.
	Logger *slog.Logger
}

// NewHTTPServer validates config and prepares a server. Nothing is
// bound until Serve runs.
func NewHTTPServer(config HTTPServerConfig) *HTTPServer {
	switch {
	case config.Address == "":
		panic("service.HTTPServer: Address is required")
	case config.Handler == nil:
		panic("service.HTTPServer: Handler is required")
	case config.Logger == nil:
		panic("service.HTTPServer: Logger is required")
	}

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}

	return &HTTPServer{
		address:         config.Address,
		handler:         config.Handler,
		logger:          config.Logger,
		shutdownTimeout: timeout,
		ready:           make(chan struct{}),
	}
}

// Ready returns a channel that closes once the listener is bound and
// the server accepts connections.
func (s *HTTPServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the resolved listen address, valid once Ready has closed.
// With a ":0" configured address this carries the port the OS picked.
func (s *HTTPServer) Addr() net.Addr {
	return s.addr
}

// Serve binds the listener, signals readiness, and serves until ctx
// is cancelled or the server fails. On cancellation it stops
// accepting and gives in-flight requests shutdownTimeout to finish.
func (s *HTTPServer) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.address, err)
	}
	s.addr = listener.Addr()
	close(s.ready)

	server := &http.Server{
		Handler: s.handler,

		// Slow-client protection. Event payloads and leaderboard
		// pages all stay well under 1 MB, so these are generous.
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("http server listening", "address", s.addr.String())

	// ErrServerClosed is the normal Shutdown result, not a failure;
	// normalize it away so the select below only sees real errors.
	failed := make(chan error, 1)
	go func() {
		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		failed <- err
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
	}

	return s.drain(server)
}

// drain performs the graceful shutdown: no new connections, bounded
// wait for the requests already in flight.
func (s *HTTPServer) drain(server *http.Server) error {
	drainCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(drainCtx); err != nil {
		s.logger.Error("http server shutdown error", "error", err)
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}
