// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/chameleon/lib/netutil"
	"github.com/bureau-foundation/chameleon/lib/secret"
)

// DefaultBaseURL is the production Slack Web API endpoint.
const DefaultBaseURL = "https://slack.com/api/"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the Web API endpoint. Empty uses DefaultBaseURL.
	// Tests point this at an httptest server.
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is an unauthenticated Slack Web API client. It holds the
// endpoint and HTTP transport, shared across sessions. Tokens are
// supplied per call so one Client can serve both the bot token (Web
// API) and the app token (Socket Mode connection opening).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Slack Web API client.
func NewClient(config ClientConfig) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("slack: invalid BaseURL %q: %w", baseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call this after a network disruption to
// force subsequent requests to establish fresh TCP connections instead
// of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// apiEnvelope is the part of every Web API response that signals
// success or failure. Data fields live alongside these at the top
// level, so callers re-parse the same body into a method-specific
// type after callAPI validates the envelope.
type apiEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// callAPI performs a Slack Web API method call and returns the
// response body. Every method is an HTTP POST of a JSON body to
// {base}/{method} with a bearer token.
//
// On envelope failure ({"ok": false}), returns a *APIError carrying
// the Slack error code. Transport and decoding failures are returned
// as plain errors.
func (c *Client) callAPI(ctx context.Context, apiMethod string, token *secret.Buffer, requestBody any) ([]byte, error) {
	var bodyReader *bytes.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("slack: encoding %s request: %w", apiMethod, err)
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader([]byte("{}"))
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+apiMethod, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("slack: creating %s request: %w", apiMethod, err)
	}
	request.Header.Set("Content-Type", "application/json; charset=utf-8")
	if token != nil {
		request.Header.Set("Authorization", "Bearer "+token.String())
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("slack: %s request failed: %w", apiMethod, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("slack: reading %s response: %w", apiMethod, err)
	}

	// Slack reports most errors through the envelope with HTTP 200,
	// so the envelope is checked regardless of status code. A non-2xx
	// with an unparseable body still fails loud below.
	var envelope apiEnvelope
	if err := json.Unmarshal(responseBody, &envelope); err != nil {
		return nil, fmt.Errorf("slack: unexpected %d response from %s: %s",
			response.StatusCode, apiMethod, string(responseBody))
	}
	if !envelope.OK {
		return nil, &APIError{
			Code:       envelope.Error,
			StatusCode: response.StatusCode,
		}
	}

	return responseBody, nil
}

// OpenConnection requests a Socket Mode WebSocket URL via
// apps.connections.open. Requires an app-level token (xapp-...) with
// the connections:write scope, not the bot token. The returned URL is
// single-use and expires quickly; call this immediately before
// dialing.
func (c *Client) OpenConnection(ctx context.Context, appToken *secret.Buffer) (string, error) {
	body, err := c.callAPI(ctx, "apps.connections.open", appToken, nil)
	if err != nil {
		return "", fmt.Errorf("slack: opening socket mode connection: %w", err)
	}

	var response connectionsOpenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("slack: parsing apps.connections.open response: %w", err)
	}
	if response.URL == "" {
		return "", fmt.Errorf("slack: apps.connections.open returned no URL")
	}
	return response.URL, nil
}
