// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slack

import (
	"errors"
	"fmt"
)

// APIError represents a structured error response from the Slack Web
// API. Slack returns HTTP 200 with {"ok": false, "error": "..."} for
// most failures, so Code carries the real diagnosis. Callers can use
// errors.As to extract the structured information:
//
//	var apiErr *slack.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.Code == slack.ErrCodeRateLimited { ... }
//	}
type APIError struct {
	// Code is the Slack error string (e.g., "invalid_auth",
	// "channel_not_found").
	Code string
	// StatusCode is the HTTP status code of the response. Usually
	// 200 even for errors; 429 for rate limiting.
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: %s (%d)", e.Code, e.StatusCode)
}

// Error codes the bot distinguishes. The full set is much larger;
// anything not listed here is handled generically.
const (
	ErrCodeInvalidAuth     = "invalid_auth"
	ErrCodeNotAuthed       = "not_authed"
	ErrCodeAccountInactive = "account_inactive"
	ErrCodeTokenRevoked    = "token_revoked"
	ErrCodeMissingScope    = "missing_scope"
	ErrCodeChannelNotFound = "channel_not_found"
	ErrCodeUserNotFound    = "user_not_found"
	ErrCodeRateLimited     = "ratelimited"
)

// IsAPIError checks whether err is a *APIError with the given code.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
