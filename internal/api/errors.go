// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized reports an authorization failure that was passed
	// through without retry: public resources browsed anonymously, and the
	// auth endpoints themselves.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthRequired reports that a protected resource was requested
	// without a session. The gate has already been raised.
	ErrAuthRequired = errors.New("authentication required")

	// ErrSessionExpired reports that refresh-and-retry was exhausted and a
	// forced logout occurred.
	ErrSessionExpired = errors.New("session expired")
)

// StatusError is a non-2xx backend response with its decoded message.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// expiryReason derives the gate message from the server-provided error text:
// an expiry reads differently to the user than a session invalidated
// elsewhere.
func expiryReason(serverText string) string {
	if strings.Contains(strings.ToLower(serverText), "expire") {
		return "Your session has expired. Please sign in again."
	}
	return "Your session is no longer valid. Please sign in again."
}
