// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package studentapi

import (
	"context"
	"errors"
	"fmt"
)

// ErrSessionEnded matches any error from a request whose 401 response
// tore down the stored session:
//
//	if errors.Is(err, studentapi.ErrSessionEnded) { ... send the user to login ... }
var ErrSessionEnded = errors.New("studentapi: session ended by server")

// APIError is a non-2xx response from the server.
type APIError struct {
	Method     string
	Path       string
	StatusCode int

	// Message is the server's "message" field (or "error" when no
	// message was given, or a short plain-text body). Empty when the
	// body carried nothing displayable.
	Message string

	// Body is the raw response body.
	Body []byte

	// SessionEnded is set when the response was a 401 and the stored
	// session was cleared because of it.
	SessionEnded bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("studentapi: %s %s: %d: %s", e.Method, displayPath(e.Path), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("studentapi: %s %s: unexpected status %d", e.Method, displayPath(e.Path), e.StatusCode)
}

// Is reports a match against ErrSessionEnded when the session was torn
// down.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionEnded && e.SessionEnded
}

// TransportError is a request that never produced an HTTP response:
// connection refused, DNS failure, timeout, cancellation.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("studentapi: %s %s failed: %v", e.Method, displayPath(e.Path), e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConnectionFailedMessage is shown for transport failures.
const ConnectionFailedMessage = "Error connecting to server"

// UserMessage returns the text to show a user for err: the connection
// message for transport failures, the server's message for API errors
// that carry one, and fallback otherwise.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return ConnectionFailedMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsTransient reports whether err is a transport failure other than the
// caller's own cancellation.
func IsTransient(err error) bool {
	var transport *TransportError
	if !errors.As(err, &transport) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}
