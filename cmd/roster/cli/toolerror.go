// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/roster-project/roster/lib/studentapi"
)

// ErrorCategory classifies command errors so that scripts can decide
// whether to fix their input, log in again, or retry.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing arguments, unparseable IDs, malformed record files.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates the referenced student does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates there is no usable session, or the
	// server rejected the credentials or token.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with existing
	// state, such as an email that is already registered.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates the server could not be reached. The
	// caller may retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected failure: server errors,
	// I/O errors, bugs.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// underlying error so errors.Is and errors.As still see the full chain.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message without the category.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// SessionEndedMessage is reported when the server rejects the stored
// token partway through a command.
const SessionEndedMessage = `session expired or revoked: run "roster login"`

// NotLoggedInMessage is reported by protected commands when there is
// no valid stored session.
const NotLoggedInMessage = `not logged in: run "roster login" first`

// APIFailure categorizes an error from the student API client. action
// prefixes the message ("list students"), and fallback replaces a
// missing server message. The original error stays reachable through
// Unwrap.
func APIFailure(err error, action, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, studentapi.ErrSessionEnded) {
		return categorized(CategoryForbidden, SessionEndedMessage, err)
	}

	message := action + ": " + studentapi.UserMessage(err, fallback)

	var transport *studentapi.TransportError
	if errors.As(err, &transport) {
		return categorized(CategoryTransient, message, err)
	}

	var apiErr *studentapi.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return categorized(CategoryValidation, message, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return categorized(CategoryForbidden, message, err)
		case http.StatusNotFound:
			return categorized(CategoryNotFound, message, err)
		case http.StatusConflict:
			return categorized(CategoryConflict, message, err)
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return categorized(CategoryTransient, message, err)
		}
		return categorized(CategoryInternal, message, err)
	}

	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf("%s: %w", action, err)}
}

func categorized(category ErrorCategory, message string, cause error) *ToolError {
	return &ToolError{Category: category, Err: &describedError{message: message, cause: cause}}
}

// describedError replaces the text of cause while keeping it in the chain.
type describedError struct {
	message string
	cause   error
}

func (e *describedError) Error() string { return e.message }

func (e *describedError) Unwrap() error { return e.cause }

// CategoryOf returns the category of the first ToolError in err's
// chain, or CategoryInternal when there is none.
func CategoryOf(err error) ErrorCategory {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Category
	}
	return CategoryInternal
}
