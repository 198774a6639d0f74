// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reading for the
// student API client and helpers for pulling a human-readable message
// out of an error response body.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize bounds response body reads: 16 MB. Student records
// are small; the limit only guards against a runaway server.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a response body (up to MaxResponseSize bytes)
// and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// maxPlainMessage is the longest non-JSON body ErrorMessage will
// return verbatim. Longer bodies are usually HTML error pages.
const maxPlainMessage = 200

// ErrorMessage extracts a display message from an error response
// body. JSON bodies of the form {"error": ..., "message": ...} yield
// the message field, falling back to the error field. Short plain-text
// bodies are returned trimmed. Anything else yields "".
func ErrorMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		return envelope.Error
	}

	text := strings.TrimSpace(string(body))
	if text == "" || len(text) > maxPlainMessage || strings.ContainsAny(text, "<>{}") {
		return ""
	}
	return text
}
