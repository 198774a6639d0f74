// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package studentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roster-project/roster/lib/netutil"
	"github.com/roster-project/roster/lib/session"
	"github.com/roster-project/roster/lib/version"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the student collection root, for example
	// "http://localhost:8080/api/students". Required.
	BaseURL string

	// Store supplies the bearer token and is cleared on 401. Required.
	Store session.Store

	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client

	// Timeout bounds each request. Zero means no timeout: a request
	// that never completes blocks until its context is cancelled.
	Timeout time.Duration

	// UserAgent is sent with every request. If empty,
	// version.UserAgent() is used.
	UserAgent string

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client talks to the student API on behalf of whoever holds the
// stored session.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("studentapi: BaseURL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("studentapi: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("studentapi: BaseURL %q must be http or https", config.BaseURL)
	}
	if config.Store == nil {
		return nil, errors.New("studentapi: Store is required")
	}
	if config.Timeout < 0 {
		return nil, fmt.Errorf("studentapi: Timeout must not be negative, got %s", config.Timeout)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		store:      config.Store,
		httpClient: httpClient,
		timeout:    config.Timeout,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

// BaseURL returns the collection root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Response is an HTTP response with its body already read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// SessionEnded is set when the status was 401 and the stored
	// session has been cleared.
	SessionEnded bool
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode JSON-decodes the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("studentapi: decoding %d response: %w", r.StatusCode, err)
	}
	return nil
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	header    http.Header
	anonymous bool
}

// WithHeader sets a request header, replacing the default for the same
// key. WithHeader("Content-Type", "text/plain") overrides the JSON
// content type.
func WithHeader(key, value string) RequestOption {
	return func(options *requestOptions) {
		options.header.Set(key, value)
	}
}

// withoutSession sends no bearer token and treats a 401 as an ordinary
// failure. Credential exchanges use it: a 401 there means wrong
// credentials, not a revoked session.
func withoutSession() RequestOption {
	return func(options *requestOptions) {
		options.anonymous = true
	}
}

// Request sends method to baseURL+path with body JSON-encoded (nil
// sends no body).
//
// The token is read from the store at call time. Content-Type is
// always application/json unless overridden. Any HTTP status yields a
// *Response; only transport failures return an error, as
// *TransportError. On 401 the store is cleared before Request returns
// and the response is marked SessionEnded.
func (c *Client) Request(ctx context.Context, method, path string, body any, options ...RequestOption) (*Response, error) {
	settings := requestOptions{header: make(http.Header)}
	for _, option := range options {
		option(&settings)
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("studentapi: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("studentapi: creating request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("X-Request-ID", requestID)
	if !settings.anonymous {
		if stored, err := c.store.Read(); err == nil && stored.Token != "" {
			request.Header.Set("Authorization", "Bearer "+stored.Token)
		}
	}
	for key, values := range settings.header {
		request.Header[key] = values
	}

	logger := c.logger.With("method", method, "path", displayPath(path), "request_id", requestID)
	started := time.Now()

	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.Warn("request failed", "error", err)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		logger.Warn("reading response failed", "status", response.StatusCode, "error", err)
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response body: %w", err)}
	}

	result := &Response{
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Body:       responseBody,
	}
	logger.Debug("request completed", "status", response.StatusCode, "duration", time.Since(started))

	if response.StatusCode == http.StatusUnauthorized && !settings.anonymous {
		if err := c.store.Clear(); err != nil {
			logger.Error("clearing session after 401", "error", err)
		} else {
			logger.Info("server rejected token, session cleared")
		}
		result.SessionEnded = true
	}
	return result, nil
}

// apiError builds the error for a non-2xx response.
func (r *Response) apiError(method, path string) *APIError {
	return &APIError{
		Method:       method,
		Path:         path,
		StatusCode:   r.StatusCode,
		Message:      netutil.ErrorMessage(r.Body),
		Body:         r.Body,
		SessionEnded: r.SessionEnded,
	}
}

// call issues a request and decodes a 2xx JSON body into into (nil
// skips decoding). Non-2xx responses become *APIError.
func (c *Client) call(ctx context.Context, method, path string, body, into any, options ...RequestOption) error {
	response, err := c.Request(ctx, method, path, body, options...)
	if err != nil {
		return err
	}
	if !response.OK() {
		return response.apiError(method, path)
	}
	if into == nil {
		return nil
	}
	return response.Decode(into)
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
