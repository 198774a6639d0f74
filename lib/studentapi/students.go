// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package studentapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/roster-project/roster/lib/session"
)

// ListStudents returns every student record.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var students []Student
	if err := c.call(ctx, http.MethodGet, "", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent returns the record with the given id.
func (c *Client) GetStudent(ctx context.Context, id int) (*Student, error) {
	var student Student
	if err := c.call(ctx, http.MethodGet, recordPath(id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent registers a new student. The server answers with a
// token for the new account, which replaces the stored session:
// registering logs in as the registered student.
func (c *Client) CreateStudent(ctx context.Context, input StudentInput) (*Registration, error) {
	var registration Registration
	if _, err := c.authenticate(ctx, "/register", input, &registration, input.Email); err != nil {
		return nil, err
	}
	return &registration, nil
}

// UpdateStudent replaces the record with the given id.
func (c *Client) UpdateStudent(ctx context.Context, id int, input StudentInput) (*Student, error) {
	var student Student
	if err := c.call(ctx, http.MethodPut, recordPath(id), input, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// DeleteStudent removes the record with the given id. The server's
// confirmation body is plain text and is not inspected.
func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.call(ctx, http.MethodDelete, recordPath(id), nil, nil)
}

// Login exchanges credentials for a token and saves the resulting
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var response loginResponse
	return c.authenticate(ctx, "/login", loginRequest{Email: email, Password: password}, &response, email)
}

// grantor is a credential-exchange response that carries the issued
// token and the email it belongs to.
type grantor interface {
	grant() (token, email string)
}

// authenticate posts credentials to path without a bearer token,
// decodes the 2xx body into into, and saves the granted token and
// email to the store. submittedEmail stands in when the response
// names no email.
func (c *Client) authenticate(ctx context.Context, path string, credentials any, into grantor, submittedEmail string) (*session.Session, error) {
	if err := c.call(ctx, http.MethodPost, path, credentials, into, withoutSession()); err != nil {
		return nil, err
	}

	token, email := into.grant()
	if token == "" {
		return nil, fmt.Errorf("studentapi: POST %s: response carried no token", path)
	}
	if email == "" {
		email = submittedEmail
	}
	if err := c.store.Save(token, email); err != nil {
		return nil, fmt.Errorf("studentapi: saving session: %w", err)
	}
	c.logger.Info("session established", "path", path, "email", email)
	return &session.Session{Token: token, Email: email}, nil
}

func recordPath(id int) string {
	return "/" + strconv.Itoa(id)
}

// ErrInvalidID is returned by ParseID for strings that are not positive
// integers.
var ErrInvalidID = errors.New("studentapi: student id must be a positive integer")

// ParseID parses a student id from user input.
func ParseID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidID, value)
	}
	return id, nil
}
