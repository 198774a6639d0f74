// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package studentapi

// Student is one record as the server returns it. Password is whatever
// the server sends back (typically a hash) and is omitted from output
// when empty.
type Student struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Course   string `json:"course"`
}

// StudentInput is the payload for create and update. The password is
// sent in plaintext, exactly as the server expects it.
type StudentInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Course   string `json:"course"`
}

// Registration is the server's answer to a successful registration.
type Registration struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
	Message string  `json:"message,omitempty"`
}

func (r *Registration) grant() (string, string) { return r.Token, r.Student.Email }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

func (r *loginResponse) grant() (string, string) { return r.Token, r.Email }
