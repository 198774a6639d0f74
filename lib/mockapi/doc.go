// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package mockapi is an in-memory implementation of the student API
// contract, for tests and local development.
//
// Routes, relative to the configured prefix (default /api/students):
//
//	POST   /register   create a student, answer {token, student, message}
//	POST   /login      answer {token, email, message} or 401
//	GET    /           list students              (bearer token)
//	GET    /{id}       one student                (bearer token)
//	PUT    /{id}       replace a student          (bearer token)
//	DELETE /{id}       delete, plain-text answer  (bearer token)
//
// Passwords are stored as bcrypt hashes and, as the real service does,
// the hash is returned in student records. Tokens are HS256 JWTs with
// the student's email as subject. Error bodies are
// {"error": ..., "message": ...}.
package mockapi
