// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/roster-project/roster/lib/clock"
	"github.com/roster-project/roster/lib/secret"
)

// FileStore keeps the session in a JSON file. The containing directory
// is created with mode 0700 and the file is written with mode 0600.
type FileStore struct {
	path  string
	clock clock.Clock

	mu sync.Mutex
}

// NewFileStore returns a store backed by the file at path. A nil clock
// means clock.Real().
func NewFileStore(path string, c clock.Clock) *FileStore {
	if c == nil {
		c = clock.Real()
	}
	return &FileStore{path: path, clock: c}
}

// DefaultPath returns the session file location: $ROSTER_SESSION_FILE
// when set, else $XDG_CONFIG_HOME/roster/session.json, else
// ~/.config/roster/session.json.
func DefaultPath() (string, error) {
	if path := os.Getenv("ROSTER_SESSION_FILE"); path != "" {
		return path, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "roster", "session.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("session: cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "roster", "session.json"), nil
}

// Path returns the file this store reads and writes.
func (s *FileStore) Path() string { return s.path }

// Save writes the session to a temporary file in the same directory and
// renames it over the target.
func (s *FileStore) Save(token, email string) error {
	data, err := json.MarshalIndent(Session{Token: token, Email: email}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling: %w", err)
	}
	defer secret.Zero(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("session: creating directory %s: %w", directory, err)
	}

	temporary, err := os.CreateTemp(directory, ".session-*.json")
	if err != nil {
		return fmt.Errorf("session: creating temporary file: %w", err)
	}
	temporaryPath := temporary.Name()
	cleanup := func() { os.Remove(temporaryPath) }

	if err := temporary.Chmod(0o600); err != nil {
		temporary.Close()
		cleanup()
		return fmt.Errorf("session: setting mode on %s: %w", temporaryPath, err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		cleanup()
		return fmt.Errorf("session: writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		cleanup()
		return fmt.Errorf("session: closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, s.path); err != nil {
		cleanup()
		return fmt.Errorf("session: replacing %s: %w", s.path, err)
	}
	return nil
}

// Read loads the session file. A missing file wraps ErrNoSession.
func (s *FileStore) Read() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoSession, s.path)
		}
		return nil, fmt.Errorf("session: reading %s: %w", s.path, err)
	}
	defer secret.Zero(data)

	var stored Session
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("session: parsing %s: %w", s.path, err)
	}
	return &stored, nil
}

// Clear deletes the session file. A missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: removing %s: %w", s.path, err)
	}
	return nil
}

// IsValid reports whether the stored token has an exp after the
// store's clock.
func (s *FileStore) IsValid() bool {
	stored, err := s.Read()
	if err != nil {
		return false
	}
	return ValidAt(stored.Token, s.clock.Now())
}
