// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"

	"github.com/roster-project/roster/lib/clock"
)

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	clock clock.Clock

	mu      sync.Mutex
	current *Session
}

// NewMemoryStore returns an empty store. A nil clock means
// clock.Real().
func NewMemoryStore(c clock.Clock) *MemoryStore {
	if c == nil {
		c = clock.Real()
	}
	return &MemoryStore{clock: c}
}

func (s *MemoryStore) Save(token, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{Token: token, Email: email}
	return nil
}

func (s *MemoryStore) Read() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoSession
	}
	copied := *s.current
	return &copied, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return nil
}

func (s *MemoryStore) IsValid() bool {
	stored, err := s.Read()
	if err != nil {
		return false
	}
	return ValidAt(stored.Token, s.clock.Now())
}
