// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package authstate is the process-wide view of "who is logged in".
//
// A [Context] wraps a [session.Store] and tracks one of three states.
// It starts [Unknown]; [Context.Init] resolves it from the store.
// [Context.Login] and [Context.Logout] write through to the store and
// then move the state synchronously. Every change is published to
// subscribers as a [Snapshot].
//
// Context itself implements session.Store. Handing it to the student
// API client means a 401 teardown (Clear) or a login/registration
// write (Save) moves the reactive state in the same step, without the
// client knowing about this package.
package authstate

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roster-project/roster/lib/session"
)

// State is the authentication state of the process.
type State int

const (
	// Unknown is the state before Init has consulted the store.
	Unknown State = iota

	// Authenticated means the store holds a token the client
	// considers usable.
	Authenticated

	// Unauthenticated means no token, or an expired or malformed one.
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is the state plus the email of the logged-in user. Email is
// empty unless State is Authenticated.
type Snapshot struct {
	State State
	Email string
}

// LoggedIn reports whether the snapshot is Authenticated.
func (s Snapshot) LoggedIn() bool { return s.State == Authenticated }

// Context tracks the authentication state backed by a session store.
// It is safe for concurrent use.
type Context struct {
	store  session.Store
	logger *slog.Logger

	mu      sync.Mutex
	current Snapshot

	// notifyMu serializes publication so subscribers observe
	// transitions in order. It is never held together with mu.
	notifyMu    sync.Mutex
	subscribers map[int]chan Snapshot
	nextID      int
}

// New returns a Context in the Unknown state. A nil logger means
// slog.Default().
func New(store session.Store, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		store:       store,
		logger:      logger,
		subscribers: make(map[int]chan Snapshot),
	}
}

// Init derives the state from the store: Authenticated when the stored
// token is valid, Unauthenticated otherwise. Init may be called again
// at any time to re-derive the state, for example after another
// process changed the session file.
func (c *Context) Init() Snapshot {
	next := Snapshot{State: Unauthenticated}
	if c.store.IsValid() {
		stored, err := c.store.Read()
		switch {
		case err == nil:
			next = Snapshot{State: Authenticated, Email: stored.Email}
		case !errors.Is(err, session.ErrNoSession):
			c.logger.Warn("reading session", "error", err)
		}
	}
	c.transition(next)
	return next
}

// Login stores token and email, then moves to Authenticated. The token
// is not checked: the server just issued it.
func (c *Context) Login(token, email string) error {
	if err := c.store.Save(token, email); err != nil {
		return err
	}
	c.transition(Snapshot{State: Authenticated, Email: email})
	return nil
}

// Logout clears the store, then moves to Unauthenticated. Calling it
// while already logged out succeeds.
func (c *Context) Logout() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	c.transition(Snapshot{State: Unauthenticated})
	return nil
}

// Snapshot returns the current state and email.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// State returns the current state.
func (c *Context) State() State { return c.Snapshot().State }

// IsLoggedIn reports whether the state is Authenticated.
func (c *Context) IsLoggedIn() bool { return c.Snapshot().LoggedIn() }

// UserEmail returns the logged-in user's email, or "".
func (c *Context) UserEmail() string { return c.Snapshot().Email }

// Subscribe returns a channel that receives the new Snapshot after
// every transition, and a cancel function that stops delivery. The
// channel holds only the latest snapshot: a slow reader skips
// intermediate states but always sees the most recent one.
func (c *Context) Subscribe() (<-chan Snapshot, func()) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	id := c.nextID
	c.nextID++
	channel := make(chan Snapshot, 1)
	c.subscribers[id] = channel

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.notifyMu.Lock()
			defer c.notifyMu.Unlock()
			delete(c.subscribers, id)
		})
	}
	return channel, cancel
}

func (c *Context) transition(next Snapshot) {
	// Holding notifyMu across the state change keeps publication order
	// equal to transition order.
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	previous := c.current
	c.current = next
	c.mu.Unlock()

	if previous.State != next.State {
		c.logger.Debug("auth state changed", "from", previous.State, "to", next.State)
	}

	for _, channel := range c.subscribers {
		select {
		case channel <- next:
			continue
		default:
		}
		// Replace the stale snapshot with the latest one.
		select {
		case <-channel:
		default:
		}
		channel <- next
	}
}

// Save implements session.Store by logging in.
func (c *Context) Save(token, email string) error { return c.Login(token, email) }

// Clear implements session.Store by logging out.
func (c *Context) Clear() error { return c.Logout() }

// Read implements session.Store by reading the underlying store.
func (c *Context) Read() (*session.Session, error) { return c.store.Read() }

// IsValid implements session.Store by asking the underlying store.
func (c *Context) IsValid() bool { return c.store.IsValid() }

var _ session.Store = (*Context)(nil)
