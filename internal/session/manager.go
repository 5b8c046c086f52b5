// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"sync"
	"time"
)

// AuthAPI is the slice of the backend the Manager needs. The HTTP client
// implements it; tests substitute fakes.
type AuthAPI interface {
	// Login exchanges credentials for a profile. The transport credential
	// (session cookie) is captured by the underlying HTTP client.
	Login(ctx context.Context, creds Credentials) (*UserProfile, error)
	// Logout invalidates the session server-side. Best-effort only.
	Logout(ctx context.Context) error
	// RefreshSession renews the transport credential without user input.
	RefreshSession(ctx context.Context) error
	// CurrentUser re-validates the session and returns the fresh profile.
	CurrentUser(ctx context.Context) (*UserProfile, error)
}

// Gate is the sign-in prompt the Manager raises on forced logout.
type Gate interface {
	Open(message string)
	Close()
}

// Manager is the single source of truth for the session. All mutations go
// through the operations below; no other component writes session state.
// It is the only component permitted to call Store.Save/Clear.
type Manager struct {
	api   AuthAPI
	store *Store
	gate  Gate

	mu       sync.Mutex
	phase    Phase
	identity *UserProfile
	mutating bool
	subs     map[int]func(Snapshot)
	nextID   int
}

// NewManager builds a Manager and seeds it from the persisted store, so a
// fresh process starts in the state the last one left behind.
func NewManager(api AuthAPI, store *Store, g Gate) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		gate:  g,
		subs:  make(map[int]func(Snapshot)),
	}
	identity, loggedIn := store.Load()
	if loggedIn && identity != nil {
		m.phase = Authenticated
		m.identity = identity
	}
	return m
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// IsAuthenticated reports whether a user is currently signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == Authenticated || m.phase == Refreshing
}

// Identity returns the current profile, nil when anonymous.
func (m *Manager) Identity() *UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Subscribe registers fn for session changes and returns a cancel function.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Login authenticates with the backend. On success the session becomes
// Authenticated, the profile is persisted and any open gate is closed. On
// failure the session stays Anonymous and nothing is persisted.
//
// Concurrent Login calls are not serialized here; the command layer disables
// the trigger while one is in flight, and if two do race, the last network
// completion wins.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*UserProfile, error) {
	m.transition(func() {
		m.phase = Authenticating
		m.mutating = true
	})

	profile, err := m.api.Login(ctx, creds)
	if err != nil {
		m.transition(func() {
			m.phase = Anonymous
			m.identity = nil
			m.mutating = false
		})
		return nil, err
	}

	m.transition(func() {
		m.phase = Authenticated
		m.identity = profile
		m.mutating = false
	})
	if err := m.store.Save(profile, true); err != nil {
		return profile, err
	}
	m.gate.Close()
	return profile, nil
}

// Logout clears local session state immediately and unconditionally — the
// user-visible contract is "I am logged out on this device" even when the
// server-side invalidation fails. The remote call is fire-and-forget.
func (m *Manager) Logout(ctx context.Context) error {
	m.transition(func() {
		m.phase = Anonymous
		m.identity = nil
		m.mutating = false
	})
	err := m.store.Clear()

	// Local truth already established; server invalidation is best-effort.
	_ = m.api.Logout(ctx)

	return err
}

// Refresh attempts to extend the session without user interaction. It is
// called only by the HTTP client's retry interceptor; it must not be wired to
// any user-facing trigger.
func (m *Manager) Refresh(ctx context.Context) error {
	m.transition(func() {
		m.phase = Refreshing
		m.mutating = true
	})

	if err := m.api.RefreshSession(ctx); err != nil {
		m.ForceLogout("Your session has expired. Please sign in again.")
		return err
	}

	m.transition(func() {
		m.phase = Authenticated
		m.mutating = false
	})
	return nil
}

// SetSession applies externally observed state: the startup load and the
// cross-process watcher both funnel through here. Calls are applied in the
// order they are delivered.
func (m *Manager) SetSession(identity *UserProfile, loggedIn bool) {
	m.transition(func() {
		if loggedIn && identity != nil {
			m.phase = Authenticated
			m.identity = identity
		} else {
			m.phase = Anonymous
			m.identity = nil
		}
	})
}

// ForceLogout resets to the anonymous state and raises the gate with reason.
// Idempotent: forcing an already-anonymous session only updates the prompt.
func (m *Manager) ForceLogout(reason string) {
	m.transition(func() {
		m.phase = Anonymous
		m.identity = nil
		m.mutating = false
	})
	_ = m.store.Clear()
	m.gate.Open(reason)
}

// Validate re-checks the persisted session against the backend, replacing the
// stored profile with the fresh one. Used at startup by commands that need a
// confirmed identity rather than the cached snapshot.
func (m *Manager) Validate(ctx context.Context) (*UserProfile, bool) {
	if !m.IsAuthenticated() {
		return nil, false
	}
	profile, err := m.api.CurrentUser(ctx)
	if err != nil || profile == nil {
		return nil, false
	}
	m.transition(func() {
		m.phase = Authenticated
		m.identity = profile
	})
	_ = m.store.Save(profile, true)
	return profile, true
}

// StartSync subscribes the Manager to persisted-store changes so that a
// logout in another process is observed here without user action. Returns a
// cancel function for teardown.
func (m *Manager) StartSync(ctx context.Context, interval time.Duration) func() {
	return m.store.Watch(ctx, interval, func(identity *UserProfile, loggedIn bool) {
		m.SetSession(identity, loggedIn)
	})
}

// transition applies a state mutation under the lock and notifies
// subscribers after releasing it.
func (m *Manager) transition(mutate func()) {
	m.mu.Lock()
	mutate()
	snap := m.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:         m.phase,
		Authenticated: m.phase == Authenticated || m.phase == Refreshing,
		Identity:      m.identity,
		Mutating:      m.mutating,
	}
}
