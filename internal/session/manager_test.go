// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamplay/cli/internal/gate"
)

// fakeAPI implements AuthAPI with scriptable results.
type fakeAPI struct {
	mu           sync.Mutex
	loginResult  *UserProfile
	loginErr     error
	logoutErr    error
	refreshErr   error
	logoutCalled bool
	// observedAtLogout records the session state the fake saw when the
	// remote logout fired, to prove local truth was already established.
	observedAtLogout func() bool
	authedAtLogout   bool
}

func (f *fakeAPI) Login(ctx context.Context, creds Credentials) (*UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginResult, f.loginErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalled = true
	if f.observedAtLogout != nil {
		f.authedAtLogout = f.observedAtLogout()
	}
	return f.logoutErr
}

func (f *fakeAPI) RefreshSession(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshErr
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginResult, f.loginErr
}

func newTestManager(t *testing.T, api *fakeAPI) (*Manager, *gate.Controller, *Store) {
	t.Helper()
	store := NewStore(t.TempDir())
	g := gate.NewController()
	return NewManager(api, store, g), g, store
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAPI{loginResult: testProfile()}
	m, g, store := newTestManager(t, api)
	g.Open("sign in to comment")

	profile, err := m.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)

	snap := m.Snapshot()
	assert.Equal(t, Authenticated, snap.Phase)
	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.Identity)

	identity, loggedIn := store.Load()
	assert.True(t, loggedIn, "successful login is persisted")
	assert.Equal(t, "u1", identity.ID)

	assert.False(t, g.State().Visible, "login closes the gate")
}

func TestLoginFailure(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("Invalid user credentials")}
	m, _, store := newTestManager(t, api)

	_, err := m.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "nope"})
	require.Error(t, err)

	snap := m.Snapshot()
	assert.Equal(t, Anonymous, snap.Phase)
	assert.Nil(t, snap.Identity)

	_, loggedIn := store.Load()
	assert.False(t, loggedIn, "failed login persists nothing")
}

func TestLogoutIsLocalFirst(t *testing.T) {
	api := &fakeAPI{loginResult: testProfile(), logoutErr: errors.New("network down")}
	m, _, store := newTestManager(t, api)
	_, err := m.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "secret"})
	require.NoError(t, err)

	api.observedAtLogout = m.IsAuthenticated

	require.NoError(t, m.Logout(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, Anonymous, snap.Phase)
	assert.Nil(t, snap.Identity)

	_, loggedIn := store.Load()
	assert.False(t, loggedIn)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.True(t, api.logoutCalled, "remote invalidation still attempted")
	assert.False(t, api.authedAtLogout, "local state cleared before the remote call")
}

func TestRefreshSuccessKeepsIdentity(t *testing.T) {
	api := &fakeAPI{loginResult: testProfile()}
	m, _, _ := newTestManager(t, api)
	_, err := m.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, m.Refresh(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, Authenticated, snap.Phase)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u1", snap.Identity.ID)
}

func TestRefreshFailureForcesLogout(t *testing.T) {
	api := &fakeAPI{loginResult: testProfile()}
	m, g, store := newTestManager(t, api)
	_, err := m.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "secret"})
	require.NoError(t, err)

	api.mu.Lock()
	api.refreshErr = errors.New("refresh token expired")
	api.mu.Unlock()

	require.Error(t, m.Refresh(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, Anonymous, snap.Phase)
	assert.Nil(t, snap.Identity)

	_, loggedIn := store.Load()
	assert.False(t, loggedIn)

	st := g.State()
	assert.True(t, st.Visible, "irrecoverable refresh raises the gate")
	assert.Contains(t, st.Message, "expired")
}

func TestForceLogoutIsIdempotent(t *testing.T) {
	api := &fakeAPI{}
	m, g, _ := newTestManager(t, api)

	m.ForceLogout("session expired")
	m.ForceLogout("signed in elsewhere")

	snap := m.Snapshot()
	assert.Equal(t, Anonymous, snap.Phase)
	assert.Nil(t, snap.Identity)

	st := g.State()
	assert.True(t, st.Visible)
	assert.Equal(t, "signed in elsewhere", st.Message, "latest reason wins")
}

func TestStartupLoadsPersistedSession(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(testProfile(), true))

	m := NewManager(&fakeAPI{}, NewStore(dir), gate.NewController())

	snap := m.Snapshot()
	assert.Equal(t, Authenticated, snap.Phase)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "alice", snap.Identity.Username)
}

func TestCrossProcessLogoutSync(t *testing.T) {
	dir := t.TempDir()

	// First process signs in.
	first := NewManager(&fakeAPI{loginResult: testProfile()}, NewStore(dir), gate.NewController())
	_, err := first.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "secret"})
	require.NoError(t, err)

	// Second, already-open process syncs from the shared store.
	second := NewManager(&fakeAPI{}, NewStore(dir), gate.NewController())
	require.True(t, second.IsAuthenticated())

	cancel := second.StartSync(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Logout in the first process must log out the second without any user
	// action there.
	require.NoError(t, first.Logout(context.Background()))

	require.Eventually(t, func() bool {
		return !second.IsAuthenticated()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, second.Identity())
}

func TestSubscribeObservesTransitions(t *testing.T) {
	api := &fakeAPI{loginResult: testProfile()}
	m, _, _ := newTestManager(t, api)

	var mu sync.Mutex
	var phases []Phase
	cancel := m.Subscribe(func(s Snapshot) {
		mu.Lock()
		phases = append(phases, s.Phase)
		mu.Unlock()
	})
	defer cancel()

	_, err := m.Login(context.Background(), Credentials{UsernameOrEmail: "alice", Password: "secret"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(phases), 2)
	assert.Equal(t, Authenticating, phases[0])
	assert.Equal(t, Authenticated, phases[1])
}
