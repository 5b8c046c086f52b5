// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *UserProfile {
	return &UserProfile{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, NewStore(dir).Save(testProfile(), true))

	// A fresh Store simulates a new process reading the same state.
	identity, loggedIn := NewStore(dir).Load()
	require.NotNil(t, identity)
	assert.True(t, loggedIn)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestLoadMissingFileIsAnonymous(t *testing.T) {
	identity, loggedIn := NewStore(t.TempDir()).Load()
	assert.Nil(t, identity)
	assert.False(t, loggedIn)
}

func TestLoadMalformedFileIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	identity, loggedIn := NewStore(dir).Load()
	assert.Nil(t, identity)
	assert.False(t, loggedIn)
}

func TestLoggedOutStateLoadsAnonymous(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.Save(testProfile(), true))
	require.NoError(t, s.Save(nil, false))

	identity, loggedIn := s.Load()
	assert.Nil(t, identity)
	assert.False(t, loggedIn)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.Save(testProfile(), true))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing twice is fine")

	_, loggedIn := s.Load()
	assert.False(t, loggedIn)
}

func TestSaveNotifiesWatchersInProcess(t *testing.T) {
	s := NewStore(t.TempDir())

	var mu sync.Mutex
	var events []bool
	cancel := s.Watch(context.Background(), time.Hour, func(_ *UserProfile, loggedIn bool) {
		mu.Lock()
		events = append(events, loggedIn)
		mu.Unlock()
	})
	defer cancel()

	require.NoError(t, s.Save(testProfile(), true))
	require.NoError(t, s.Clear())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 2)
	assert.True(t, events[0])
	assert.False(t, events[1])
}

func TestWatchSeesOtherProcessWrites(t *testing.T) {
	dir := t.TempDir()
	writer := NewStore(dir)
	reader := NewStore(dir)

	type event struct {
		identity *UserProfile
		loggedIn bool
	}
	events := make(chan event, 4)
	cancel := reader.Watch(context.Background(), 10*time.Millisecond, func(p *UserProfile, ok bool) {
		events <- event{p, ok}
	})
	defer cancel()

	require.NoError(t, writer.Save(testProfile(), true))

	select {
	case ev := <-events:
		require.NotNil(t, ev.identity)
		assert.True(t, ev.loggedIn)
		assert.Equal(t, "alice", ev.identity.Username)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not observe the write")
	}

	// A logout elsewhere (file removed) is observed as a change too.
	require.NoError(t, writer.Clear())

	select {
	case ev := <-events:
		assert.False(t, ev.loggedIn)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not observe the clear")
	}
}
