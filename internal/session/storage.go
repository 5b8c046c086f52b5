// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session implements persistence for session state.
//
// This file stores the serialized state as a single JSON document in the XDG
// state directory. The document holds two logical keys: the serialized user
// profile and the logged-in flag. Writes are atomic (temp file + rename) so a
// concurrent reader never observes a partial document, and a polling watcher
// lets other processes pick up changes — logging out in one terminal logs out
// all of them.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const stateFileName = "session.json"

// DefaultWatchInterval is how often Watch polls the state file for changes
// made by other processes.
const DefaultWatchInterval = time.Second

// persistedState mirrors the storage contract: a user profile under
// "user_data" and a string flag under "status".
type persistedState struct {
	UserData json.RawMessage `json:"user_data,omitempty"`
	Status   string          `json:"status"`
}

// Store persists session state to a directory on disk.
type Store struct {
	dir string

	mu       sync.Mutex
	watchers map[int]func(*UserProfile, bool)
	nextID   int
}

// NewStore creates a store rooted at dir. The directory must exist.
func NewStore(dir string) *Store {
	return &Store{
		dir:      dir,
		watchers: make(map[int]func(*UserProfile, bool)),
	}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, stateFileName)
}

// Load reads the persisted session. A missing or malformed file is treated as
// "no session", never as a fatal error.
func (s *Store) Load() (*UserProfile, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, false
	}

	var ps persistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, false
	}
	if ps.Status != "true" || len(ps.UserData) == 0 {
		return nil, false
	}

	var profile UserProfile
	if err := json.Unmarshal(ps.UserData, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// Save writes both keys atomically: the document is assembled in full,
// written to a temp file and renamed into place, so no reader can observe a
// partial write. Watchers in this process are notified synchronously.
func (s *Store) Save(identity *UserProfile, loggedIn bool) error {
	ps := persistedState{Status: "false"}
	if loggedIn {
		ps.Status = "true"
	}
	if identity != nil {
		b, err := json.Marshal(identity)
		if err != nil {
			return err
		}
		ps.UserData = b
	}

	doc, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, stateFileName+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path()); err != nil {
		os.Remove(tmpName)
		return err
	}

	s.notify(identity, loggedIn)
	return nil
}

// Clear removes the persisted session. Missing state is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.notify(nil, false)
	return nil
}

// Watch registers fn to be invoked whenever the persisted session changes,
// whether by this process or another one. Changes from other processes are
// detected by polling the state file at interval (DefaultWatchInterval when
// interval is zero). The returned cancel function stops the watcher; ctx
// cancellation does too.
func (s *Store) Watch(ctx context.Context, interval time.Duration, fn func(*UserProfile, bool)) func() {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	go s.pollLoop(watchCtx, interval)

	return func() {
		cancel()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// pollLoop republishes Load() whenever the state file's mtime or size
// changes. Events are delivered in the order observed; no reordering.
func (s *Store) pollLoop(ctx context.Context, interval time.Duration) {
	last := s.stamp()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := s.stamp()
			if cur == last {
				continue
			}
			last = cur
			identity, loggedIn := s.Load()
			s.notify(identity, loggedIn)
		}
	}
}

// stamp fingerprints the state file. A missing file has a distinct stamp so
// that deletion (logout elsewhere) is observed as a change.
func (s *Store) stamp() string {
	fi, err := os.Stat(s.path())
	if err != nil {
		return "absent"
	}
	return fmt.Sprintf("%d/%d", fi.ModTime().UnixNano(), fi.Size())
}

func (s *Store) notify(identity *UserProfile, loggedIn bool) {
	s.mu.Lock()
	fns := make([]func(*UserProfile, bool), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(identity, loggedIn)
	}
}
