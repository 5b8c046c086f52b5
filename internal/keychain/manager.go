// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for streamplay.
// The backend authenticates with transport-level session cookies rather than
// bearer tokens, so the secret material stored here is the serialized cookie
// set for the backend origin. Profile data and the logged-in flag are not
// secrets and live in the session state file instead.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "streamplay"

// KeySessionCookies stores the serialized cookie set for the backend origin.
const KeySessionCookies = "session_cookies"

// ErrNotFound reports that no secret is stored under the requested key.
var ErrNotFound = errors.New("keychain: item not found")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
// No plaintext file fallback: cookies grant full account access.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Try macOS Keychain first, then pass (password store) as fallback.
		allowedBackends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.PassBackend,
		}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.PassBackend,
		}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, errors.New("no secure credential store available; see https://github.com/99designs/keyring for supported backends")
	}
	return ring, nil
}

// SaveSessionCookies stores the serialized cookie set in the OS keychain.
func (m *Manager) SaveSessionCookies(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeySessionCookies, Data: data})
}

// LoadSessionCookies retrieves the serialized cookie set from the keychain.
// Returns ErrNotFound when nothing is stored.
func (m *Manager) LoadSessionCookies() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, err := m.ring.Get(KeySessionCookies)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it.Data, nil
}

// ClearSessionCookies removes the stored cookie set. Clearing an absent key
// is not an error; logout must be idempotent.
func (m *Manager) ClearSessionCookies() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ring.Remove(KeySessionCookies); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
