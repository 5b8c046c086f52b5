// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the client's belief about who is signed in. The
// Manager is the single source of truth for authentication state; the Store
// persists it across runs so that every streamplay process on the machine
// agrees on the current login status.
package session

import "time"

// Phase is the lifecycle state of the session.
type Phase int

const (
	// Anonymous means nobody is signed in. Also the valid initial state.
	Anonymous Phase = iota
	// Authenticating means a login request is in flight.
	Authenticating
	// Authenticated means a profile is present and believed valid.
	Authenticated
	// Refreshing means a credential renewal is in flight after a 401.
	Refreshing
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// UserProfile is the denormalized snapshot of the signed-in user as returned
// by the backend. It is treated as opaque and immutable per fetch; the client
// only ever compares identifiers.
type UserProfile struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Snapshot is an immutable view of the session handed to subscribers.
// Authenticated implies a non-nil Identity.
type Snapshot struct {
	Phase         Phase
	Authenticated bool
	Identity      *UserProfile
	// Mutating reports that a login, logout or refresh is in flight.
	Mutating bool
}

// Credentials carries the login form input. UsernameOrEmail is sent as both
// fields; the backend accepts either.
type Credentials struct {
	UsernameOrEmail string
	Password        string
}
