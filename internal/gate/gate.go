// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package gate holds the sign-in prompt state. Any component that hits a
// protected resource without a valid session asks the gate to demand
// authentication; how the demand is presented is left to the command layer.
//
// The gate is pure state: no retry or queueing logic lives here.
package gate

import "sync"

// DefaultMessage is shown when a caller opens the gate without context.
const DefaultMessage = "Please sign in to continue"

// State is a snapshot of the gate.
type State struct {
	Visible bool
	Message string
}

// Controller coordinates a single sign-in prompt for the whole process.
// Open is idempotent: opening an already-open gate only updates the message.
type Controller struct {
	mu      sync.Mutex
	visible bool
	message string
	subs    map[int]func(State)
	nextID  int
}

// NewController returns a closed gate.
func NewController() *Controller {
	return &Controller{subs: make(map[int]func(State))}
}

// Open makes the prompt visible with the given message. An empty message
// falls back to DefaultMessage. The most recent message wins.
func (c *Controller) Open(message string) {
	if message == "" {
		message = DefaultMessage
	}
	c.mu.Lock()
	c.visible = true
	c.message = message
	st := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Close hides the prompt and clears the message.
func (c *Controller) Close() {
	c.mu.Lock()
	c.visible = false
	c.message = ""
	st := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// State returns the current gate state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to be called on every state change and returns a
// cancel function. Callbacks run on the mutating goroutine; keep them short.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) snapshotLocked() State {
	return State{Visible: c.visible, Message: c.message}
}

func (c *Controller) subscribersLocked() []func(State) {
	out := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}
