// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenIsIdempotent(t *testing.T) {
	c := NewController()

	c.Open("sign in to like videos")
	c.Open("session expired")

	st := c.State()
	assert.True(t, st.Visible)
	assert.Equal(t, "session expired", st.Message, "most recent message wins")
}

func TestOpenEmptyMessageUsesDefault(t *testing.T) {
	c := NewController()
	c.Open("")

	assert.Equal(t, DefaultMessage, c.State().Message)
}

func TestCloseClearsMessage(t *testing.T) {
	c := NewController()
	c.Open("sign in")
	c.Close()

	st := c.State()
	assert.False(t, st.Visible)
	assert.Empty(t, st.Message)
}

func TestSubscribeAndCancel(t *testing.T) {
	c := NewController()

	var seen []State
	cancel := c.Subscribe(func(st State) { seen = append(seen, st) })

	c.Open("one")
	c.Close()
	cancel()
	c.Open("after cancel")

	assert.Len(t, seen, 2)
	assert.True(t, seen[0].Visible)
	assert.Equal(t, "one", seen[0].Message)
	assert.False(t, seen[1].Visible)
}
