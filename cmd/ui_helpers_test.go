// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "a long ti…", truncate("a long title that keeps going", 10))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	title := "日本語のタイトルがとても長い場合の動画"
	got := truncate(title, 10)
	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Equal(t, 10, utf8.RuneCountInString(got))
	assert.Equal(t, "日本語のタイトルが…", got)

	mixed := "héllo wörld, a café vidéo with àccents"
	got = truncate(mixed, 12)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "héllo wörld…", got)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:42", formatDuration(42))
	assert.Equal(t, "4:05", formatDuration(245))
	assert.Equal(t, "1:01:05", formatDuration(3665))
}
