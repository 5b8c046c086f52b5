// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json password",
			in:   `post body {"username":"alice","password":"hunter2"}`,
			want: `post body {"username":"alice","password":"***"}`,
		},
		{
			name: "form password",
			in:   "request failed: password=hunter2&username=alice",
			want: "request failed: password=***&username=alice",
		},
		{
			name: "bearer token",
			in:   "header Authorization: Bearer eyJhbGciOi.abc.def rejected",
			want: "header Authorization: Bearer *** rejected",
		},
		{
			name: "cookie value",
			in:   "cookie accessToken=abc123; Path=/; HttpOnly",
			want: "cookie accessToken=***; Path=/; HttpOnly",
		},
		{
			name: "set-cookie header",
			in:   "unexpected Set-Cookie: refreshToken=zzz; HttpOnly",
			want: "unexpected Set-Cookie: ***",
		},
		{
			name: "plain text untouched",
			in:   "connection refused",
			want: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.in))
		})
	}
}

func TestPresentError(t *testing.T) {
	assert.Equal(t, "", PresentError("ctx", nil))

	got := PresentError("login", errString("bad password=hunter2"))
	assert.Equal(t, "login: bad password=***", got)
}

type errString string

func (e errString) Error() string { return string(e) }
