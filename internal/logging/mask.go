// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in log messages and
// formatting errors for user-friendly display while protecting credentials.
//
// The backend authenticates with session cookies, so beyond the usual
// password/token patterns the masks cover Cookie and Set-Cookie material that
// may leak into transport errors.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword  = regexp.MustCompile(`(?i)("password"\s*:\s*")([^"]+)(")|(password=)([^\s;&]+)`)
	reBearer    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reCookieVal = regexp.MustCompile(`(?i)((?:accessToken|refreshToken|session)=)([^\s;]+)`)
	reSetCookie = regexp.MustCompile(`(?i)(set-cookie:\s*)([^\r\n]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// Both JSON-encoded and form-encoded password fields are covered.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1$4***$3")
	out = reBearer.ReplaceAllString(out, "$1***")
	out = reCookieVal.ReplaceAllString(out, "$1***")
	out = reSetCookie.ReplaceAllString(out, "$1***")
	// Env-like pairs; mask common secret keys wholesale.
	for _, k := range []string{"STREAMPLAY_PASSWORD", "ACCESS_TOKEN", "REFRESH_TOKEN"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
