// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"net/http"
	"strings"
)

// Backend endpoint paths, relative to the configured base URL.
const (
	pathLogin         = "/user/login"
	pathRegister      = "/user/register"
	pathLogout        = "/user/logout"
	pathRefreshToken  = "/user/refresh-token"
	pathCurrentUser   = "/user/current-user"
	pathChangePass    = "/user/change-password"
	pathUpdateAccount = "/user/update-account"
	pathHistory       = "/user/history"
	pathChannel       = "/user/c/"
	pathVideo         = "/video"
	pathComment       = "/comment/"
	pathCommentByID   = "/comment/c/"
	pathLikeVideo     = "/likes/toggle/v/"
	pathLikeComment   = "/likes/toggle/c/"
	pathLikedVideos   = "/likes/videos"
	pathSubscription  = "/subscriptions/c/"
	pathSubscribers   = "/subscriptions/u/"
	pathHealth        = "/healthcheck"
)

// publicEndpoints declares resources readable without a session. An
// anonymous request that draws a 401 from one of these is passed through to
// the caller untouched: browsing public content must never raise the gate
// over an incidental authorization failure from a personalization sub-field.
var publicEndpoints = []struct {
	method string
	prefix string
}{
	{http.MethodGet, pathVideo},
	{http.MethodGet, pathComment},
	{http.MethodGet, pathChannel},
	{http.MethodGet, pathHealth},
}

// isPublicEndpoint reports whether method+path is declared public.
func isPublicEndpoint(method, path string) bool {
	for _, e := range publicEndpoints {
		if method == e.method && strings.HasPrefix(path, e.prefix) {
			return true
		}
	}
	return false
}

// isAuthEndpoint reports whether path is itself a session lifecycle
// endpoint. Authorization failures from these are passed through unmodified:
// retrying an auth endpoint on its own failure would loop forever, and a 401
// from logout only means the session is already gone — raising the gate
// during a user-requested sign-out would turn a no-op into a prompt.
func isAuthEndpoint(path string) bool {
	switch path {
	case pathLogin, pathRegister, pathRefreshToken, pathLogout:
		return true
	}
	return false
}
