// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"streamplay/cli/internal/session"
)

// Login calls POST /user/login. The credential input is sent as both
// username and email; the backend accepts either. On success the session
// cookie set by the backend is captured by the jar and persisted.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (*session.UserProfile, error) {
	payload, err := json.Marshal(map[string]string{
		"username": creds.UsernameOrEmail,
		"email":    creds.UsernameOrEmail,
		"password": creds.Password,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPost,
		path:        pathLogin,
		contentType: "application/json",
		body:        payload,
	})
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	profile, err := profileFrom(env.Data)
	if err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	c.persistCookies()
	return profile, nil
}

// Register calls POST /user/register with a multipart form carrying the
// avatar and optional cover image.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*session.UserProfile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
		"fullName": req.FullName,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := attachFile(w, "avatar", req.AvatarPath); err != nil {
		return nil, err
	}
	if req.CoverImagePath != "" {
		if err := attachFile(w, "coverImage", req.CoverImagePath); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPost,
		path:        pathRegister,
		contentType: w.FormDataContentType(),
		body:        buf.Bytes(),
		upload:      true,
	})
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	profile, err := profileFrom(env.Data)
	if err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}
	return profile, nil
}

// Logout calls POST /user/logout and drops the transport credential locally
// whatever the outcome. The local state change is authoritative; the remote
// invalidation is best-effort.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, apiRequest{method: http.MethodPost, path: pathLogout})
	c.clearCookies()
	return err
}

// RefreshSession calls POST /user/refresh-token. No body: the renewal relies
// on the refresh cookie already in the jar. The rotated cookies are
// persisted on success.
//
// This is an auth endpoint, so its own 401 passes through the interceptor
// untouched — refresh never recurses.
func (c *Client) RefreshSession(ctx context.Context) error {
	_, err := c.do(ctx, apiRequest{method: http.MethodPost, path: pathRefreshToken})
	if err != nil {
		return err
	}
	c.persistCookies()
	return nil
}

// CurrentUser calls GET /user/current-user to re-validate the session.
func (c *Client) CurrentUser(ctx context.Context) (*session.UserProfile, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathCurrentUser})
	if err != nil {
		return nil, err
	}
	var profile session.UserProfile
	if _, err := unwrap(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword calls POST /user/change-password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload, err := json.Marshal(map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, apiRequest{
		method:      http.MethodPost,
		path:        pathChangePass,
		contentType: "application/json",
		body:        payload,
	})
	return err
}

// UpdateAccount calls PATCH /user/update-account and returns the updated
// profile.
func (c *Client) UpdateAccount(ctx context.Context, req UpdateAccountRequest) (*session.UserProfile, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, apiRequest{
		method:      http.MethodPatch,
		path:        pathUpdateAccount,
		contentType: "application/json",
		body:        payload,
	})
	if err != nil {
		return nil, err
	}
	var profile session.UserProfile
	if _, err := unwrap(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChannelProfile calls GET /user/c/{username}. Public: works anonymously,
// though the isSubscribed flag is only meaningful with a session.
func (c *Client) ChannelProfile(ctx context.Context, username string) (*ChannelProfile, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathChannel + username})
	if err != nil {
		return nil, err
	}
	var profile ChannelProfile
	if _, err := unwrap(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// WatchHistory calls GET /user/history.
func (c *Client) WatchHistory(ctx context.Context) ([]Video, error) {
	body, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathHistory})
	if err != nil {
		return nil, err
	}
	var videos []Video
	if _, err := unwrap(body, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// attachFile adds a file part to a multipart form.
func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s file: %w", field, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
