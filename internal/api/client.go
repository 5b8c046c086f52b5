// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api implements the HTTP client for the streamplay backend. Every
// outbound request passes through the retry interceptor in exec, the only
// place in the client that reacts to authorization failures.
//
// The backend authenticates with transport-level session cookies; the client
// keeps them in an in-memory jar and mirrors them to the OS keychain so a
// session survives process restarts.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionHooks is the slice of the session manager the interceptor needs.
// It is bound after construction via BindSession to break the construction
// cycle between client and manager.
type SessionHooks interface {
	IsAuthenticated() bool
	Refresh(ctx context.Context) error
	ForceLogout(reason string)
}

// CookieStore persists the serialized transport credential across runs.
// The keychain manager implements it; tests use in-memory fakes.
type CookieStore interface {
	SaveSessionCookies(data []byte) error
	LoadSessionCookies() ([]byte, error)
	ClearSessionCookies() error
}

// Config holds client construction settings.
type Config struct {
	// BaseURL is the backend base URL including the API version prefix.
	BaseURL string
	// RequestTimeout bounds ordinary requests.
	RequestTimeout time.Duration
	// UploadTimeout bounds video publish requests.
	UploadTimeout time.Duration
	// Cookies, when non-nil, persists session cookies across runs.
	Cookies CookieStore
}

// Client is the HTTP client for the streamplay backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	upload  *http.Client
	cookies CookieStore
	session SessionHooks

	// refresh single-flight state. At most one refresh is outstanding; every
	// request that observes a 401 while it is in flight queues here and is
	// released in arrival order once the refresh resolves.
	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
}

// NewClient builds a client. Previously persisted session cookies are loaded
// into the jar so an existing session is usable immediately.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 10 * time.Minute
	}

	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.RequestTimeout, Jar: jar},
		upload:  &http.Client{Timeout: cfg.UploadTimeout, Jar: jar},
		cookies: cfg.Cookies,
	}
	c.loadCookies()
	return c, nil
}

// BindSession attaches the session manager. Must be called before any
// protected request; requests made without a bound session treat every 401
// as a passthrough.
func (c *Client) BindSession(s SessionHooks) {
	c.session = s
}

// apiRequest is one outbound call, with enough information to replay it
// after a successful refresh.
type apiRequest struct {
	method      string
	path        string
	query       url.Values
	contentType string
	body        []byte
	upload      bool
}

// do executes an API request through the interceptor.
func (c *Client) do(ctx context.Context, r apiRequest) ([]byte, error) {
	return c.exec(ctx, r, false)
}

// exec performs one attempt plus, at most, one refresh-and-replay. The
// retried flag is the replay marker: a request that fails authorization
// twice never triggers a third attempt.
func (c *Client) exec(ctx context.Context, r apiRequest, retried bool) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var bodyReader io.Reader
	if len(r.body) > 0 {
		bodyReader = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	hc := c.http
	if r.upload {
		hc = c.upload
	}
	resp, err := hc.Do(req)
	if err != nil {
		// Connectivity failures carry no information about session
		// validity: pass through, never refresh.
		return nil, err
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errText(body)}
	}

	// Authorization failure. Decide: passthrough, refresh-and-replay, or
	// forced logout.
	serverText := errText(body)

	if isAuthEndpoint(r.path) {
		return nil, unauthorized(serverText)
	}

	if c.session == nil || !c.session.IsAuthenticated() {
		if isPublicEndpoint(r.method, r.path) {
			return nil, unauthorized(serverText)
		}
		// No session to refresh; demand sign-in immediately.
		if c.session != nil {
			c.clearCookies()
			c.session.ForceLogout("Please sign in to access this content")
		}
		return nil, ErrAuthRequired
	}

	if retried {
		c.clearCookies()
		c.session.ForceLogout(expiryReason(serverText))
		return nil, ErrSessionExpired
	}

	if err := c.refreshAndWait(ctx); err != nil {
		// The manager has already forced the logout; the stale transport
		// credential must not outlive it.
		c.clearCookies()
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, serverText)
	}
	return c.exec(ctx, r, true)
}

// refreshAndWait serializes refresh attempts. The first caller performs the
// refresh; everyone who arrives while it is in flight queues and receives the
// shared outcome in arrival order. A successful outcome lets each queued
// request replay exactly once; a failure rejects them all.
func (c *Client) refreshAndWait(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.session.Refresh(ctx)

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

// unauthorized wraps ErrUnauthorized with the server's text when present.
func unauthorized(serverText string) error {
	if serverText == "" {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %s", ErrUnauthorized, serverText)
}

// errText extracts the human-readable message from an error response body.
func errText(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.text() != "" {
		return eb.text()
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// loadCookies restores persisted session cookies into the jar.
func (c *Client) loadCookies() {
	if c.cookies == nil {
		return
	}
	data, err := c.cookies.LoadSessionCookies()
	if err != nil || len(data) == 0 {
		return
	}
	var cookies []*http.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		// Malformed persisted data means no session, never a fatal error.
		return
	}
	c.http.Jar.SetCookies(c.baseURL, cookies)
}

// persistCookies mirrors the jar's cookies for the backend origin to the
// cookie store. Called after login and refresh, the two points where the
// backend rotates the credential.
func (c *Client) persistCookies() {
	if c.cookies == nil {
		return
	}
	cookies := c.http.Jar.Cookies(c.baseURL)
	b, err := json.Marshal(cookies)
	if err != nil {
		return
	}
	_ = c.cookies.SaveSessionCookies(b)
}

// clearCookies drops the transport credential locally.
func (c *Client) clearCookies() {
	jar, err := cookiejar.New(nil)
	if err == nil {
		c.http.Jar = jar
		c.upload.Jar = jar
	}
	if c.cookies != nil {
		_ = c.cookies.ClearSessionCookies()
	}
}

// Health calls the backend health endpoint. No authentication required; can
// be used to check connectivity.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, apiRequest{method: http.MethodGet, path: pathHealth})
	return err
}
