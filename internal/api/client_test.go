// Copyright (c) 2025 Streamplay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamplay/cli/internal/gate"
	"streamplay/cli/internal/session"
)

// fakeSession implements SessionHooks with scriptable refresh behavior.
type fakeSession struct {
	mu        sync.Mutex
	authed    bool
	refreshes int
	reasons   []string
	refresh   func(ctx context.Context) error
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeSession) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.refreshes++
	fn := f.refresh
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

func (f *fakeSession) ForceLogout(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authed = false
	f.reasons = append(f.reasons, reason)
}

func (f *fakeSession) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

func (f *fakeSession) forcedReasons() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reasons...)
}

// memCookies is an in-memory CookieStore.
type memCookies struct {
	mu   sync.Mutex
	data []byte
}

func (m *memCookies) SaveSessionCookies(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memCookies) LoadSessionCookies() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memCookies) ClearSessionCookies() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func newTestClient(t *testing.T, srv *httptest.Server, hooks SessionHooks) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srv.URL, RequestTimeout: 5 * time.Second})
	require.NoError(t, err)
	if hooks != nil {
		c.BindSession(hooks)
	}
	return c
}

func writeEnvelope(w http.ResponseWriter, data any) {
	b, _ := json.Marshal(data)
	resp := fmt.Sprintf(`{"statusCode":200,"data":%s,"message":"ok","success":true}`, b)
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(resp))
}

func write401(w http.ResponseWriter, text string) {
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, text)
}

func TestSingleRefreshForConcurrent401s(t *testing.T) {
	const n = 5

	var authorized atomic.Bool
	var denied atomic.Int32
	var served atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/user/history", func(w http.ResponseWriter, r *http.Request) {
		if !authorized.Load() {
			denied.Add(1)
			write401(w, "jwt expired")
			return
		}
		served.Add(1)
		writeEnvelope(w, []Video{{ID: "v1", Title: "first"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, nil)

	hooks := &fakeSession{authed: true}
	// The refresh completes only after the other n-1 callers are queued
	// behind it, so all n funnel through the same in-flight refresh.
	hooks.refresh = func(ctx context.Context) error {
		deadline := time.After(3 * time.Second)
		for {
			c.mu.Lock()
			queued := len(c.waiters)
			c.mu.Unlock()
			if queued == n-1 {
				break
			}
			select {
			case <-deadline:
				return fmt.Errorf("only %d of %d requests queued behind the refresh", queued, n-1)
			case <-time.After(5 * time.Millisecond):
			}
		}
		authorized.Store(true)
		return nil
	}
	c.BindSession(hooks)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.WatchHistory(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, 1, hooks.refreshCount(), "exactly one refresh for all concurrent 401s")
	assert.Equal(t, int32(n), denied.Load(), "each request denied once")
	assert.Equal(t, int32(n), served.Load(), "each request replayed exactly once")
	assert.Empty(t, hooks.forcedReasons())
}

func TestNoThirdAttemptAfterRetriedFailure(t *testing.T) {
	var hits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/user/history", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		write401(w, "jwt expired")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{authed: true} // refresh "succeeds" but the server keeps denying
	c := newTestClient(t, srv, hooks)

	_, err := c.WatchHistory(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(2), hits.Load(), "original plus one retry, never a third")
	assert.Equal(t, 1, hooks.refreshCount())

	reasons := hooks.forcedReasons()
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "expired")
}

func TestRefreshFailureRejectsAndStops(t *testing.T) {
	var hits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/user/history", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		write401(w, "invalid access token")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{authed: true}
	hooks.refresh = func(ctx context.Context) error {
		return fmt.Errorf("refresh token expired or invalid")
	}
	c := newTestClient(t, srv, hooks)

	_, err := c.WatchHistory(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), hits.Load(), "no replay after a failed refresh")
}

func TestPublicEndpointExemptionWhenAnonymous(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/video", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "unauthorized request")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{authed: false}
	c := newTestClient(t, srv, hooks)

	_, err := c.ListVideos(context.Background(), ListVideosParams{})
	assert.ErrorIs(t, err, ErrUnauthorized, "passed through unmodified")
	assert.Equal(t, 0, hooks.refreshCount(), "no refresh for anonymous public browsing")
	assert.Empty(t, hooks.forcedReasons(), "no gate for anonymous public browsing")
}

func TestProtectedEndpointWhenAnonymousRaisesGate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/history", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "unauthorized request")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{authed: false}
	c := newTestClient(t, srv, hooks)

	_, err := c.WatchHistory(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 0, hooks.refreshCount(), "no session to refresh")

	reasons := hooks.forcedReasons()
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "sign in")
}

func TestAuthEndpointFailurePassesThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "Invalid user credentials")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{authed: true}
	c := newTestClient(t, srv, hooks)

	_, err := c.Login(context.Background(), session.Credentials{
		UsernameOrEmail: "alice",
		Password:        "wrong",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid user credentials")
	assert.Equal(t, 0, hooks.refreshCount(), "auth endpoints never trigger refresh")
	assert.Empty(t, hooks.forcedReasons())
}

func TestNetworkFailurePassesThrough(t *testing.T) {
	hooks := &fakeSession{authed: true}
	c, err := NewClient(Config{BaseURL: "http://127.0.0.1:1", RequestTimeout: 200 * time.Millisecond})
	require.NoError(t, err)
	c.BindSession(hooks)

	_, err = c.WatchHistory(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, hooks.refreshCount(), "connectivity failures never trigger refresh")
	assert.Empty(t, hooks.forcedReasons())
}

func TestNon401ErrorIsStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/video/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"video not found"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, &fakeSession{authed: true})

	_, err := c.GetVideo(context.Background(), "missing")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "video not found", se.Message)
}

func TestLoginCapturesProfileAndCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds["username"])

		http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "tok-1", Path: "/"})
		writeEnvelope(w, map[string]any{
			"user": map[string]any{"_id": "u1", "username": "alice"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := &memCookies{}
	c, err := NewClient(Config{BaseURL: srv.URL, Cookies: store})
	require.NoError(t, err)
	c.BindSession(&fakeSession{})

	profile, err := c.Login(context.Background(), session.Credentials{
		UsernameOrEmail: "alice",
		Password:        "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "alice", profile.Username)

	saved, err := store.LoadSessionCookies()
	require.NoError(t, err)
	assert.Contains(t, string(saved), "accessToken", "session cookie persisted")
}

func TestLogoutEndpoint401PassesThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/logout", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "jwt expired")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// Local sign-out has already happened by the time the remote call fires,
	// so the client sees an anonymous session.
	hooks := &fakeSession{authed: false}
	cookies := &memCookies{data: []byte(`[{"Name":"accessToken","Value":"stale"}]`)}
	c, err := NewClient(Config{BaseURL: srv.URL, RequestTimeout: 5 * time.Second, Cookies: cookies})
	require.NoError(t, err)
	c.BindSession(hooks)

	err = c.Logout(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, hooks.forcedReasons(), "a rejected logout must not demand sign-in")
	assert.Equal(t, 0, hooks.refreshCount())

	saved, err := cookies.LoadSessionCookies()
	require.NoError(t, err)
	assert.Empty(t, saved, "transport credential dropped regardless of the outcome")
}

func TestLogoutAfterServerSideExpiryStaysQuiet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{
			"user": map[string]any{"_id": "u1", "username": "alice"},
		})
	})
	mux.HandleFunc("/user/logout", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "jwt expired")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, RequestTimeout: 5 * time.Second})
	require.NoError(t, err)
	g := gate.NewController()
	m := session.NewManager(c, session.NewStore(t.TempDir()), g)
	c.BindSession(m)

	_, err = m.Login(context.Background(), session.Credentials{
		UsernameOrEmail: "alice",
		Password:        "secret",
	})
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, m.IsAuthenticated())
	assert.False(t, g.State().Visible, "sign-out is not a reason to prompt for sign-in")
}

func TestForcedLogoutDropsStoredCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/history", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "jwt expired")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{authed: true}
	cookies := &memCookies{data: []byte(`[{"Name":"accessToken","Value":"stale"}]`)}
	c, err := NewClient(Config{BaseURL: srv.URL, RequestTimeout: 5 * time.Second, Cookies: cookies})
	require.NoError(t, err)
	c.BindSession(hooks)

	_, err = c.WatchHistory(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	require.NotEmpty(t, hooks.forcedReasons())

	saved, err := cookies.LoadSessionCookies()
	require.NoError(t, err)
	assert.Empty(t, saved, "stale transport credential must not outlive the forced logout")
}

func TestRefreshFailureDropsStoredCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/history", func(w http.ResponseWriter, r *http.Request) {
		write401(w, "jwt expired")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hooks := &fakeSession{
		authed:  true,
		refresh: func(ctx context.Context) error { return fmt.Errorf("refresh token revoked") },
	}
	cookies := &memCookies{data: []byte(`[{"Name":"accessToken","Value":"stale"}]`)}
	c, err := NewClient(Config{BaseURL: srv.URL, RequestTimeout: 5 * time.Second, Cookies: cookies})
	require.NoError(t, err)
	c.BindSession(hooks)

	_, err = c.WatchHistory(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)

	saved, err := cookies.LoadSessionCookies()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestExpiryReasonPhrasing(t *testing.T) {
	assert.Contains(t, expiryReason("jwt expired"), "expired")
	assert.Contains(t, expiryReason("invalid signature"), "no longer valid")
}
