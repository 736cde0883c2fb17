package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/client/client"
	"github.com/dmitrijs2005/gophconsole/internal/client/router"
	"github.com/dmitrijs2005/gophconsole/internal/client/session"
	"github.com/dmitrijs2005/gophconsole/internal/common"
	"github.com/dmitrijs2005/gophconsole/internal/testx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Unix(1_800_000_000, 0)

func fixedClock() time.Time { return now }

// ---- helpers ----

func newAuth(t *testing.T, h http.HandlerFunc) (AuthService, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	api := client.NewHTTPClient(srv.URL, store)
	return NewAuthService(api, store, WithClock(fixedClock)), store
}

func offline(t *testing.T) (AuthService, *session.MemoryStore) {
	return newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
}

func storedProfile(t *testing.T, s *session.MemoryStore) session.Profile {
	t.Helper()
	var p session.Profile
	require.NoError(t, json.Unmarshal(s.Get(common.UserKey), &p))
	return p
}

// failingStore reports I/O errors on reads.
type failingStore struct {
	*session.MemoryStore
}

func (f failingStore) Token(context.Context) (string, error) {
	return "", errors.New("disk unavailable")
}

func (f failingStore) Load(context.Context) (session.Session, error) {
	return session.Session{}, errors.New("disk unavailable")
}

// ---- login ----

func TestLogin_FallsBackToResponseFields(t *testing.T) {
	var got LoginRequest
	auth, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		testx.WriteOK(w, LoginResponse{ID: 1, Username: "t", Email: "t@t.com", Role: "user", Token: "h.p.s"})
	})

	p, err := auth.Login(context.Background(), "t@t.com", "x")
	require.NoError(t, err)

	want := session.Profile{ID: 1, Username: "t", Email: "t@t.com", Role: "user"}
	assert.Equal(t, want, *p)
	assert.Equal(t, LoginRequest{Email: "t@t.com", Password: "x"}, got)
	assert.Equal(t, "h.p.s", string(store.Get(common.TokenKey)))
	assert.Equal(t, want, storedProfile(t, store))
}

func TestLogin_DerivesProfileFromClaims(t *testing.T) {
	cred := testx.IssueToken(t, testx.TokenClaims{
		Subject:   "42",
		Email:     "alice@example.com",
		Role:      "admin",
		ExpiresAt: now.Add(time.Hour),
	})
	auth, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		testx.WriteOK(w, LoginResponse{ID: 9, Username: "stale", Email: "alice@example.com", Token: cred})
	})

	p, err := auth.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	want := session.Profile{ID: 42, Username: "alice", Email: "alice@example.com", Role: "admin"}
	assert.Equal(t, want, *p)
	assert.Equal(t, want, storedProfile(t, store))
	assert.Equal(t, cred, auth.Token(context.Background()))
	assert.Equal(t, int64(3600), auth.RemainingValiditySeconds(context.Background()))
}

func TestLogin_BusinessErrorStoresNothing(t *testing.T) {
	auth, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		testx.WriteEnvelope(w, http.StatusOK, 401, "bad credentials", nil)
	})

	p, err := auth.Login(context.Background(), "t@t.com", "wrong")
	assert.Nil(t, p)

	var le *LoginError
	require.ErrorAs(t, err, &le)
	var be *client.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 401, be.Code)
	assert.Equal(t, "bad credentials", be.Message)
	assert.Zero(t, store.Len())
}

func TestLogin_TransportErrorStoresNothing(t *testing.T) {
	auth, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		testx.WriteEnvelope(w, http.StatusLocked, 423, "", nil)
	})

	_, err := auth.Login(context.Background(), "t@t.com", "x")

	var he *client.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "account locked, please contact administrator", he.Message)
	assert.Zero(t, store.Len())
}

func TestLogin_MissingCredential(t *testing.T) {
	auth, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
		testx.WriteOK(w, LoginResponse{ID: 1, Email: "t@t.com"})
	})

	_, err := auth.Login(context.Background(), "t@t.com", "x")
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, store.Len())
}

// ---- lifecycle ----

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		cred func(t *testing.T) string
		want bool
	}{
		{"valid", func(t *testing.T) string { return testx.ValidToken(t, now.Add(time.Minute)) }, true},
		{"one second left", func(t *testing.T) string { return testx.ValidToken(t, now.Add(time.Second)) }, true},
		{"expires now", func(t *testing.T) string { return testx.ValidToken(t, now) }, false},
		{"expired", func(t *testing.T) string { return testx.ValidToken(t, now.Add(-time.Second)) }, false},
		{"no exp", func(t *testing.T) string {
			return testx.IssueToken(t, testx.TokenClaims{Subject: "1", Email: "t@t.com"})
		}, false},
		{"two segments", func(*testing.T) string { return "a.b" }, false},
		{"payload not json", func(*testing.T) string { return "h.bm90LWpzb24.s" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, store := offline(t)
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, tt.cred(t), session.Profile{ID: 1, Email: "t@t.com"}))
			require.NoError(t, store.RememberEmail(ctx, "t@t.com"))

			assert.Equal(t, tt.want, auth.IsAuthenticated(ctx))
			assert.Equal(t, tt.want, auth.ValidateToken(ctx))

			if tt.want {
				assert.Equal(t, 3, store.Len())
			} else {
				// evicted, but the remember-me hint survives a plain logout
				assert.Nil(t, store.Get(common.TokenKey))
				assert.Nil(t, store.Get(common.UserKey))
				assert.Equal(t, "t@t.com", auth.RememberedEmail(ctx))
			}
		})
	}
}

func TestLogoutThenIsAuthenticated(t *testing.T) {
	auth, store := offline(t)
	ctx := context.Background()

	auth.Logout(ctx)
	assert.False(t, auth.IsAuthenticated(ctx))

	require.NoError(t, store.Save(ctx, testx.ValidToken(t, now.Add(time.Hour)), session.Profile{ID: 1}))
	require.True(t, auth.IsAuthenticated(ctx))

	auth.Logout(ctx)
	assert.False(t, auth.IsAuthenticated(ctx))
	assert.Nil(t, auth.CurrentUser(ctx))
}

func TestAutoLogin_AbsentDoesNotWrite(t *testing.T) {
	auth, store := offline(t)

	assert.False(t, auth.AutoLogin(context.Background()))
	assert.Zero(t, store.Len())
}

func TestAutoLogin_ExpiredClears(t *testing.T) {
	auth, store := offline(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testx.ValidToken(t, now.Add(-time.Minute)), session.Profile{ID: 1}))

	assert.False(t, auth.AutoLogin(ctx))
	assert.Zero(t, store.Len())
	assert.False(t, auth.IsAuthenticated(ctx))
}

func TestAutoLogin_RefreshesProfile(t *testing.T) {
	auth, store := offline(t)
	ctx := context.Background()

	cred := testx.IssueToken(t, testx.TokenClaims{
		Subject:   7,
		Email:     "bob@example.com",
		Role:      "user",
		ExpiresAt: now.Add(10 * time.Minute),
	})
	require.NoError(t, store.Save(ctx, cred, session.Profile{ID: 7, Username: "old", Email: "old@example.com"}))

	assert.True(t, auth.AutoLogin(ctx))

	want := session.Profile{ID: 7, Username: "bob", Email: "bob@example.com", Role: "user"}
	assert.Equal(t, want, storedProfile(t, store))
	assert.Equal(t, &want, auth.CurrentUser(ctx))
	assert.Equal(t, cred, string(store.Get(common.TokenKey)))
}

func TestAutoLogin_NonNumericSubjectKeepsSession(t *testing.T) {
	auth, store := offline(t)
	ctx := context.Background()

	cred := testx.IssueToken(t, testx.TokenClaims{
		Subject:   "user-abc",
		Email:     "c@example.com",
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, store.Save(ctx, cred, session.Profile{ID: 3, Username: "c", Email: "c@example.com"}))

	assert.False(t, auth.AutoLogin(ctx))
	assert.True(t, auth.IsAuthenticated(ctx))
	assert.Equal(t, "c", auth.CurrentUser(ctx).Username)
}

func TestRemainingValiditySeconds(t *testing.T) {
	tests := []struct {
		name string
		exp  time.Time
		want int64
	}{
		{"thirty seconds", now.Add(30 * time.Second), 30},
		{"one second ago", now.Add(-time.Second), -1},
		{"exactly now", now, -1},
		{"an hour", now.Add(time.Hour), 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, store := offline(t)
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, testx.ValidToken(t, tt.exp), session.Profile{ID: 1}))

			assert.Equal(t, tt.want, auth.RemainingValiditySeconds(ctx))
			// no side effects
			assert.Equal(t, 2, store.Len())
		})
	}

	t.Run("absent", func(t *testing.T) {
		auth, _ := offline(t)
		assert.Equal(t, int64(-1), auth.RemainingValiditySeconds(context.Background()))
	})

	t.Run("malformed", func(t *testing.T) {
		auth, store := offline(t)
		store.Set(common.TokenKey, []byte("garbage"))
		assert.Equal(t, int64(-1), auth.RemainingValiditySeconds(context.Background()))
	})
}

func TestIsExpiringSoon(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		threshold int
		want      bool
	}{
		{"299s within 5m", 299 * time.Second, 5, true},
		{"300s at the edge", 300 * time.Second, 5, true},
		{"301s outside 5m", 301 * time.Second, 5, false},
		{"1h with 5m", time.Hour, DefaultExpiryThreshold, false},
		{"1h with 90m", time.Hour, 90, true},
		{"expired", -time.Second, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, store := offline(t)
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, testx.ValidToken(t, now.Add(tt.remaining)), session.Profile{ID: 1}))

			assert.Equal(t, tt.want, auth.IsExpiringSoon(ctx, tt.threshold))
		})
	}

	t.Run("absent", func(t *testing.T) {
		auth, _ := offline(t)
		assert.True(t, auth.IsExpiringSoon(context.Background(), 0))
	})
}

func TestStoreFailureIsAnonymous(t *testing.T) {
	mem := session.NewMemoryStore()
	auth := NewAuthService(nil, failingStore{mem}, WithClock(fixedClock))
	ctx := context.Background()

	assert.False(t, auth.IsAuthenticated(ctx))
	assert.False(t, auth.AutoLogin(ctx))
	assert.Equal(t, int64(-1), auth.RemainingValiditySeconds(ctx))
	assert.Nil(t, auth.CurrentUser(ctx))
	assert.Empty(t, auth.Token(ctx))
}

func TestRememberEmail(t *testing.T) {
	auth, _ := offline(t)
	ctx := context.Background()

	assert.Empty(t, auth.RememberedEmail(ctx))
	require.NoError(t, auth.RememberEmail(ctx, "t@t.com"))
	assert.Equal(t, "t@t.com", auth.RememberedEmail(ctx))
}

func TestRemoteLogout(t *testing.T) {
	t.Run("backend accepts", func(t *testing.T) {
		var authz string
		auth, store := newAuth(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/logout", r.URL.Path)
			authz = r.Header.Get("Authorization")
			testx.WriteOK(w, nil)
		})
		ctx := context.Background()
		cred := testx.ValidToken(t, now.Add(time.Hour))
		require.NoError(t, store.Save(ctx, cred, session.Profile{ID: 1}))

		require.NoError(t, auth.RemoteLogout(ctx))
		assert.Equal(t, "Bearer "+cred, authz)
		assert.False(t, auth.IsAuthenticated(ctx))
	})

	t.Run("backend down still logs out", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		store := session.NewMemoryStore()
		auth := NewAuthService(client.NewHTTPClient(addr, store), store, WithClock(fixedClock))
		ctx := context.Background()
		require.NoError(t, store.Save(ctx, testx.ValidToken(t, now.Add(time.Hour)), session.Profile{ID: 1}))

		assert.ErrorIs(t, auth.RemoteLogout(ctx), client.ErrUnavailable)
		assert.Zero(t, store.Len())
	})
}

// A 401 on any call empties the store and sends the user to the login route
// once, keeping the route they were on.
func TestUnauthorizedResponseRedirectsOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testx.WriteEnvelope(w, http.StatusUnauthorized, 401, "token revoked", nil)
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	nav := router.NewNavigator("/users?page=2")
	var redirects int
	api := client.NewHTTPClient(srv.URL, store, client.WithUnauthorizedHandler(func(context.Context) {
		if nav.RedirectToLogin() {
			redirects++
		}
	}))
	users := NewUserService(api)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testx.ValidToken(t, now.Add(time.Hour)), session.Profile{ID: 1}))
	require.NoError(t, store.RememberEmail(ctx, "t@t.com"))

	_, err := users.List(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	_, err = users.Get(ctx, 1)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Zero(t, store.Len())
	assert.Equal(t, 1, redirects)
	assert.Equal(t, "/login?redirect=%2Fusers%3Fpage%3D2", nav.Current())
}
