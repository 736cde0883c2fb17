package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/client/client"
	"github.com/dmitrijs2005/gophconsole/internal/client/session"
	"github.com/dmitrijs2005/gophconsole/internal/client/token"
	"github.com/dmitrijs2005/gophconsole/internal/logging"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
)

// DefaultExpiryThreshold is the IsExpiringSoon window, in minutes, used by
// the session watcher unless configured otherwise.
const DefaultExpiryThreshold = 5

// ErrNoCredential is returned inside a LoginError when the backend accepted
// the login but sent no credential.
var ErrNoCredential = errors.New("login response carries no credential")

// LoginError wraps whatever made a login fail. Nothing is stored when it is
// returned.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string {
	return "login failed: " + e.Err.Error()
}

func (e *LoginError) Unwrap() error { return e.Err }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// AuthService defines the session lifecycle of the console.
//
// Contract:
//   - Login: authenticate against the backend and persist credential and profile.
//   - Logout: forget the local session. Never fails.
//   - RemoteLogout: tell the backend, then Logout regardless of the outcome.
//   - IsAuthenticated / ValidateToken: the stored credential exists and has
//     not expired. An expired or unreadable one is removed on the way.
//   - AutoLogin: IsAuthenticated plus refreshing the stored profile from the
//     credential's claims.
//   - RemainingValiditySeconds: exp minus now, or -1 when there is no usable
//     credential.
//   - IsExpiringSoon: remaining is -1 or within thresholdMinutes.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*session.Profile, error)
	Logout(ctx context.Context)
	RemoteLogout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	ValidateToken(ctx context.Context) bool
	AutoLogin(ctx context.Context) bool
	RemainingValiditySeconds(ctx context.Context) int64
	IsExpiringSoon(ctx context.Context, thresholdMinutes int) bool
	CurrentUser(ctx context.Context) *session.Profile
	Token(ctx context.Context) string
	RememberEmail(ctx context.Context, email string) error
	RememberedEmail(ctx context.Context) string
}

// AuthOption configures NewAuthService.
type AuthOption func(*authService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

func WithAuthLogger(l logging.Logger) AuthOption {
	return func(a *authService) { a.log = l }
}

// authService keeps no state of its own: every call reads the store.
// Concurrent Login and a 401-triggered purge may interleave; the last write
// wins.
type authService struct {
	api   API
	store session.Store
	log   logging.Logger
	now   func() time.Time
}

func NewAuthService(api API, store session.Store, opts ...AuthOption) AuthService {
	a := &authService{api: api, store: store, log: logging.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) Login(ctx context.Context, email, password string) (*session.Profile, error) {
	var resp LoginResponse
	if err := a.api.Post(ctx, loginPath, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		a.log.Warn(ctx, "login rejected", "email", email, "error", err)
		return nil, &LoginError{Err: err}
	}
	if resp.Token == "" {
		return nil, &LoginError{Err: ErrNoCredential}
	}

	profile, ok := profileFromCredential(resp.Token)
	if !ok {
		profile = session.Profile{ID: resp.ID, Username: resp.Username, Email: resp.Email, Role: resp.Role}
	}

	if err := a.store.Save(ctx, resp.Token, profile); err != nil {
		return nil, &LoginError{Err: err}
	}

	a.log.Info(ctx, "logged in", "user", profile.Username, "remaining_s", a.RemainingValiditySeconds(ctx))
	return &profile, nil
}

func (a *authService) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "clear session", "error", err)
		return
	}
	a.log.Info(ctx, "logged out")
}

func (a *authService) RemoteLogout(ctx context.Context) error {
	err := a.api.Post(ctx, logoutPath, nil, nil, client.SkipErrorHandler())
	if err != nil {
		a.log.Warn(ctx, "remote logout", "error", err)
	}
	a.Logout(ctx)
	return err
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	_, ok := a.validClaims(ctx)
	return ok
}

func (a *authService) ValidateToken(ctx context.Context) bool {
	return a.IsAuthenticated(ctx)
}

func (a *authService) AutoLogin(ctx context.Context) bool {
	claims, ok := a.validClaims(ctx)
	if !ok {
		return false
	}

	profile, ok := profileFromClaims(claims)
	if !ok {
		a.log.Warn(ctx, "credential carries no usable profile", "sub", string(claims.Subject))
		return false
	}

	if err := a.store.SaveProfile(ctx, profile); err != nil {
		a.log.Error(ctx, "refresh profile", "error", err)
	}

	a.log.Debug(ctx, "auto login", "user", profile.Username)
	return true
}

func (a *authService) RemainingValiditySeconds(ctx context.Context) int64 {
	cred := a.credential(ctx)
	if cred == "" {
		return -1
	}
	claims, err := token.Decode(cred)
	if err != nil {
		return -1
	}
	remaining, ok := claims.Remaining(a.now())
	if !ok || remaining <= 0 {
		return -1
	}
	return remaining
}

func (a *authService) IsExpiringSoon(ctx context.Context, thresholdMinutes int) bool {
	remaining := a.RemainingValiditySeconds(ctx)
	return remaining == -1 || remaining <= int64(thresholdMinutes)*60
}

func (a *authService) CurrentUser(ctx context.Context) *session.Profile {
	s, err := a.store.Load(ctx)
	if err != nil {
		a.log.Error(ctx, "load session", "error", err)
		return nil
	}
	return s.Profile
}

func (a *authService) Token(ctx context.Context) string {
	return a.credential(ctx)
}

func (a *authService) RememberEmail(ctx context.Context, email string) error {
	return a.store.RememberEmail(ctx, email)
}

func (a *authService) RememberedEmail(ctx context.Context) string {
	email, err := a.store.RememberedEmail(ctx)
	if err != nil {
		a.log.Error(ctx, "load remembered email", "error", err)
		return ""
	}
	return email
}

// credential reads the stored credential. A store failure counts as no
// session.
func (a *authService) credential(ctx context.Context) string {
	cred, err := a.store.Token(ctx)
	if err != nil {
		a.log.Error(ctx, "read credential", "error", err)
		return ""
	}
	return cred
}

// validClaims returns the claims of a present, unexpired credential. An
// expired or unreadable credential is evicted.
func (a *authService) validClaims(ctx context.Context) (*token.Claims, bool) {
	cred := a.credential(ctx)
	if cred == "" {
		return nil, false
	}

	claims, err := token.Decode(cred)
	if err != nil {
		a.log.Warn(ctx, "dropping unreadable credential", "error", err)
		a.Logout(ctx)
		return nil, false
	}
	if claims.Expired(a.now()) {
		a.log.Info(ctx, "session expired")
		a.Logout(ctx)
		return nil, false
	}
	return claims, true
}

func profileFromCredential(cred string) (session.Profile, bool) {
	claims, err := token.Decode(cred)
	if err != nil {
		return session.Profile{}, false
	}
	return profileFromClaims(claims)
}

// profileFromClaims needs a numeric subject and an email.
func profileFromClaims(c *token.Claims) (session.Profile, bool) {
	id, err := c.UserID()
	if err != nil || c.Email == "" {
		return session.Profile{}, false
	}
	return session.Profile{ID: id, Username: c.Username(), Email: c.Email, Role: c.Role}, true
}
