package router

import (
	"context"
	"strings"
)

// Authenticator is the session contract the guard relies on.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
	AutoLogin(ctx context.Context) bool
}

// PublicRoutes need no session. "/" matches only itself, the others match
// as path prefixes.
var PublicRoutes = []string{"/", "/login", "/register", "/forgot-password", "/api-test", "/domain-test"}

type Guard struct {
	auth   Authenticator
	public []string
}

func NewGuard(auth Authenticator) *Guard {
	return &Guard{auth: auth, public: PublicRoutes}
}

// IsPublic reports whether the route's path needs no session.
func (g *Guard) IsPublic(route string) bool {
	path := PathOf(route)
	for _, p := range g.public {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Check decides whether target may be entered. When it may not, redirect is
// the login route that leads back to target.
func (g *Guard) Check(ctx context.Context, target string) (allowed bool, redirect string) {
	if g.IsPublic(target) {
		return true, ""
	}
	if g.auth.IsAuthenticated(ctx) || g.auth.AutoLogin(ctx) {
		return true, ""
	}
	return false, LoginURL(target)
}
