// Package router tracks where the console user "is" and decides which
// routes need a session.
//
// Routes are URL paths with an optional query, the same shape the backend
// and the login redirect contract use: "/users", "/login?redirect=%2Fusers".
package router

import (
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophconsole/internal/common"
)

const redirectParam = "redirect"

// LoginURL is the login route that returns to target after signing in.
func LoginURL(target string) string {
	return common.LoginPath + "?" + redirectParam + "=" + url.QueryEscape(target)
}

// PathOf strips the query from a route.
func PathOf(route string) string {
	p, _, _ := strings.Cut(route, "?")
	return p
}

// Navigator holds the current route. It is safe for concurrent use: the
// pipeline redirects from whichever goroutine saw the 401.
type Navigator struct {
	mu      sync.Mutex
	current string
}

func NewNavigator(start string) *Navigator {
	if start == "" {
		start = "/"
	}
	return &Navigator{current: start}
}

func (n *Navigator) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = target
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// RedirectToLogin moves to the login route, remembering the current route.
// It does nothing when already on the login route and reports whether it
// navigated.
func (n *Navigator) RedirectToLogin() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if PathOf(n.current) == common.LoginPath {
		return false
	}
	n.current = LoginURL(n.current)
	return true
}

// RedirectTarget returns the pending redirect of the login route, or "".
func (n *Navigator) RedirectTarget() string {
	return redirectOf(n.Current())
}

// ConsumeRedirect navigates to the pending redirect (or "/" if there is
// none) and returns the new route.
func (n *Navigator) ConsumeRedirect() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	target := redirectOf(n.current)
	if target == "" || PathOf(target) == common.LoginPath {
		target = "/"
	}
	n.current = target
	return target
}

func redirectOf(route string) string {
	path, rawQuery, ok := strings.Cut(route, "?")
	if !ok || path != common.LoginPath {
		return ""
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ""
	}
	return q.Get(redirectParam)
}
