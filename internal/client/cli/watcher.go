package cli

import (
	"context"
	"fmt"
	"time"
)

// watchState remembers what the watcher already told the user, so each
// warning is printed once per session.
type watchState struct {
	active bool
	warned bool
}

// StartSessionWatcher checks the session every interval until ctx is done.
// It warns once when fewer than config.ExpiryWarnMinutes remain, and when a
// session it saw alive has expired it evicts it and parks the user on the
// login route.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var st watchState
	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx, &st)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context, st *watchState) {
	remaining := a.auth.RemainingValiditySeconds(ctx)

	if remaining == -1 {
		if st.active {
			a.auth.Logout(ctx)
			a.log.Info(ctx, "session expired")
			if a.nav.RedirectToLogin() {
				printlnFn("Session expired, please log in again (type 'login').")
			}
		}
		*st = watchState{}
		return
	}

	st.active = true
	if a.auth.IsExpiringSoon(ctx, a.config.ExpiryWarnMinutes) {
		if !st.warned {
			st.warned = true
			printlnFn(fmt.Sprintf("Session expires in %s.", time.Duration(remaining)*time.Second))
		}
		return
	}
	st.warned = false
}
