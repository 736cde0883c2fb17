package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if p := a.auth.CurrentUser(ctx); p != nil && a.isLoggedIn(ctx) {
		s = p.Username + " "
	}
	s += a.nav.Current()
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user, restores a stored session, starts the session
// watcher and runs the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the admin console (type 'help' for commands)")

	if a.auth.AutoLogin(ctx) {
		if p := a.auth.CurrentUser(ctx); p != nil {
			printlnFn(fmt.Sprintf("Welcome back, %s.", p.Username))
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartSessionWatcher(ctx, a.config.SessionCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
