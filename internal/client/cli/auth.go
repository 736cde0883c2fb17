package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophconsole/internal/client/router"
	"github.com/dmitrijs2005/gophconsole/internal/common"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// Login prompts for credentials and signs in. The remembered email, if any,
// is offered as the default. On success the user lands on the route that
// was pending when the login was requested.
func (a *App) Login(ctx context.Context) error {
	if router.PathOf(a.nav.Current()) != common.LoginPath {
		a.nav.Navigate(common.LoginPath)
	}

	prompt := "Enter email"
	remembered := a.auth.RememberedEmail(ctx)
	if remembered != "" {
		prompt = fmt.Sprintf("Enter email [%s]", remembered)
	}

	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = remembered
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	profile, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	if email != remembered {
		if ok, _ := confirm(a.reader, "Remember this email?", a.out); ok {
			if err := a.auth.RememberEmail(ctx, email); err != nil {
				a.log.Warn(ctx, "remember email", "error", err)
			}
		}
	}

	target := a.nav.ConsumeRedirect()
	printlnFn(fmt.Sprintf("Logged in as %s (%s), now at %s", profile.Username, profile.Email, target))
	return nil
}

// Logout tells the backend and forgets the local session. A backend failure
// is only a warning: the local session is gone either way.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.RemoteLogout(ctx); err != nil {
		printlnFn("Warning: server logout failed:", describeError(err))
	}
	a.nav.Navigate(common.LoginPath)
	printlnFn("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.enter(ctx, "/profile") {
		return nil
	}
	p := a.auth.CurrentUser(ctx)
	if p == nil {
		printlnFn("No profile stored.")
		return nil
	}
	printlnFn(fmt.Sprintf("id=%d username=%s email=%s role=%s", p.ID, p.Username, p.Email, p.Role))
	return nil
}

// Status shows the session state without touching the route.
func (a *App) Status(ctx context.Context) error {
	remaining := a.auth.RemainingValiditySeconds(ctx)
	if remaining == -1 {
		printlnFn("Not logged in.")
		return nil
	}
	msg := fmt.Sprintf("Session valid for %ds.", remaining)
	if a.auth.IsExpiringSoon(ctx, a.config.ExpiryWarnMinutes) {
		msg += " Expiring soon, log in again to extend it."
	}
	printlnFn(msg)
	return nil
}
