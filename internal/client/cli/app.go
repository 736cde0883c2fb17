package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophconsole/internal/client/client"
	"github.com/dmitrijs2005/gophconsole/internal/client/config"
	"github.com/dmitrijs2005/gophconsole/internal/client/router"
	"github.com/dmitrijs2005/gophconsole/internal/client/services"
	"github.com/dmitrijs2005/gophconsole/internal/client/session"
	"github.com/dmitrijs2005/gophconsole/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   session.Store
	nav     *router.Navigator
	guard   *router.Guard
	auth    services.AuthService
	users   services.UserService
	domains services.DomainService
	system  services.SystemService
	diag    services.DiagnosticsService
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session store selected by c and wires the services on
// top of an HTTP pipeline pointed at c.ServerURL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := session.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening session store", "backend", c.SessionBackend, "error", err)
		return nil, err
	}

	nav := router.NewNavigator("/")
	api := newPipeline(c, store, nav, log)

	return newApp(c, log, store, api, nav, bufio.NewReader(os.Stdin), os.Stdout), nil
}

// newPipeline builds the HTTP client. A 401 sends the user to the login
// route once.
func newPipeline(c *config.Config, store session.Store, nav *router.Navigator, log logging.Logger) *client.HTTPClient {
	return client.NewHTTPClient(c.ServerURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "http")),
		client.WithUnauthorizedHandler(func(context.Context) {
			if nav.RedirectToLogin() {
				printlnFn("Session expired, please log in again (type 'login').")
			}
		}),
	)
}

func newApp(c *config.Config, log logging.Logger, store session.Store, api services.API, nav *router.Navigator, reader *bufio.Reader, out io.Writer) *App {
	auth := services.NewAuthService(api, store, services.WithAuthLogger(log.With("component", "auth")))
	return &App{
		config:  c,
		log:     log,
		store:   store,
		nav:     nav,
		guard:   router.NewGuard(auth),
		auth:    auth,
		users:   services.NewUserService(api),
		domains: services.NewDomainService(api, log),
		system:  services.NewSystemService(api),
		diag:    services.NewDiagnosticsService(api),
		reader:  reader,
		out:     out,
	}
}

// Run starts the REPL and releases the session store when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Warn(ctx, "close session store", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.IsAuthenticated(ctx)
}

// enter moves to route if the guard lets it. Otherwise the user is parked
// on the login route with route as the pending redirect.
func (a *App) enter(ctx context.Context, route string) bool {
	ok, redirect := a.guard.Check(ctx, route)
	if !ok {
		a.nav.Navigate(redirect)
		printlnFn("Please log in first (type 'login').")
		return false
	}
	a.nav.Navigate(route)
	return true
}

// report prints err the way the user should see it and hands it back.
func (a *App) report(err error) error {
	printlnFn("Error:", describeError(err))
	return err
}

func describeError(err error) string {
	var (
		be *client.BusinessError
		he *client.HTTPError
	)
	switch {
	case errors.As(err, &be):
		return fmt.Sprintf("%s (code %d)", be.Message, be.Code)
	case errors.As(err, &he):
		return he.Message
	}
	return err.Error()
}
