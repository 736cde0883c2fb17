// Package cli provides the interactive command-line console for the admin
// backend.
//
// It wires configuration, the session store, the HTTP pipeline, API services
// and an interactive REPL. Typical flow: restore a stored session, start a
// background session watcher, and execute user commands.
//
// Every command maps to a route ("/users", "/domains", "/api-test/...").
// Protected routes go through router.Guard; a user without a session is
// parked on "/login?redirect=<route>" and returned there after logging in.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
