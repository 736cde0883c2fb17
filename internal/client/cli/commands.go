package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophconsole/internal/client/services"
)

const domainPageSize = 20

// Users handles "users", "users get <id>", "users create",
// "users update <id>" and "users delete <id>".
func (a *App) Users(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		return a.listUsers(ctx)
	}

	sub := args[0]
	if sub == "create" {
		return a.createUser(ctx)
	}

	if len(args) < 2 {
		printlnFn(fmt.Sprintf("Usage: users %s <id>", sub))
		return nil
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Invalid user id:", args[1])
		return nil
	}

	switch sub {
	case "get":
		return a.showUser(ctx, id)
	case "update":
		return a.updateUser(ctx, id)
	case "delete":
		return a.deleteUser(ctx, id)
	default:
		printlnFn("Unknown users command:", sub)
		return nil
	}
}

func (a *App) listUsers(ctx context.Context) error {
	if !a.enter(ctx, "/users") {
		return nil
	}
	users, err := a.users.List(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(users) == 0 {
		printlnFn("No users.")
		return nil
	}
	for _, u := range users {
		printlnFn(formatUser(u))
	}
	return nil
}

func (a *App) showUser(ctx context.Context, id int64) error {
	if !a.enter(ctx, fmt.Sprintf("/users/%d", id)) {
		return nil
	}
	u, err := a.users.Get(ctx, id)
	if err != nil {
		return a.report(err)
	}
	printlnFn(formatUser(*u))
	return nil
}

func (a *App) createUser(ctx context.Context) error {
	if !a.enter(ctx, "/users/new") {
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	u, err := a.users.Create(ctx, services.CreateUserRequest{Username: username, Email: email, Password: string(password)})
	if err != nil {
		return a.report(err)
	}
	printlnFn("Created:", formatUser(*u))
	return nil
}

func (a *App) updateUser(ctx context.Context, id int64) error {
	if !a.enter(ctx, fmt.Sprintf("/users/%d/edit", id)) {
		return nil
	}

	username, err := getSimpleText(a.reader, "New username (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	req := services.UpdateUserRequest{Username: username, Email: email}
	if ok, _ := confirm(a.reader, "Change password?", a.out); ok {
		password, err := getPassword(a.out)
		if err != nil {
			return err
		}
		defer clear(password)
		req.Password = string(password)
	}

	u, err := a.users.Update(ctx, id, req)
	if err != nil {
		return a.report(err)
	}
	printlnFn("Updated:", formatUser(*u))
	return nil
}

func (a *App) deleteUser(ctx context.Context, id int64) error {
	if !a.enter(ctx, fmt.Sprintf("/users/%d", id)) {
		return nil
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete user %d?", id), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.users.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	a.nav.Navigate("/users")
	printlnFn(fmt.Sprintf("User %d deleted.", id))
	return nil
}

func formatUser(u services.User) string {
	return fmt.Sprintf("%d\t%s\t%s", u.ID, u.Username, u.Email)
}

// Domains lists the account's domains, optionally filtered by keyword.
func (a *App) Domains(ctx context.Context, args []string) error {
	if !a.enter(ctx, "/domains") {
		return nil
	}

	params := services.DomainListParams{Limit: domainPageSize}
	if len(args) > 0 {
		params.Keyword = strings.Join(args, " ")
	}

	list, err := a.domains.List(ctx, params)
	if err != nil {
		return a.report(err)
	}
	for _, d := range list.Domains {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\trecords=%d\tttl=%d", d.DomainID, d.Name, d.Status, d.RecordCount, d.TTL))
	}
	printlnFn(fmt.Sprintf("%d of %d domains", len(list.Domains), list.CountInfo.AllTotal))
	return nil
}

func (a *App) Suffixes(ctx context.Context) error {
	if !a.enter(ctx, "/domain-test") {
		return nil
	}
	printlnFn("Available suffixes:", strings.Join(a.domains.AvailableSuffixes(ctx), " "))
	return nil
}

func (a *App) Health(ctx context.Context) error {
	if !a.enter(ctx, "/api-test") {
		return nil
	}
	h, err := a.system.HealthCheck(ctx)
	if err != nil {
		return a.report(err)
	}
	msg := "Server status: " + h.Status
	if h.Version != "" {
		msg += ", version " + h.Version
	}
	printlnFn(msg)
	return nil
}

// apiTests are the diagnostic endpoints reachable via "apitest <name>".
var apiTests = []string{"success", "data", "create", "list", "business-error", "not-found", "server-error"}

// APITest calls one diagnostic endpoint and prints what came back, error
// included.
func (a *App) APITest(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: apitest <" + strings.Join(apiTests, "|") + ">")
		return nil
	}
	name := args[0]
	if !a.enter(ctx, "/api-test/"+name) {
		return nil
	}

	var (
		result any
		err    error
	)
	switch name {
	case "success":
		result, err = a.diag.Success(ctx)
	case "data":
		result, err = a.diag.Data(ctx)
	case "create":
		result, err = a.diag.Create(ctx)
	case "list":
		result, err = a.diag.List(ctx)
	case "business-error":
		err = a.diag.BusinessError(ctx)
	case "not-found":
		id := int64(999)
		if len(args) > 1 {
			if v, perr := strconv.ParseInt(args[1], 10, 64); perr == nil {
				id = v
			}
		}
		err = a.diag.NotFound(ctx, id)
	case "server-error":
		err = a.diag.ServerError(ctx)
	default:
		printlnFn("Unknown test:", name)
		return nil
	}

	if err != nil {
		return a.report(err)
	}
	printlnFn(fmt.Sprintf("OK: %+v", result))
	return nil
}
