// Package common contains shared constants used across
// gophconsole components.
package common

// Outbound header names set by the request pipeline.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Durable storage keys of the session.
const (
	TokenKey           = "token"
	UserKey            = "user"
	RememberedEmailKey = "rememberedEmail"
)

// LoginPath is the route of the login view.
const LoginPath = "/login"
