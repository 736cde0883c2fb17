// Package services contains application services for the console client.
// Each service wraps one area of the backend REST API on top of the request
// pipeline; AuthService additionally owns the local session lifecycle.
package services

import (
	"context"

	"github.com/dmitrijs2005/gophconsole/internal/client/client"
)

// API is the request pipeline as seen by the services. *client.HTTPClient
// implements it.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...client.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...client.RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...client.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...client.RequestOption) error
}

var _ API = (*client.HTTPClient)(nil)
