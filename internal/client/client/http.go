package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/common"
	"github.com/dmitrijs2005/gophconsole/internal/logging"
	"github.com/google/uuid"
)

// TokenStore is the part of the session store the pipeline needs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Purge(ctx context.Context) error
}

// UnauthorizedHandler runs after a 401 response cleared the session.
type UnauthorizedHandler func(ctx context.Context)

// HTTPClient talks to the REST backend. The credential is read from the
// store on every call, so a login or logout takes effect on the next request.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenStore
	log            logging.Logger
	onUnauthorized UnauthorizedHandler
}

func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *HTTPClient) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do sends one request. A nil body sends none. On success the envelope's
// data is decoded into out (which may be nil).
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	req, err := c.newRequest(ctx, method, path, body, &ro)
	if err != nil {
		return err
	}

	log := c.log.With("method", method, "path", path, "request_id", req.Header.Get(common.RequestIDHeaderName))
	log.Debug(ctx, "request sent")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return ctxErr
		}
		log.Warn(ctx, "no response", "error", err)
		if ro.skipErrors {
			return &HTTPError{Message: err.Error(), err: err}
		}
		return &HTTPError{Message: statusMessage(0, ""), err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &HTTPError{Status: resp.StatusCode, Message: "read response body", err: err}
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.transportError(ctx, resp.StatusCode, data, &ro)
	}

	res, err := DecodeEnvelope(data)
	if err != nil {
		return err
	}
	if f, ok := res.(Failure); ok {
		log.Debug(ctx, "business failure", "code", f.Code, "message", f.Message)
	}
	return unwrap(res, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any, ro *requestOptions) (*http.Request, error) {
	target := c.baseURL + path
	if len(ro.query) > 0 {
		target += "?" + ro.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	for k, vs := range ro.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "read credential", "error", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	return req, nil
}

func (c *HTTPClient) transportError(ctx context.Context, status int, body []byte, ro *requestOptions) error {
	if ro.skipErrors {
		return &HTTPError{Status: status, Message: http.StatusText(status), Body: body}
	}

	if status == http.StatusUnauthorized {
		if err := c.tokens.Purge(ctx); err != nil {
			c.log.Error(ctx, "purge session after 401", "error", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
	}

	return &HTTPError{Status: status, Message: statusMessage(status, backendMessage(body)), Body: body}
}
