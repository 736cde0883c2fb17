package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/logging"
)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithHTTPDoer replaces the underlying *http.Client.
func WithHTTPDoer(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithUnauthorizedHandler sets the callback run after a 401 purged the
// session. The CLI uses it to send the user to the login route.
func WithUnauthorizedHandler(fn UnauthorizedHandler) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

type requestOptions struct {
	query      url.Values
	header     http.Header
	skipErrors bool
}

// RequestOption tunes a single call.
type RequestOption func(*requestOptions)

func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) { o.query = q }
}

func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = http.Header{}
		}
		o.header.Set(key, value)
	}
}

// SkipErrorHandler opts the call out of status translation and of the 401
// session purge. Failures come back as *HTTPError carrying the raw body and
// the status text.
func SkipErrorHandler() RequestOption {
	return func(o *requestOptions) { o.skipErrors = true }
}
