// Package client contains the client-side transport for the admin backend.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, the request pipeline. Every call reads the credential from
//     a TokenStore and sends it as a bearer header, stamps an X-Request-ID,
//     and decodes the backend envelope {code, message, data, timestamp}.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     SQLite session database and applying embedded goose migrations.
//
// # Error Handling
//
// A 2xx response whose envelope code is not 200/201 yields *BusinessError.
// A non-2xx response, or no response at all, yields *HTTPError whose Message
// is ready for the user. errors.Is(err, ErrUnauthorized) matches status 401
// and errors.Is(err, ErrUnavailable) matches a missing response.
//
// A 401 purges the session and then calls the UnauthorizedHandler, unless the
// call was made with SkipErrorHandler.
//
// See Also
//
//   - Pipeline:   HTTPClient, NewHTTPClient, DecodeEnvelope
//   - DB helpers: InitDatabase, RunMigrations
//   - Errors:     BusinessError, HTTPError, ErrUnavailable, ErrUnauthorized, ErrInvalidEnvelope
package client
