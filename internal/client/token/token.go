// Package token decodes the claims of a backend-issued credential
// (header.payload.signature). The signature is never verified: claims are
// read for display and expiry checks only, never for authorization.
package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedCredential is returned for anything that is not three
// non-empty dot-separated segments with a JSON payload.
var ErrMalformedCredential = errors.New("malformed credential")

// Subject is the "sub" claim. Backends emit it either as a string or as a
// JSON number; both are kept in their textual form.
type Subject string

func (s *Subject) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Subject(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Subject(n.String())
	return nil
}

// Claims is the decoded payload segment.
type Claims struct {
	Subject   Subject          `json:"sub"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

// UnmarshalJSON is strict about iat and exp only. A sub, email or role of
// an unexpected type is left empty.
func (c *Claims) UnmarshalJSON(b []byte) error {
	var raw struct {
		Subject   json.RawMessage  `json:"sub"`
		Email     json.RawMessage  `json:"email"`
		Role      json.RawMessage  `json:"role"`
		IssuedAt  *jwt.NumericDate `json:"iat"`
		ExpiresAt *jwt.NumericDate `json:"exp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*c = Claims{IssuedAt: raw.IssuedAt, ExpiresAt: raw.ExpiresAt}
	if json.Unmarshal(raw.Subject, &c.Subject) != nil {
		c.Subject = ""
	}
	if json.Unmarshal(raw.Email, &c.Email) != nil {
		c.Email = ""
	}
	if json.Unmarshal(raw.Role, &c.Role) != nil {
		c.Role = ""
	}
	return nil
}

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// toURLAlphabet lets payloads written in the standard Base64 alphabet
// through the URL-safe segment decoder.
var toURLAlphabet = strings.NewReplacer("+", "-", "/", "_")

// Decode splits credential and parses its payload segment.
func Decode(credential string) (*Claims, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedCredential
	}
	for _, p := range parts {
		if p == "" {
			return nil, ErrMalformedCredential
		}
	}

	payload, err := parser.DecodeSegment(toURLAlphabet.Replace(parts[1]))
	if err != nil {
		return nil, ErrMalformedCredential
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, ErrMalformedCredential
	}
	return &c, nil
}

// Expiry returns the exp claim. ok is false when the claim is absent, in
// which case callers treat the credential as already expired.
func (c *Claims) Expiry() (exp time.Time, ok bool) {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}

// Remaining returns whole seconds between now and exp, and false when there
// is no exp claim.
func (c *Claims) Remaining(now time.Time) (int64, bool) {
	exp, ok := c.Expiry()
	if !ok {
		return 0, false
	}
	return exp.Unix() - now.Unix(), true
}

// Expired reports whether the credential must no longer be used at now.
// A missing exp counts as expired.
func (c *Claims) Expired(now time.Time) bool {
	remaining, ok := c.Remaining(now)
	return !ok || remaining <= 0
}

// UserID parses the subject as an integer id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(c.Subject)), 10, 64)
}

// Username is the local part of the email claim.
func (c *Claims) Username() string {
	name, _, _ := strings.Cut(c.Email, "@")
	return name
}
