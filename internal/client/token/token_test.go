package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophconsole/internal/testx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawToken(payload string) string {
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecode_ValidToken(t *testing.T) {
	exp := time.Unix(2_000_000_000, 0)
	tok := testx.IssueToken(t, testx.TokenClaims{
		Subject:   "42",
		Email:     "alice@example.org",
		Role:      "admin",
		IssuedAt:  exp.Add(-time.Hour),
		ExpiresAt: exp,
	})

	c, err := Decode(tok)
	require.NoError(t, err)

	assert.Equal(t, Subject("42"), c.Subject)
	assert.Equal(t, "alice@example.org", c.Email)
	assert.Equal(t, "admin", c.Role)

	gotExp, ok := c.Expiry()
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), gotExp.Unix())
	require.NotNil(t, c.IssuedAt)
	assert.Equal(t, exp.Add(-time.Hour).Unix(), c.IssuedAt.Unix())

	id, err := c.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "alice", c.Username())
}

func TestDecode_NumericSubject(t *testing.T) {
	c, err := Decode(rawToken(`{"sub":7,"email":"x@y.z","exp":2000000000}`))
	require.NoError(t, err)

	id, err := c.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestDecode_PaddedPayload(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"1","email":"a@b.c"}`))
	c, err := Decode("h." + payload + ".s")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", c.Email)
}

func TestDecode_StandardAlphabetPayload(t *testing.T) {
	payload := base64.RawStdEncoding.EncodeToString(
		[]byte(`{"sub":"1","email":"a@b.c","role":"???>>>","exp":2000000000}`))
	require.Contains(t, payload, "+")
	require.Contains(t, payload, "/")

	c, err := Decode("h." + payload + ".s")
	require.NoError(t, err)
	assert.Equal(t, "???>>>", c.Role)
	assert.False(t, c.Expired(time.Unix(1_800_000_000, 0)))
}

func TestDecode_OddlyTypedInformationalClaims(t *testing.T) {
	tests := []struct {
		name    string
		claims  string
		wantSub Subject
		email   string
		role    string
	}{
		{name: "bool sub", claims: `{"sub":true,"email":"a@b.c","role":"user","exp":2000000000}`, email: "a@b.c", role: "user"},
		{name: "numeric role", claims: `{"sub":"3","email":"a@b.c","role":5,"exp":2000000000}`, wantSub: "3", email: "a@b.c"},
		{name: "object email", claims: `{"sub":3,"email":{"x":1},"exp":2000000000}`, wantSub: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rawToken(tt.claims))
			require.NoError(t, err)

			assert.Equal(t, tt.wantSub, c.Subject)
			assert.Equal(t, tt.email, c.Email)
			assert.Equal(t, tt.role, c.Role)
			assert.False(t, c.Expired(time.Unix(1_800_000_000, 0)))
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "one segment", in: "abc"},
		{name: "two segments", in: "a.b"},
		{name: "four segments", in: "a.b.c.d"},
		{name: "empty payload", in: "a..c"},
		{name: "empty signature", in: rawToken(`{}`)[:len(rawToken(`{}`))-3]},
		{name: "payload not base64", in: "h.%%%.s"},
		{name: "payload not json", in: "h.p.s"},
		{name: "payload json array", in: rawToken(`[1,2]`)},
		{name: "exp not a number", in: rawToken(`{"exp":"tomorrow"}`)},
		{name: "iat not a number", in: rawToken(`{"iat":[1],"exp":2000000000}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(tt.in)
			require.ErrorIs(t, err, ErrMalformedCredential)
			assert.Nil(t, c)
		})
	}
}

func TestClaims_Expired(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)

	tests := []struct {
		name          string
		claims        string
		wantExpired   bool
		wantRemaining int64
		wantOK        bool
	}{
		{name: "future", claims: `{"exp":1800000030}`, wantExpired: false, wantRemaining: 30, wantOK: true},
		{name: "past", claims: `{"exp":1799999999}`, wantExpired: true, wantRemaining: -1, wantOK: true},
		{name: "exactly now", claims: `{"exp":1800000000}`, wantExpired: true, wantRemaining: 0, wantOK: true},
		{name: "no exp", claims: `{"sub":"1"}`, wantExpired: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(rawToken(tt.claims))
			require.NoError(t, err)

			assert.Equal(t, tt.wantExpired, c.Expired(now))
			remaining, ok := c.Remaining(now)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantRemaining, remaining)
			}
		})
	}
}

func TestClaims_UserIDAndUsernameEdgeCases(t *testing.T) {
	c := &Claims{Subject: "abc", Email: "no-at-sign"}

	_, err := c.UserID()
	require.Error(t, err)
	assert.Equal(t, "no-at-sign", c.Username())

	var nilClaims *Claims
	_, ok := nilClaims.Expiry()
	assert.False(t, ok)
}
