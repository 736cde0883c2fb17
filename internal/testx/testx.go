// Package testx holds helpers shared by tests: credential minting and a
// fake backend speaking the response envelope.
package testx

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("test-signing-key")

// TokenClaims describes the payload of a minted credential. A zero
// ExpiresAt omits the exp claim.
type TokenClaims struct {
	Subject   any
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssueToken signs claims with HS256, the way the backend issues them.
func IssueToken(t testing.TB, c TokenClaims) string {
	t.Helper()

	claims := jwt.MapClaims{}
	if c.Subject != nil {
		claims["sub"] = c.Subject
	}
	if c.Email != "" {
		claims["email"] = c.Email
	}
	if c.Role != "" {
		claims["role"] = c.Role
	}
	if !c.IssuedAt.IsZero() {
		claims["iat"] = c.IssuedAt.Unix()
	}
	if !c.ExpiresAt.IsZero() {
		claims["exp"] = c.ExpiresAt.Unix()
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// ValidToken is a credential for user 1 (t@t.com) expiring at exp.
func ValidToken(t testing.TB, exp time.Time) string {
	t.Helper()
	return IssueToken(t, TokenClaims{
		Subject:   "1",
		Email:     "t@t.com",
		Role:      "user",
		IssuedAt:  exp.Add(-time.Hour),
		ExpiresAt: exp,
	})
}

// Envelope mirrors the backend response wrapper.
type Envelope struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// WriteEnvelope writes an envelope with the given transport status.
func WriteEnvelope(w http.ResponseWriter, status, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: "2026-10-17T12:00:00",
	})
}

// WriteOK writes a 200 envelope carrying data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteEnvelope(w, http.StatusOK, 200, "success", data)
}
