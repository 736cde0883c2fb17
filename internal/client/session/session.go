// Package session persists the signed-in user's credential and profile.
//
// A session lives under two keys, "token" (the raw credential) and "user"
// (the JSON profile), plus an optional "rememberedEmail" login hint. Every
// Store writes the two session keys together: SQLiteStore in one
// transaction, RedisStore in one MULTI/EXEC, MemoryStore under its mutex.
//
// Load never fails on corrupt data: a profile that does not parse is
// reported as absent. Errors are returned only for I/O failures of the
// backend itself.
package session

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/gophconsole/internal/common"
)

// Profile is the user shown by the client.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// Session is what Load returns. An empty Credential means no session.
type Session struct {
	Credential string
	Profile    *Profile
}

// Present reports whether a credential is stored.
func (s Session) Present() bool {
	return s.Credential != ""
}

type Store interface {
	// Save overwrites credential and profile.
	Save(ctx context.Context, credential string, profile Profile) error
	// SaveProfile overwrites the profile only.
	SaveProfile(ctx context.Context, profile Profile) error
	Load(ctx context.Context) (Session, error)
	// Token returns the stored credential or "".
	Token(ctx context.Context) (string, error)
	// Clear removes credential and profile. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
	// Purge is Clear plus the remembered login hint.
	Purge(ctx context.Context) error
	RememberEmail(ctx context.Context, email string) error
	RememberedEmail(ctx context.Context) (string, error)
	Close() error
}

var (
	sessionKeys = []string{common.TokenKey, common.UserKey}
	allKeys     = []string{common.TokenKey, common.UserKey, common.RememberedEmailKey}
)

func encodeProfile(p Profile) ([]byte, error) {
	return json.Marshal(p)
}

// decodeProfile treats unparseable data as absent.
func decodeProfile(raw []byte) *Profile {
	if len(raw) == 0 {
		return nil
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}
