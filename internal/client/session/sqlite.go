package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophconsole/internal/common"
	"github.com/dmitrijs2005/gophconsole/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of the local database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore expects a database migrated by client.InitDatabase.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *SQLiteStore) Save(ctx context.Context, credential string, profile Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, common.TokenKey, []byte(credential)); err != nil {
			return err
		}
		return r.Set(ctx, common.UserKey, raw)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, profile Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	return s.repo(s.db).Set(ctx, common.UserKey, raw)
}

func (s *SQLiteStore) Load(ctx context.Context) (Session, error) {
	r := s.repo(s.db)

	credential, err := r.Get(ctx, common.TokenKey)
	if err != nil {
		return Session{}, err
	}
	user, err := r.Get(ctx, common.UserKey)
	if err != nil {
		return Session{}, err
	}

	return Session{Credential: string(credential), Profile: decodeProfile(user)}, nil
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, sessionKeys...)
}

func (s *SQLiteStore) Purge(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, allKeys...)
}

func (s *SQLiteStore) RememberEmail(ctx context.Context, email string) error {
	return s.repo(s.db).Set(ctx, common.RememberedEmailKey, []byte(email))
}

func (s *SQLiteStore) RememberedEmail(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.RememberedEmailKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
