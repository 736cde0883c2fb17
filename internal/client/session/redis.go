package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophconsole/internal/common"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the session keys in a shared Redis.
const DefaultRedisPrefix = "gophconsole:session:"

// RedisStore keeps the session in Redis, so several consoles on one
// machine or profile share a login.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) keys(ks ...string) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = s.key(k)
	}
	return out
}

func (s *RedisStore) get(ctx context.Context, k string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", k, err)
	}
	return v, nil
}

func (s *RedisStore) Save(ctx context.Context, credential string, profile Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(common.TokenKey), credential, 0)
		p.Set(ctx, s.key(common.UserKey), raw, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveProfile(ctx context.Context, profile Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(common.UserKey), raw, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) (Session, error) {
	vals, err := s.client.MGet(ctx, s.keys(sessionKeys...)...).Result()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if v, ok := vals[0].(string); ok {
		sess.Credential = v
	}
	if v, ok := vals[1].(string); ok {
		sess.Profile = decodeProfile([]byte(v))
	}
	return sess, nil
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	v, err := s.get(ctx, common.TokenKey)
	return string(v), err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.keys(sessionKeys...)...).Err()
}

func (s *RedisStore) Purge(ctx context.Context) error {
	return s.client.Del(ctx, s.keys(allKeys...)...).Err()
}

func (s *RedisStore) RememberEmail(ctx context.Context, email string) error {
	return s.client.Set(ctx, s.key(common.RememberedEmailKey), email, 0).Err()
}

func (s *RedisStore) RememberedEmail(ctx context.Context) (string, error) {
	v, err := s.get(ctx, common.RememberedEmailKey)
	return string(v), err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
