package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophconsole/internal/client/client"
	"github.com/dmitrijs2005/gophconsole/internal/client/config"
	"github.com/dmitrijs2005/gophconsole/internal/filex"
	"github.com/redis/go-redis/v9"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Open builds the Store selected by cfg.SessionBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.SessionBackend {
	case "", BackendSQLite:
		if _, err := filex.EnsureParentDir(cfg.SessionDSN); err != nil {
			return nil, err
		}
		db, err := client.InitDatabase(ctx, cfg.SessionDSN)
		if err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
		return NewSQLiteStore(db), nil

	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(rdb, DefaultRedisPrefix), nil

	case BackendMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
