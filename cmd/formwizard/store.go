package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/persistence"
)

const redisPingTimeout = 3 * time.Second

// openStore builds the configured backend. The returned close func is never
// nil.
func openStore(ctx context.Context, cfg config.StoreConfig) (persistence.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Kind {
	case config.StoreMemory:
		return persistence.NewMemoryStore(), noop, nil
	case config.StoreFile:
		store, err := persistence.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := persistence.NewRedisStore(client, persistence.WithRedisTTL(cfg.TTL))
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("formwizard: unknown store %q", cfg.Kind)
	}
}
