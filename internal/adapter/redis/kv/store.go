// Package kv implements kv.Store on Redis.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/kairon-web/internal/config"
	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Store keeps values as plain Redis strings under a key prefix.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Options builds client options from cfg: the URL plus pool size, retries
// and timeouts.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = cfg.PoolSize
	opt.MinIdleConns = cfg.MinIdleConns
	opt.MaxRetries = cfg.MaxRetries
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout
	opt.PoolTimeout = cfg.ReadTimeout + time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	return opt, nil
}

// Connect dials Redis and pings it. The caller closes the returned store.
func Connect(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Store, error) {
	opt, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.InfoContext(ctx, "redis connected",
		slog.String("addr", opt.Addr),
		slog.Int("db", opt.DB),
	)

	return New(client, cfg.KeyPrefix, cfg.TTL), nil
}

// New wraps an existing client. A zero ttl stores keys without expiry.
func New(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("kv %s: %w", key, domain.ErrNotFound)
		}
		return "", fmt.Errorf("kv %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("kv %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("kv %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (s *Store) Close() error {
	return s.client.Close()
}
