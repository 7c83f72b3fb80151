package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kairon-web/internal/adapter/kv"
	"github.com/heartmarshall/kairon-web/internal/adapter/kv/file"
	"github.com/heartmarshall/kairon-web/internal/adapter/kv/memory"
	"github.com/heartmarshall/kairon-web/internal/adapter/postgres"
	pgkv "github.com/heartmarshall/kairon-web/internal/adapter/postgres/kv"
	rediskv "github.com/heartmarshall/kairon-web/internal/adapter/redis/kv"
	"github.com/heartmarshall/kairon-web/internal/config"
	"github.com/heartmarshall/kairon-web/internal/transport/rest"
)

// Storage is the opened key-value backend with its health check.
type Storage struct {
	Store kv.Store
	// Pinger is nil for the in-memory store.
	Pinger rest.Pinger
	close  func()
}

// Close releases the backend's connections.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage opens the backend selected by cfg.Driver. The postgres driver
// applies pending migrations when cfg.Database.Migrate is set.
func OpenStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return &Storage{Store: memory.New()}, nil

	case config.StorageFile:
		store, err := file.New(cfg.FileDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.InfoContext(ctx, "file storage opened", slog.String("dir", cfg.FileDir))
		return &Storage{Store: store, Pinger: store}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate postgres storage: %w", err)
			}
		}
		return &Storage{Store: pgkv.New(pool), Pinger: pool, close: pool.Close}, nil

	case config.StorageRedis:
		store, err := rediskv.Connect(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return &Storage{
			Store:  store,
			Pinger: store,
			close: func() {
				if err := store.Close(); err != nil {
					logger.Warn("close redis", slog.String("error", err.Error()))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
