package blobstore

import (
	"context"
	"fmt"

	"github.com/fabiareis/trading-journal/config"
)

// Open builds the backend named by cfg.Type.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.Dir)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
	case "postgres":
		return NewPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
