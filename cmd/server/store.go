package main

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-sheets/internal/config"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-sheets/internal/redis"
	battlerepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/battle"
	characterrepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
)

const redisPingTimeout = 5 * time.Second

// stores holds the repositories for one storage backend
type stores struct {
	characters characterrepo.Repository
	battles    battlerepo.Repository
	// close releases the backend's connections
	close func() error
}

// openStores opens the repositories for storage.Backend. Battles live in
// redis for the redis backend and in process memory otherwise; either way
// they belong to this process only.
func openStores(ctx context.Context, storage config.StorageConfig) (*stores, error) {
	noop := func() error { return nil }

	switch storage.Backend {
	case config.BackendFilesystem:
		repo, err := characterrepo.NewFilesystem(&characterrepo.FilesystemConfig{BasePath: storage.DataDir})
		if err != nil {
			return nil, err
		}
		return &stores{characters: repo, battles: battlerepo.NewInMemory(), close: noop}, nil

	case config.BackendRedis:
		client, err := redisclient.NewClient(storage.RedisAddr, &redisclient.Options{
			PoolSize:        10,
			MinIdleConns:    2,
			ConnMaxIdleTime: 5 * time.Minute,
			MaxRetries:      3,
		})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis settings")
		}
		if err := redisclient.Ping(ctx, client, redisPingTimeout); err != nil {
			_ = client.Close()
			return nil, errors.Unavailable(err, "redis unreachable")
		}

		characters, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		battles, err := battlerepo.NewRedis(&battlerepo.RedisConfig{
			Client:    client,
			Namespace: idgen.NewUUID("").Generate(),
		})
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &stores{characters: characters, battles: battles, close: client.Close}, nil

	case config.BackendSQLite:
		repo, err := characterrepo.NewSQLite(ctx, &characterrepo.SQLiteConfig{Path: storage.SQLitePath})
		if err != nil {
			return nil, err
		}
		return &stores{characters: repo, battles: battlerepo.NewInMemory(), close: repo.Close}, nil

	default:
		return nil, errors.InvalidArgumentf("unknown storage backend %q", storage.Backend)
	}
}
