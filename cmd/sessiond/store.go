package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/mongo"
	"github.com/dmitrymomot/sessionkit/pkg/pg"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// backend is an opened session store with its readiness checks.
type backend struct {
	store  session.Store
	checks map[string]httpserver.HealthCheckFunc
	close  func()
}

// openStore connects the store selected by cfg.Store. Backend settings are
// loaded only for the selected store, so unused backends need no variables.
func openStore(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Store(cfg.Store))

	switch cfg.Store {
	case storeMemory, "":
		store := session.NewMemoryStore(cfg.MemoryCleanup)
		return &backend{store: store, close: func() { _ = store.Close() }}, nil

	case storeRedis:
		rcfg, err := config.Load[redis.Config]()
		if err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "session store connected")
		return &backend{
			store:  redis.NewStoreFromConfig(client, rcfg),
			checks: map[string]httpserver.HealthCheckFunc{"redis": redis.Healthcheck(client)},
			close:  func() { _ = client.Close() },
		}, nil

	case storeMongo:
		mcfg, err := config.Load[mongo.Config]()
		if err != nil {
			return nil, err
		}
		client, err := mongo.New(ctx, mcfg)
		if err != nil {
			return nil, err
		}
		store := mongo.NewStoreFromConfig(client, mcfg)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.InfoContext(ctx, "session store connected")
		return &backend{
			store:  store,
			checks: map[string]httpserver.HealthCheckFunc{"mongo": mongo.Healthcheck(client)},
			close:  func() { _ = client.Disconnect(context.WithoutCancel(ctx)) },
		}, nil

	case storePostgres:
		pcfg, err := config.Load[pg.Config]()
		if err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, pcfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		store := pg.NewStore(pool)
		cleanupCtx, stopCleanup := context.WithCancel(ctx)
		go store.StartCleanup(cleanupCtx, pcfg.CleanupInterval, log)

		log.InfoContext(ctx, "session store connected")
		return &backend{
			store:  store,
			checks: map[string]httpserver.HealthCheckFunc{"postgres": pg.Healthcheck(pool)},
			close: func() {
				stopCleanup()
				pool.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown session store %q: use %s, %s, %s or %s",
			cfg.Store, storeMemory, storeRedis, storeMongo, storePostgres)
	}
}
