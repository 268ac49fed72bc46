package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/qrkit/pkg/config"
	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/history"
	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/mongo"
	"github.com/dmitrymomot/qrkit/pkg/pg"
	"github.com/dmitrymomot/qrkit/pkg/redis"
)

// backends holds what main wires into the service, plus the cleanups to run
// on exit in reverse order.
type backends struct {
	store     history.Store
	files     file.Storage
	fileRoute http.Handler
	checks    map[string]httpserver.Check
	closers   []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg appConfig, log *slog.Logger) (*backends, error) {
	b := &backends{checks: make(map[string]httpserver.Check)}
	if err := b.openHistory(ctx, cfg, log); err != nil {
		b.close()
		return nil, err
	}
	if err := b.openStorage(ctx, cfg.Storage, log); err != nil {
		b.close()
		return nil, err
	}
	return b, nil
}

func (b *backends) openHistory(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	opts := []history.Option{history.WithMaxItems(cfg.Settings.MaxHistoryItems)}
	log = log.With(logger.Component("history"), logger.Driver(cfg.History.Driver))

	switch cfg.History.Driver {
	case driverMemory:
		b.store = history.NewMemoryStore(opts...)

	case driverBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.History.BoltPath), 0o755); err != nil {
			return fmt.Errorf("create bolt directory: %w", err)
		}
		store, err := history.OpenBoltStore(cfg.History.BoltPath, opts...)
		if err != nil {
			return err
		}
		b.store = store
		b.closers = append(b.closers, func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close bolt store", logger.Error(err))
			}
		})

	case driverRedis:
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.store = history.NewRedisStore(client, rcfg.HistoryKey, opts...)
		b.checks["redis"] = redis.Healthcheck(client)

	case driverPostgres:
		var pcfg pg.Config
		if err := config.Load(&pcfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, pool.Close)
		if err := pg.Migrate(ctx, pool, pcfg, history.Migrations, log); err != nil {
			return err
		}
		b.store = history.NewPostgresStore(pool, opts...)
		b.checks["postgres"] = pg.Healthcheck(pool)

	case driverMongo:
		var mcfg mongo.Config
		if err := config.Load(&mcfg); err != nil {
			return err
		}
		db, err := mongo.Connect(ctx, mcfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		store, err := history.NewMongoStore(ctx, db, mcfg.HistoryCollection, opts...)
		if err != nil {
			return err
		}
		b.store = store
		b.checks["mongo"] = mongo.Healthcheck(db)

	default:
		return fmt.Errorf("unknown HISTORY_DRIVER %q", cfg.History.Driver)
	}

	log.Info("history store ready")
	return nil
}

func (b *backends) openStorage(ctx context.Context, cfg storageConfig, log *slog.Logger) error {
	switch cfg.Driver {
	case storageNone, "":
		return nil

	case storageLocal:
		local, err := file.NewLocalStorage(cfg.LocalDir, cfg.LocalURL)
		if err != nil {
			return err
		}
		b.files = local
		b.fileRoute = http.FileServer(http.Dir(local.Dir()))

	case storageS3:
		var scfg file.S3Config
		if err := config.Load(&scfg); err != nil {
			return err
		}
		s3, err := file.NewS3Storage(ctx, scfg)
		if err != nil {
			return err
		}
		b.files = s3

	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
	}

	log.Info("image storage ready", logger.Component("storage"), logger.Driver(cfg.Driver))
	return nil
}
