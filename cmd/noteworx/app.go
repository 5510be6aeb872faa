package main

import (
	"context"
	"time"

	"github.com/noteworx/noteworx/internal/config"
	"github.com/noteworx/noteworx/internal/database"
	"github.com/noteworx/noteworx/internal/note"
	"github.com/noteworx/noteworx/internal/note/repository"
	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/noteworx/noteworx/pkg/logger"
	"github.com/noteworx/noteworx/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// store is an opened repository plus whatever must be released with it.
type store struct {
	repo  repository.Repository
	redis *redis.Client
	// ping reports whether the backend is reachable; nil means always ready.
	ping  func(ctx context.Context) error
	close func()
}

type app struct {
	cfg           *config.Config
	openStore     func(ctx context.Context, cfg *config.Config) (*store, error)
	openSnapshots func(ctx context.Context, cfg *config.Config) (snapshotStore, error)
}

func newApp() *app {
	return &app{openStore: openStore, openSnapshots: openMinIO}
}

// withService opens the configured store, runs fn and releases the store on
// every exit path.
func (a *app) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *service.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := a.openStore(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer st.close()

	err = fn(ctx, service.New(st.repo))

	if path := a.cfg.Metrics.Textfile; path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			logger.Warnf("write metrics textfile %s: %v", path, werr)
		}
	}
	return err
}

const redisDialTimeout = 5 * time.Second

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.Debugf("using in-memory note store")
		return &store{repo: repository.NewMemoryRepo(), close: func() {}}, nil

	case config.StoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, redisDialTimeout)
		if err != nil {
			return nil, note.NewStorageError("connect", err)
		}
		logger.Debugf("connected to redis at %s", cfg.Redis.Addr())
		return &store{
			repo:  repository.NewRedisRepo(client, cfg.Redis.Prefix),
			redis: client,
			ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: func() { _ = client.Close() },
		}, nil
	}

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return nil, note.NewStorageError("connect", err)
	}
	disconnect := func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	repo, err := repository.NewMongoRepo(ctx, col)
	if err != nil {
		disconnect()
		return nil, err
	}
	logger.Debugf("connected to mongo database=%s collection=%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	return &store{
		repo:  repo,
		ping:  func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		close: disconnect,
	}, nil
}
