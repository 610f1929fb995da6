package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"person-registry/internal/core/cache"
	"person-registry/internal/core/config"
	"person-registry/internal/core/database"
	"person-registry/internal/core/logger"
	"person-registry/internal/core/notify"
	"person-registry/internal/domain"
	"person-registry/internal/feature/person"
	"person-registry/internal/repo"
	"person-registry/internal/service"
)

// App holds the wired person service and everything that must be closed
// with it.
type App struct {
	Service  *service.PersonService
	Notifier *notify.Async

	closers []func(context.Context) error
}

// Build wires store, cache, notifier and service from cfg. On error every
// resource opened so far is released.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	store, err := a.openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Cache.Driver == "redis" || cfg.Notify.Driver == "redis" {
		rdb = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	switch cfg.Cache.Driver {
	case "redis":
		store = repo.NewCachedPersonRepo(store, cache.New(cache.NewRedisStore(rdb)), cfg.Cache.TTL(), log)
	case "memory":
		ttl := cfg.Cache.TTL()
		store = repo.NewCachedPersonRepo(store, cache.New(cache.NewMemoryStore(ttl, 2*ttl)), ttl, log)
	}
	log.Info("person store ready", zap.String("db", cfg.DB.Driver), zap.String("cache", cfg.Cache.Driver))

	pub, err := newPublisher(cfg.Notify, rdb, log)
	if err != nil {
		return nil, err
	}
	a.Notifier = notify.NewAsync(pub, cfg.Notify.Driver, cfg.Notify.Timeout(), log)
	a.closers = append(a.closers, a.Notifier.Close)

	a.Service = service.NewPersonService(store, a.Notifier, log, service.Options{BasePath: cfg.App.BasePath})
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.PersonRepository, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn("using in-memory person store; data is lost on exit")
		return repo.NewMemoryPersonRepo(), nil
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return database.Close(db) })

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx, db); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := person.Migrate(db); err != nil {
			return nil, err
		}
		log.Info("automigrate done")
	}
	return repo.NewPersonRepo(db), nil
}

func newPublisher(cfg config.Notify, rdb *redis.Client, log *zap.Logger) (notify.Publisher, error) {
	switch cfg.Driver {
	case "kafka":
		return notify.NewKafkaPublisher(cfg.Brokers, cfg.Topic, notify.BreakerSettings{
			MaxFailures: cfg.Breaker.MaxFailures,
			OpenFor:     time.Duration(cfg.Breaker.OpenSec) * time.Second,
		}, log)
	case "redis":
		return notify.NewRedisPublisher(rdb, cfg.Queue), nil
	case "log", "":
		return notify.NewLogPublisher(log.Named("notify")), nil
	}
	return nil, fmt.Errorf("notify driver %q", cfg.Driver)
}

// Close releases resources in reverse order of acquisition: the notifier
// drains before the connections it may use are closed.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewLogger builds the process logger for component from the log section.
func NewLogger(c config.Log, component string) (*zap.Logger, func()) {
	return logger.Build(logger.Options{
		Level:       c.Level,
		JSON:        c.JSON,
		AddCaller:   true,
		Development: !c.JSON,
		Component:   component,
		Rotate: logger.FileRotate{
			Enable:     c.File.Enable,
			Filename:   c.File.Filename,
			MaxSizeMB:  c.File.MaxSizeMB,
			MaxBackups: c.File.MaxBackups,
			MaxAgeDays: c.File.MaxAgeDays,
			Compress:   c.File.Compress,
		},
	})
}
