package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/database"
	"github.com/at-ishikawa/studylog/internal/engine"
	"github.com/at-ishikawa/studylog/internal/notify"
	"github.com/at-ishikawa/studylog/internal/store"
)

const (
	DriverMySQL = "mysql"
	DriverYAML  = "yaml"
)

// Environment is everything a command needs to talk to the engine.
type Environment struct {
	Config   *config.Config
	Location *time.Location
	Clock    store.Clock
	Store    store.Store
	// Cache is the YAML store, used directly with the yaml driver and as the
	// last-known-good copy with mysql.
	Cache *store.YAMLStore
	// DB is nil with the yaml driver.
	DB *sqlx.DB
}

// OpenEnvironment opens the configured store. Resources are released by app's
// shutdown hooks.
func OpenEnvironment(app *App, cfg *config.Config) (*Environment, error) {
	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}
	clock := store.NewClock(loc)
	cache := store.NewYAMLStore(cfg.Storage.CacheDirectory, clock)

	env := &Environment{
		Config:   cfg,
		Location: loc,
		Clock:    clock,
		Store:    cache,
		Cache:    cache,
	}
	if cfg.Storage.Driver != DriverMySQL {
		return env, nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})
	env.DB = db
	env.Store = store.NewFallbackStore(
		store.NewDBStore(db, clock),
		cache,
		cfg.Storage.RetryAttempts,
		time.Duration(cfg.Storage.RetryDelayMs)*time.Millisecond,
	)
	return env, nil
}

// OpenSession loads the engine session and subscribes the configured notifiers.
func (env *Environment) OpenSession(ctx context.Context, app *App, out io.Writer) (*engine.Session, error) {
	session, err := engine.Open(ctx, env.Store,
		engine.WithClock(env.Clock),
		engine.WithPool(achievement.NewPool(env.Config.Achievements.PoolFloor)),
	)
	if err != nil {
		return nil, err
	}
	for _, h := range Notifiers(app, env.Config.Notifications, out) {
		session.Subscribe(h)
	}
	return session, nil
}

// Notifiers builds the event handlers enabled in cfg.
func Notifiers(app *App, cfg config.NotificationsConfig, out io.Writer) []engine.Handler {
	var handlers []engine.Handler
	if cfg.Console && out != nil {
		handlers = append(handlers, notify.NewConsole(out))
	}
	if cfg.Webhook.URL != "" {
		handlers = append(handlers, notify.NewWebhook(cfg.Webhook.URL, time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second))
	}
	if cfg.Redis.Addr != "" {
		client := notify.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		app.AddShutdownHook(func(context.Context) error {
			return client.Close()
		})
		handlers = append(handlers, notify.NewRedis(client, cfg.Redis.Channel))
	}
	slog.Default().Debug("notifiers configured",
		"count", len(handlers),
	)
	return handlers
}
