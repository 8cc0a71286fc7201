package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/studylog/internal/engine"
)

//go:generate mockgen -source=redis.go -destination=../mocks/notify/mock_redis.go -package=mock_notify

// Publisher is the part of a Redis client used to publish events.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Redis publishes every event as JSON on a pub/sub channel.
type Redis struct {
	client  Publisher
	channel string
}

// NewRedis creates a Redis notifier.
func NewRedis(client Publisher, channel string) *Redis {
	return &Redis{client: client, channel: channel}
}

// NewRedisClient connects to addr.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Publish sends one event.
func (r *Redis) Publish(ctx context.Context, event engine.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal(event) > %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", r.channel, err)
	}
	return nil
}

// Handle implements engine.Handler. Delivery failures are logged.
func (r *Redis) Handle(event engine.Event) {
	if err := r.Publish(context.Background(), event); err != nil {
		slog.Default().Warn("failed to publish event to redis",
			"event", event.Type,
			"channel", r.channel,
			"error", err,
		)
	}
}
