package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/studylog/internal/engine"
)

// Webhook posts every event as JSON to a URL.
type Webhook struct {
	url     string
	client  *resty.Client
	timeout time.Duration
}

// NewWebhook creates a Webhook. A timeout of zero means no timeout.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:     url,
		client:  resty.New(),
		timeout: timeout,
	}
}

// Post sends one event.
func (w *Webhook) Post(ctx context.Context, event engine.Event) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	res, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("client.R.Post(%s) > %w", w.url, err)
	}
	if res.IsError() {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

// Handle implements engine.Handler. Delivery failures are logged.
func (w *Webhook) Handle(event engine.Event) {
	if err := w.Post(context.Background(), event); err != nil {
		slog.Default().Warn("failed to deliver webhook",
			"event", event.Type,
			"error", err,
		)
	}
}
