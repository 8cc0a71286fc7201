package bootstrap

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/achievement"
	"github.com/at-ishikawa/studylog/internal/activity"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/curriculum"
	"github.com/at-ishikawa/studylog/internal/store"
)

func yamlConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Location: "UTC",
		Storage: config.StorageConfig{
			Driver:         DriverYAML,
			CacheDirectory: filepath.Join(t.TempDir(), "data"),
			RetryAttempts:  1,
		},
		Achievements: config.AchievementsConfig{PoolFloor: 5},
		Notifications: config.NotificationsConfig{
			Console: true,
		},
	}
}

func TestOpenEnvironment_YAML(t *testing.T) {
	app := New()
	cfg := yamlConfig(t)

	env, err := OpenEnvironment(app, cfg)
	require.NoError(t, err)
	assert.Nil(t, env.DB)
	assert.Same(t, env.Cache, env.Store)
	assert.Equal(t, cfg.Storage.CacheDirectory, env.Cache.Dir())
	assert.Equal(t, "UTC", env.Location.String())
}

func TestOpenEnvironment_InvalidLocation(t *testing.T) {
	cfg := yamlConfig(t)
	cfg.Location = "Mars/Olympus"

	_, err := OpenEnvironment(New(), cfg)
	assert.ErrorContains(t, err, "Mars/Olympus")
}

func TestEnvironment_OpenSession(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var posted atomic.Int32
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posted.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer webhook.Close()

	ctx := context.Background()
	app := New()
	cfg := yamlConfig(t)
	cfg.Notifications.Webhook = config.WebhookConfig{URL: webhook.URL, TimeoutSeconds: 1}

	env, err := OpenEnvironment(app, cfg)
	require.NoError(t, err)
	require.NoError(t, env.Cache.SaveSnapshot(ctx, store.Snapshot{
		Phases:       []curriculum.Phase{{ID: "phase-1", Title: "Foundations"}},
		Achievements: []achievement.Achievement{{ID: "first-log", Title: "First Step", Icon: "🎯", Points: 10, IsActive: true, IsDefault: true}},
	}))

	var out bytes.Buffer
	session, err := env.OpenSession(ctx, app, &out)
	require.NoError(t, err)

	_, unlocked, err := session.AppendLog(ctx, activity.DailyLog{PhaseID: "phase-1", HoursSpent: 1})
	require.NoError(t, err)
	require.Len(t, unlocked, 1)

	assert.Contains(t, out.String(), "Achievement unlocked: First Step (+10 points)")
	// one unlock event and one metrics event
	assert.Equal(t, int32(2), posted.Load())
	require.NoError(t, app.Close(ctx))
}

func TestNotifiers(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.NotificationsConfig
		out  *bytes.Buffer
		want int
	}{
		{name: "none", cfg: config.NotificationsConfig{}, want: 0},
		{name: "console without writer", cfg: config.NotificationsConfig{Console: true}, want: 0},
		{name: "console", cfg: config.NotificationsConfig{Console: true}, out: &bytes.Buffer{}, want: 1},
		{
			name: "all",
			cfg: config.NotificationsConfig{
				Console: true,
				Webhook: config.WebhookConfig{URL: "http://localhost:9/hook"},
				Redis:   config.RedisConfig{Addr: "localhost:6379", Channel: "events"},
			},
			out:  &bytes.Buffer{},
			want: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := New()
			var out io.Writer
			if tt.out != nil {
				out = tt.out
			}
			assert.Len(t, Notifiers(app, tt.cfg, out), tt.want)
			assert.NoError(t, app.Close(context.Background()))
		})
	}
}
