// Package testutil provides shared test helpers for creating config files and store fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/seed"
	"github.com/at-ishikawa/studylog/internal/store"
)

// SetupTestConfig creates a config file using the yaml driver and the directories it points to.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`location: UTC
storage:
  driver: yaml
  cache_directory: %s
reports:
  output_directory: %s
notifications:
  console: true
`,
		filepath.Join(tmpDir, "data"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithWebhook creates a config file that also posts events to url.
func SetupTestConfigWithWebhook(t *testing.T, tmpDir, url string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("  webhook:\n    url: %s\n    timeout_seconds: 1\n", url))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// SeedYAMLStore writes the embedded curriculum and achievements into the YAML
// store under dir and returns the store.
func SeedYAMLStore(t *testing.T, dir string) *store.YAMLStore {
	t.Helper()

	data, err := seed.Load("", "")
	require.NoError(t, err)

	s := store.NewYAMLStore(dir, store.NewClock(time.UTC))
	require.NoError(t, s.SaveSnapshot(context.Background(), store.Snapshot{
		Phases:       data.Phases,
		Achievements: data.Achievements,
	}))
	return s
}
