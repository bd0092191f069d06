package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/doclens/doclens/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".doclens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, Validate(cfg))

	assert.Equal(t, "google", cfg.Style)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 20, cfg.Weights.Error)

	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "template", cfg.Providers[0].Kind)

	conv, err := cfg.Convention()
	require.NoError(t, err)
	assert.Equal(t, m.ConventionGoogle, conv)
}

func TestLoad(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
style: numpy
workers: 8
exclude:
  - zz_generated
weights:
  error: 30
generation:
  max_retries: 1
  backoff: 500ms
  cooldown: 2m
providers:
  - id: remote
    kind: http
    priority: 1
    endpoint: https://api.example.com/v1/chat
    model: doc-writer
    api_key_env: EXAMPLE_KEY
  - id: template
    kind: template
    priority: 100
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "numpy", cfg.Style)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, 30, cfg.Weights.Error)
		assert.Equal(t, 8, cfg.Weights.Warning, "untouched defaults survive")
		assert.Equal(t, 1, cfg.Generation.MaxRetries)
		assert.Equal(t, 500*time.Millisecond, cfg.Generation.Backoff)
		assert.Equal(t, 2*time.Minute, cfg.Generation.Cooldown)
		assert.Equal(t, 5*time.Minute, cfg.Generation.FailureWindow)

		require.Len(t, cfg.Providers, 2)
		assert.Equal(t, "remote", cfg.Providers[0].ID)
		assert.Equal(t, "https://api.example.com/v1/chat", cfg.Providers[0].Endpoint)

		patterns, err := cfg.ExcludePatterns()
		require.NoError(t, err)
		require.Len(t, patterns, 1)
		assert.True(t, patterns[0].MatchString("zz_generated.go"))
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown style is rejected", func(t *testing.T) {
		path := writeConfig(t, "style: sphinx\n")

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("http provider requires an endpoint", func(t *testing.T) {
		path := writeConfig(t, `
providers:
  - id: remote
    kind: http
    priority: 1
`)

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("duplicate provider ids are rejected", func(t *testing.T) {
		path := writeConfig(t, `
providers:
  - id: template
    kind: template
  - id: template
    kind: template
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate provider id")
	})

	t.Run("invalid exclude pattern is rejected", func(t *testing.T) {
		path := writeConfig(t, "exclude:\n  - '['\n")

		_, err := Load(path)
		assert.Error(t, err)
	})
}
