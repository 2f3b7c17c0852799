package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_path":  "vault.db",
		"upload_latency": "250ms",
		"thumbnail_at":   2000000000,
		"s3_bucket":      "media",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", pathFlag})

		assert.Equal(t, "vault.db", cfg.DatabasePath)
		assert.Equal(t, 250*time.Millisecond, cfg.UploadLatency)
		assert.Equal(t, 2*time.Second, cfg.ThumbnailAt)
		assert.Equal(t, "media", cfg.S3Bucket)
		assert.Equal(t, time.Second, cfg.AuthLatency, "absent keys keep their value")
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{DatabasePath: "defaults.db", UploadLatency: 42 * time.Second}
		parseJson(cfg, nil)

		assert.Equal(t, "defaults.db", cfg.DatabasePath)
		assert.Equal(t, 42*time.Second, cfg.UploadLatency)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "absent.json")}) })
	})
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("GOPHCLOUD_DATABASE_PATH", "env.db")
	t.Setenv("GOPHCLOUD_AUTH_LATENCY", "10ms")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Millisecond, cfg.AuthLatency)
	assert.Equal(t, 1500*time.Millisecond, cfg.UploadLatency, "unset variables keep defaults")
}

func Test_parseEnv_ZeroDurationsApply(t *testing.T) {
	t.Setenv("GOPHCLOUD_AUTH_LATENCY", "0s")
	t.Setenv("GOPHCLOUD_UPLOAD_LATENCY", "0s")
	t.Setenv("GOPHCLOUD_THUMBNAIL_AT", "0")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Zero(t, cfg.AuthLatency)
	assert.Zero(t, cfg.UploadLatency)
	assert.Zero(t, cfg.ThumbnailAt)
	assert.NotZero(t, cfg.S3PresignTTL, "unset variables keep defaults")
}

func Test_parseEnv_BadDurationPanics(t *testing.T) {
	t.Setenv("GOPHCLOUD_UPLOAD_LATENCY", "slow")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
