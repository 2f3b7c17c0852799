package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "gophcloud.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, BlobBackendMemory, c.BlobBackend)
	assert.Equal(t, time.Second, c.AuthLatency)
	assert.Equal(t, 1500*time.Millisecond, c.UploadLatency)
	assert.Equal(t, time.Second, c.ThumbnailAt)
	assert.Equal(t, "/placeholder.svg", c.PlaceholderURL)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"gophcloud"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "gophcloud.db", cfg.DatabasePath)
	assert.Equal(t, 1500*time.Millisecond, cfg.UploadLatency)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"database_path": "from-json.db",
		"blob_backend":  "local",
		"log_level":     "warn",
	})
	t.Setenv("GOPHCLOUD_BLOB_BACKEND", "s3")
	t.Setenv("GOPHCLOUD_LOG_LEVEL", "error")

	os.Args = []string{"gophcloud", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "from-json.db", cfg.DatabasePath, "json overrides defaults")
	assert.Equal(t, "s3", cfg.BlobBackend, "env overrides json")
	assert.Equal(t, "debug", cfg.LogLevel, "flags override env")
}
