package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment variables understood by the CLI.
// Empty strings and nil durations mean the variable was not set.
type envConfig struct {
	DatabasePath   string         `env:"DATABASE_PATH"`
	LogLevel       string         `env:"LOG_LEVEL"`
	LogFormat      string         `env:"LOG_FORMAT"`
	BlobBackend    string         `env:"BLOB_BACKEND"`
	BlobDir        string         `env:"BLOB_DIR"`
	S3Bucket       string         `env:"S3_BUCKET"`
	S3Region       string         `env:"S3_REGION"`
	S3Endpoint     string         `env:"S3_ENDPOINT"`
	S3AccessKey    string         `env:"S3_ACCESS_KEY"`
	S3SecretKey    string         `env:"S3_SECRET_KEY"`
	S3PresignTTL   *time.Duration `env:"S3_PRESIGN_TTL"`
	AuthLatency    *time.Duration `env:"AUTH_LATENCY"`
	UploadLatency  *time.Duration `env:"UPLOAD_LATENCY"`
	ThumbnailAt    *time.Duration `env:"THUMBNAIL_AT"`
	FFmpegPath     string         `env:"FFMPEG_PATH"`
	FFprobePath    string         `env:"FFPROBE_PATH"`
	PlaceholderURL string         `env:"PLACEHOLDER_URL"`
}

const envPrefix = "GOPHCLOUD_"

// parseEnv overlays cfg with GOPHCLOUD_* environment variables.
// It panics when a variable cannot be parsed (e.g. a malformed duration).
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlayDuration := func(dst *time.Duration, v *time.Duration) {
		if v != nil {
			*dst = *v
		}
	}

	overlay(&cfg.DatabasePath, ec.DatabasePath)
	overlay(&cfg.LogLevel, ec.LogLevel)
	overlay(&cfg.LogFormat, ec.LogFormat)
	overlay(&cfg.BlobBackend, ec.BlobBackend)
	overlay(&cfg.BlobDir, ec.BlobDir)
	overlay(&cfg.S3Bucket, ec.S3Bucket)
	overlay(&cfg.S3Region, ec.S3Region)
	overlay(&cfg.S3Endpoint, ec.S3Endpoint)
	overlay(&cfg.S3AccessKey, ec.S3AccessKey)
	overlay(&cfg.S3SecretKey, ec.S3SecretKey)
	overlay(&cfg.FFmpegPath, ec.FFmpegPath)
	overlay(&cfg.FFprobePath, ec.FFprobePath)
	overlay(&cfg.PlaceholderURL, ec.PlaceholderURL)

	overlayDuration(&cfg.S3PresignTTL, ec.S3PresignTTL)
	overlayDuration(&cfg.AuthLatency, ec.AuthLatency)
	overlayDuration(&cfg.UploadLatency, ec.UploadLatency)
	overlayDuration(&cfg.ThumbnailAt, ec.ThumbnailAt)
}
