package config

import (
	"os"
	"time"
)

// Blob backends understood by the blob package.
const (
	BlobBackendMemory = "memory"
	BlobBackendLocal  = "local"
	BlobBackendS3     = "s3"
)

// Config holds runtime settings for the gophcloud CLI.
//
// AuthLatency and UploadLatency are the artificial round trips of the
// simulated backend. ThumbnailAt is the offset of the video frame sampled
// for thumbnails.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string

	BlobBackend  string
	BlobDir      string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3PresignTTL time.Duration

	AuthLatency   time.Duration
	UploadLatency time.Duration

	ThumbnailAt    time.Duration
	FFmpegPath     string
	FFprobePath    string
	PlaceholderURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "gophcloud.db"
	c.LogLevel = "info"
	c.LogFormat = "text"

	c.BlobBackend = BlobBackendMemory
	c.BlobDir = "blobs"
	c.S3Region = "us-east-1"
	c.S3PresignTTL = 15 * time.Minute

	c.AuthLatency = time.Second
	c.UploadLatency = 1500 * time.Millisecond

	c.ThumbnailAt = time.Second
	c.FFmpegPath = "ffmpeg"
	c.FFprobePath = "ffprobe"
	c.PlaceholderURL = "/placeholder.svg"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
