package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophcloud/internal/flagx"
	"github.com/dmitrijs2005/gophcloud/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Only keys
// present in the file override the current Config values.
type JsonConfig struct {
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
	BlobBackend    *string         `json:"blob_backend"`
	BlobDir        *string         `json:"blob_dir"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3Endpoint     *string         `json:"s3_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3PresignTTL   *timex.Duration `json:"s3_presign_ttl"`
	AuthLatency    *timex.Duration `json:"auth_latency"`
	UploadLatency  *timex.Duration `json:"upload_latency"`
	ThumbnailAt    *timex.Duration `json:"thumbnail_at"`
	FFmpegPath     *string         `json:"ffmpeg_path"`
	FFprobePath    *string         `json:"ffprobe_path"`
	PlaceholderURL *string         `json:"placeholder_url"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// -c/-config in args. Without such a flag it does nothing. It panics on read
// or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.JsonConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.BlobBackend, jc.BlobBackend)
	setString(&cfg.BlobDir, jc.BlobDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.FFmpegPath, jc.FFmpegPath)
	setString(&cfg.FFprobePath, jc.FFprobePath)
	setString(&cfg.PlaceholderURL, jc.PlaceholderURL)

	if jc.S3PresignTTL != nil {
		cfg.S3PresignTTL = jc.S3PresignTTL.Duration
	}
	if jc.AuthLatency != nil {
		cfg.AuthLatency = jc.AuthLatency.Duration
	}
	if jc.UploadLatency != nil {
		cfg.UploadLatency = jc.UploadLatency.Duration
	}
	if jc.ThumbnailAt != nil {
		cfg.ThumbnailAt = jc.ThumbnailAt.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
