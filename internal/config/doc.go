// Package config loads runtime configuration for the gophcloud CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables prefixed with GOPHCLOUD_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database holding durable storage
//	-l string   log level (debug, info, warn, error)
//	-b string   content reference backend (memory, local, s3)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "1.5s" or
// integer nanoseconds:
//
//	{
//	  "database_path": "gophcloud.db",
//	  "blob_backend": "local",
//	  "blob_dir": "blobs",
//	  "upload_latency": "1.5s"
//	}
package config
