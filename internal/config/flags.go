package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophcloud/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   database path (default from Config)
//	-l string   log level (default from Config)
//	-b string   blob backend (default from Config)
//
// args is filtered with flagx.FilterArgs first so that flags owned by other
// components (such as -c) do not break parsing. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.BlobBackend, "b", cfg.BlobBackend, "content reference backend (memory, local, s3)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
