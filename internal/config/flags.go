package config

import (
	"flag"
	"os"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the SQLite database file
//	-f string   root directory for materialized documents
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("rpas", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the database file")
	fs.StringVar(&cfg.FilesRoot, "f", cfg.FilesRoot, "root directory for document storage")

	_ = fs.Parse(os.Args[1:])
}
