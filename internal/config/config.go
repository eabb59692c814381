// Package config loads server configuration from environment variables,
// with an optional .env file for development. Command-line flags in
// cmd/opname override these values.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration. Every field has a usable default so
// the server starts with no environment at all.
type Config struct {
	DBPath     string // SQLite database path
	Addr       string // HTTP listen address
	AdminUser  string // admin username created on first run
	AdminEmail string // admin email created on first run
	LogPath    string // optional log file path
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; missing files are not an
// error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:     getenv("OPNAME_DB", "opname.sqlite3"),
		Addr:       getenv("OPNAME_ADDR", ":8080"),
		AdminUser:  getenv("OPNAME_ADMIN_USER", "admin"),
		AdminEmail: getenv("OPNAME_ADMIN_EMAIL", "admin@localhost"),
		LogPath:    os.Getenv("OPNAME_LOG"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
