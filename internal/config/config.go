// Package config centralises configuration parsing for momentum.
package config

import (
	"os"
	"path/filepath"
)

// Config captures runtime configuration values.
type Config struct {
	DBPath      string // SQLite file holding the entry collection.
	HTTPAddress string // Listen address of the local web UI and API.
	WebDir      string // Static UI directory served at /.
	Unit        string // Default unit for input and display.
}

// Load reads environment variables into Config, applying defaults for a
// single-user install.
func Load() Config {
	return Config{
		DBPath:      getEnv("MOMENTUM_DB", defaultDBPath()),
		HTTPAddress: getEnv("MOMENTUM_ADDR", "127.0.0.1:8080"),
		WebDir:      getEnv("MOMENTUM_WEB_DIR", "web"),
		Unit:        getEnv("MOMENTUM_UNIT", "kg"),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "momentum.db"
	}
	return filepath.Join(home, ".momentum", "momentum.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
