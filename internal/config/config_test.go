package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOMENTUM_DB", "")
	t.Setenv("MOMENTUM_ADDR", "")
	t.Setenv("MOMENTUM_WEB_DIR", "")
	t.Setenv("MOMENTUM_UNIT", "")
	t.Setenv("HOME", "/home/tester")

	cfg := Load()
	assert.Equal(t, filepath.Join("/home/tester", ".momentum", "momentum.db"), cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddress)
	assert.Equal(t, "web", cfg.WebDir)
	assert.Equal(t, "kg", cfg.Unit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MOMENTUM_DB", "/tmp/w.db")
	t.Setenv("MOMENTUM_ADDR", ":9999")
	t.Setenv("MOMENTUM_WEB_DIR", "/srv/ui")
	t.Setenv("MOMENTUM_UNIT", "lbs")

	cfg := Load()
	assert.Equal(t, Config{DBPath: "/tmp/w.db", HTTPAddress: ":9999", WebDir: "/srv/ui", Unit: "lbs"}, cfg)
}
