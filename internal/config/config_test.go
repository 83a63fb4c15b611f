package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Listen != "127.0.0.1:8440" {
		t.Errorf("unexpected default listen address: %s", cfg.Server.Listen)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("unexpected default cache type: %s", cfg.Cache.Type)
	}
	if cfg.CacheTTL() != time.Hour {
		t.Errorf("unexpected default cache TTL: %s", cfg.CacheTTL())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unexpected default log level: %s", cfg.Logging.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "headerlens.conf")

	content := `
[server]
listen = "0.0.0.0:9000"
cors_origins = ["https://triage.example.com"]

[cache]
type = "redis"
host = "cache.internal"
port = 6379
ttl_seconds = 120

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Listen != "0.0.0.0:9000" {
		t.Errorf("listen not loaded: %s", cfg.Server.Listen)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://triage.example.com" {
		t.Errorf("cors origins not loaded: %v", cfg.Server.CORSOrigins)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Host != "cache.internal" || cfg.Cache.Port != 6379 {
		t.Errorf("cache settings not loaded: %+v", cfg.Cache)
	}
	if cfg.CacheTTL() != 2*time.Minute {
		t.Errorf("ttl not loaded: %s", cfg.CacheTTL())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging settings not loaded: %+v", cfg.Logging)
	}

	// Values absent from the file keep their defaults.
	if cfg.Server.ReadTimeout != 15 {
		t.Errorf("read timeout default lost: %d", cfg.Server.ReadTimeout)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.conf"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.conf")
	if err := os.WriteFile(path, []byte("[server\nlisten ="), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error for invalid TOML")
	}
}
