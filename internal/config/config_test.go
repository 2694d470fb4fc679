package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Membership.AcceptMaxAttempts != 3 {
		t.Errorf("AcceptMaxAttempts = %d, expected 3", cfg.Membership.AcceptMaxAttempts)
	}
	if cfg.LLM.Enabled {
		t.Error("LLM should be disabled by default")
	}
}

func TestLoad_FileKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \"9090\"\nmembership:\n  accept_max_attempts: 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.Membership.AcceptMaxAttempts != 5 {
		t.Errorf("AcceptMaxAttempts = %d, expected 5", cfg.Membership.AcceptMaxAttempts)
	}
	if cfg.Notification.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, expected default 30", cfg.Notification.RetentionDays)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("REDIS_URL", "redis://:secret@cache:6380/2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, "postgres")
	}
	if !cfg.LLM.Enabled || cfg.LLM.Provider != "anthropic" {
		t.Errorf("LLM = %+v, expected enabled anthropic", cfg.LLM)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis should be enabled by REDIS_URL")
	}
	if cfg.Redis.Addr != "cache:6380" || cfg.Redis.Password != "secret" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v, unexpected parse result", cfg.Redis)
	}
}
