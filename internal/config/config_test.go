package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.TokenTTL() != time.Hour {
		t.Fatalf("expected default token TTL of one hour, got %v", cfg.Auth.TokenTTL())
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Upload.Dir != "uploads/images" {
		t.Fatalf("unexpected upload dir %q", cfg.Upload.Dir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "15")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.App.Port != "9999" {
		t.Fatalf("expected port override, got %q", cfg.App.Port)
	}
	if cfg.Auth.TokenTTL() != 15*time.Minute {
		t.Fatalf("expected 15m TTL, got %v", cfg.Auth.TokenTTL())
	}
	if cfg.RateLimit.Enabled {
		t.Fatal("expected rate limiting disabled")
	}
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}
