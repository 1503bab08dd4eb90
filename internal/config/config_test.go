package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "DATA_BACKEND", "APP_MIGRATE", "RATE_RPS", "PAGE_SIZE", "JWT_ACCESS_TTL", "CORS_ORIGINS", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Env != "dev" || cfg.HTTPPort != "8080" || cfg.DataBackend != "postgres" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Migrate {
		t.Fatalf("migrate should default to false")
	}
	if cfg.PageSize != 20 || cfg.RateRPS != 100 {
		t.Fatalf("page size/rps = %d/%d", cfg.PageSize, cfg.RateRPS)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Fatalf("access ttl = %s", cfg.AccessTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("location = %v", cfg.Location())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("APP_MIGRATE", "true")
	t.Setenv("PAGE_SIZE", "-3")
	t.Setenv("JWT_ACCESS_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("APP_TIMEZONE", "Not/AZone")

	cfg := Load()
	if cfg.Env != "prod" || cfg.DataBackend != "memory" || !cfg.Migrate {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("non-positive page size should reset to default, got %d", cfg.PageSize)
	}
	if cfg.AccessTTL != time.Hour {
		t.Fatalf("access ttl = %s", cfg.AccessTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("unknown zone should fall back to UTC")
	}
}
