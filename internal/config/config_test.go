package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "JWT_SECRET", "COOLDOWN_MS", "REDIS_ADDR", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "4000" {
		t.Fatalf("expected default port 4000, got %q", cfg.Port)
	}
	if cfg.DBPath != "./adpoints.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.CooldownMS != 30000 {
		t.Fatalf("expected default cooldown 30000, got %d", cfg.CooldownMS)
	}
	if cfg.IsProd {
		t.Fatal("expected IsProd false by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_PATH", "/tmp/points.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "rootpass")
	t.Setenv("COOLDOWN_MS", "1500")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	if cfg.Port != "8081" || cfg.DBPath != "/tmp/points.db" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.AdminUsername != "root" || cfg.AdminPassword != "rootpass" {
		t.Fatalf("unexpected admin credentials %+v", cfg)
	}
	if cfg.CooldownMS != 1500 {
		t.Fatalf("expected cooldown 1500, got %d", cfg.CooldownMS)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.RedisDB)
	}
	if !cfg.IsProd {
		t.Fatal("expected IsProd true")
	}
}

func TestLoadConfig_InvalidCooldownFallsBack(t *testing.T) {
	t.Setenv("COOLDOWN_MS", "soon")

	cfg := LoadConfig()
	if cfg.CooldownMS != 30000 {
		t.Fatalf("expected fallback cooldown 30000, got %d", cfg.CooldownMS)
	}
}
