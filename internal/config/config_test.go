package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "STORAGE_DRIVER", "MONGO_URI", "JWT_SECRET", "SESSION_TTL",
		"SIGNUP_TICKET_TTL", "PAGE_SIZE", "COOKIE_SECURE", "API_ALLOWED_ORIGINS", "STORE_COLLECTION", "NOTICE_COLLECTION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8000" || cfg.StorageDriver != DriverMongo || cfg.PageSize != 10 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SessionTTL != 14*24*time.Hour || cfg.SignupTicketTTL != 10*time.Minute {
		t.Fatalf("ttls = %v %v", cfg.SessionTTL, cfg.SignupTicketTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.Collections.Notices != "notices" || cfg.Collections.Stores != "stores" {
		t.Fatalf("collections = %+v", cfg.Collections)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`addr: ":9000"
storageDriver: memory
jwtSecret: from-file
sessionTTL: 1h
pageSize: 20
cookieSecure: true
allowedOrigins:
  - https://a.example
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	clearEnv(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("API_ALLOWED_ORIGINS", "https://b.example, https://c.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.StorageDriver != DriverMemory || cfg.JWTSecret != "from-file" || cfg.PageSize != 20 || !cfg.CookieSecure {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("session ttl = %v", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://c.example" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
