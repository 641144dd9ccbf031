package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
port: "8080"
databaseURL: "postgres://localhost/curiozando"
redisAddr: "localhost:6379"
geminiAPIKey: "test-key"
adminEmail: "admin@curiozando.com"
adminPasswordHash: "$2a$10$abcdefghijklmnopqrstuv"
sessionSecret: "session-secret"
`

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.GeminiTextModel != "gemini-2.5-flash" {
		t.Fatalf("expected default text model, got %q", cfg.GeminiTextModel)
	}
	if cfg.GenerateRateLimit != 5 || cfg.GenerateRateWindow != "1m" {
		t.Fatalf("expected default rate limit, got %d/%s", cfg.GenerateRateLimit, cfg.GenerateRateWindow)
	}
	if cfg.DefaultPostCategory != "Geral" {
		t.Fatalf("expected default category, got %q", cfg.DefaultPostCategory)
	}
}

func TestSessionBackendSelection(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionBackend != SessionBackendJWT {
		t.Fatalf("expected default jwt backend, got %q", cfg.SessionBackend)
	}

	// Redis-backed sessions do not need a signing secret.
	redisCfg := strings.Replace(validConfig, `sessionSecret: "session-secret"`, `sessionBackend: "redis"`, 1)
	cfg, err = Load(writeConfig(t, redisCfg))
	if err != nil {
		t.Fatalf("load redis backend: %v", err)
	}
	if cfg.SessionBackend != SessionBackendRedis {
		t.Fatalf("unexpected backend %q", cfg.SessionBackend)
	}
}

func TestLoadRejectsUnknownSessionBackend(t *testing.T) {
	path := writeConfig(t, validConfig+`sessionBackend: "cookie"`+"\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "sessionBackend") {
		t.Fatalf("expected sessionBackend error, got %v", err)
	}
}

func TestLoadRequiresSecretForJWTBackend(t *testing.T) {
	path := writeConfig(t, strings.Replace(validConfig, `sessionSecret: "session-secret"`, "", 1))
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "sessionSecret") {
		t.Fatalf("expected sessionSecret error, got %v", err)
	}
}

func TestLoadRejectsMissingGeminiKey(t *testing.T) {
	path := writeConfig(t, strings.Replace(validConfig, `geminiAPIKey: "test-key"`, "", 1))
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "geminiAPIKey") {
		t.Fatalf("expected geminiAPIKey error, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, validConfig)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://db-host/curiozando")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "env-key" {
		t.Fatalf("env override not applied: %q", cfg.GeminiAPIKey)
	}
	if cfg.DatabaseURL != "postgres://db-host/curiozando" {
		t.Fatalf("env override not applied: %q", cfg.DatabaseURL)
	}
}

func TestParseDurations(t *testing.T) {
	if _, err := ParseSessionTTL("nope"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := ParseSessionTTL("-1h"); err == nil {
		t.Fatal("expected positive duration error")
	}
	d, err := ParseRateWindow("90s")
	if err != nil {
		t.Fatalf("parse window: %v", err)
	}
	if d.Seconds() != 90 {
		t.Fatalf("unexpected window %v", d)
	}
}
