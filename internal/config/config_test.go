package config

import (
	"reflect"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "QUIZ_MAX_QUESTIONS", "SEED_PROCEDURAL", "CORS_ORIGINS", "ENABLE_REGISTRATION", "ADMIN_KEY"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Mode != ModeOffline {
		t.Fatalf("mode: got %q", cfg.Mode)
	}
	if cfg.HTTPAddr != ":8080" || cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxQuestions != 50 || cfg.SeedProcedural != 100 {
		t.Fatalf("unexpected quiz defaults: max=%d seed=%d", cfg.MaxQuestions, cfg.SeedProcedural)
	}
	if !cfg.EnableRegistration {
		t.Fatal("registration should default on")
	}
	if cfg.AdminKey != "" {
		t.Fatal("admin key should default empty")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("QUIZ_MAX_QUESTIONS", "20")
	t.Setenv("SEED_PROCEDURAL", "not-a-number")
	t.Setenv("ENABLE_REGISTRATION", "no")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := FromEnv()
	if cfg.Mode != ModeOnline {
		t.Fatalf("mode: got %q", cfg.Mode)
	}
	if cfg.MaxQuestions != 20 {
		t.Fatalf("max questions: got %d", cfg.MaxQuestions)
	}
	if cfg.SeedProcedural != 100 {
		t.Fatalf("bad int should fall back to default, got %d", cfg.SeedProcedural)
	}
	if cfg.EnableRegistration {
		t.Fatal("registration should be off")
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("origins: got %v want %v", cfg.CORSOrigins, want)
	}
}
