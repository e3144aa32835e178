package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"INTAKE_CONFIG", "INTAKE_DB", "INTAKE_BACKEND", "INTAKE_REDIS_ADDR", "INTAKE_NS",
		"INTAKE_GENERATOR", "INTAKE_GENERATOR_MODEL", "INTAKE_GENERATOR_URL", "INTAKE_GENERATOR_TIMEOUT",
		"INTAKE_MAX_FOLLOW_UPS", "INTAKE_LOG_MODE", "OPENAI_API_KEY", "GEMINI_API_KEY", "OLLAMA_HOST",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	if cfg.Storage.Backend != DefaultBackend {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, DefaultBackend)
	}
	if cfg.Generator.Timeout != DefaultGeneratorTimeout {
		t.Errorf("timeout = %s, want %s", cfg.Generator.Timeout, DefaultGeneratorTimeout)
	}
	if cfg.Intake.MaxFollowUps != DefaultMaxFollowUps {
		t.Errorf("maxFollowUps = %d, want %d", cfg.Intake.MaxFollowUps, DefaultMaxFollowUps)
	}
	if filepath.Base(cfg.Storage.DBPath) != "intake.db" {
		t.Errorf("unexpected db path %q", cfg.Storage.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Namespace != "default" {
		t.Errorf("namespace = %q, want default", cfg.Namespace)
	}
	if cfg.Generator.Provider != "" {
		t.Errorf("generator should be disabled by default, got %q", cfg.Generator.Provider)
	}
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
storage:
  backend: redis
  redis_addr: cache:6379
namespace: alice
generator:
  provider: openai
  model: gpt-test
  timeout: 2s
intake:
  max_follow_ups: 1
log:
  mode: dev
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INTAKE_CONFIG", path)
	t.Setenv("INTAKE_NS", "bob")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GEMINI_API_KEY", "gm-env")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.RedisAddr != "cache:6379" {
		t.Errorf("storage not loaded from yaml: %+v", cfg.Storage)
	}
	if cfg.Storage.RedisPrefix != DefaultRedisPrefix {
		t.Errorf("unset yaml field should keep default, got %q", cfg.Storage.RedisPrefix)
	}
	if cfg.Namespace != "bob" {
		t.Errorf("env should override yaml namespace, got %q", cfg.Namespace)
	}
	if cfg.Generator.Timeout != 2*time.Second {
		t.Errorf("timeout = %s, want 2s", cfg.Generator.Timeout)
	}
	if cfg.Generator.APIKey != "sk-env" {
		t.Errorf("openai key should come from OPENAI_API_KEY, got %q", cfg.Generator.APIKey)
	}
	if cfg.Intake.MaxFollowUps != 1 || cfg.Log.Mode != "dev" {
		t.Errorf("unexpected intake/log config: %+v %+v", cfg.Intake, cfg.Log)
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTAKE_GENERATOR_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unparseable timeout")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INTAKE_CONFIG", path)
	if _, err := LoadConfig(); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "etcd" }},
		{"unknown provider", func(c *Config) { c.Generator.Provider = "carrier-pigeon" }},
		{"zero timeout", func(c *Config) { c.Generator.Timeout = 0 }},
		{"negative follow-ups", func(c *Config) { c.Intake.MaxFollowUps = -1 }},
		{"unknown log mode", func(c *Config) { c.Log.Mode = "loud" }},
		{"redis without addr", func(c *Config) { c.Storage.Backend = "redis"; c.Storage.RedisAddr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
