// Package config loads intake settings from defaults, an optional YAML file
// and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/wellbeing-intake/internal/state"
)

const (
	DefaultBackend          = "sqlite"
	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisPrefix      = "intake:"
	DefaultGeneratorTimeout = 3 * time.Second
	DefaultMaxFollowUps     = 2
	DefaultLogMode          = "prod"
)

type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Namespace string          `yaml:"namespace"`
	Generator GeneratorConfig `yaml:"generator"`
	Intake    IntakeConfig    `yaml:"intake"`
	Log       LogConfig       `yaml:"log"`
}

type StorageConfig struct {
	Backend     string `yaml:"backend"` // "sqlite" or "redis"
	DBPath      string `yaml:"db_path"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
}

type GeneratorConfig struct {
	Provider string        `yaml:"provider"` // "", "ollama", "openai" or "genai"
	Model    string        `yaml:"model,omitempty"`
	URL      string        `yaml:"url,omitempty"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

type IntakeConfig struct {
	MaxFollowUps int `yaml:"max_follow_ups"`
}

type LogConfig struct {
	Mode string `yaml:"mode"` // "prod" or "dev"
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     DefaultBackend,
			DBPath:      filepath.Join(ConfigDir(), "intake.db"),
			RedisAddr:   DefaultRedisAddr,
			RedisPrefix: DefaultRedisPrefix,
		},
		Namespace: state.DefaultNamespace,
		Generator: GeneratorConfig{Timeout: DefaultGeneratorTimeout},
		Intake:    IntakeConfig{MaxFollowUps: DefaultMaxFollowUps},
		Log:       LogConfig{Mode: DefaultLogMode},
	}
}

func ConfigDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".intake")
}

// ConfigPath is $INTAKE_CONFIG, else ~/.intake/config.yaml.
func ConfigPath() string {
	if p := os.Getenv("INTAKE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("INTAKE_DB"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("INTAKE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("INTAKE_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("INTAKE_NS"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("INTAKE_GENERATOR"); v != "" {
		cfg.Generator.Provider = v
	}
	if v := os.Getenv("INTAKE_GENERATOR_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := os.Getenv("INTAKE_GENERATOR_URL"); v != "" {
		cfg.Generator.URL = v
	}
	if v := os.Getenv("INTAKE_GENERATOR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INTAKE_GENERATOR_TIMEOUT: %w", err)
		}
		cfg.Generator.Timeout = d
	}
	if v := os.Getenv("INTAKE_MAX_FOLLOW_UPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INTAKE_MAX_FOLLOW_UPS: %w", err)
		}
		cfg.Intake.MaxFollowUps = n
	}
	if v := os.Getenv("INTAKE_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}

	// Provider keys only fill an unset key for the matching provider.
	if cfg.Generator.APIKey == "" {
		switch cfg.Generator.Provider {
		case "openai":
			cfg.Generator.APIKey = os.Getenv("OPENAI_API_KEY")
		case "genai":
			cfg.Generator.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if cfg.Generator.Provider == "ollama" && cfg.Generator.URL == "" {
		cfg.Generator.URL = os.Getenv("OLLAMA_HOST")
	}
	return nil
}

// Validate rejects settings the binary cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path is required for sqlite")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for redis")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Generator.Provider {
	case "", "none", "ollama", "openai", "genai":
	default:
		return fmt.Errorf("unknown generator provider %q", c.Generator.Provider)
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("generator.timeout must be positive, got %s", c.Generator.Timeout)
	}
	if c.Intake.MaxFollowUps < 0 {
		return fmt.Errorf("intake.max_follow_ups must not be negative")
	}
	switch c.Log.Mode {
	case "prod", "dev":
	default:
		return fmt.Errorf("unknown log mode %q", c.Log.Mode)
	}
	return nil
}
