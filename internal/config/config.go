// Package config loads the daemon/CLI configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface consumed by the assistant.
type Config struct {
	Model    ModelConfig  `yaml:"model"`
	Store    StoreConfig  `yaml:"store"`
	Server   ServerConfig `yaml:"server"`
	LogLevel string       `yaml:"log_level"`
}

// ModelConfig configures the completion gateway.
type ModelConfig struct {
	Name            string   `yaml:"name"`
	BaseURL         string   `yaml:"base_url"`
	APIKeyEnv       string   `yaml:"api_key_env"`
	MaxOutputTokens int      `yaml:"max_output_tokens"`
	Temperature     float64  `yaml:"temperature"`
	Timeout         Duration `yaml:"timeout"`
	// Fallback substitutes the canned development completion when the live
	// service is unreachable.
	Fallback bool `yaml:"fallback"`
}

// StoreConfig selects the session store backend.
type StoreConfig struct {
	Backend string `yaml:"backend"` // memory | file | redis | postgres

	File struct {
		Path string `yaml:"path"`
	} `yaml:"file"`

	Redis struct {
		Address  string   `yaml:"address"`
		Password string   `yaml:"password"`
		DB       int      `yaml:"db"`
		TTL      Duration `yaml:"ttl"`
	} `yaml:"redis"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`

	// EncryptionKeyEnv names the env var holding a base64-encoded 32-byte
	// AES-256 key. Empty disables encryption at rest.
	EncryptionKeyEnv string `yaml:"encryption_key_env"`

	// PIIPatterns are regular expressions masked out of stored process
	// descriptions and element names.
	PIIPatterns []string `yaml:"pii_patterns"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{
		Model: ModelConfig{
			Name:            "gpt-4o-mini",
			APIKeyEnv:       "OPENAI_API_KEY",
			MaxOutputTokens: 2000,
			Temperature:     0.9,
			Timeout:         Duration(60 * time.Second),
		},
		Server:   ServerConfig{Address: ":8080"},
		LogLevel: "info",
	}
	cfg.Store.Backend = "memory"
	return cfg
}

// Load reads a configuration file, layering it over the defaults.
// A missing file is not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, cfg.validate()
}

// APIKey resolves the completion credential from the configured env var.
func (c *Config) APIKey() string {
	if c.Model.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Model.APIKeyEnv)
}

func (c *Config) validate() error {
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return fmt.Errorf("model.temperature must be in [0, 1], got %v", c.Model.Temperature)
	}
	if c.Model.MaxOutputTokens <= 0 {
		return fmt.Errorf("model.max_output_tokens must be positive, got %d", c.Model.MaxOutputTokens)
	}
	switch c.Store.Backend {
	case "memory", "file", "redis", "postgres":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
