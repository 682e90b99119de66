package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL string `yaml:"ttl"`
	} `yaml:"quiz"`
	Rewards struct {
		TokensPerAnswer int    `yaml:"tokens_per_answer"`
		TokenAddress    string `yaml:"token_address"`
		AgentInterval   string `yaml:"agent_interval"`
		WebhookURL      string `yaml:"webhook_url"`
	} `yaml:"rewards"`
}

// Default returns the configuration used when no file is provided: an
// in-memory deployment with the built-in catalog.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "3000"
	cfg.Server.StaticDir = "static"
	cfg.Rewards.TokensPerAnswer = 10
	return cfg
}

// Load reads YAML config from path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Rewards.TokensPerAnswer < 0 {
		return fmt.Errorf("rewards.tokens_per_answer must not be negative")
	}
	if c.Quiz.TTL != "" {
		if _, err := time.ParseDuration(c.Quiz.TTL); err != nil {
			return fmt.Errorf("quiz.ttl: %w", err)
		}
	}
	if c.Rewards.AgentInterval != "" {
		if _, err := time.ParseDuration(c.Rewards.AgentInterval); err != nil {
			return fmt.Errorf("rewards.agent_interval: %w", err)
		}
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty
// or malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
