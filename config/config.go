package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Analysis struct {
		MaxClauses            int `yaml:"maxClauses"`
		BatchSize             int `yaml:"batchSize"`
		CooldownSeconds       int `yaml:"cooldownSeconds"`
		RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds"`
		SummaryCharLimit      int `yaml:"summaryCharLimit"`
	} `yaml:"analysis"`
}

// LoadConfig reads the configuration file and applies env overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	// Env vars take precedence so deployments can keep secrets out of the file.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.ApiKey = key
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		cfg.Database.URI = uri
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Analysis.MaxClauses == 0 {
		c.Analysis.MaxClauses = 20
	}
	if c.Analysis.BatchSize == 0 {
		c.Analysis.BatchSize = 4
	}
	if c.Analysis.CooldownSeconds == 0 {
		c.Analysis.CooldownSeconds = 15
	}
	if c.Analysis.RequestTimeoutSeconds == 0 {
		c.Analysis.RequestTimeoutSeconds = 30
	}
	if c.Analysis.SummaryCharLimit == 0 {
		c.Analysis.SummaryCharLimit = 30000
	}
}

// Cooldown returns the inter-batch cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Analysis.CooldownSeconds) * time.Second
}

// RequestTimeout returns the per-call generation timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Analysis.RequestTimeoutSeconds) * time.Second
}
