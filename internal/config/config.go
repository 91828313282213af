package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	// PlaceholderKey is the webhook key shipped in a fresh config. Sending is
	// disabled while it is still in place.
	PlaceholderKey = "YOUR_WEBHOOK_KEY_HERE"

	// EnvConfigPath names the environment variable consulted when no --config is given.
	EnvConfigPath = "DAILY60S_CONFIG"

	// LocalConfigFile is read from the working directory when present.
	LocalConfigFile = "daily60s.yaml"
)

// Configuration validation errors.
var (
	ErrMissingAPIBaseURL     = errors.New("api.base_url is required")
	ErrInvalidAPIBaseURL     = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidAPITimeout     = errors.New("api.timeout must be positive")
	ErrMissingWebhookBaseURL = errors.New("webhook.base_url is required")
	ErrInvalidWebhookTimeout = errors.New("webhook.timeout must be positive")
	ErrInvalidLogLevel       = errors.New("log.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat      = errors.New("log.format must be 'json' or 'console'")
)

// Config is the complete runtime configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Webhook WebhookConfig `yaml:"webhook"`
	Twitter TwitterConfig `yaml:"twitter"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig points at the 60s feed API.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"DAILY60S_API_BASE_URL"   env-default:"https://60s.viki.moe/v2"`
	Timeout   time.Duration `yaml:"timeout"    env:"DAILY60S_API_TIMEOUT"    env-default:"30s"`
	UserAgent string        `yaml:"user_agent" env:"DAILY60S_API_USER_AGENT" env-default:"daily60s/1.0 (github.com/pfrederiksen/daily60s)"`
}

// WebhookConfig points at the WeCom group-bot webhook.
type WebhookConfig struct {
	BaseURL string        `yaml:"base_url" env:"DAILY60S_WEBHOOK_BASE_URL" env-default:"https://qyapi.weixin.qq.com/cgi-bin/webhook/send"`
	Key     string        `yaml:"key"      env:"DAILY60S_WEBHOOK_KEY"      env-default:"YOUR_WEBHOOK_KEY_HERE"`
	Timeout time.Duration `yaml:"timeout"  env:"DAILY60S_WEBHOOK_TIMEOUT"  env-default:"30s"`
}

// TwitterConfig toggles the optional Twitter summary. Credentials stay in
// the TWITTER_* environment variables and never touch the config file.
type TwitterConfig struct {
	Enabled bool `yaml:"enabled" env:"DAILY60S_TWITTER_ENABLED" env-default:"false"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level"  env:"DAILY60S_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"DAILY60S_LOG_FORMAT" env-default:"json"`
}

// HasWebhookKey reports whether a real webhook key is configured.
func (w WebhookConfig) HasWebhookKey() bool {
	key := strings.TrimSpace(w.Key)
	return key != "" && key != PlaceholderKey
}

// URL returns the webhook endpoint with the trimmed key attached.
func (w WebhookConfig) URL() string {
	return w.BaseURL + "?key=" + url.QueryEscape(strings.TrimSpace(w.Key))
}

// Default returns a config populated only from env-default tags.
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}
	return &cfg, nil
}

// Load resolves the config source and reads it. Source priority:
//  1. the explicit path argument;
//  2. the DAILY60S_CONFIG environment variable;
//  3. ./daily60s.yaml when it exists;
//  4. environment variables and defaults only.
//
// Environment variables override file values in every case.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if _, err := os.Stat(LocalConfigFile); err == nil {
			path = LocalConfigFile
		}
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the program cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return ErrInvalidAPITimeout
	}

	if c.Webhook.BaseURL == "" {
		return ErrMissingWebhookBaseURL
	}
	if c.Webhook.Timeout <= 0 {
		return ErrInvalidWebhookTimeout
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	return nil
}
