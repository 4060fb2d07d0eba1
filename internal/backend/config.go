package backend

import (
	"fmt"
	"os"
	"time"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000"
	defaultTimeout = 60 * time.Second
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfigFromEnv reads NEWSROOM_API_URL and NEWSROOM_HTTP_TIMEOUT on top of base.
func LoadConfigFromEnv(base Config) (*Config, error) {
	cfg := base

	if v := os.Getenv("NEWSROOM_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("NEWSROOM_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NEWSROOM_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &cfg, nil
}
