package server

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/newsroom/pkg/stringsutil"
)

type Config struct {
	Port        string   `yaml:"port"`
	UseHttp2    bool     `yaml:"use_http2"`
	CorsOrigins []string `yaml:"cors_origins"`
}

func DefaultConfig() Config {
	return Config{Port: "8080", CorsOrigins: []string{"*"}}
}

// LoadConfig applies PORT, USE_HTTP2 and CORS_ORIGINS on top of base.
func LoadConfig(base Config) (*Config, error) {
	cfg := base
	cfg.CorsOrigins = slices.Clone(base.CorsOrigins)

	if v := os.Getenv("USE_HTTP2"); v != "" {
		cfg.UseHttp2 = v == "true"
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	if corsOriginsEnv := os.Getenv("CORS_ORIGINS"); corsOriginsEnv != "" {
		cfg.CorsOrigins = stringsutil.SplitTrimmed(corsOriginsEnv, ",")
	}
	for i, origin := range cfg.CorsOrigins {
		cfg.CorsOrigins[i] = strings.TrimSpace(origin)
	}
	cfg.CorsOrigins = stringsutil.RemoveEmptyStrings(cfg.CorsOrigins)

	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	return &cfg, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
