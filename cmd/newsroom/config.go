package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/quota"
	"github.com/DjordjeVuckovic/newsroom/internal/server"
	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/DjordjeVuckovic/newsroom/internal/storage/factory"
	"github.com/DjordjeVuckovic/newsroom/pkg/config/env"
	"gopkg.in/yaml.v3"
)

const defaultEnvPath = ".env"

// Settings is the optional YAML settings file. Environment variables win over
// every value in it.
type Settings struct {
	API struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	GuestLimit int `yaml:"guest_limit"`
	State      struct {
		Store string `yaml:"store"`
		Path  string `yaml:"path"`
	} `yaml:"state"`
	ShareBaseURL string        `yaml:"share_base_url"`
	Server       server.Config `yaml:"server"`
}

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type NewsroomConfig struct {
	Backend      backend.Config
	Storage      factory.StorageConfig
	Server       server.Config
	GuestLimit   int
	ShareBaseURL string
}

// Load reads .env, then the settings file at path (optional), then the
// environment.
func (ac *AppConfig) Load(path string) (*NewsroomConfig, error) {
	if err := env.LoadDotEnv(ac.ENV, defaultEnvPath); err != nil {
		slog.Debug("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}

	return buildConfig(settings)
}

func loadSettings(path string) (*Settings, error) {
	settings := &Settings{Server: server.DefaultConfig()}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	slog.Debug("Loaded settings file", "path", path)
	return settings, nil
}

func buildConfig(s *Settings) (*NewsroomConfig, error) {
	var timeout time.Duration
	if s.API.Timeout != "" {
		d, err := time.ParseDuration(s.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api.timeout %q: %w", s.API.Timeout, err)
		}
		timeout = d
	}

	backendCfg, err := backend.LoadConfigFromEnv(backend.Config{BaseURL: s.API.URL, Timeout: timeout})
	if err != nil {
		return nil, err
	}

	statePath, err := expandHome(s.State.Path)
	if err != nil {
		return nil, err
	}
	storageCfg, err := factory.LoadEnv(factory.StorageConfig{Type: storage.Type(s.State.Store), Path: statePath})
	if err != nil {
		return nil, err
	}
	if storageCfg.Path, err = expandHome(storageCfg.Path); err != nil {
		return nil, err
	}

	serverCfg, err := server.LoadConfig(s.Server)
	if err != nil {
		return nil, err
	}

	guestLimit := s.GuestLimit
	if v := os.Getenv("NEWSROOM_GUEST_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid NEWSROOM_GUEST_LIMIT %q: must be a positive number", v)
		}
		guestLimit = n
	}
	if guestLimit <= 0 {
		guestLimit = quota.DefaultGuestLimit
	}

	shareBase := s.ShareBaseURL
	if v := os.Getenv("NEWSROOM_SHARE_BASE_URL"); v != "" {
		shareBase = v
	}
	if shareBase == "" {
		shareBase = "http://localhost:" + serverCfg.Port
	}

	return &NewsroomConfig{
		Backend:      *backendCfg,
		Storage:      *storageCfg,
		Server:       *serverCfg,
		GuestLimit:   guestLimit,
		ShareBaseURL: strings.TrimRight(shareBase, "/"),
	}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Join(errors.New("cannot expand ~ in state path"), err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
