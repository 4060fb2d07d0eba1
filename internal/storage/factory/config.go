package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/DjordjeVuckovic/newsroom/internal/storage/file"
)

type StorageConfig struct {
	storage.Type
	Path string
}

// LoadEnv reads NEWSROOM_STATE_STORE and NEWSROOM_STATE_PATH on top of base.
// Empty values keep what base already holds.
func LoadEnv(base StorageConfig) (*StorageConfig, error) {
	cfg := base

	if v := os.Getenv("NEWSROOM_STATE_STORE"); v != "" {
		cfg.Type = storage.Type(v)
	}
	if v := os.Getenv("NEWSROOM_STATE_PATH"); v != "" {
		cfg.Path = v
	}

	if cfg.Type == "" {
		cfg.Type = storage.File
	}
	if cfg.Type != storage.File && cfg.Type != storage.InMem {
		slog.Error("Invalid NEWSROOM_STATE_STORE value", "value", cfg.Type)
		return nil, fmt.Errorf(
			"invalid NEWSROOM_STATE_STORE value: %s, expected one of %v",
			cfg.Type,
			[]storage.Type{storage.File, storage.InMem})
	}

	if cfg.Type == storage.File && cfg.Path == "" {
		path, err := file.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve default state path: %w", err)
		}
		cfg.Path = path
	}

	return &cfg, nil
}
