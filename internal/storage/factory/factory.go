package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/DjordjeVuckovic/newsroom/internal/storage/file"
	"github.com/DjordjeVuckovic/newsroom/internal/storage/in_mem"
)

// NewStore creates and initialises the client state store for cfg.Type.
func NewStore(ctx context.Context, cfg StorageConfig) (storage.Store, error) {
	var store storage.Store

	switch cfg.Type {
	case storage.File:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file state store requires a path")
		}
		store = file.NewJsonFileStorer(cfg.Path)

	case storage.InMem:
		store = in_mem.NewInMemStorer()

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}

	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialise %s state store: %w", cfg.Type, err)
	}

	slog.Debug("State store ready", "type", cfg.Type, "path", cfg.Path)
	return store, nil
}
