package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		s, err := NewStore(ctx, StorageConfig{Type: storage.InMem})
		require.NoError(t, err)
		require.NoError(t, s.Set(storage.KeyToken, "t"))
		v, ok := s.Get(storage.KeyToken)
		assert.True(t, ok)
		assert.Equal(t, "t", v)
	})

	t.Run("file", func(t *testing.T) {
		s, err := NewStore(ctx, StorageConfig{Type: storage.File, Path: filepath.Join(t.TempDir(), "s.json")})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("file without path", func(t *testing.T) {
		_, err := NewStore(ctx, StorageConfig{Type: storage.File})
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewStore(ctx, StorageConfig{Type: "redis"})
		assert.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("NEWSROOM_STATE_STORE", "in_mem")
	t.Setenv("NEWSROOM_STATE_PATH", "")

	cfg, err := LoadEnv(StorageConfig{Type: storage.File, Path: "/tmp/x.json"})
	require.NoError(t, err)
	assert.Equal(t, storage.InMem, cfg.Type)
	assert.Equal(t, "/tmp/x.json", cfg.Path)

	t.Setenv("NEWSROOM_STATE_STORE", "bogus")
	_, err = LoadEnv(StorageConfig{})
	assert.Error(t, err)
}
