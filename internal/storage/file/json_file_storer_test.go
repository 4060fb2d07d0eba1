package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonFileStorer_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s := NewJsonFileStorer(path)
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("guest_analysis_count", "1"))

	reopened := NewJsonFileStorer(path)
	require.NoError(t, reopened.Init(context.Background()))

	v, ok := reopened.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	v, ok = reopened.Get("guest_analysis_count")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestJsonFileStorer_DeleteAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewJsonFileStorer(path)
	require.NoError(t, s.Init(context.Background()))

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Delete("a"))

	_, ok := s.Get("a")
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	_, ok = s.Get("b")
	assert.False(t, ok)

	reopened := NewJsonFileStorer(path)
	require.NoError(t, reopened.Init(context.Background()))
	_, ok = reopened.Get("b")
	assert.False(t, ok)
}

func TestJsonFileStorer_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewJsonFileStorer(path)
	require.NoError(t, s.Init(context.Background()))

	_, ok := s.Get("token")
	assert.False(t, ok)

	require.NoError(t, s.Set("token", "x"))
	v, _ := s.Get("token")
	assert.Equal(t, "x", v)
}

func TestJsonFileStorer_UpdateIsReadModifyWrite(t *testing.T) {
	s := NewJsonFileStorer(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, s.Init(context.Background()))

	for i := 0; i < 3; i++ {
		err := s.Update("n", func(old string, ok bool) (string, bool, error) {
			return old + "x", false, nil
		})
		require.NoError(t, err)
	}

	v, _ := s.Get("n")
	assert.Equal(t, "xxx", v)
}
