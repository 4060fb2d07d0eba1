package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

const DefaultDirName = ".newsroom"

// JsonFileStorer keeps the client state in a single JSON object on disk.
// Every mutation rewrites the file through a temp file and a rename.
type JsonFileStorer struct {
	filePath string

	mu    sync.RWMutex
	state map[string]string
}

func NewJsonFileStorer(filePath string) *JsonFileStorer {
	return &JsonFileStorer{
		filePath: filePath,
		state:    make(map[string]string),
	}
}

// DefaultPath returns ~/.newsroom/state.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, DefaultDirName, "state.json"), nil
}

func (s *JsonFileStorer) Init(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No persisted client state yet", "path", s.filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state file: %w", err)
	}

	loaded := make(map[string]string)
	if err := json.Unmarshal(data, &loaded); err != nil {
		slog.Warn("Ignoring unreadable state file", "path", s.filePath, "error", err)
		loaded = make(map[string]string)
	}

	s.mu.Lock()
	s.state = loaded
	s.mu.Unlock()

	slog.Debug("Loaded client state", "path", s.filePath, "keys", len(loaded))
	return nil
}

func (s *JsonFileStorer) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.state[key]
	return v, ok
}

func (s *JsonFileStorer) Set(key, value string) error {
	return s.Update(key, func(string, bool) (string, bool, error) {
		return value, false, nil
	})
}

func (s *JsonFileStorer) Delete(key string) error {
	return s.Update(key, func(string, bool) (string, bool, error) {
		return "", true, nil
	})
}

func (s *JsonFileStorer) Update(key string, fn func(old string, ok bool) (string, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.state[key]
	value, remove, err := fn(old, ok)
	if err != nil {
		return err
	}

	next := maps.Clone(s.state)
	if remove {
		delete(next, key)
	} else {
		next[key] = value
	}

	if err := s.write(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *JsonFileStorer) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string)
	if err := s.write(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// write must be called with mu held.
func (s *JsonFileStorer) write(state map[string]string) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tempPath := s.filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("write temporary state file: %w", err)
	}

	if err := os.Rename(tempPath, s.filePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
