package storage

import (
	"context"
)

// Keys of the process-wide client state.
const (
	KeyGuestAnalysisCount = "guest_analysis_count"
	KeyToken              = "token"
)

// Store holds the small amount of client state that survives a restart: the
// guest analysis counter and the bearer token. Implementations are safe for
// concurrent use.
type Store interface {
	// Init loads previously persisted state. It must be called once before use.
	Init(ctx context.Context) error
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	// Update runs a read-modify-write on one key without interleaving other
	// writers. Returning remove=true deletes the key.
	Update(key string, fn func(old string, ok bool) (value string, remove bool, err error)) error
	// Clear drops every key.
	Clear() error
}

type Type string

const (
	File  Type = "file"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported state store type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
