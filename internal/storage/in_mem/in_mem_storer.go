package in_mem

import (
	"context"
	"sync"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[string]string
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[string]string),
	}
}

func (s *InMemStorer) Init(_ context.Context) error {
	return nil
}

func (s *InMemStorer) Get(key string) (string, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	v, ok := s.storage[key]
	return v, ok
}

func (s *InMemStorer) Set(key, value string) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	s.storage[key] = value
	return nil
}

func (s *InMemStorer) Delete(key string) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	delete(s.storage, key)
	return nil
}

func (s *InMemStorer) Update(key string, fn func(old string, ok bool) (string, bool, error)) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	old, ok := s.storage[key]
	value, remove, err := fn(old, ok)
	if err != nil {
		return err
	}
	if remove {
		delete(s.storage, key)
		return nil
	}
	s.storage[key] = value
	return nil
}

func (s *InMemStorer) Clear() error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	s.storage = make(map[string]string)
	return nil
}
