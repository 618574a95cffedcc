package persistence

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]Documents
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]Documents),
	}
}

func (s *MemoryStore) Get(_ context.Context, collection string) (Documents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collections[collection].Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, collection string, docs Documents) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[collection] = docs.Clone()

	return nil
}

func (s *MemoryStore) Update(_ context.Context, collections []string, fn func(map[string]Documents) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := make(map[string]Documents, len(collections))
	for _, c := range collections {
		working[c] = s.collections[c].Clone()
	}

	if err := fn(working); err != nil {
		return err
	}

	for _, c := range collections {
		s.collections[c] = working[c].Clone()
	}

	return nil
}
