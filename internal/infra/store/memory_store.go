package store

import (
	"context"
	"encoding/json"
	"sync"

	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// メモリ実装。テストと使い捨て起動用。契約はGormStoreと同じ。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]json.RawMessage{}}
}

func (s *MemoryStore) Put(ctx context.Context, collection string, key string, value any) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = map[string]json.RawMessage{}
	}
	s.data[collection][key] = data
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection string, key string, out any) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	s.mu.RLock()
	raw, ok := s.data[collection][key]
	s.mu.RUnlock()
	if !ok {
		return repo.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !repo.KnownCollection(collection) {
		return nil, repo.ErrUnknownCollection
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]json.RawMessage, 0, len(s.data[collection]))
	for _, raw := range s.data[collection] {
		out = append(out, raw)
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection string, key string) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][key]; !ok {
		return repo.ErrNotFound
	}
	delete(s.data[collection], key)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, collection string) error {
	if !repo.KnownCollection(collection) {
		return repo.ErrUnknownCollection
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, collection)
	return nil
}
