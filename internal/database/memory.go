package database

import (
	"sync"

	"github.com/goccy/go-json"
)

// MemoryStore implements Store in process memory. It backs tests and
// throwaway sessions where durability is not wanted; values still go
// through the JSON codec so encoding bugs surface the same way they
// would against Badger.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get decodes the value at key into v.
func (s *MemoryStore) Get(key Key, v any) error {
	s.mu.RLock()
	data, ok := s.data[string(key.bytes())]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}

// Put encodes v and writes it at key.
func (s *MemoryStore) Put(key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[string(key.bytes())] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the value at key.
func (s *MemoryStore) Delete(key Key) error {
	s.mu.Lock()
	delete(s.data, string(key.bytes()))
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Len reports how many keys the store holds. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
