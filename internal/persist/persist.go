// Package persist provides the durable snapshot capability the cart and
// wishlist stores write through to. A Store holds exactly one JSON snapshot
// under a fixed namespace; backends exist for memory (tests), files and
// Redis.
package persist

import (
	"encoding/json"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no snapshot has been saved under the
// store's namespace yet. Callers treat it as "start empty"; any other error
// means the snapshot exists but could not be read.
var ErrNotFound = errors.New("snapshot not found")

// Store loads and saves one JSON-serializable snapshot.
type Store interface {
	Load(v interface{}) error
	Save(v interface{}) error
}

// Factory builds a Store scoped to a namespace. The session manager uses it
// to give every session its own cart and wishlist snapshots.
type Factory func(namespace string) Store

// MemoryStore keeps the snapshot in process memory. Used in tests and as the
// default backend when no durable one is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// MemoryFactory ignores the namespace; every call returns an independent
// store.
func MemoryFactory() Factory {
	return func(string) Store {
		return NewMemoryStore()
	}
}

func (s *MemoryStore) Load(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ErrNotFound
	}
	return json.Unmarshal(s.data, v)
}

func (s *MemoryStore) Save(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
