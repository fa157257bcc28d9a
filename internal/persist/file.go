package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists the snapshot as one JSON file per namespace under a
// base directory.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dir, namespace string) *FileStore {
	return &FileStore{
		path: filepath.Join(dir, sanitize(namespace)+".json"),
	}
}

func FileFactory(dir string) Factory {
	return func(namespace string) Store {
		return NewFileStore(dir, namespace)
	}
}

func (s *FileStore) Load(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}
	return json.Unmarshal(data, v)
}

func (s *FileStore) Save(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.path, err)
	}
	return nil
}

// sanitize keeps namespaces usable as file names. Session-scoped namespaces
// contain a colon separator.
func sanitize(namespace string) string {
	return strings.NewReplacer(":", "_", "/", "_").Replace(namespace)
}
