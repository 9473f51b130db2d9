// Package snapshot persists the entity store to a JSON file.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/skyops/skycoord/core/store"
)

// FileStore implements store.Persister with a single JSON file. Writes go
// through a temp file and rename so a crash never leaves a half-written
// snapshot behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// New creates a FileStore for the given path. Parent directories are created
// on demand.
func New(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// Save writes the snapshot to disk.
func (f *FileStore) Save(snap store.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load reads the snapshot from disk. A missing file yields an empty snapshot,
// not an error, so a fresh deployment starts clean.
func (f *FileStore) Load() (store.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.Snapshot{}, nil
		}
		return store.Snapshot{}, err
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
