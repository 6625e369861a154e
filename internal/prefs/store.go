// Package prefs owns all preference store I/O: defaulting on first run,
// load/save of the Preferences value object, and blacklist management.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the contract over the external key-value preference store.
// Values are raw JSON so that absence is distinguishable from a stored
// false, 0 or "": a key missing from the returned map was never set.
type Store interface {
	// Get returns the stored values for the requested keys. Keys that were
	// never set are absent from the result.
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)
	// Set writes the given values, leaving all other keys untouched.
	Set(ctx context.Context, values map[string]json.RawMessage) error
	// Delete removes the given keys if present.
	Delete(ctx context.Context, keys ...string) error
}

// FileStore persists preferences in a single JSON file. Writes go through a
// temp file and an atomic rename so a failed write never corrupts the store.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore at the given path. The file is created
// lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	result := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if val, ok := all[key]; ok {
			result[key] = val
		}
	}
	return result, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, values map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	for key, val := range values {
		all[key] = val
	}
	return s.writeAll(all)
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}

	changed := false
	for _, key := range keys {
		if _, ok := all[key]; ok {
			delete(all, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.writeAll(all)
}

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs file: %w", err)
	}

	all := map[string]json.RawMessage{}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse prefs file: %w", err)
	}
	return all, nil
}

func (s *FileStore) writeAll(all map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace prefs file: %w", err)
	}
	return nil
}
