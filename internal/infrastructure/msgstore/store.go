// Package msgstore persists the IDs of report messages the bot has sent, so
// a later run can delete and replace them. A small JSON file stands in for
// the script-property store the jobs originally relied on.
package msgstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Store is a file-backed map from job key to sent message IDs. Safe for
// concurrent use within one process.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store persisting to path. The file is created lazily on the
// first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Get returns the message IDs stored under key.
func (s *Store) Get(key string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	return data[key], nil
}

// Set replaces the message IDs stored under key.
func (s *Store) Set(key string, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = ids
	return s.save(data)
}

// Delete removes a key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	delete(data, key)
	return s.save(data)
}

func (s *Store) load() (map[string][]int, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading message id store: %w", err)
	}

	data := map[string][]int{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding message id store: %w", err)
	}
	return data, nil
}

func (s *Store) save(data map[string][]int) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding message id store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing message id store: %w", err)
	}
	return nil
}
