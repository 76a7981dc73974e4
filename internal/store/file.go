package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// File persists one collection as an indented JSON object in a single file.
type File[V any] struct {
	path string
	mu   sync.Mutex
}

func NewFile[V any](path string) (*File[V], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	// Touch file if not exists
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	return &File[V]{path: path}, nil
}

// Load returns the whole mapping. A missing, empty or malformed file yields
// an empty mapping, not an error.
func (s *File[V]) Load() (map[string]V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]V{}, nil
		}
		return map[string]V{}, fmt.Errorf("open: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	m := map[string]V{}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return map[string]V{}, nil
		}
		// malformed -> start fresh
		return map[string]V{}, nil
	}
	return m, nil
}

// Save rewrites the whole file.
func (s *File[V]) Save(m map[string]V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open write: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
