package store

import "sync"

// Memory keeps a collection in process memory only. Used by tests in place
// of a File snapshot.
type Memory[V any] struct {
	mu sync.Mutex
	m  map[string]V
}

func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{m: map[string]V{}}
}

func (s *Memory[V]) Load() (map[string]V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]V, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out, nil
}

func (s *Memory[V]) Save(m map[string]V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	s.m = out
	return nil
}
