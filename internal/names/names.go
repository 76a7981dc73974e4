package names

import (
	"errors"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"gentleman-bot/internal/store"
)

// ErrTooShort is returned for names shorter than two characters after trim.
var ErrTooShort = errors.New("name too short")

// Service keeps declared display names, write-through persisted.
type Service struct {
	mu    sync.RWMutex
	snap  store.Snapshot[string]
	names map[string]string
}

func NewService(snap store.Snapshot[string]) *Service {
	s := &Service{snap: snap, names: map[string]string{}}
	if snap != nil {
		m, err := snap.Load()
		if err != nil {
			log.Printf("❌ Ошибка загрузки имён: %v", err)
		} else {
			s.names = m
			if len(m) > 0 {
				log.Printf("✅ Загружено имён: %d", len(m))
			}
		}
	}
	return s
}

// Set validates and stores a declared name; the stored value is the trimmed
// input.
func (s *Service) Set(userID, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < 2 {
		return "", ErrTooShort
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[userID] = name
	s.flushLocked()
	return name, nil
}

func (s *Service) Get(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.names[userID]
	return name, ok
}

func (s *Service) flushLocked() {
	if s.snap == nil {
		return
	}
	if err := s.snap.Save(s.names); err != nil {
		log.Printf("❌ Ошибка сохранения имён: %v", err)
	}
}
