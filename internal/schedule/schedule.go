package schedule

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gentleman-bot/internal/store"
)

// CancelWord unsubscribes when received as schedule input.
const CancelWord = "отмена"

var (
	ErrNotANumber = errors.New("hours must be comma-separated integers")
	ErrOutOfRange = errors.New("hours must be between 0 and 23")
)

// Record is one user's broadcast opt-in.
type Record struct {
	Hours   []int `json:"hours"`
	Enabled bool  `json:"enabled"`
}

// ParseHours parses "8,14,20" into sorted deduplicated hours. Any invalid
// token rejects the whole input.
func ParseHours(input string) ([]int, error) {
	seen := map[int]bool{}
	var hours []int
	for _, tok := range strings.Split(input, ",") {
		tok = strings.TrimSpace(tok)
		h, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotANumber, tok)
		}
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("%w: %d", ErrOutOfRange, h)
		}
		if !seen[h] {
			seen[h] = true
			hours = append(hours, h)
		}
	}
	sort.Ints(hours)
	return hours, nil
}

// Service keeps broadcast schedules, write-through persisted.
type Service struct {
	mu      sync.RWMutex
	snap    store.Snapshot[Record]
	records map[string]Record
}

func NewService(snap store.Snapshot[Record]) *Service {
	s := &Service{snap: snap, records: map[string]Record{}}
	if snap != nil {
		m, err := snap.Load()
		if err != nil {
			log.Printf("❌ Ошибка загрузки расписаний: %v", err)
		} else {
			s.records = m
			if len(m) > 0 {
				log.Printf("✅ Загружено расписаний: %d", len(m))
			}
		}
	}
	return s
}

func (s *Service) Set(userID string, hours []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = Record{Hours: hours, Enabled: true}
	s.flushLocked()
}

// Cancel removes the subscription entirely; reports whether one existed.
func (s *Service) Cancel(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[userID]
	delete(s.records, userID)
	s.flushLocked()
	return ok
}

func (s *Service) Get(userID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	return rec, ok
}

// EligibleAt returns ids of enabled subscribers whose hours contain hour.
func (s *Service) EligibleAt(hour int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for userID, rec := range s.records {
		if !rec.Enabled {
			continue
		}
		for _, h := range rec.Hours {
			if h == hour {
				out = append(out, userID)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

func (s *Service) flushLocked() {
	if s.snap == nil {
		return
	}
	if err := s.snap.Save(s.records); err != nil {
		log.Printf("❌ Ошибка сохранения расписаний: %v", err)
	}
}
