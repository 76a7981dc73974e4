package dialog

import (
	"log"
	"strings"
	"sync"
	"time"

	"gentleman-bot/internal/store"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// maxTurns bounds each user's stored history; oldest turns go first.
	maxTurns = 15
)

// Turn is one role-tagged message in a conversation.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager keeps bounded per-user dialog histories, write-through persisted.
type Manager struct {
	mu       sync.RWMutex
	snap     store.Snapshot[[]Turn]
	sessions map[string][]Turn
	now      func() time.Time
}

func NewManager(snap store.Snapshot[[]Turn]) *Manager {
	m := &Manager{snap: snap, sessions: map[string][]Turn{}, now: time.Now}
	if snap != nil {
		loaded, err := snap.Load()
		if err != nil {
			log.Printf("❌ Ошибка загрузки диалогов: %v", err)
		} else {
			m.sessions = loaded
			if len(loaded) > 0 {
				log.Printf("✅ Загружено диалогов: %d", len(loaded))
			}
		}
	}
	return m
}

func (m *Manager) Append(userID, role, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := append(m.sessions[userID], Turn{Role: role, Text: text, CreatedAt: m.now()})
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	m.sessions[userID] = turns
	m.flushLocked()
}

// HasHistory reports whether the user has any stored turns.
func (m *Manager) HasHistory(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions[userID]) > 0
}

// RecentUserTurns returns up to the last n user-role turns in original
// order. Assistant turns are skipped: the model does not accept its own
// replies back as input turns.
func (m *Manager) RecentUserTurns(userID string, n int) []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := m.sessions[userID]
	var out []Turn
	for _, t := range turns {
		if t.Role == RoleUser {
			out = append(out, t)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// BriefSummary concatenates the raw text of the last k turns regardless of
// role, for use as a free-text digest inside system instructions.
func (m *Manager) BriefSummary(userID string, k int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := m.sessions[userID]
	if len(turns) > k {
		turns = turns[len(turns)-k:]
	}
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " | ")
}

func (m *Manager) flushLocked() {
	if m.snap == nil {
		return
	}
	if err := m.snap.Save(m.sessions); err != nil {
		log.Printf("❌ Ошибка сохранения диалогов: %v", err)
	}
}
