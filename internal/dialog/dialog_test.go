package dialog

import (
	"fmt"
	"testing"

	"gentleman-bot/internal/store"
)

func TestAppendEvictsOldestBeyondCap(t *testing.T) {
	m := NewManager(store.NewMemory[[]Turn]())
	user := "1"

	for i := 0; i < maxTurns+5; i++ {
		m.Append(user, RoleUser, fmt.Sprintf("msg-%d", i))
	}

	turns := m.sessions[user]
	if len(turns) != maxTurns {
		t.Fatalf("want %d turns, got %d", maxTurns, len(turns))
	}
	if turns[0].Text != "msg-5" {
		t.Fatalf("oldest retained should be msg-5, got %q", turns[0].Text)
	}
	if turns[len(turns)-1].Text != fmt.Sprintf("msg-%d", maxTurns+4) {
		t.Fatalf("newest lost: %q", turns[len(turns)-1].Text)
	}
}

func TestRecentUserTurnsSkipsAssistant(t *testing.T) {
	m := NewManager(store.NewMemory[[]Turn]())
	user := "1"

	m.Append(user, RoleUser, "u1")
	m.Append(user, RoleAssistant, "a1")
	m.Append(user, RoleUser, "u2")
	m.Append(user, RoleAssistant, "a2")
	m.Append(user, RoleUser, "u3")
	m.Append(user, RoleUser, "u4")

	got := m.RecentUserTurns(user, 3)
	if len(got) != 3 {
		t.Fatalf("want 3 turns, got %d", len(got))
	}
	for i, want := range []string{"u2", "u3", "u4"} {
		if got[i].Role != RoleUser || got[i].Text != want {
			t.Fatalf("turn %d: %+v, want user %q", i, got[i], want)
		}
	}
}

func TestBriefSummaryJoinsLastTurnsRegardlessOfRole(t *testing.T) {
	m := NewManager(store.NewMemory[[]Turn]())
	user := "1"

	m.Append(user, RoleUser, "как дела")
	m.Append(user, RoleAssistant, "прекрасно")
	m.Append(user, RoleUser, "спасибо")

	if got := m.BriefSummary(user, 2); got != "прекрасно | спасибо" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := m.BriefSummary("absent", 6); got != "" {
		t.Fatalf("empty history should produce empty summary, got %q", got)
	}
}

func TestHistorySurvivesReload(t *testing.T) {
	snap := store.NewMemory[[]Turn]()
	m := NewManager(snap)
	m.Append("1", RoleUser, "привет")
	m.Append("1", RoleAssistant, "добрый день")

	m2 := NewManager(snap)
	if !m2.HasHistory("1") {
		t.Fatalf("history lost on reload")
	}
	turns := m2.sessions["1"]
	if len(turns) != 2 || turns[0].Text != "привет" || turns[1].Text != "добрый день" {
		t.Fatalf("reloaded turns mismatch: %+v", turns)
	}
}
