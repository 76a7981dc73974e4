package prompt

import (
	"strings"
	"testing"

	"gentleman-bot/internal/dialog"
	"gentleman-bot/internal/names"
	"gentleman-bot/internal/store"
)

func newTestBuilder(t *testing.T) (*Builder, *dialog.Manager, *names.Service) {
	t.Helper()
	d := dialog.NewManager(store.NewMemory[[]dialog.Turn]())
	n := names.NewService(store.NewMemory[string]())
	return NewBuilder("Ты — джентльмен.", d, n), d, n
}

func TestBuildStatelessIgnoresStoredHistory(t *testing.T) {
	b, d, _ := newTestBuilder(t)
	user := "1"
	d.Append(user, dialog.RoleUser, "старое сообщение")
	d.Append(user, dialog.RoleAssistant, "старый ответ")

	msgs := b.Build(user, "текущий запрос", false)
	if len(msgs) != 2 {
		t.Fatalf("want system+current only, got %d entries", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("unexpected roles: %+v", msgs)
	}
	if msgs[1].Content != "текущий запрос" {
		t.Fatalf("final entry must be the current message: %q", msgs[1].Content)
	}
	if strings.Contains(msgs[0].Content, "старое сообщение") {
		t.Fatalf("history digest leaked into stateless build")
	}
}

func TestBuildWithHistoryLimitsPriorUserTurns(t *testing.T) {
	b, d, _ := newTestBuilder(t)
	user := "1"
	for _, text := range []string{"u1", "u2", "u3", "u4"} {
		d.Append(user, dialog.RoleUser, text)
		d.Append(user, dialog.RoleAssistant, "ответ на "+text)
	}

	msgs := b.Build(user, "текущий", true)
	// system + 3 prior user turns + current
	if len(msgs) != 5 {
		t.Fatalf("want 5 entries, got %d: %+v", len(msgs), msgs)
	}
	for i, want := range []string{"u2", "u3", "u4"} {
		got := msgs[1+i]
		if got.Role != "user" || got.Content != want {
			t.Fatalf("prior turn %d: %+v, want %q", i, got, want)
		}
	}
	if last := msgs[len(msgs)-1]; last.Role != "user" || last.Content != "текущий" {
		t.Fatalf("current message must come last: %+v", last)
	}
	if !strings.Contains(msgs[0].Content, "Краткий контекст недавней беседы") {
		t.Fatalf("digest missing from system entry: %q", msgs[0].Content)
	}
}

func TestBuildMentionsKnownName(t *testing.T) {
	b, _, n := newTestBuilder(t)
	user := "1"
	if _, err := n.Set(user, "Мария"); err != nil {
		t.Fatalf("set name: %v", err)
	}

	msgs := b.Build(user, "привет", false)
	if !strings.Contains(msgs[0].Content, "Мария") {
		t.Fatalf("known name missing from system entry: %q", msgs[0].Content)
	}

	msgs = b.Build("2", "привет", false)
	if strings.Contains(msgs[0].Content, "Мария") {
		t.Fatalf("name leaked to another user")
	}
}

func TestBuildNoDigestForEmptyHistory(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	msgs := b.Build("1", "привет", true)
	if len(msgs) != 2 {
		t.Fatalf("empty history should add nothing: %+v", msgs)
	}
	if strings.Contains(msgs[0].Content, "Краткий контекст") {
		t.Fatalf("digest present for empty history: %q", msgs[0].Content)
	}
}
