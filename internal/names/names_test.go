package names

import (
	"errors"
	"testing"

	"gentleman-bot/internal/store"
)

func TestSetRejectsShortNames(t *testing.T) {
	s := NewService(store.NewMemory[string]())

	if _, err := s.Set("1", " A"); !errors.Is(err, ErrTooShort) {
		t.Fatalf("one visible char should be rejected: %v", err)
	}
	if _, err := s.Set("1", "   "); !errors.Is(err, ErrTooShort) {
		t.Fatalf("blank name should be rejected: %v", err)
	}
	if _, ok := s.Get("1"); ok {
		t.Fatalf("rejected input must not mutate state")
	}
}

func TestSetTrimsAndPersists(t *testing.T) {
	snap := store.NewMemory[string]()
	s := NewService(snap)

	name, err := s.Set("1", "  Мария ")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if name != "Мария" {
		t.Fatalf("name not trimmed: %q", name)
	}

	s2 := NewService(snap)
	got, ok := s2.Get("1")
	if !ok || got != "Мария" {
		t.Fatalf("name lost on reload: %q %v", got, ok)
	}
}
