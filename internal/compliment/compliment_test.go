package compliment

import (
	"fmt"
	"strings"
	"testing"

	"gentleman-bot/internal/store"
)

func TestRecordEvictsOldestBeyondCap(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	user := "1"

	for i := 0; i < maxRecords+3; i++ {
		e.Record(user, fmt.Sprintf("комплимент %d", i))
	}

	recs := e.byUser[user]
	if len(recs) != maxRecords {
		t.Fatalf("want %d records, got %d", maxRecords, len(recs))
	}
	if recs[0].Text != "комплимент 3" {
		t.Fatalf("oldest retained should be 3, got %q", recs[0].Text)
	}
}

func TestBuildGuidanceEmptyHistory(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	if got := e.BuildGuidance("1"); got != "" {
		t.Fatalf("empty history must yield empty guidance, got %q", got)
	}
}

func TestBuildGuidanceForbidsDetectedTheme(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	user := "1"
	e.Record(user, "Вы прекрасны, как старинный замок на рассвете")

	g := e.BuildGuidance(user)
	if !strings.Contains(g, "замки и дворцы") {
		t.Fatalf("castle theme not forbidden: %q", g)
	}
	if strings.Count(g, "замки и дворцы") != 1 {
		t.Fatalf("theme line duplicated: %q", g)
	}
	if !strings.Contains(g, "Никаких сравнений с искусством") {
		t.Fatalf("fixed rules missing: %q", g)
	}
}

func TestBuildGuidanceDeduplicatesAcrossCompliments(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	user := "1"
	e.Record(user, "Ваша улыбка согревает")
	e.Record(user, "Улыбка у вас чудесная")

	g := e.BuildGuidance(user)
	if strings.Count(g, "Запрещена тема: «улыбка»") != 1 {
		t.Fatalf("smile theme should appear exactly once: %q", g)
	}
}

func TestBuildGuidanceCapsForbiddenLines(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	user := "1"
	e.Record(user, "картина художника в замке у ручья")
	e.Record(user, "цветы под солнцем и улыбка весной")
	e.Record(user, "антиквариат из библиотеки, волшебство аристократов")

	g := e.BuildGuidance(user)
	if n := strings.Count(g, "- Запрещена тема:"); n != maxForbidden {
		t.Fatalf("want %d forbidden lines, got %d: %q", maxForbidden, n, g)
	}
}

func TestBuildGuidanceFallbackWhenNoKeyword(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	user := "1"
	e.Record(user, "Вы удивительно мудры и добры")

	g := e.BuildGuidance(user)
	if !strings.Contains(g, fallbackLine) {
		t.Fatalf("generic fallback line missing: %q", g)
	}
	if strings.Contains(g, "Запрещена тема:") {
		t.Fatalf("no specific theme should be forbidden: %q", g)
	}
}

func TestBuildGuidanceLooksBackSixCompliments(t *testing.T) {
	e := NewEngine(store.NewMemory[[]Record]())
	user := "1"
	e.Record(user, "комплимент про замок")
	for i := 0; i < lookback; i++ {
		e.Record(user, "Вы мудры и добры")
	}

	g := e.BuildGuidance(user)
	if strings.Contains(g, "замки и дворцы") {
		t.Fatalf("compliment outside lookback window leaked into guidance: %q", g)
	}
}
