package compliment

import (
	"log"
	"strings"
	"sync"
	"time"

	"gentleman-bot/internal/store"
)

const (
	// maxRecords bounds each user's compliment log; oldest records go first.
	maxRecords = 20
	// lookback is how many recent compliments feed the guidance scan.
	lookback = 6
	// maxForbidden caps the forbidden-theme lines in one guidance block.
	maxForbidden = 5
)

// Record is one previously generated compliment.
type Record struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// themes maps lower-case substrings to the theme they forbid. Several keys
// may share a label to cover inflected forms; lines are deduplicated by
// label. Substring matching over-forbids on purpose: better to lose a cliché
// than to repeat one.
var themes = []struct {
	key   string
	label string
}{
	{"картин", "картины и живопись"},
	{"художн", "искусство и художники"},
	{"леонардо", "великие живописцы"},
	{"да винчи", "великие живописцы"},
	{"замок", "замки и дворцы"},
	{"замк", "замки и дворцы"},
	{"дворец", "замки и дворцы"},
	{"дворц", "замки и дворцы"},
	{"ручей", "ручьи и водные образы"},
	{"ручь", "ручьи и водные образы"},
	{"цвет", "цветы и цветение"},
	{"солнц", "солнце и свет"},
	{"улыб", "улыбка"},
	{"весн", "весна"},
	{"весен", "весна"},
	{"антиквар", "антиквариат и старина"},
	{"библиотек", "библиотеки и книги"},
	{"волшеб", "волшебство"},
	{"аристократ", "аристократизм и знать"},
}

const fallbackLine = "- Запрещены привычные клише: сравнения с искусством, архитектурой и природой"

// Engine keeps bounded compliment logs and derives anti-repetition guidance
// from them. Write-through persisted.
type Engine struct {
	mu     sync.RWMutex
	snap   store.Snapshot[[]Record]
	byUser map[string][]Record
	now    func() time.Time
}

func NewEngine(snap store.Snapshot[[]Record]) *Engine {
	e := &Engine{snap: snap, byUser: map[string][]Record{}, now: time.Now}
	if snap != nil {
		loaded, err := snap.Load()
		if err != nil {
			log.Printf("❌ Ошибка загрузки комплиментов: %v", err)
		} else {
			e.byUser = loaded
			if len(loaded) > 0 {
				log.Printf("✅ Загружено историй комплиментов: %d", len(loaded))
			}
		}
	}
	return e
}

func (e *Engine) Record(userID, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	recs := append(e.byUser[userID], Record{Text: text, CreatedAt: e.now()})
	if len(recs) > maxRecords {
		recs = recs[len(recs)-maxRecords:]
	}
	e.byUser[userID] = recs
	e.flushLocked()
}

// BuildGuidance turns the user's recent compliments into an instruction
// block forbidding their recurring themes. Empty history yields an empty
// string: nothing to steer away from yet.
func (e *Engine) BuildGuidance(userID string) string {
	e.mu.RLock()
	recs := e.byUser[userID]
	if len(recs) > lookback {
		recs = recs[len(recs)-lookback:]
	}
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		parts = append(parts, r.Text)
	}
	e.mu.RUnlock()

	if len(parts) == 0 {
		return ""
	}
	recent := strings.ToLower(strings.Join(parts, "\n"))

	var lines []string
	seen := map[string]bool{}
	for _, t := range themes {
		if len(lines) >= maxForbidden {
			break
		}
		if seen[t.label] || !strings.Contains(recent, t.key) {
			continue
		}
		seen[t.label] = true
		lines = append(lines, "- Запрещена тема: «"+t.label+"»")
	}
	if len(lines) == 0 {
		lines = append(lines, fallbackLine)
	}

	var b strings.Builder
	b.WriteString("СТРОГИЕ ОГРАНИЧЕНИЯ ДЛЯ НОВОГО КОМПЛИМЕНТА:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nОбязательные правила:\n")
	b.WriteString("- Никаких сравнений с искусством и архитектурой.\n")
	b.WriteString("- Никаких метафор природы.\n")
	b.WriteString("- Не повторяй ни один образ из последних комплиментов.\n")
	b.WriteString("- Сделай акцент на характере, талантах и влиянии на окружающих.")
	return b.String()
}

func (e *Engine) flushLocked() {
	if e.snap == nil {
		return
	}
	if err := e.snap.Save(e.byUser); err != nil {
		log.Printf("❌ Ошибка сохранения комплиментов: %v", err)
	}
}
