package prompt

import (
	"log"
	"os"
	"strings"

	"gentleman-bot/internal/dialog"
	"gentleman-bot/internal/llm"
	"gentleman-bot/internal/names"
)

// defaultSystemPrompt fixes the assistant's register: polite, varied,
// short replies.
const defaultSystemPrompt = `Ты — галантный и воспитанный джентльмен, специалист по мотивации и комплиментам для женщин.
Твоя цель:
1. Дарить искренние и оригинальные комплименты
2. Мотивировать и вдохновлять
3. Быть вежливым, деликатным и уважительным
4. Поддерживать позитивное настроение
5. Давать мудрые советы о саморазвитии и достижении целей

Правила:
- Всегда обращайся на 'вы' и с уважением
- Комплименты должны быть разнообразными (ум, характер, способности, внешность)
- Не льсти чрезмерно, будь искренен
- Если пользователь грустит, проявляй эмпатию
- Поддерживай разговор, задавай вопросы
- Никогда не пиши грубо или неуважительно
- Ответы 1-2 абзаца, не длинный текст`

const (
	historyTurns = 3
	summaryTurns = 6
)

// LoadSystemPrompt returns the file contents when path is set and readable,
// else the built-in prompt.
func LoadSystemPrompt(path string) string {
	if path == "" {
		return defaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return defaultSystemPrompt
	}
	return string(data)
}

// Builder assembles the ordered message list for one completion request.
type Builder struct {
	system string
	dialog *dialog.Manager
	names  *names.Service
}

func NewBuilder(system string, d *dialog.Manager, n *names.Service) *Builder {
	return &Builder{system: system, dialog: d, names: n}
}

// Build returns the system entry, optionally recent context, and the
// current message last. With withHistory false only the fixed instructions
// and the current request are sent (stateless command generations).
func (b *Builder) Build(userID, current string, withHistory bool) []llm.Message {
	var sys strings.Builder
	sys.WriteString(b.system)

	if b.names != nil {
		if name, ok := b.names.Get(userID); ok {
			sys.WriteString("\n\nСобеседницу зовут ")
			sys.WriteString(name)
			sys.WriteString(". Обращайся к ней по имени.")
		}
	}

	var prior []dialog.Turn
	if withHistory && b.dialog != nil && b.dialog.HasHistory(userID) {
		if digest := b.dialog.BriefSummary(userID, summaryTurns); digest != "" {
			sys.WriteString("\n\nКраткий контекст недавней беседы: ")
			sys.WriteString(digest)
		}
		prior = b.dialog.RecentUserTurns(userID, historyTurns)
	}

	msgs := []llm.Message{{Role: "system", Content: sys.String()}}
	for _, t := range prior {
		msgs = append(msgs, llm.Message{Role: "user", Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: current})
	return msgs
}
