package gateway

import (
	"context"
	"log"
	"strings"

	"gentleman-bot/internal/dialog"
	"gentleman-bot/internal/llm"
	"gentleman-bot/internal/prompt"
)

const (
	unavailableReply = "⚠️ Бот временно недоступен. Попробуйте позже."
	emptyReply       = "Не удалось получить ответ"

	errTailLimit = 100
)

// Gateway wraps the LLM client so that every request yields a reply string:
// failures become user-facing fallback text, never an error to the caller.
type Gateway struct {
	client      llm.Client
	builder     *prompt.Builder
	dialog      *dialog.Manager
	temperature float32
	maxTokens   int
}

func New(client llm.Client, builder *prompt.Builder, d *dialog.Manager, temperature float32, maxTokens int) *Gateway {
	return &Gateway{
		client:      client,
		builder:     builder,
		dialog:      d,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Complete runs one completion. The second return reports whether the text
// is a model answer (true) or a fallback/error string (false).
func (g *Gateway) Complete(ctx context.Context, msgs []llm.Message) (string, bool) {
	if g.client == nil {
		return unavailableReply, false
	}
	opts := llm.Options{Temperature: g.temperature, MaxTokens: g.maxTokens}
	resp, err := g.client.Generate(ctx, msgs, opts)
	if err != nil {
		log.Printf("❌ Ошибка LLM: %T: %v", err, err)
		return "⚠️ Ошибка: " + truncate(err.Error(), errTailLimit), false
	}
	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		log.Printf("⚠️ Неожиданный формат ответа [model=%s]", resp.Model)
		return emptyReply, false
	}
	log.Printf("✅ Ответ получен [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)
	return answer, true
}

// CompleteStateless runs one generation without any stored context.
func (g *Gateway) CompleteStateless(ctx context.Context, userID, request string) (string, bool) {
	return g.Complete(ctx, g.builder.Build(userID, request, false))
}

// CompleteForUser runs a contextful completion and, on success, records
// both sides of the exchange into the dialog history.
func (g *Gateway) CompleteForUser(ctx context.Context, userID, message string) string {
	answer, ok := g.Complete(ctx, g.builder.Build(userID, message, true))
	if ok {
		g.dialog.Append(userID, dialog.RoleUser, message)
		g.dialog.Append(userID, dialog.RoleAssistant, answer)
	}
	return answer
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
