package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gentleman-bot/internal/compliment"
	"gentleman-bot/internal/config"
	"gentleman-bot/internal/dialog"
	"gentleman-bot/internal/gateway"
	"gentleman-bot/internal/llm"
	"gentleman-bot/internal/names"
	"gentleman-bot/internal/prompt"
	"gentleman-bot/internal/schedule"
	"gentleman-bot/internal/scheduler"
	"gentleman-bot/internal/store"
	"gentleman-bot/internal/telegram"
)

func main() {
	log.Println("🚀 Инициализация бота...")

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	factory := &llm.Factory{
		OpenaiAPIKey:     cfg.OpenAIAPIKey,
		OpenaiBaseURL:    cfg.OpenAIBaseURL,
		OpenaiModel:      cfg.OpenAIModel,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
	llmClient, err := factory.CreateClient(cfg.LLMProvider)
	if err != nil {
		// A dead client is not fatal: the gateway answers with a fixed
		// unavailability text until the process is restarted with valid creds.
		log.Printf("❌ Ошибка инициализации LLM клиента: %v", err)
		llmClient = nil
	} else {
		log.Printf("✅ LLM клиент инициализирован (%s)", cfg.LLMProvider)
	}

	nameSvc := names.NewService(newSnapshot[string](cfg.NamesFilePath))
	scheduleSvc := schedule.NewService(newSnapshot[schedule.Record](cfg.SchedulesFilePath))
	dialogMgr := dialog.NewManager(newSnapshot[[]dialog.Turn](cfg.DialogsFilePath))
	engine := compliment.NewEngine(newSnapshot[[]compliment.Record](cfg.ComplimentsFilePath))

	systemPrompt := prompt.LoadSystemPrompt(cfg.SystemPromptPath)
	builder := prompt.NewBuilder(systemPrompt, dialogMgr, nameSvc)
	gw := gateway.New(llmClient, builder, dialogMgr, cfg.Temperature, cfg.MaxTokens)

	bot, err := telegram.New(cfg.TelegramBotToken, gw, nameSvc, scheduleSvc, engine)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New()
	sched.SetBroadcastFunction(func(ctx context.Context) {
		bot.BroadcastMotivation(ctx, time.Now())
	})
	if err := sched.Start(); err != nil {
		log.Printf("❌ Ошибка запуска планировщика: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("🎩 Джентльмен готов к работе!")
	bot.Start(ctx)

	sched.Stop()
	log.Println("⛔ Бот остановлен")
}

// newSnapshot wires one persisted collection; on failure the bot runs with
// memory-only state for that collection.
func newSnapshot[V any](path string) store.Snapshot[V] {
	if path == "" {
		return nil
	}
	snap, err := store.NewFile[V](path)
	if err != nil {
		log.Printf("❌ Ошибка инициализации хранилища %s: %v", path, err)
		return nil
	}
	return snap
}
