package telegram

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gentleman-bot/internal/compliment"
	"gentleman-bot/internal/gateway"
	"gentleman-bot/internal/names"
	"gentleman-bot/internal/schedule"
)

// captureMode says how the next free-text message in a chat is interpreted.
type captureMode int

const (
	captureIdle captureMode = iota
	captureName
	captureSchedule
)

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	gw          *gateway.Gateway
	names       *names.Service
	schedules   *schedule.Service
	compliments *compliment.Engine

	mu      sync.Mutex
	capture map[int64]captureMode

	randIntn func(n int) int
}

func New(botToken string, gw *gateway.Gateway, nameSvc *names.Service,
	scheduleSvc *schedule.Service, engine *compliment.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		gw:          gw,
		names:       nameSvc,
		schedules:   scheduleSvc,
		compliments: engine,
		capture:     map[int64]captureMode{},
		randIntn:    rand.Intn,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			// Completion calls block on the network; one slow user must not
			// stall the update loop for everyone else.
			go b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Text == "" {
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) setCapture(chatID int64, m captureMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.capture[chatID] = m
}

// takeCapture returns the chat's capture mode and resets it to idle.
func (b *Bot) takeCapture(chatID int64) captureMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.capture[chatID]
	b.capture[chatID] = captureIdle
	return m
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.s.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("failed to send typing action: %v", err)
	}
}

func userKey(id int64) string { return strconv.FormatInt(id, 10) }
