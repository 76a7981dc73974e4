package telegram

import (
	"context"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var broadcastPrompts = []string{
	"Напиши короткий комплимент для начала дня - позитивное и воодушевляющее сообщение.",
	"Придумай мудрый совет о самолюбии и уверенности в себе.",
	"Напиши вдохновляющее сообщение о том, что каждый день - новая возможность.",
	"Скажи что-то приятное про умных и целеустремленных женщин.",
	"Напиши мотивацию для завершения дня с улыбкой.",
}

// BroadcastMotivation sends one generated motivation to every subscriber
// whose enabled schedule contains the current hour. One generation is
// shared across all recipients; a failed delivery skips only that
// recipient.
func (b *Bot) BroadcastMotivation(ctx context.Context, now time.Time) {
	eligible := b.schedules.EligibleAt(now.Hour())
	if len(eligible) == 0 {
		return
	}

	request := broadcastPrompts[b.randIntn(len(broadcastPrompts))]
	text, ok := b.gw.CompleteStateless(ctx, "", request)
	if !ok {
		log.Printf("❌ Не удалось сгенерировать мотивацию: %s", text)
		return
	}

	count := 0
	for _, userID := range eligible {
		chatID, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			log.Printf("❌ Некорректный идентификатор подписчика %q: %v", userID, err)
			continue
		}
		out := tgbotapi.NewMessage(chatID, "✨ "+text+"\n\n— Ваш джентльмен")
		if _, err := b.s.Send(out); err != nil {
			log.Printf("❌ Ошибка отправки %s: %v", userID, err)
			continue
		}
		count++
	}
	if count > 0 {
		log.Printf("📢 Отправлено мотиваций: %d пользователям", count)
	}
}
