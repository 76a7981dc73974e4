package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gentleman-bot/internal/schedule"
)

const helpText = `🎩 Команды джентльмена:

📋 ОСНОВНЫЕ:
/start - начать разговор / перезагрузиться
/help - эта справка

💬 КОМПЛИМЕНТЫ И МОТИВАЦИЯ:
/compliment - получить персонализированный комплимент
/motivate - получить мотивирующее сообщение

👤 ЛИЧНЫЕ ДАННЫЕ:
/setname - указать/изменить ваше имя (для персональных комплиментов)

⏰ РАСПИСАНИЕ:
/schedule - настроить персональное расписание мотиваций
/myschedule - посмотреть ваше текущее расписание

💬 ОБЩЕНИЕ:
Просто напишите мне сообщение - я отвечу как истинный джентльмен!`

const scheduleText = `⏰ Настройка расписания мотиваций

Введите часы через запятую (0-23), когда вы хотите получать мотивирующие сообщения.

Примеры:
• 8,14,20 - мотивация в 8:00, 14:00 и 20:00
• 9,12,18,21 - мотивация в 9:00, 12:00, 18:00 и 21:00
• 6 - только в 6:00

Напишите часы или 'отмена' чтобы отключить:`

const motivatePrompt = "Напиши вдохновляющее сообщение о достижении целей и саморазвитии. Одно-два предложения, мудро и лаконично."

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := userKey(msg.From.ID)
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.sendMessage(chatID, helpText)
	case "compliment":
		b.handleCompliment(ctx, msg)
	case "motivate":
		log.Printf("💪 /motivate от %s", userID)
		answer, _ := b.gw.CompleteStateless(ctx, userID, motivatePrompt)
		b.sendMessage(chatID, answer)
	case "setname":
		log.Printf("📝 Запрос имени от %s", userID)
		b.sendMessage(chatID, "📝 Как вас зовут? (Напишите ваше имя)")
		b.setCapture(chatID, captureName)
	case "schedule":
		log.Printf("⏰ Запрос расписания от %s", userID)
		b.sendMessage(chatID, scheduleText)
		b.setCapture(chatID, captureSchedule)
	case "myschedule":
		if rec, ok := b.schedules.Get(userID); ok && len(rec.Hours) > 0 {
			b.sendMessage(chatID, "📅 Ваше расписание мотиваций:\n"+formatHours(rec.Hours))
		} else {
			b.sendMessage(chatID, "❌ У вас не установлено расписание.\n/schedule - установить расписание")
		}
	default:
		b.sendMessage(chatID, "Неизвестная команда. /help - справка")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	userID := userKey(msg.From.ID)
	log.Printf("🆔 /start от %s", userID)

	if name, ok := b.names.Get(userID); ok {
		greeting := fmt.Sprintf(`Добрый день, %s! 🎩

Рад видеть вас снова! Я — ваш виртуальный джентльмен и готов:
• Дарить вам персонализированные комплименты
• Мотивировать и вдохновлять
• Поддерживать позитивные беседы
• Давать мудрые советы

/compliment - получить комплимент
/motivate - получить мотивацию
/setname - изменить имя
/schedule - настроить расписание
/help - справка`, name)
		b.sendMessage(msg.Chat.ID, greeting)
		return
	}

	greeting := `Добрый день! Я — ваш виртуальный джентльмен. Рад познакомиться! 🎩

Чтобы я мог дарить вам персонализированные комплименты, напишите мне своё имя.

Например: Мария, Александра, Виктория и т.д.

Или используйте /setname чтобы указать имя.`
	b.sendMessage(msg.Chat.ID, greeting)
	b.setCapture(msg.Chat.ID, captureName)
}

func (b *Bot) handleCompliment(ctx context.Context, msg *tgbotapi.Message) {
	userID := userKey(msg.From.ID)
	log.Printf("🎁 /compliment от %s", userID)

	var request string
	if name, ok := b.names.Get(userID); ok {
		request = fmt.Sprintf("Придумай оригинальный, искренний и красивый комплимент для %s. Один комплимент, без лишних объяснений. Используй её имя в комплименте.", name)
	} else {
		request = "Придумай оригинальный, искренний и красивый комплимент для женщины. Один комплимент, без лишних объяснений."
	}
	if guidance := b.compliments.BuildGuidance(userID); guidance != "" {
		request += "\n\n" + guidance
	}

	answer, ok := b.gw.CompleteStateless(ctx, userID, request)
	if ok {
		b.compliments.Record(userID, answer)
	}
	b.sendMessage(msg.Chat.ID, answer)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := userKey(msg.From.ID)

	switch b.takeCapture(msg.Chat.ID) {
	case captureName:
		b.handleNameInput(msg)
	case captureSchedule:
		b.handleScheduleInput(msg)
	default:
		log.Printf("📨 Сообщение от %s: %q", userID, msg.Text)
		b.sendTyping(msg.Chat.ID)
		answer := b.gw.CompleteForUser(ctx, userID, msg.Text)
		b.sendMessage(msg.Chat.ID, answer)
	}
}

func (b *Bot) handleNameInput(msg *tgbotapi.Message) {
	userID := userKey(msg.From.ID)
	name, err := b.names.Set(userID, msg.Text)
	if err != nil {
		b.sendMessage(msg.Chat.ID, "❌ Пожалуйста, введите корректное имя (минимум 2 символа)")
		b.setCapture(msg.Chat.ID, captureName)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Спасибо, %s! Я буду дарить вам персонализированные комплименты! 🎩", name))
	log.Printf("✅ Имя сохранено для %s: %s", userID, name)
}

func (b *Bot) handleScheduleInput(msg *tgbotapi.Message) {
	userID := userKey(msg.From.ID)
	input := strings.TrimSpace(msg.Text)

	if strings.EqualFold(input, schedule.CancelWord) {
		b.schedules.Cancel(userID)
		b.sendMessage(msg.Chat.ID, "❌ Расписание отключено")
		log.Printf("❌ Расписание отключено для %s", userID)
		return
	}

	hours, err := schedule.ParseHours(input)
	if err != nil {
		if errors.Is(err, schedule.ErrOutOfRange) {
			b.sendMessage(msg.Chat.ID, "❌ Ошибка! Часы должны быть от 0 до 23")
		} else {
			b.sendMessage(msg.Chat.ID, "❌ Ошибка! Введите часы через запятую (например: 8,14,20)")
		}
		b.setCapture(msg.Chat.ID, captureSchedule)
		return
	}

	b.schedules.Set(userID, hours)
	b.sendMessage(msg.Chat.ID, "✅ Расписание установлено!\n⏰ "+formatHours(hours))
	log.Printf("✅ Расписание установлено для %s: %v", userID, hours)
}

func formatHours(hours []int) string {
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, fmt.Sprintf("%d:00", h))
	}
	return strings.Join(parts, ", ")
}
