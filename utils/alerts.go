package utils

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Alerter pushes operator notifications (payment queue, distribution
// failures) to a Telegram chat. A nil Alerter is safe to call - alerts are
// simply dropped when no bot token is configured.
type Alerter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewAlerter(token string, chatID int64) *Alerter {
	if token == "" || chatID == 0 {
		log.Println("⚠️ Telegram alerts disabled (no token or chat id)")
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("⚠️ Telegram alerts disabled: %v", err)
		return nil
	}
	log.Printf("✅ Telegram alerts via @%s", bot.Self.UserName)
	return &Alerter{bot: bot, chatID: chatID}
}

func (a *Alerter) Send(format string, args ...interface{}) {
	if a == nil {
		return
	}
	msg := tgbotapi.NewMessage(a.chatID, fmt.Sprintf(format, args...))
	if _, err := a.bot.Send(msg); err != nil {
		log.Printf("⚠️ Failed to send telegram alert: %v", err)
	}
}
