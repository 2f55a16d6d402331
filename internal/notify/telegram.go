package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	telegramMaxMsgLen      = 4000
	telegramMaxSendRetries = 3
)

// Telegram delivers outbound reminders to a single chat. It never polls for
// updates; the tracker only pushes, it does not converse over Telegram.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	logger.Info("telegram bot connected", "username", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

// Send delivers text to the configured chat, splitting it into chunks under
// Telegram's message size limit.
func (t *Telegram) Send(text string) error {
	for len(text) > 0 {
		chunk := text
		if len(chunk) > telegramMaxMsgLen {
			cutAt := strings.LastIndex(chunk[:telegramMaxMsgLen], "\n")
			if cutAt < telegramMaxMsgLen/2 {
				cutAt = telegramMaxMsgLen
			}
			chunk = text[:cutAt]
			text = text[cutAt:]
		} else {
			text = ""
		}
		if err := t.sendChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}

// sendChunk sends one message with Markdown first, falling back to plain text
// on parse errors and backing off on rate limits.
func (t *Telegram) sendChunk(text string) error {
	var lastErr error
	for attempt := 0; attempt <= telegramMaxSendRetries; attempt++ {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if attempt == 0 {
			msg.ParseMode = "Markdown"
		}

		_, err := t.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		errStr := err.Error()

		if strings.Contains(errStr, "Too Many Requests") || strings.Contains(errStr, "429") {
			retryAfter := time.Duration(attempt+1) * 3 * time.Second
			t.logger.Warn("telegram rate limited, backing off", "retry_after", retryAfter)
			time.Sleep(retryAfter)
			continue
		}

		if attempt == 0 && strings.Contains(errStr, "can't parse entities") {
			t.logger.Warn("telegram markdown parse error, retrying as plain text", "err", err)
			continue
		}

		if attempt < telegramMaxSendRetries {
			backoff := time.Duration(attempt+1) * time.Second
			t.logger.Warn("telegram send error, retrying", "err", err, "backoff", backoff)
			time.Sleep(backoff)
			continue
		}
	}
	return fmt.Errorf("telegram send failed after %d attempts: %w", telegramMaxSendRetries+1, lastErr)
}
