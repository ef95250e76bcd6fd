// Package telegram wraps the Telegram Bot API for reminder delivery and
// account activation.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no bot token is set.
var ErrNotConfigured = errors.New("telegram bot is not configured")

// pollTimeout is the long-poll timeout in seconds.
const pollTimeout = 60

// Bot is a connected Telegram bot.
type Bot struct {
	api *tgbotapi.BotAPI
	log *zap.Logger
}

// New authorizes the bot. A blank token returns ErrNotConfigured.
func New(token string, logger *zap.Logger) (*Bot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: authorize bot: %w", err)
	}
	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return &Bot{api: api, log: logger}, nil
}

// Configured reports whether b can send.
func (b *Bot) Configured() bool { return b != nil && b.api != nil }

// Username is the bot's @handle without the @, or "" when unconfigured.
func (b *Bot) Username() string {
	if !b.Configured() {
		return ""
	}
	return b.api.Self.UserName
}

// Send delivers text to a chat.
func (b *Bot) Send(ctx context.Context, chatID int64, text string) error {
	if !b.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("telegram: send to %d: %w", chatID, err)
	}
	return nil
}

// Updates starts long polling and returns the update channel.
func (b *Bot) Updates() tgbotapi.UpdatesChannel {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	return b.api.GetUpdatesChan(cfg)
}

// StopUpdates ends long polling and closes the update channel.
func (b *Bot) StopUpdates() {
	if b.Configured() {
		b.api.StopReceivingUpdates()
	}
}
