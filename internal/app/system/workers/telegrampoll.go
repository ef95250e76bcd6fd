// internal/app/system/workers/telegrampoll.go
package workers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	telegramstore "github.com/dalemusser/learnrust/internal/app/store/telegram"
	"github.com/dalemusser/learnrust/internal/domain/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Replies sent by the activation worker.
const (
	ReplyConnected   = "✅ Connected! You will receive your daily Rust lesson reminders here."
	ReplyInvalidCode = "❌ Invalid or expired code. Generate a new one in your notification settings."
	ReplyHelp        = "Send the 6-digit activation code from your notification settings to connect this chat."
)

// UpdateSource is a long-polling bot.
type UpdateSource interface {
	Updates() tgbotapi.UpdatesChannel
	StopUpdates()
	Send(ctx context.Context, chatID int64, text string) error
}

// Activator connects a pending Telegram link to a chat.
type Activator interface {
	Activate(ctx context.Context, code int, chatID int64) (models.TelegramLink, error)
}

// TelegramPoll is a background worker that reads bot messages and activates
// Telegram links from the codes users send.
type TelegramPoll struct {
	bot     UpdateSource
	links   Activator
	log     *zap.Logger
	timeout time.Duration
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewTelegramPoll creates a new Telegram activation worker.
func NewTelegramPoll(bot UpdateSource, links Activator, logger *zap.Logger) *TelegramPoll {
	return &TelegramPoll{
		bot:     bot,
		links:   links,
		log:     logger,
		timeout: 10 * time.Second,
		stopCh:  make(chan struct{}),
	}
}

// Start begins polling.
func (w *TelegramPoll) Start() {
	updates := w.bot.Updates()
	w.wg.Add(1)
	go w.run(updates)
	w.log.Info("telegram poll worker started")
}

// Stop ends polling and waits for the worker to finish.
func (w *TelegramPoll) Stop() {
	close(w.stopCh)
	w.bot.StopUpdates()
	w.wg.Wait()
	w.log.Info("telegram poll worker stopped")
}

func (w *TelegramPoll) run(updates tgbotapi.UpdatesChannel) {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			w.handle(u)
		}
	}
}

func (w *TelegramPoll) handle(u tgbotapi.Update) {
	if u.Message == nil || u.Message.Chat == nil {
		return
	}
	chatID := u.Message.Chat.ID

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	code, ok := ParseActivationCode(u.Message.Text)
	if !ok {
		w.reply(ctx, chatID, ReplyHelp)
		return
	}

	link, err := w.links.Activate(ctx, code, chatID)
	switch {
	case errors.Is(err, telegramstore.ErrInvalidCode):
		w.reply(ctx, chatID, ReplyInvalidCode)
	case err != nil:
		w.log.Error("telegram activation failed", zap.Int64("chat_id", chatID), zap.Error(err))
	default:
		w.log.Info("telegram linked",
			zap.String("user_id", link.UserID.Hex()),
			zap.Int64("chat_id", chatID))
		w.reply(ctx, chatID, ReplyConnected)
	}
}

func (w *TelegramPoll) reply(ctx context.Context, chatID int64, text string) {
	if err := w.bot.Send(ctx, chatID, text); err != nil {
		w.log.Warn("telegram reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// ParseActivationCode extracts a 6-digit code from "/start 123456",
// "/start@bot 123456" or a bare "123456".
func ParseActivationCode(text string) (int, bool) {
	fields := strings.Fields(text)
	switch {
	case len(fields) == 1:
	case len(fields) == 2 && (fields[0] == "/start" || strings.HasPrefix(fields[0], "/start@")):
		fields = fields[1:]
	default:
		return 0, false
	}
	s := fields[0]
	if len(s) != 6 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < telegramstore.MinCode || n > telegramstore.MaxCode {
		return 0, false
	}
	return n, true
}
