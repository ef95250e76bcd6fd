// internal/app/features/telegram/handler.go
package telegram

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	telegramstore "github.com/dalemusser/learnrust/internal/app/store/telegram"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Bot is the part of the Telegram client the link endpoints need.
type Bot interface {
	Configured() bool
	Username() string
}

type Handler struct {
	Store  *telegramstore.Store
	Bot    Bot
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, bot Bot, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  telegramstore.New(db),
		Bot:    bot,
		Log:    logger,
		ErrLog: errLog,
	}
}

// Status describes the user's link. ActivationCode is only set while the
// link is pending.
type Status struct {
	Configured     bool   `json:"configured"`
	BotUsername    string `json:"bot_username,omitempty"`
	Status         string `json:"status"`
	Connected      bool   `json:"connected"`
	ActivationCode int    `json:"activation_code,omitempty"`
}

// StatusNone is reported when the user never started linking.
const StatusNone = "none"

// ServeStatus handles GET /api/telegram.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, found, err := h.Store.Get(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "telegram: get link", err, "Failed to load Telegram status.")
		return
	}
	st := h.base()
	st.Status = StatusNone
	if found {
		h.fill(&st, link)
	}
	uierrors.WriteJSON(w, http.StatusOK, st)
}

// HandleIssueCode handles POST /api/telegram/code. Any existing link is
// reset to pending with a fresh code.
func (h *Handler) HandleIssueCode(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}
	if !h.configured() {
		st := h.base()
		st.Status = StatusNone
		uierrors.WriteJSON(w, http.StatusServiceUnavailable, st)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := h.Store.IssueCode(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "telegram: issue code", err, "Failed to create an activation code.")
		return
	}
	h.Log.Info("telegram activation code issued", zap.String("user_id", uid.Hex()))

	st := h.base()
	h.fill(&st, link)
	uierrors.WriteJSON(w, http.StatusOK, st)
}

// HandleDelete handles DELETE /api/telegram.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, uid); err != nil {
		h.ErrLog.LogServerError(w, r, "telegram: delete link", err, "Failed to disconnect Telegram.")
		return
	}
	h.Log.Info("telegram unlinked", zap.String("user_id", uid.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) configured() bool {
	return h.Bot != nil && h.Bot.Configured()
}

func (h *Handler) base() Status {
	st := Status{Configured: h.configured()}
	if st.Configured {
		st.BotUsername = h.Bot.Username()
	}
	return st
}

func (h *Handler) fill(st *Status, l models.TelegramLink) {
	st.Status = l.Status
	st.Connected = l.Status == models.TelegramConnected && l.TelegramChatID != nil
	if l.Status == models.TelegramPending {
		st.ActivationCode = l.ActivationCode
	}
}
