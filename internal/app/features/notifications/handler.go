// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	notificationstore "github.com/dalemusser/learnrust/internal/app/store/notifications"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/app/system/timezones"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves daily-reminder preferences.
type Handler struct {
	Store  *notificationstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	// Configured reports whether a channel has a working provider. Nil
	// treats every channel as unconfigured.
	Configured func(channel string) bool
}

func NewHandler(db *mongo.Database, configured func(string) bool, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:      notificationstore.New(db),
		Log:        logger,
		ErrLog:     errLog,
		Configured: configured,
	}
}

// ChannelView is one channel's preference. Channels the user never saved
// carry the defaults.
type ChannelView struct {
	Channel      string `json:"channel"`
	Enabled      bool   `json:"enabled"`
	DeliveryTime string `json:"delivery_time"`
	Timezone     string `json:"timezone"`
	Configured   bool   `json:"configured"`
}

type ListResponse struct {
	Channels  []ChannelView         `json:"channels"`
	Timezones []timezones.ZoneGroup `json:"timezones"`
}

type upsertInput struct {
	Enabled      *bool  `json:"enabled" validate:"required" label:"Enabled"`
	DeliveryTime string `json:"delivery_time" validate:"omitempty,hhmm" label:"Delivery time"`
	Timezone     string `json:"timezone" validate:"omitempty,timezone" label:"Time zone"`
}

// ServeList handles GET /api/notifications.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	prefs, err := h.Store.ListByUser(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notifications: list", err, "Failed to load notification settings.")
		return
	}
	saved := make(map[string]models.NotificationPreference, len(prefs))
	for _, p := range prefs {
		saved[p.Channel] = p
	}

	out := ListResponse{Timezones: timezones.Groups()}
	for _, ch := range models.Channels {
		v := ChannelView{
			Channel:      ch,
			DeliveryTime: models.DefaultDeliveryTime,
			Timezone:     models.DefaultTimezone,
			Configured:   h.configured(ch),
		}
		if p, ok := saved[ch]; ok {
			v.Enabled = p.Enabled
			v.DeliveryTime = p.DeliveryTime
			v.Timezone = p.Timezone
		}
		out.Channels = append(out.Channels, v)
	}
	uierrors.WriteJSON(w, http.StatusOK, out)
}

// HandleUpsert handles PUT /api/notifications/{channel}.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	channel := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "channel")))
	if !models.IsValidChannel(channel) {
		uierrors.NotFound(w, "Unknown notification channel.")
		return
	}

	var in upsertInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "notifications: decode body", err, "Invalid JSON body.")
		return
	}
	in.DeliveryTime = strings.TrimSpace(in.DeliveryTime)
	in.Timezone = strings.TrimSpace(in.Timezone)
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.Validation(w, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Upsert(ctx, uid, channel, *in.Enabled, in.DeliveryTime, in.Timezone)
	switch {
	case errors.Is(err, notificationstore.ErrBadTime), errors.Is(err, notificationstore.ErrBadTimezone):
		uierrors.Validation(w, err.Error(), nil)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "notifications: upsert", err, "Failed to save notification settings.")
		return
	}

	h.Log.Info("notification preference saved",
		zap.String("user_id", uid.Hex()),
		zap.String("channel", channel),
		zap.Bool("enabled", p.Enabled),
		zap.String("delivery_time", p.DeliveryTime),
		zap.String("timezone", p.Timezone))

	uierrors.WriteJSON(w, http.StatusOK, ChannelView{
		Channel:      p.Channel,
		Enabled:      p.Enabled,
		DeliveryTime: p.DeliveryTime,
		Timezone:     p.Timezone,
		Configured:   h.configured(p.Channel),
	})
}

func (h *Handler) configured(ch string) bool {
	return h.Configured != nil && h.Configured(ch)
}
