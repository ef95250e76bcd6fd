// internal/app/features/settings/handler.go
package settings

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/learner"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the learner's schedule settings.
type Handler struct {
	Store  *usersettingsstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Now    func() time.Time
}

// NewHandler constructs a Handler bound to the given Mongo database and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  usersettingsstore.New(db),
		Log:    logger,
		ErrLog: errLog,
		Now:    schedule.Today,
	}
}

// Response is the body of both settings endpoints.
type Response struct {
	HasStartDate       bool   `json:"has_start_date"`
	StartDate          string `json:"start_date"`
	AllowFutureLessons bool   `json:"allow_future_lessons"`
	CurrentDay         int    `json:"current_day,omitempty"`
}

// Omitted fields are left unchanged.
type updateInput struct {
	StartDate          *string `json:"start_date" validate:"omitempty,startdate" label:"Start date"`
	AllowFutureLessons *bool   `json:"allow_future_lessons"`
}

// ServeSettings handles GET /api/settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.respond(ctx, w, r, uid)
}

// HandleUpdate handles PUT /api/settings.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	var in updateInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "settings: decode body", err, "Invalid JSON body.")
		return
	}
	if in.StartDate == nil && in.AllowFutureLessons == nil {
		uierrors.Validation(w, "Nothing to update.", nil)
		return
	}
	if in.StartDate != nil && *in.StartDate == "" {
		uierrors.Validation(w, "Start date is required.", map[string]string{"start_date": "Start date is required."})
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.Validation(w, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if in.StartDate != nil {
		if err := h.Store.SaveStartDate(ctx, uid, *in.StartDate); err != nil {
			h.ErrLog.LogServerError(w, r, "settings: save start date", err, "Failed to save your start date.")
			return
		}
		h.Log.Info("start date saved", zap.String("user_id", uid.Hex()), zap.String("start_date", *in.StartDate))
	}
	if in.AllowFutureLessons != nil {
		if err := h.Store.SetAllowFuture(ctx, uid, *in.AllowFutureLessons); err != nil {
			h.ErrLog.LogServerError(w, r, "settings: save allow future", err, "Failed to save your settings.")
			return
		}
	}

	h.respond(ctx, w, r, uid)
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, r *http.Request, uid primitive.ObjectID) {
	plan, err := learner.Load(ctx, h.Store, uid, h.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "settings: load", err, "Failed to load your settings.")
		return
	}
	resp := Response{
		HasStartDate:       plan.Configured,
		StartDate:          plan.StartDateString(),
		AllowFutureLessons: plan.AllowFuture,
	}
	if plan.Configured {
		resp.CurrentDay = plan.Today()
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
