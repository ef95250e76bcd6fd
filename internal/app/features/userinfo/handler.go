// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/learner"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's identity and schedule summary.
type Handler struct {
	Settings learner.SettingsGetter
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Now      func() time.Time
}

// NewHandler creates a new userinfo handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Settings: usersettingsstore.New(db),
		Log:      logger,
		ErrLog:   errLog,
		Now:      schedule.Today,
	}
}

// Response is the body of GET /api/me.
type Response struct {
	User               *auth.SessionUser `json:"user"`
	IsAdmin            bool              `json:"is_admin"`
	HasStartDate       bool              `json:"has_start_date"`
	StartDate          string            `json:"start_date,omitempty"`
	AllowFutureLessons bool              `json:"allow_future_lessons"`
	// CurrentDay is capped at the curriculum length; 0 without a start date.
	CurrentDay int `json:"current_day,omitempty"`
}

// ServeMe returns the session user and whether a schedule is configured.
// Pages that depend on the schedule use has_start_date to send the user to
// setup first.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	uid, idOK := authz.UserID(r)
	if !ok || !idOK {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	plan, err := learner.Load(ctx, h.Settings, uid, h.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "me: load settings", err, "Failed to load your settings.")
		return
	}

	resp := Response{
		User:               user,
		IsAdmin:            authz.IsAdmin(r),
		HasStartDate:       plan.Configured,
		StartDate:          plan.StartDateString(),
		AllowFutureLessons: plan.AllowFuture,
	}
	if plan.Configured {
		resp.CurrentDay = plan.Today()
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
