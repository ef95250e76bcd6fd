// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	userstore "github.com/dalemusser/learnrust/internal/app/store/users"
	"github.com/dalemusser/learnrust/internal/app/store/audit"
	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/ratelimit"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Limiter    *ratelimit.LoginLimiter
	Audit      *auditlog.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Limiter:    limiter,
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,emailaddr" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// Response is returned by login and signup.
type Response struct {
	User *auth.SessionUser `json:"user"`
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: decode body", err, "Invalid JSON body.")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.Validation(w, res.First(), res.Fields())
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Email); !ok {
			h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)))
			h.Audit.LoginFailed(r.Context(), r, audit.EventLoginFailedRateLimit, "", in.Email, reason)
			w.Header().Set("Retry-After", "60")
			uierrors.Write(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, in.Email, in.Password)
	switch {
	case errors.Is(err, userstore.ErrInvalidCredentials):
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedBadCredential, "", in.Email, "invalid credentials")
		uierrors.Write(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	case errors.Is(err, userstore.ErrDisabled):
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserDisabled, "", in.Email, "account disabled")
		uierrors.Write(w, http.StatusForbidden, "This account has been disabled.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "login: authenticate", err, "Sign in failed. Please try again.")
		return
	}

	su := userstore.SessionUserOf(u)
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err, "Sign in failed. Please try again.")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(in.Email)
	}

	h.Audit.LoginSuccess(ctx, r, su.ID, models.AuthMethodPassword)
	h.Log.Info("user signed in", zap.String("user_id", su.ID))
	uierrors.WriteJSON(w, http.StatusOK, Response{User: su})
}
