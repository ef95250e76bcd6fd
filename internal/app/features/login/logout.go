// internal/app/features/login/logout.go
package login

import (
	"net/http"

	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"go.uber.org/zap"
)

// HandleLogout handles POST /logout. The cookie is expired even when the
// old one no longer decodes.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var userID string
	if su, ok := auth.CurrentUser(r); ok {
		userID = su.ID
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}
	h.Audit.Logout(r.Context(), r, userID)
	w.WriteHeader(http.StatusNoContent)
}
