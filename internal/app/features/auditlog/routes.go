// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under /api/admin/audit. Admins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RoleAdmin))
	r.Get("/", h.ServeList)
	return r
}
