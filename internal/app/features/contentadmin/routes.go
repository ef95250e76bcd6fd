// internal/app/features/contentadmin/routes.go
package contentadmin

import (
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MountAdminRoutes adds the import and refresh endpoints to the /api/admin
// router r.
func MountAdminRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	admin := r.With(sm.RequireRole(models.RoleAdmin))
	admin.Post("/lessons/import", h.HandleImportLessons)
	admin.Post("/resources/import", h.HandleImportResources)
	admin.Post("/curriculum/refresh", h.HandleRefresh)
}
