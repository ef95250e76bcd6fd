// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts learner report routes. The router must require a signed-in
// user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/types", h.ServeTypes)
	r.Post("/", h.HandleCreate)
	return r
}

// AdminRoutes mounts report triage for admins.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RoleAdmin))
	r.Get("/", h.ServeAdminList)
	r.Get("/export.csv", h.ServeAdminCSV)
	r.Patch("/{id}", h.HandleSetStatus)
	return r
}
