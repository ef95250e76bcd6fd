// internal/app/features/settings/routes.go
package settings

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the settings routes. The router must require a
// signed-in user.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ServeSettings)
	r.Put("/", h.HandleUpdate)
}
