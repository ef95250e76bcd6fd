// internal/app/features/calendar/routes.go
package calendar

import "github.com/go-chi/chi/v5"

// MountRoutes adds the export under r, which must require a signed-in user.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/calendar.ics", h.ServeICS)
}
