// internal/app/features/progress/routes.go
package progress

import "github.com/go-chi/chi/v5"

// Routes returns the progress router. Mount it behind RequireSignedIn.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeProgress)
	r.Get("/export.xlsx", h.ServeExport)
	r.Put("/{lessonID}", h.HandleUpdate)
	return r
}
