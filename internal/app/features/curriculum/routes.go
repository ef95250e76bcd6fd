// internal/app/features/curriculum/routes.go
package curriculum

import "github.com/go-chi/chi/v5"

// Routes returns the curriculum router. Mount it behind RequireSignedIn.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/concepts", h.ServeConcepts)
	r.Get("/phases", h.ServePhases)
	r.Get("/today", h.ServeToday)
	r.Get("/days/{day}", h.ServeDay)
	r.Get("/slugs/{slug}", h.ServeSlug)
	return r
}
