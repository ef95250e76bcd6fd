// internal/app/features/lessons/routes.go
package lessons

import "github.com/go-chi/chi/v5"

// Routes returns the lesson router. Mount it behind RequireSignedIn.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/day/{day}", h.ServeDay)
	r.Get("/slug/{slug}", h.ServeSlug)
	return r
}
