// internal/app/features/notes/routes.go
package notes

import "github.com/go-chi/chi/v5"

// Routes returns the notes router. Mount it behind RequireSignedIn.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{lessonID}", h.ServeNote)
	r.Put("/{lessonID}", h.HandleUpsert)
	r.Delete("/{lessonID}", h.HandleDelete)
	return r
}
