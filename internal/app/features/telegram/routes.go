// internal/app/features/telegram/routes.go
package telegram

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeStatus)
	r.Post("/code", h.HandleIssueCode)
	r.Delete("/", h.HandleDelete)
	return r
}
