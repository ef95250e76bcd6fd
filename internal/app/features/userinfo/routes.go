// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// MountRoutes registers GET /me on the supplied router, which is expected to
// sit behind RequireSignedIn.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/me", h.ServeMe)
}
