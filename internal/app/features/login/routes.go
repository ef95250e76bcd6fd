// internal/app/features/login/routes.go
package login

import (
	"github.com/dalemusser/learnrust/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts /login, /signup and /logout at the root. A non-nil
// signupLimiter caps signups per IP.
func Routes(h *Handler, signupLimiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLoginPost)
	if signupLimiter != nil {
		r.With(ratelimit.Middleware(signupLimiter)).Post("/signup", h.HandleSignupPost)
	} else {
		r.Post("/signup", h.HandleSignupPost)
	}
	r.Post("/logout", h.HandleLogout)
	return r
}
