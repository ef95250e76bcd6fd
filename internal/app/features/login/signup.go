// internal/app/features/login/signup.go
package login

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	userstore "github.com/dalemusser/learnrust/internal/app/store/users"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.uber.org/zap"
)

// MinPasswordLength is the shortest accepted password. It must match the
// min rule on signupInput.Password.
const MinPasswordLength = 6

type signupInput struct {
	Email    string `json:"email" validate:"required,emailaddr" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
	Name     string `json:"name" validate:"max=200" label:"Name"`
}

// HandleSignupPost handles POST /signup. Input is validated before the
// database is touched.
func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "signup: decode body", err, "Invalid JSON body.")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.Validation(w, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, userstore.NewUser{
		FullName:   in.Name,
		Email:      in.Email,
		Password:   in.Password,
		AuthMethod: models.AuthMethodPassword,
		Role:       models.RoleMember,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		uierrors.Validation(w, "An account with this email already exists.",
			map[string]string{"email": "An account with this email already exists."})
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "signup: create user", err, "Sign up failed. Please try again.")
		return
	}

	su := userstore.SessionUserOf(&u)
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "signup: save session", err, "Account created, but sign in failed.")
		return
	}

	h.Audit.Signup(ctx, r, su.ID, u.Email)
	h.Log.Info("user signed up", zap.String("user_id", su.ID))
	uierrors.WriteJSON(w, http.StatusCreated, Response{User: su})
}
