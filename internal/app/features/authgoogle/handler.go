// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/learnrust/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/learnrust/internal/app/store/users"
	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/app/system/normalize"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateTTL           = 10 * time.Minute
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Handler handles Google OAuth authentication.
type Handler struct {
	Users      *userstore.Store
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Audit      *auditlog.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://learn.example.com/auth/google/callback"

	// Endpoint and UserInfoURL default to Google's.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        userstore.New(db),
		Log:          logger,
		SessionMgr:   sessionMgr,
		StateStore:   oauthstate.New(db),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		Endpoint:     google.Endpoint,
		UserInfoURL:  defaultUserInfoURL,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: h.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		redirectToLogin(w, r, "google_not_configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}
	returnURL := query.Get(r, "return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.StateStore.Save(ctx, state, returnURL, time.Now().Add(stateTTL)); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		redirectToLogin(w, r, "google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		redirectToLogin(w, r, "invalid_state")
		return
	}

	shortCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(shortCtx, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		redirectToLogin(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		redirectToLogin(w, r, "invalid_code")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		redirectToLogin(w, r, "token_exchange")
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		redirectToLogin(w, r, "user_info")
		return
	}

	u, err := h.resolveUser(shortCtx, info)
	switch {
	case errors.Is(err, errUserDisabled):
		redirectToLogin(w, r, "account_disabled")
		return
	case errors.Is(err, errNoEmail):
		redirectToLogin(w, r, "user_info")
		return
	case err != nil:
		h.Log.Error("failed to resolve Google user", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, userstore.SessionUserOf(u)); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		redirectToLogin(w, r, "session")
		return
	}

	h.Audit.LoginSuccess(r.Context(), r, u.ID.Hex(), models.AuthMethodGoogle)
	h.Log.Info("user logged in via Google OAuth", zap.String("user_id", u.ID.Hex()))
	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| User lookup                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

var (
	errUserDisabled = errors.New("user disabled")
	errNoEmail      = errors.New("google account has no verified email")
)

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauth2Config().Client(ctx, token)

	resp, err := client.Get(h.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

// resolveUser finds the account for a Google identity: first by Google id,
// then by email (linking the id), and otherwise provisions a new member.
func (h *Handler) resolveUser(ctx context.Context, info *googleUserInfo) (*models.User, error) {
	u, err := h.Users.GetByGoogleID(ctx, info.ID)
	if err == nil {
		return checkActive(u)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if info.Email == "" || !info.EmailVerified {
		return nil, errNoEmail
	}

	u, err = h.Users.GetByEmail(ctx, info.Email)
	switch {
	case err == nil:
		if u.GoogleID == nil {
			if err := h.Users.LinkGoogleID(ctx, u.ID, info.ID); err != nil {
				h.Log.Warn("failed to link google id", zap.String("user_id", u.ID.Hex()), zap.Error(err))
			}
		}
		return checkActive(u)
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	created, err := h.Users.Create(ctx, userstore.NewUser{
		FullName:   info.Name,
		Email:      info.Email,
		AuthMethod: models.AuthMethodGoogle,
		GoogleID:   info.ID,
		Role:       models.RoleMember,
	})
	if err != nil {
		return nil, fmt.Errorf("provision google user: %w", err)
	}
	h.Log.Info("provisioned account from Google sign-in", zap.String("user_id", created.ID.Hex()))
	return &created, nil
}

func checkActive(u *models.User) (*models.User, error) {
	if normalize.Status(u.Status) == models.StatusDisabled {
		return nil, errUserDisabled
	}
	return u, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func redirectToLogin(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, "/login?error="+errorCode, http.StatusSeeOther)
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
