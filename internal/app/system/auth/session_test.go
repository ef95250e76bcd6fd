package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"go.uber.org/zap"
)

type stubFetcher struct {
	user *auth.SessionUser
	ok   bool
	err  error
}

func (f stubFetcher) FetchSessionUser(_ context.Context, _ string) (*auth.SessionUser, bool, error) {
	return f.user, f.ok, f.err
}

// signedInCookies signs u in through the manager and returns the cookies the
// response set.
func signedInCookies(t *testing.T, sm *auth.SessionManager, u *auth.SessionUser) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()
	if err := sm.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies
}

func serveWithCookies(sm *auth.SessionManager, cookies []*http.Cookie) (*auth.SessionUser, bool) {
	var (
		got   *auth.SessionUser
		found bool
	)
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, found
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	_, err := auth.NewSessionManager("", "x", "", 0, false, zap.NewNop())
	if !errors.Is(err, auth.ErrSessionKeyEmpty) {
		t.Errorf("expected ErrSessionKeyEmpty, got %v", err)
	}
}

func TestSignIn_LoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	want := &auth.SessionUser{ID: "507f1f77bcf86cd799439011", Name: "Ferris", LoginID: "ferris@example.com", Role: "member"}

	got, ok := serveWithCookies(sm, signedInCookies(t, sm, want))
	if !ok {
		t.Fatal("expected a user in context")
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	if _, ok := serveWithCookies(sm, nil); ok {
		t.Error("expected no user without a cookie")
	}
}

func TestLoadSessionUser_TamperedCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	bad := &http.Cookie{Name: "test-session", Value: "garbage"}
	if _, ok := serveWithCookies(sm, []*http.Cookie{bad}); ok {
		t.Error("expected no user with an undecodable cookie")
	}
}

func TestLoadSessionUser_FetcherRefreshesRole(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, &auth.SessionUser{ID: "u1", Role: "member"})

	sm.SetUserFetcher(stubFetcher{user: &auth.SessionUser{ID: "u1", Role: "admin"}, ok: true})
	got, ok := serveWithCookies(sm, cookies)
	if !ok || got.Role != "admin" {
		t.Errorf("expected refreshed admin role, got %+v", got)
	}
}

func TestLoadSessionUser_FetcherRejectsUser(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, &auth.SessionUser{ID: "u1", Role: "member"})

	sm.SetUserFetcher(stubFetcher{ok: false})
	if _, ok := serveWithCookies(sm, cookies); ok {
		t.Error("expected no user when the fetcher rejects the id")
	}
}

func TestLoadSessionUser_FetcherErrorKeepsCachedUser(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, &auth.SessionUser{ID: "u1", Role: "member"})

	sm.SetUserFetcher(stubFetcher{err: errors.New("db down")})
	got, ok := serveWithCookies(sm, cookies)
	if !ok || got.ID != "u1" {
		t.Errorf("expected cached user on fetch error, got %+v", got)
	}
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, &auth.SessionUser{ID: "u1", Role: "member"})

	req := httptest.NewRequest("POST", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Name() && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected the session cookie to be expired")
	}
}
