package userinfo_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	"github.com/dalemusser/learnrust/internal/app/features/userinfo"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*userinfo.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := userinfo.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	h.Now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }
	return h, testutil.NewFixtures(t, db)
}

func TestServeMe_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeMe(rec, testutil.NewRequest("GET", "/api/me"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeMe_NoStartDate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := fx.CreateMember(ctx, "Ferris", "ferris@example.com")

	rec := testutil.NewRecorder()
	h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/api/me", testutil.UserFrom(u)))
	rec.AssertStatus(t, http.StatusOK)

	var resp userinfo.Response
	rec.DecodeJSON(t, &resp)
	if resp.HasStartDate || resp.StartDate != "" || resp.CurrentDay != 0 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.User == nil || resp.User.ID != u.ID.Hex() || resp.User.LoginID != "ferris@example.com" {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestServeMe_WithStartDate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := fx.CreateMember(ctx, "Ferris", "ferris@example.com")
	fx.SetStartDate(ctx, u.ID, "2025-01-01", true)

	rec := testutil.NewRecorder()
	h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/api/me", testutil.UserFrom(u)))
	rec.AssertStatus(t, http.StatusOK)

	var resp userinfo.Response
	rec.DecodeJSON(t, &resp)
	if !resp.HasStartDate || resp.StartDate != "2025-01-01" || !resp.AllowFutureLessons || resp.CurrentDay != 15 {
		t.Errorf("resp = %+v", resp)
	}
}

type failingSettings struct{}

func (failingSettings) Get(ctx context.Context, id primitive.ObjectID) (models.UserSettings, bool, error) {
	return models.UserSettings{}, false, errors.New("boom")
}

func TestServeMe_StoreError(t *testing.T) {
	h := &userinfo.Handler{
		Settings: failingSettings{},
		Log:      zap.NewNop(),
		ErrLog:   uierrors.NewErrorLogger(zap.NewNop()),
		Now:      time.Now,
	}

	rec := testutil.NewRecorder()
	h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/api/me", testutil.MemberUser()))
	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestServeMe_IsAdmin(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, tt := range []struct {
		user testutil.TestUser
		want bool
	}{
		{testutil.AdminUser(), true},
		{testutil.MemberUser(), false},
	} {
		rec := testutil.NewRecorder()
		h.ServeMe(rec, testutil.NewAuthenticatedRequest("GET", "/api/me", tt.user))
		rec.AssertStatus(t, http.StatusOK)
		var resp userinfo.Response
		rec.DecodeJSON(t, &resp)
		if resp.IsAdmin != tt.want {
			t.Errorf("role %s: is_admin = %v", resp.User.Role, resp.IsAdmin)
		}
	}
}
