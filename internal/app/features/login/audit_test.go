package login_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/learnrust/internal/app/store/audit"
	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.uber.org/zap"
)

func TestLoginAudit(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(fx.DB())
	h.Audit = auditlog.New(store, zap.NewNop(), auditlog.Config{})

	u := fx.CreateMember(ctx, "Ferris Crab", "ferris@example.com")
	fx.CreateDisabledUser(ctx, "Gone", "gone@example.com")

	attempts := []struct {
		email, password string
		want            int
	}{
		{"ferris@example.com", "wrong-password", http.StatusUnauthorized},
		{"gone@example.com", testutil.TestPassword, http.StatusForbidden},
		{"ferris@example.com", testutil.TestPassword, http.StatusOK},
	}
	for _, a := range attempts {
		rec := testutil.NewRecorder()
		h.HandleLoginPost(rec, testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
			"email": a.email, "password": a.password,
		}))
		rec.AssertStatus(t, a.want)
	}

	events, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	got := map[string]int{}
	for _, e := range events {
		got[e.EventType]++
	}
	for _, typ := range []string{audit.EventLoginFailedBadCredential, audit.EventLoginFailedUserDisabled, audit.EventLoginSuccess} {
		if got[typ] != 1 {
			t.Errorf("%s logged %d times, want 1", typ, got[typ])
		}
	}

	success, _ := store.Query(ctx, audit.QueryFilter{EventType: audit.EventLoginSuccess})
	if len(success) != 1 || success[0].UserID == nil || *success[0].UserID != u.ID {
		t.Errorf("success event = %+v", success)
	}
}
