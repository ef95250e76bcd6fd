package reports_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	"github.com/dalemusser/learnrust/internal/app/features/reports"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reports.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return reports.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func create(t *testing.T, h *reports.Handler, user testutil.TestUser, body any) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/api/reports", body), user))
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := fx.CreateMember(ctx, "Ferris", "ferris@example.com")
	l := fx.CreateLesson(ctx, 7, "Review", "review")
	user := testutil.UserFrom(u)

	rec := create(t, h, user, map[string]string{
		"lesson_id": l.ID.Hex(), "report_type": "typo", "message": " <b>teh</b> borrow checker ",
	})
	rec.AssertStatus(t, http.StatusCreated)

	var rep models.LessonReport
	rec.DecodeJSON(t, &rep)
	if rep.Message != "teh borrow checker" || rep.Status != models.ReportOpen || rep.DayNumber != 7 || rep.LessonTitle != "Review" || rep.UserID != u.ID {
		t.Errorf("report = %+v", rep)
	}
}

func TestHandleCreate_Rejections(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	l := fx.CreateLesson(ctx, 1, "Hello", "hello")
	user := testutil.MemberUser()

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"unknown type", map[string]string{"lesson_id": l.ID.Hex(), "report_type": "rant", "message": "x"}, http.StatusBadRequest},
		{"missing message", map[string]string{"lesson_id": l.ID.Hex(), "report_type": "typo"}, http.StatusBadRequest},
		{"markup only", map[string]string{"lesson_id": l.ID.Hex(), "report_type": "typo", "message": "<i></i>"}, http.StatusBadRequest},
		{"too long", map[string]string{"lesson_id": l.ID.Hex(), "report_type": "typo", "message": strings.Repeat("a", 2001)}, http.StatusBadRequest},
		{"bad lesson id", map[string]string{"lesson_id": "nope", "report_type": "typo", "message": "x"}, http.StatusBadRequest},
		{"unknown lesson", map[string]string{"lesson_id": "64b7f0f0f0f0f0f0f0f0f0f0", "report_type": "typo", "message": "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create(t, h, user, tt.body).AssertStatus(t, tt.want)
		})
	}
}

func TestAdminListAndStatus(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	l := fx.CreateLesson(ctx, 1, "Hello", "hello")
	member := testutil.MemberUser()
	admin := testutil.AdminUser()

	var first models.LessonReport
	create(t, h, member, map[string]string{"lesson_id": l.ID.Hex(), "report_type": "typo", "message": "one"}).DecodeJSON(t, &first)
	create(t, h, member, map[string]string{"lesson_id": l.ID.Hex(), "report_type": "other", "message": "two"}).AssertStatus(t, http.StatusCreated)

	req := testutil.WithChiURLParam(testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/admin/reports/x", map[string]string{"status": "Resolved"}), admin), "id", first.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleSetStatus(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeAdminList(rec, testutil.NewAuthenticatedRequest("GET", "/api/admin/reports?status=open", admin))
	rec.AssertStatus(t, http.StatusOK)
	var resp reports.ListResponse
	rec.DecodeJSON(t, &resp)
	if len(resp.Reports) != 1 || resp.Reports[0].Message != "two" || resp.Range.Start != 1 || resp.Range.HasNext {
		t.Errorf("open reports = %+v", resp)
	}

	rec = testutil.NewRecorder()
	h.ServeAdminList(rec, testutil.NewAuthenticatedRequest("GET", "/api/admin/reports?status=bogus", admin))
	rec.AssertStatus(t, http.StatusBadRequest)

	bad := testutil.WithChiURLParam(testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/admin/reports/x", map[string]string{"status": "closed"}), admin), "id", first.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleSetStatus(rec, bad)
	rec.AssertStatus(t, http.StatusBadRequest)

	missing := testutil.WithChiURLParam(testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/admin/reports/x", map[string]string{"status": "open"}), admin), "id", "64b7f0f0f0f0f0f0f0f0f0f0")
	rec = testutil.NewRecorder()
	h.HandleSetStatus(rec, missing)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeAdminCSV(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	l := fx.CreateLesson(ctx, 3, "Let", "let")
	create(t, h, testutil.MemberUser(), map[string]string{"lesson_id": l.ID.Hex(), "report_type": "suggestion", "message": "more, please"}).AssertStatus(t, http.StatusCreated)

	rec := testutil.NewRecorder()
	h.ServeAdminCSV(rec, testutil.NewAuthenticatedRequest("GET", "/api/admin/reports/export.csv", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Created" || rows[1][1] != "3" || rows[1][5] != "more, please" {
		t.Errorf("rows = %v", rows)
	}
}

func TestServeTypes(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeTypes(rec, testutil.NewRequest("GET", "/api/reports/types"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"value":"incorrect_info"`)
}
