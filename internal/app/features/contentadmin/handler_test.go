package contentadmin_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/app/features/contentadmin"
	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	domain "github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.uber.org/zap"
)

type countingRefresher struct{ calls int }

func (c *countingRefresher) Refresh(ctx context.Context) *catalog.Snapshot {
	c.calls++
	return &catalog.Snapshot{
		Curriculum: domain.Build(&domain.DefaultRoster, nil),
		LoadedAt:   time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func newTestHandler(t *testing.T) (*contentadmin.Handler, *countingRefresher, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	ref := &countingRefresher{}
	return contentadmin.NewHandler(db, ref, uierrors.NewErrorLogger(logger), logger), ref, testutil.NewFixtures(t, db)
}

func importLessons(t *testing.T, h *contentadmin.Handler, body any) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	h.HandleImportLessons(rec, testutil.NewJSONRequest(t, "POST", "/api/admin/lessons/import", body))
	return rec
}

func TestImportLessons_InsertsAndSkips(t *testing.T) {
	h, ref, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rows := []map[string]any{
		{"day_index": 1, "title": "Hello, Cargo!", "theory": "cargo new"},
		{"day_index": 2, "title": "Variables", "topic_slug": "vars", "estimated_time_minutes": 15},
	}
	rec := importLessons(t, h, rows)
	rec.AssertStatus(t, http.StatusOK)

	var out contentadmin.ImportResult
	rec.DecodeJSON(t, &out)
	if out.Inserted != 2 || out.Skipped != 0 {
		t.Fatalf("first import = %+v", out)
	}
	if ref.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", ref.calls)
	}

	l, err := h.Lessons.GetByDayIndex(ctx, 1)
	if err != nil {
		t.Fatalf("GetByDayIndex: %v", err)
	}
	if l.TopicSlug != "hello-cargo" {
		t.Errorf("derived slug = %q", l.TopicSlug)
	}

	// Existing days are left alone.
	rows[0]["title"] = "Changed"
	rec = importLessons(t, h, rows)
	rec.AssertStatus(t, http.StatusOK)
	out = contentadmin.ImportResult{}
	rec.DecodeJSON(t, &out)
	if out.Inserted != 0 || out.Skipped != 2 {
		t.Errorf("second import = %+v", out)
	}
	if ref.calls != 1 {
		t.Errorf("refresh ran with nothing inserted")
	}
	if l, _ := h.Lessons.GetByDayIndex(ctx, 1); l.Title != "Hello, Cargo!" {
		t.Errorf("title overwritten: %q", l.Title)
	}
}

func TestImportLessons_RejectsWholeBatch(t *testing.T) {
	h, ref, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := importLessons(t, h, []map[string]any{
		{"day_index": 5, "title": "Fine"},
		{"day_index": 0, "title": "No day"},
		{"day_index": 6},
		{"day_index": 5, "title": "Repeat"},
		{"day_index": -2, "title": "Negative"},
	})
	rec.AssertStatus(t, http.StatusBadRequest)

	var resp contentadmin.RejectedResponse
	rec.DecodeJSON(t, &resp)
	if len(resp.Errors) != 4 {
		t.Fatalf("errors = %+v", resp.Errors)
	}
	for i, line := range []int{2, 3, 4, 5} {
		if resp.Errors[i].Line != line {
			t.Errorf("error %d line = %d, want %d", i, resp.Errors[i].Line, line)
		}
	}
	if _, err := h.Lessons.GetByDayIndex(ctx, 5); err == nil {
		t.Error("valid row was written despite rejection")
	}
	if ref.calls != 0 {
		t.Error("refresh ran after rejection")
	}

	rec = importLessons(t, h, []map[string]any{})
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = importLessons(t, h, map[string]any{"day_index": 1})
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestImportResources_CSV(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lesson := fx.CreateLesson(ctx, 1, "Hello World", "hello-world")
	fx.CreateResource(ctx, lesson.ID, "The Book", "https://doc.rust-lang.org/book/")

	body := "lesson_day_index,title,url,image_url\n" +
		"1,The Book,https://doc.rust-lang.org/book/,\n" +
		"1,Rust by Example,https://doc.rust-lang.org/rust-by-example/,https://example.com/rbe.png\n"
	req := httptest.NewRequest("POST", "/api/admin/resources/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")

	rec := testutil.NewRecorder()
	h.HandleImportResources(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var out contentadmin.ImportResult
	rec.DecodeJSON(t, &out)
	if out.Inserted != 1 || out.Skipped != 1 {
		t.Fatalf("result = %+v", out)
	}
	got, err := h.Resources.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson: %v", err)
	}
	if len(got) != 2 || got[1].ImageURL != "https://example.com/rbe.png" {
		t.Errorf("resources = %+v", got)
	}
}

func TestImportResources_Multipart(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateLesson(ctx, 2, "Variables", "variables")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csv", "resources.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("2,Shadowing,https://doc.rust-lang.org/book/ch03-01-variables-and-mutability.html\n"))
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/admin/resources/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := testutil.NewRecorder()
	h.HandleImportResources(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"inserted":1`)
}

func TestImportResources_JSONRejections(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lesson := fx.CreateLesson(ctx, 1, "Hello World", "hello-world")

	rec := testutil.NewRecorder()
	h.HandleImportResources(rec, testutil.NewJSONRequest(t, "POST", "/api/admin/resources/import", []map[string]any{
		{"lesson_day_index": 1, "title": "Good", "url": "https://example.com"},
		{"lesson_day_index": 1, "title": "", "url": "https://example.com"},
		{"lesson_day_index": 1, "title": "Bad URL", "url": "example.com"},
	}))
	rec.AssertStatus(t, http.StatusBadRequest)

	var resp contentadmin.RejectedResponse
	rec.DecodeJSON(t, &resp)
	if len(resp.Errors) != 2 || resp.Errors[0].Line != 2 || resp.Errors[1].Line != 3 {
		t.Errorf("errors = %+v", resp.Errors)
	}

	// Rows for days without a stored lesson are rejected after lookup.
	rec = testutil.NewRecorder()
	h.HandleImportResources(rec, testutil.NewJSONRequest(t, "POST", "/api/admin/resources/import", []map[string]any{
		{"lesson_day_index": 1, "title": "Good", "url": "https://example.com"},
		{"lesson_day_index": 40, "title": "Orphan", "url": "https://example.com"},
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "No lesson for day 40.")

	if got, _ := h.Resources.ListByLesson(ctx, lesson.ID); len(got) != 0 {
		t.Errorf("rejected import wrote %d resources", len(got))
	}
}

func TestHandleRefresh(t *testing.T) {
	h, ref, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleRefresh(rec, testutil.NewRequest("POST", "/api/admin/curriculum/refresh"))
	rec.AssertStatus(t, http.StatusOK)

	var resp contentadmin.RefreshResponse
	rec.DecodeJSON(t, &resp)
	if ref.calls != 1 || resp.Days != domain.TotalDays || resp.Degraded {
		t.Errorf("resp = %+v, calls = %d", resp, ref.calls)
	}
}
