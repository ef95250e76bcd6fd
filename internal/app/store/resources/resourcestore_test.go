package resourcestore_test

import (
	"testing"

	resourcestore "github.com/dalemusser/learnrust/internal/app/store/resources"
	"github.com/dalemusser/learnrust/internal/app/system/indexes"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_InsertIfAbsentAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := resourcestore.New(db)
	lessonID := primitive.NewObjectID()

	for _, title := range []string{"The Book, ch. 4", "Rust by Example"} {
		ok, err := store.InsertIfAbsent(ctx, models.LessonResource{
			LessonID: lessonID,
			Title:    title,
			URL:      "https://doc.rust-lang.org/book/",
		})
		if err != nil || !ok {
			t.Fatalf("insert %q: ok=%v err=%v", title, ok, err)
		}
	}

	ok, err := store.InsertIfAbsent(ctx, models.LessonResource{
		LessonID: lessonID,
		Title:    " Rust by Example ",
		URL:      "https://example.com/",
	})
	if err != nil {
		t.Fatalf("duplicate insert failed: %v", err)
	}
	if ok {
		t.Error("expected duplicate title to be skipped")
	}

	got, err := store.ListByLesson(ctx, lessonID)
	if err != nil {
		t.Fatalf("ListByLesson failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(got))
	}
	if got[0].Title != "The Book, ch. 4" {
		t.Errorf("expected insertion order, got %q first", got[0].Title)
	}

	none, err := store.ListByLesson(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ListByLesson (empty) failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}
}

func TestStore_InsertIfAbsent_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := resourcestore.New(db)

	tests := []struct {
		name string
		r    models.LessonResource
	}{
		{"missing title", models.LessonResource{URL: "https://example.com"}},
		{"bad url", models.LessonResource{Title: "x", URL: "ftp://example.com"}},
		{"bad image url", models.LessonResource{Title: "x", URL: "https://example.com", ImageURL: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.InsertIfAbsent(ctx, tt.r); err == nil {
				t.Error("expected error")
			}
		})
	}
}
