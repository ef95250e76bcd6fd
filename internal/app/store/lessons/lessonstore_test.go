package lessonstore_test

import (
	"errors"
	"testing"

	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	"github.com/dalemusser/learnrust/internal/app/system/indexes"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ListSummaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)
	store := lessonstore.New(db)

	fixtures.CreateLesson(ctx, 3, "Ownership", "ownership")
	fixtures.CreateLesson(ctx, 1, "Hello Cargo", "hello-cargo")
	if _, err := db.Collection("lessons").InsertOne(ctx, models.Lesson{DayIndex: 2, Title: "No Time"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := store.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}
	for i, want := range []int{1, 2, 3} {
		if got[i].DayIndex != want {
			t.Errorf("row %d: day %d, want %d", i, got[i].DayIndex, want)
		}
	}
	if got[1].EstimatedTimeMinutes != models.DefaultEstimatedMinutes {
		t.Errorf("expected default minutes, got %d", got[1].EstimatedTimeMinutes)
	}
	if got[0].ID == "" || got[0].TopicSlug != "hello-cargo" {
		t.Errorf("unexpected summary %+v", got[0])
	}
}

func TestStore_ListSummaries_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := lessonstore.New(db).ListSummaries(ctx)
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

func TestStore_Lookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)
	store := lessonstore.New(db)

	l := fixtures.CreateLesson(ctx, 5, "Borrowing", "borrowing")

	byDay, err := store.GetByDayIndex(ctx, 5)
	if err != nil || byDay.ID != l.ID {
		t.Fatalf("GetByDayIndex: %v", err)
	}
	bySlug, err := store.GetBySlug(ctx, " borrowing ")
	if err != nil || bySlug.ID != l.ID {
		t.Fatalf("GetBySlug: %v", err)
	}
	byID, err := store.GetByID(ctx, l.ID)
	if err != nil || byID.Title != "Borrowing" {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.CoreExample == nil || byID.CoreExample.Code == "" {
		t.Error("expected nested core example to round-trip")
	}

	if _, err := store.GetByDayIndex(ctx, 99); !errors.Is(err, lessonstore.ErrNotFound) {
		t.Errorf("GetByDayIndex missing: got %v", err)
	}
	if _, err := store.GetBySlug(ctx, "nope"); !errors.Is(err, lessonstore.ErrNotFound) {
		t.Errorf("GetBySlug missing: got %v", err)
	}
	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, lessonstore.ErrNotFound) {
		t.Errorf("GetByID missing: got %v", err)
	}
}

func TestStore_InsertIfAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := lessonstore.New(db)

	inserted, err := store.InsertIfAbsent(ctx, models.Lesson{DayIndex: 7, Title: "Structs", TopicSlug: "structs"})
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}
	inserted, err = store.InsertIfAbsent(ctx, models.Lesson{DayIndex: 7, Title: "Other"})
	if err != nil {
		t.Fatalf("second insert failed: %v", err)
	}
	if inserted {
		t.Error("expected existing day to be skipped")
	}

	l, err := store.GetByDayIndex(ctx, 7)
	if err != nil {
		t.Fatalf("GetByDayIndex failed: %v", err)
	}
	if l.Title != "Structs" {
		t.Errorf("existing lesson was overwritten: %q", l.Title)
	}

	if _, err := store.InsertIfAbsent(ctx, models.Lesson{DayIndex: 0}); err == nil {
		t.Error("expected error for day 0")
	}
}
