package indexes_test

import (
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/indexes"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"users":              {"uniq_users_email", "uniq_users_google_id", "idx_users_role_status"},
		"lessons":            {"uniq_lessons_day_index", "idx_lessons_topic_slug"},
		"lesson_resources":   {"uniq_resources_lesson_title"},
		"user_progress":      {"uniq_progress_user_lesson", "idx_progress_user_completed"},
		"user_settings":      {"uniq_user_settings_user"},
		"user_notifications": {"uniq_notifications_user_channel", "idx_notifications_channel_enabled"},
		"lesson_notes":       {"uniq_notes_user_lesson", "idx_notes_user_updated"},
		"user_telegram":      {"uniq_telegram_user", "idx_telegram_code_status"},
		"lesson_reports":     {"idx_reports_status_created", "idx_reports_lesson"},
		"oauth_states":       {"uniq_oauth_state", "idx_oauth_expires_ttl"},
		"audit_events":       {"idx_audit_ts_desc", "idx_audit_user_ts", "idx_audit_cat_type_ts"},
	}

	for coll, names := range expected {
		t.Run(coll, func(t *testing.T) {
			got := indexNames(t, db.Collection(coll))
			for _, name := range names {
				if !got[name] {
					t.Errorf("expected index %q to exist on %s", name, coll)
				}
			}
		})
	}
}

func TestEnsureAll_RenamesMisnamedIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("lessons").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "topic_slug", Value: 1}},
		Options: options.Index().SetName("old_slug_name"),
	})
	if err != nil {
		t.Fatalf("seed index failed: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	got := indexNames(t, db.Collection("lessons"))
	if got["old_slug_name"] || !got["idx_lessons_topic_slug"] {
		t.Errorf("expected old_slug_name to be replaced, got %v", got)
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	user := primitive.NewObjectID()
	lesson := primitive.NewObjectID()
	coll := db.Collection("user_progress")
	if _, err := coll.InsertOne(ctx, bson.M{"user_id": user, "lesson_id": lesson, "completed": true}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := coll.InsertOne(ctx, bson.M{"user_id": user, "lesson_id": lesson, "completed": false}); err == nil {
		t.Error("expected duplicate key error on user_progress (user_id, lesson_id)")
	}
}

func TestEnsureAll_GoogleIDUniqueOnlyWhenSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	users := db.Collection("users")
	now := time.Now()
	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := users.InsertOne(ctx, bson.M{"email": email, "created_at": now}); err != nil {
			t.Fatalf("insert %s without google_id failed: %v", email, err)
		}
	}
	if _, err := users.InsertOne(ctx, bson.M{"email": "c@example.com", "google_id": "g1"}); err != nil {
		t.Fatalf("insert with google_id failed: %v", err)
	}
	if _, err := users.InsertOne(ctx, bson.M{"email": "d@example.com", "google_id": "g1"}); err == nil {
		t.Error("expected duplicate key error on google_id")
	}
}

func indexNames(t *testing.T, coll *mongo.Collection) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}
