package oauthstate_test

import (
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/app/store/oauthstate"
	"github.com/dalemusser/learnrust/internal/app/system/indexes"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_SaveAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-1", "/lessons/today", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	returnURL, valid, err := store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Fatal("expected state to be valid")
	}
	if returnURL != "/lessons/today" {
		t.Errorf("returnURL: got %q", returnURL)
	}
}

func TestStore_Validate_InvalidState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, valid, err := store.Validate(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("expected unknown state to be invalid")
	}
}

func TestStore_Validate_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "once", "", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, valid, _ := store.Validate(ctx, "once"); !valid {
		t.Fatal("first Validate should succeed")
	}
	if _, valid, _ := store.Validate(ctx, "once"); valid {
		t.Error("second Validate should fail")
	}
}

func TestStore_Validate_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "old", "", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, valid, _ := store.Validate(ctx, "old"); valid {
		t.Error("expected expired state to be invalid")
	}
}

func TestStore_CleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, s := range []string{"e1", "e2"} {
		if err := store.Save(ctx, s, "", time.Now().Add(-time.Hour)); err != nil {
			t.Fatalf("Save %s failed: %v", s, err)
		}
	}
	if err := store.Save(ctx, "live", "", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Save live failed: %v", err)
	}

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CleanupExpired removed %d, want 2", n)
	}

	left, err := db.Collection("oauth_states").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if left != 1 {
		t.Errorf("remaining states: got %d, want 1", left)
	}
}

func TestStore_Save_DuplicateState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	if err := store.Save(ctx, "dup", "", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(ctx, "dup", "", time.Now().Add(time.Minute)); err == nil {
		t.Error("expected duplicate state to be rejected")
	}
}
