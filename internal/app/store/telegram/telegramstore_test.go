package telegramstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/learnrust/internal/app/system/indexes"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIssueCode_Range(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	for i := 0; i < 20; i++ {
		l, err := s.IssueCode(ctx, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("IssueCode failed: %v", err)
		}
		if l.ActivationCode < MinCode || l.ActivationCode > MaxCode {
			t.Errorf("code %d out of range", l.ActivationCode)
		}
		if l.Status != models.TelegramPending || l.TelegramChatID != nil {
			t.Errorf("unexpected link state: %+v", l)
		}
	}
}

func TestActivateFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	s := New(db)
	s.code = func() int { return 424242 }
	user := primitive.NewObjectID()

	if _, found, _ := s.Get(ctx, user); found {
		t.Fatal("expected no link before IssueCode")
	}
	if _, err := s.IssueCode(ctx, user); err != nil {
		t.Fatalf("IssueCode failed: %v", err)
	}

	if _, err := s.Activate(ctx, 111111, 99); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("wrong code: got %v", err)
	}
	if _, err := s.Activate(ctx, 42, 99); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("out-of-range code: got %v", err)
	}

	l, err := s.Activate(ctx, 424242, 99)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if l.Status != models.TelegramConnected || l.TelegramChatID == nil || *l.TelegramChatID != 99 {
		t.Errorf("unexpected link after activate: %+v", l)
	}
	if _, err := s.Activate(ctx, 424242, 100); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("code reuse: got %v", err)
	}

	connected, err := s.ListConnected(ctx, []primitive.ObjectID{user, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("ListConnected failed: %v", err)
	}
	if len(connected) != 1 || *connected[user].TelegramChatID != 99 {
		t.Errorf("unexpected connected map: %+v", connected)
	}

	// Reissuing drops the chat and returns to pending.
	l, err = s.IssueCode(ctx, user)
	if err != nil {
		t.Fatalf("reissue failed: %v", err)
	}
	if l.Status != models.TelegramPending || l.TelegramChatID != nil {
		t.Errorf("reissue should reset link: %+v", l)
	}

	if err := s.Delete(ctx, user); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := s.Get(ctx, user); found {
		t.Error("expected link to be gone")
	}
}

func TestIssueCode_RedrawsTakenCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	codes := []int{500000, 500000, 600000}
	s.code = func() int {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	a, err := s.IssueCode(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("IssueCode a failed: %v", err)
	}
	b, err := s.IssueCode(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("IssueCode b failed: %v", err)
	}
	if a.ActivationCode != 500000 || b.ActivationCode != 600000 {
		t.Errorf("expected redraw, got %d and %d", a.ActivationCode, b.ActivationCode)
	}
}
