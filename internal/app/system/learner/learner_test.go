package learner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSettings struct {
	us    models.UserSettings
	found bool
	err   error
}

func (f fakeSettings) Get(ctx context.Context, id primitive.ObjectID) (models.UserSettings, bool, error) {
	return f.us, f.found, f.err
}

var today = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func TestFromSettings_Unconfigured(t *testing.T) {
	for _, tc := range []struct {
		name  string
		us    models.UserSettings
		found bool
	}{
		{"missing", models.UserSettings{}, false},
		{"blank date", models.UserSettings{}, true},
		{"garbage date", models.UserSettings{StartDate: "soon"}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := FromSettings(tc.us, tc.found, today)
			if p.Configured || p.CurrentDay != 1 {
				t.Errorf("plan = %+v", p)
			}
			if p.Locked(50) || p.Status(1) != "" || p.Date(1) != "" || p.StartDateString() != "" {
				t.Error("unconfigured plan should not lock, classify or date days")
			}
		})
	}
}

func TestFromSettings_Configured(t *testing.T) {
	p := FromSettings(models.UserSettings{StartDate: "2025-01-01"}, true, today)
	if !p.Configured || p.CurrentDay != 15 || p.Today() != 15 {
		t.Fatalf("plan = %+v", p)
	}
	if p.Locked(15) || !p.Locked(16) {
		t.Error("day 15 open, day 16 locked")
	}
	if p.Status(14) != schedule.StatusPast || p.Status(15) != schedule.StatusToday || p.Status(16) != schedule.StatusFuture {
		t.Error("unexpected statuses")
	}
	if got := p.Date(32); got != "2025-02-01" {
		t.Errorf("Date(32) = %q", got)
	}
	if p.StartDateString() != "2025-01-01" {
		t.Errorf("StartDateString = %q", p.StartDateString())
	}

	p.AllowFuture = true
	if p.Locked(100) {
		t.Error("allow future should unlock every day")
	}
}

func TestPlan_TodayCapped(t *testing.T) {
	p := FromSettings(models.UserSettings{StartDate: "2024-01-01"}, true, today)
	if p.CurrentDay <= schedule.TotalDays || p.Today() != schedule.TotalDays {
		t.Errorf("CurrentDay = %d, Today = %d", p.CurrentDay, p.Today())
	}
}

func TestLoad(t *testing.T) {
	p, err := Load(context.Background(), fakeSettings{us: models.UserSettings{StartDate: "2025-01-10"}, found: true}, primitive.NewObjectID(), today)
	if err != nil || p.CurrentDay != 6 {
		t.Fatalf("Load = %+v, %v", p, err)
	}

	_, err = Load(context.Background(), fakeSettings{err: errors.New("down")}, primitive.NewObjectID(), today)
	if err == nil {
		t.Error("expected store error")
	}
}
