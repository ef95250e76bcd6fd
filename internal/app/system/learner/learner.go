// Package learner resolves a signed-in user's schedule against today's date.
package learner

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingsGetter is the read side of the user settings store.
type SettingsGetter interface {
	Get(ctx context.Context, userID primitive.ObjectID) (models.UserSettings, bool, error)
}

// Plan is a user's schedule evaluated for one day.
type Plan struct {
	// Configured is false until the user picks a start date.
	Configured  bool
	StartDate   time.Time
	AllowFuture bool
	// CurrentDay is uncapped and at least 1.
	CurrentDay int
}

// Load reads the user's settings and evaluates them for today.
func Load(ctx context.Context, s SettingsGetter, userID primitive.ObjectID, today time.Time) (Plan, error) {
	us, found, err := s.Get(ctx, userID)
	if err != nil {
		return Plan{CurrentDay: 1}, fmt.Errorf("load settings: %w", err)
	}
	return FromSettings(us, found, today), nil
}

// FromSettings evaluates stored settings for today. An unparsable start date
// counts as unconfigured.
func FromSettings(us models.UserSettings, found bool, today time.Time) Plan {
	p := Plan{AllowFuture: us.AllowFutureLessons, CurrentDay: 1}
	if !found || us.StartDate == "" {
		return p
	}
	start, err := schedule.ParseStartDate(us.StartDate)
	if err != nil {
		return p
	}
	p.Configured = true
	p.StartDate = start
	p.CurrentDay = schedule.ComputeCurrentDay(start, today)
	return p
}

// Today is the current day capped to the curriculum length.
func (p Plan) Today() int { return schedule.CapDay(p.CurrentDay) }

// Locked reports whether day is closed to the user. Nothing is locked before
// a start date is chosen; callers gate that case separately.
func (p Plan) Locked(day int) bool {
	return p.Configured && schedule.IsLessonLocked(day, p.CurrentDay, p.AllowFuture)
}

// Status classifies day, or returns "" when unconfigured.
func (p Plan) Status(day int) schedule.DayStatus {
	if !p.Configured {
		return ""
	}
	return schedule.DayStatusOf(day, p.CurrentDay)
}

// Date returns the YYYY-MM-DD date of day, or "" when unconfigured.
func (p Plan) Date(day int) string {
	if !p.Configured {
		return ""
	}
	return schedule.FormatStartDate(schedule.DateForDayIndex(p.StartDate, day))
}

// StartDateString returns the stored form of the start date, or "".
func (p Plan) StartDateString() string {
	if !p.Configured {
		return ""
	}
	return schedule.FormatStartDate(p.StartDate)
}
