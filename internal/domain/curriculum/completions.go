// internal/domain/curriculum/completions.go
package curriculum

import "time"

// Completions is the set of lessons a learner has finished, indexed both by
// lesson id and by day. Items carrying a lesson id match on the id; items
// without one (roster-only days, or every day when lessons failed to load)
// match on the day.
type Completions struct {
	byLesson map[string]time.Time
	byDay    map[int]time.Time
}

// NewCompletions returns an empty set.
func NewCompletions() Completions {
	return Completions{byLesson: map[string]time.Time{}, byDay: map[int]time.Time{}}
}

// Add records a completion. at may be zero when the time is unknown.
func (c Completions) Add(lessonID string, day int, at time.Time) {
	if lessonID != "" {
		c.byLesson[lessonID] = at
	}
	if day >= 1 {
		c.byDay[day] = at
	}
}

// Len is the number of completed lessons.
func (c Completions) Len() int { return len(c.byLesson) }

// At returns when it was completed.
func (c Completions) At(it Item) (time.Time, bool) {
	if it.LessonID != "" {
		at, ok := c.byLesson[it.LessonID]
		return at, ok
	}
	at, ok := c.byDay[it.DayIndex]
	return at, ok
}

// Done reports whether it was completed.
func (c Completions) Done(it Item) bool {
	_, ok := c.At(it)
	return ok
}
