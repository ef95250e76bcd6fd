// Package schedule maps a learner's chosen start date onto the 1-based day
// index of the curriculum and decides which days are open to them.
//
// All arithmetic is done on calendar dates. The clock time and zone offset of
// the inputs are discarded before subtracting, so a daylight-saving change or
// a late-evening "today" never shifts the result by a day.
package schedule

import (
	"fmt"
	"time"
)

// TotalDays is the length of the curriculum.
const TotalDays = 121

// StartDateLayout is the stored form of a start date (YYYY-MM-DD).
const StartDateLayout = "2006-01-02"

// DayStatus describes a day relative to the learner's current day.
type DayStatus string

const (
	StatusPast   DayStatus = "past"
	StatusToday  DayStatus = "today"
	StatusFuture DayStatus = "future"
)

// civil returns t's calendar date as midnight UTC. Using UTC for the
// subtraction keeps every day exactly 24h long.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeCurrentDay returns the 1-based day index of today for a journey that
// began on startDate. A start date in the future yields 1. There is no upper
// bound; callers cap at TotalDays where they need to.
func ComputeCurrentDay(startDate, today time.Time) int {
	// Both operands are UTC midnights, so the span is a whole number of days.
	days := int(civil(today).Sub(civil(startDate)) / (24 * time.Hour))
	day := days + 1
	if day < 1 {
		return 1
	}
	return day
}

// DateForDayIndex returns the calendar date (midnight, in startDate's
// location) on which dayIndex falls.
func DateForDayIndex(startDate time.Time, dayIndex int) time.Time {
	y, m, d := startDate.Date()
	return time.Date(y, m, d+(dayIndex-1), 0, 0, 0, 0, startDate.Location())
}

// CanAccessLesson reports whether dayIndex is open. Anything due today or
// earlier is always open; future days are open only when allowFuture is set.
func CanAccessLesson(dayIndex, currentDay int, allowFuture bool) bool {
	if dayIndex <= currentDay {
		return true
	}
	return allowFuture
}

// IsLessonLocked is the negation of CanAccessLesson restricted to future days.
func IsLessonLocked(dayIndex, currentDay int, allowFuture bool) bool {
	return dayIndex > currentDay && !allowFuture
}

// DayStatusOf classifies dayIndex against currentDay.
func DayStatusOf(dayIndex, currentDay int) DayStatus {
	switch {
	case dayIndex < currentDay:
		return StatusPast
	case dayIndex == currentDay:
		return StatusToday
	default:
		return StatusFuture
	}
}

// CapDay limits a current day to the last day of the curriculum.
func CapDay(day int) int {
	if day > TotalDays {
		return TotalDays
	}
	if day < 1 {
		return 1
	}
	return day
}

// Today returns the current local date at midnight.
func Today() time.Time {
	return civilIn(time.Now(), time.Local)
}

func civilIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseStartDate parses a stored YYYY-MM-DD start date as midnight UTC.
func ParseStartDate(s string) (time.Time, error) {
	t, err := time.Parse(StartDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", s, err)
	}
	return t, nil
}

// FormatStartDate renders t in the stored YYYY-MM-DD form.
func FormatStartDate(t time.Time) string {
	return t.Format(StartDateLayout)
}
