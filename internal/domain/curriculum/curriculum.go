// Package curriculum holds the fixed 121-day roster and merges it with
// whatever lesson content has been authored so far.
//
// Build always produces exactly one Item per day, in day order. Days with
// authored content take their title, slug and duration from the lesson; the
// rest fall back to the roster, and a day missing from both becomes a
// "Coming Soon" placeholder.
package curriculum

import (
	"fmt"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
)

// TotalDays is the number of days in the curriculum.
const TotalDays = schedule.TotalDays

// Fallback values used when neither roster nor lesson supplies one.
const (
	placeholderTopic   = "Coming Soon"
	placeholderConcept = "Placeholder"
	generalConcept     = "General"
	lessonTopic        = "Lesson"
)

// Entry is one row of the static roster.
type Entry struct {
	Date    string `json:"date"`    // display label, e.g. "Dec 1"
	Weekday string `json:"weekday"` // e.g. "Mon"
	Topic   string `json:"topic"`
	Concept string `json:"concept"`
	Phase   int    `json:"phase"`
}

// Roster is the fixed plan. Position i holds day i+1.
type Roster [TotalDays]Entry

// At returns the roster entry for dayIndex. ok is false when the index is
// out of range or the slot is empty.
func (r *Roster) At(dayIndex int) (Entry, bool) {
	if r == nil || dayIndex < 1 || dayIndex > TotalDays {
		return Entry{}, false
	}
	e := r[dayIndex-1]
	if e.Topic == "" {
		return Entry{}, false
	}
	return e, true
}

// Item is a roster entry merged with lesson content.
type Item struct {
	DayIndex             int    `json:"day_index"`
	Date                 string `json:"date_label"`
	Weekday              string `json:"weekday"`
	Topic                string `json:"topic"`
	Concept              string `json:"concept"`
	Phase                int    `json:"phase"`
	TopicSlug            string `json:"topic_slug"`
	LessonID             string `json:"lesson_id,omitempty"`
	HasContent           bool   `json:"has_content"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`
}

// Curriculum is the merged, gap-free plan. Position i holds day i+1.
type Curriculum [TotalDays]Item

// IndexByDay keys lessons by day index. When two lessons share a day the
// later one wins.
func IndexByDay(lessons []models.LessonSummary) map[int]models.LessonSummary {
	m := make(map[int]models.LessonSummary, len(lessons))
	for _, l := range lessons {
		m[l.DayIndex] = l
	}
	return m
}

// Build merges roster with remote lessons keyed by day index. It performs no
// I/O and returns the same result for the same inputs. A nil roster or map
// is allowed.
func Build(roster *Roster, remote map[int]models.LessonSummary) Curriculum {
	var out Curriculum
	for day := 1; day <= TotalDays; day++ {
		entry, hasStatic := roster.At(day)
		lesson, hasRemote := remote[day]

		switch {
		case hasRemote:
			out[day-1] = fromLesson(day, lesson, entry, hasStatic)
		case hasStatic:
			out[day-1] = fromEntry(day, entry)
		default:
			out[day-1] = placeholder(day)
		}
	}
	return out
}

func fromLesson(day int, l models.LessonSummary, e Entry, hasStatic bool) Item {
	it := Item{
		DayIndex:             day,
		Date:                 dayLabel(day),
		Concept:              generalConcept,
		Phase:                approxPhase(day),
		Topic:                l.Title,
		TopicSlug:            l.TopicSlug,
		LessonID:             l.ID,
		HasContent:           true,
		EstimatedTimeMinutes: l.EstimatedTimeMinutes,
	}
	if hasStatic {
		if e.Date != "" {
			it.Date = e.Date
		}
		it.Weekday = e.Weekday
		if e.Concept != "" {
			it.Concept = e.Concept
		}
		if e.Phase > 0 {
			it.Phase = e.Phase
		}
	}
	if it.Topic == "" {
		if hasStatic {
			it.Topic = e.Topic
		} else {
			it.Topic = lessonTopic
		}
	}
	if it.TopicSlug == "" {
		it.TopicSlug = daySlug(day)
	}
	if it.EstimatedTimeMinutes <= 0 {
		it.EstimatedTimeMinutes = models.DefaultEstimatedMinutes
	}
	return it
}

func fromEntry(day int, e Entry) Item {
	return Item{
		DayIndex:             day,
		Date:                 e.Date,
		Weekday:              e.Weekday,
		Topic:                e.Topic,
		Concept:              e.Concept,
		Phase:                e.Phase,
		TopicSlug:            daySlug(day),
		EstimatedTimeMinutes: models.DefaultEstimatedMinutes,
	}
}

func placeholder(day int) Item {
	return Item{
		DayIndex:             day,
		Date:                 dayLabel(day),
		Topic:                placeholderTopic,
		Concept:              placeholderConcept,
		Phase:                approxPhase(day),
		TopicSlug:            daySlug(day),
		EstimatedTimeMinutes: models.DefaultEstimatedMinutes,
	}
}

// approxPhase is the phase given to days the roster does not describe. It
// assumes uniform 31-day phases, which does not match the roster past phase 2.
func approxPhase(day int) int {
	return (day + 30) / 31
}

func dayLabel(day int) string { return fmt.Sprintf("Day %d", day) }
func daySlug(day int) string  { return fmt.Sprintf("day-%d", day) }

/*─────────────────────────────────────────────────────────────────────────────*
| Lookups                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Items returns the curriculum as a slice in day order.
func (c *Curriculum) Items() []Item {
	out := make([]Item, TotalDays)
	copy(out, c[:])
	return out
}

// ByDayIndex returns the item for dayIndex.
func (c *Curriculum) ByDayIndex(dayIndex int) (Item, bool) {
	if dayIndex < 1 || dayIndex > TotalDays {
		return Item{}, false
	}
	return c[dayIndex-1], true
}

// BySlug returns the first item, in day order, whose slug is slug.
func (c *Curriculum) BySlug(slug string) (Item, bool) {
	for _, it := range c {
		if it.TopicSlug == slug {
			return it, true
		}
	}
	return Item{}, false
}

// ByPhase returns the items in phase.
func (c *Curriculum) ByPhase(phase int) []Item {
	var out []Item
	for _, it := range c {
		if it.Phase == phase {
			out = append(out, it)
		}
	}
	return out
}

// ByConcept returns the items tagged concept.
func (c *Curriculum) ByConcept(concept string) []Item {
	var out []Item
	for _, it := range c {
		if it.Concept == concept {
			out = append(out, it)
		}
	}
	return out
}

// Concepts returns each distinct concept once, in order of first appearance.
func (c *Curriculum) Concepts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range c {
		if _, ok := seen[it.Concept]; ok {
			continue
		}
		seen[it.Concept] = struct{}{}
		out = append(out, it.Concept)
	}
	return out
}

// ContentCount returns how many days have authored content.
func (c *Curriculum) ContentCount() int {
	n := 0
	for _, it := range c {
		if it.HasContent {
			n++
		}
	}
	return n
}
