// internal/domain/curriculum/stats.go
package curriculum

import (
	"math"
	"sort"
)

// minutesPerDay is the nominal length of a daily session used for hour
// estimates.
const minutesPerDay = 10

// Stats summarizes a learner's overall progress.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Remaining      int `json:"remaining"`
	Percent        int `json:"percent"`
	EstimatedHours int `json:"estimated_hours"`
	HoursCompleted int `json:"hours_completed"`
}

// ConceptCount is the number of days, and completed days, for one concept.
type ConceptCount struct {
	Concept        string `json:"concept"`
	Count          int    `json:"count"`
	CompletedCount int    `json:"completed_count"`
}

// PhaseProgress is completion within one phase.
type PhaseProgress struct {
	Phase     int `json:"phase"`
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// round rounds halves up.
func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return round(float64(done) / float64(total) * 100)
}

// ComputeStats counts the items for which done returns true.
func ComputeStats(items []Item, done func(Item) bool) Stats {
	total := len(items)
	completed := 0
	for _, it := range items {
		if done(it) {
			completed++
		}
	}
	return Stats{
		Total:          total,
		Completed:      completed,
		Remaining:      total - completed,
		Percent:        percent(completed, total),
		EstimatedHours: round(float64(total*minutesPerDay) / 60),
		HoursCompleted: round(float64(completed*minutesPerDay) / 60),
	}
}

// ConceptDistribution counts items per concept, largest first. Ties keep the
// order in which concepts first appear.
func ConceptDistribution(items []Item, done func(Item) bool) []ConceptCount {
	idx := make(map[string]int)
	var out []ConceptCount
	for _, it := range items {
		i, ok := idx[it.Concept]
		if !ok {
			i = len(out)
			idx[it.Concept] = i
			out = append(out, ConceptCount{Concept: it.Concept})
		}
		out[i].Count++
		if done(it) {
			out[i].CompletedCount++
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

// PhaseProgressOf reports completion for each of the four phases.
func PhaseProgressOf(items []Item, done func(Item) bool) []PhaseProgress {
	out := make([]PhaseProgress, 0, len(PhaseNumbers))
	for _, phase := range PhaseNumbers {
		pp := PhaseProgress{Phase: phase}
		for _, it := range items {
			if it.Phase != phase {
				continue
			}
			pp.Total++
			if done(it) {
				pp.Completed++
			}
		}
		pp.Percent = percent(pp.Completed, pp.Total)
		out = append(out, pp)
	}
	return out
}
