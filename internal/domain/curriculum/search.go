// internal/domain/curriculum/search.go
package curriculum

import (
	"strconv"
	"strings"
)

// FuzzyMatch reports whether query occurs in text as a substring or, failing
// that, whether every rune of query appears in text in order. Matching is
// case-insensitive.
func FuzzyMatch(text, query string) bool {
	t := strings.ToLower(text)
	q := []rune(strings.ToLower(query))
	if strings.Contains(t, string(q)) {
		return true
	}
	i := 0
	for _, r := range t {
		if i == len(q) {
			break
		}
		if r == q[i] {
			i++
		}
	}
	return i == len(q)
}

// Search returns the items whose topic, concept, date label or "phase N"
// matches query. A blank query returns items unchanged.
func Search(items []Item, query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []Item
	for _, it := range items {
		if FuzzyMatch(it.Topic, q) ||
			FuzzyMatch(it.Concept, q) ||
			FuzzyMatch(it.Date, q) ||
			FuzzyMatch("phase "+strconv.Itoa(it.Phase), q) {
			out = append(out, it)
		}
	}
	return out
}

// FilterByPhase keeps items in phase, given as its number. "all" or "" keeps
// everything.
func FilterByPhase(items []Item, phase string) []Item {
	if phase == "" || phase == "all" {
		return items
	}
	var out []Item
	for _, it := range items {
		if strconv.Itoa(it.Phase) == phase {
			out = append(out, it)
		}
	}
	return out
}

// FilterByConcept keeps items tagged concept. "all" or "" keeps everything.
func FilterByConcept(items []Item, concept string) []Item {
	if concept == "" || concept == "all" {
		return items
	}
	var out []Item
	for _, it := range items {
		if it.Concept == concept {
			out = append(out, it)
		}
	}
	return out
}
