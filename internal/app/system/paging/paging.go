// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows in paged lists.
const PageSize = 50

// LimitPlusOne returns PageSize+1 as int64 for look-ahead pagination
// (fetch one extra document to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Skip converts a 1-based start into a Mongo skip count.
func Skip(start int) int64 {
	if start < 1 {
		return 0
	}
	return int64(start - 1)
}

// TrimPage trims a slice fetched with LimitPlusOne to PageSize and reports
// whether more rows follow.
func TrimPage[T any](rows *[]T) (hasNext bool) {
	if len(*rows) > PageSize {
		*rows = (*rows)[:PageSize]
		return true
	}
	return false
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int  `json:"start"`      // 1-based start index (0 if no results)
	End       int  `json:"end"`        // 1-based end index (0 if no results)
	PrevStart int  `json:"prev_start"` // start value for previous page link
	NextStart int  `json:"next_start"` // start value for next page link
	HasPrev   bool `json:"has_prev"`
	HasNext   bool `json:"has_next"`
}

// ComputeRange calculates display range values given the current start index
// and number of items shown.
func ComputeRange(start, shown int, hasNext bool) Range {
	if shown == 0 {
		return Range{PrevStart: 1, NextStart: 1, HasPrev: start > 1}
	}

	prevStart := start - PageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: prevStart,
		NextStart: start + shown,
		HasPrev:   start > 1,
		HasNext:   hasNext,
	}
}
