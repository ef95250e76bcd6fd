package paging

import (
	"net/http/httptest"
	"testing"
)

func TestLimitPlusOne(t *testing.T) {
	if got := LimitPlusOne(); got != int64(PageSize+1) {
		t.Errorf("LimitPlusOne() = %d, want %d", got, PageSize+1)
	}
}

func TestParseStart(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?start=51", 51},
		{"?start=0", 1},
		{"?start=-3", 1},
		{"?start=abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/admin/reports"+tt.query, nil)
			if got := ParseStart(r); got != tt.want {
				t.Errorf("ParseStart(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	for start, want := range map[int]int64{0: 0, 1: 0, 51: 50} {
		if got := Skip(start); got != want {
			t.Errorf("Skip(%d) = %d, want %d", start, got, want)
		}
	}
}

func TestTrimPage(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		wantLen  int
		wantNext bool
	}{
		{"empty", 0, 0, false},
		{"partial", 3, 3, false},
		{"exact", PageSize, PageSize, false},
		{"look-ahead row", PageSize + 1, PageSize, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]int, tt.rows)
			hasNext := TrimPage(&rows)
			if len(rows) != tt.wantLen || hasNext != tt.wantNext {
				t.Errorf("TrimPage: len=%d next=%v, want len=%d next=%v", len(rows), hasNext, tt.wantLen, tt.wantNext)
			}
		})
	}
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		shown   int
		hasNext bool
		want    Range
	}{
		{"no results", 1, 0, false, Range{PrevStart: 1, NextStart: 1}},
		{"first page full", 1, PageSize, true, Range{Start: 1, End: PageSize, PrevStart: 1, NextStart: PageSize + 1, HasNext: true}},
		{"first page partial", 1, 10, false, Range{Start: 1, End: 10, PrevStart: 1, NextStart: 11}},
		{"middle page", 101, 50, true, Range{Start: 101, End: 150, PrevStart: 51, NextStart: 151, HasPrev: true, HasNext: true}},
		{"past the end", 201, 0, false, Range{PrevStart: 1, NextStart: 1, HasPrev: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRange(tt.start, tt.shown, tt.hasNext); got != tt.want {
				t.Errorf("ComputeRange(%d, %d) = %+v, want %+v", tt.start, tt.shown, got, tt.want)
			}
		})
	}
}
