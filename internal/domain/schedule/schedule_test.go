package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeCurrentDay(t *testing.T) {
	start := date(2025, time.January, 1)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"same day", date(2025, time.January, 1), 1},
		{"same day late evening", time.Date(2025, time.January, 1, 23, 59, 0, 0, time.UTC), 1},
		{"two weeks in", date(2025, time.January, 15), 15},
		{"start in future", date(2024, time.December, 20), 1},
		{"far future start", date(2020, time.January, 1), 1},
		{"past the end", date(2025, time.June, 1), 152},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeCurrentDay(start, tt.today); got != tt.want {
				t.Errorf("ComputeCurrentDay(%s, %s) = %d, want %d",
					start.Format(StartDateLayout), tt.today.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestComputeCurrentDay_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.January, 1, 22, 30, 0, 0, time.UTC)
	today := time.Date(2025, time.January, 2, 1, 0, 0, 0, time.UTC)

	if got := ComputeCurrentDay(start, today); got != 2 {
		t.Errorf("ComputeCurrentDay: got %d, want 2", got)
	}
}

func TestComputeCurrentDay_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Spring forward on 2025-03-09; that local day is 23h long.
	start := time.Date(2025, time.March, 8, 0, 0, 0, 0, ny)
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, ny)

	if got := ComputeCurrentDay(start, today); got != 3 {
		t.Errorf("ComputeCurrentDay across DST: got %d, want 3", got)
	}
}

func TestComputeCurrentDay_NeverBelowOne(t *testing.T) {
	today := date(2025, time.January, 1)
	for offset := 0; offset < 400; offset++ {
		start := today.AddDate(0, 0, offset)
		if got := ComputeCurrentDay(start, today); got != 1 {
			t.Fatalf("start %d days ahead: got %d, want 1", offset, got)
		}
	}
}

func TestDateForDayIndex(t *testing.T) {
	start := date(2025, time.December, 1)

	tests := []struct {
		day  int
		want time.Time
	}{
		{1, date(2025, time.December, 1)},
		{31, date(2025, time.December, 31)},
		{32, date(2026, time.January, 1)},
		{121, date(2026, time.March, 31)},
	}

	for _, tt := range tests {
		got := DateForDayIndex(start, tt.day)
		if !got.Equal(tt.want) {
			t.Errorf("DateForDayIndex(day %d) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestDateForDayIndex_RoundTrip(t *testing.T) {
	starts := []time.Time{
		date(2025, time.January, 1),
		date(2024, time.February, 28),
		date(2025, time.December, 1),
	}
	for _, start := range starts {
		for day := 1; day <= TotalDays; day++ {
			today := DateForDayIndex(start, day)
			if got := ComputeCurrentDay(start, today); got != day {
				t.Fatalf("round trip from %s day %d: got %d", start.Format(StartDateLayout), day, got)
			}
		}
	}
}

func TestCanAccessLesson(t *testing.T) {
	const current = 10
	for day := 1; day <= TotalDays; day++ {
		wantLocked := day > current
		if got := CanAccessLesson(day, current, false); got == wantLocked {
			t.Errorf("CanAccessLesson(%d, %d, false) = %v", day, current, got)
		}
		if !CanAccessLesson(day, current, true) {
			t.Errorf("CanAccessLesson(%d, %d, true) = false, want true", day, current)
		}
		if got := IsLessonLocked(day, current, false); got != wantLocked {
			t.Errorf("IsLessonLocked(%d, %d, false) = %v, want %v", day, current, got, wantLocked)
		}
		if IsLessonLocked(day, current, true) {
			t.Errorf("IsLessonLocked(%d, %d, true) = true, want false", day, current)
		}
	}
}

func TestDayStatusOf(t *testing.T) {
	tests := []struct {
		day, current int
		want         DayStatus
	}{
		{1, 5, StatusPast},
		{5, 5, StatusToday},
		{6, 5, StatusFuture},
	}
	for _, tt := range tests {
		if got := DayStatusOf(tt.day, tt.current); got != tt.want {
			t.Errorf("DayStatusOf(%d, %d) = %q, want %q", tt.day, tt.current, got, tt.want)
		}
	}
}

func TestCapDay(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1},
		{1, 1},
		{121, 121},
		{500, 121},
	}
	for _, tt := range tests {
		if got := CapDay(tt.in); got != tt.want {
			t.Errorf("CapDay(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseStartDate(t *testing.T) {
	got, err := ParseStartDate("2025-12-01")
	if err != nil {
		t.Fatalf("ParseStartDate failed: %v", err)
	}
	if !got.Equal(date(2025, time.December, 1)) {
		t.Errorf("ParseStartDate: got %s", got)
	}
	if FormatStartDate(got) != "2025-12-01" {
		t.Errorf("FormatStartDate: got %q", FormatStartDate(got))
	}

	if _, err := ParseStartDate("12/01/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
