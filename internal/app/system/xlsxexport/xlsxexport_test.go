package xlsxexport

import (
	"strconv"
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
)

func TestBuild(t *testing.T) {
	remote := map[int]models.LessonSummary{
		1: {ID: "l1", DayIndex: 1, Title: "Hello Cargo", TopicSlug: "hello-cargo"},
		2: {ID: "l2", DayIndex: 2, Title: "println!", TopicSlug: "println"},
	}
	c := curriculum.Build(&curriculum.DefaultRoster, remote)
	at := time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)
	completed := curriculum.NewCompletions()
	completed.Add("l1", 1, at)

	f, err := Build(c.Items(), completed, func(day int) string { return "D" + strconv.Itoa(day) })
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != ProgressSheet || sheets[1] != SummarySheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(ProgressSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != curriculum.TotalDays+1 {
		t.Fatalf("expected header + %d rows, got %d", curriculum.TotalDays, len(rows))
	}
	if rows[0][0] != "Day" || rows[0][7] != "Completed At" {
		t.Errorf("unexpected header %v", rows[0])
	}

	day1 := rows[1]
	if day1[0] != "1" || day1[1] != "D1" || day1[2] != "Hello Cargo" || day1[5] != "Yes" || day1[6] != "Yes" || day1[7] != "2025-12-01 09:30" {
		t.Errorf("unexpected day 1 row %v", day1)
	}
	day2 := rows[2]
	if day2[5] != "Yes" || day2[6] != "No" {
		t.Errorf("unexpected day 2 row %v", day2)
	}
	day3 := rows[3]
	if day3[5] != "No" || day3[6] != "No" {
		t.Errorf("unexpected day 3 row %v", day3)
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows summary failed: %v", err)
	}
	if summary[1][0] != "Total days" || summary[1][1] != "121" {
		t.Errorf("unexpected total row %v", summary[1])
	}
	if summary[2][1] != "1" {
		t.Errorf("expected 1 completed, got %v", summary[2])
	}
	if summary[9][0] != "Phase 1: Foundations" {
		t.Errorf("unexpected phase row %v", summary[9])
	}
}

func TestBuild_DegradedCurriculumKeepsCompletions(t *testing.T) {
	c := curriculum.Build(&curriculum.DefaultRoster, nil)
	completed := curriculum.NewCompletions()
	completed.Add("l1", 1, time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC))

	f, err := Build(c.Items(), completed, func(int) string { return "" })
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(ProgressSheet)
	if rows[1][6] != "Yes" || rows[1][7] != "2025-12-01 09:30" {
		t.Errorf("day 1 lost its completion: %v", rows[1])
	}
	for _, r := range rows[2:] {
		if r[6] != "No" {
			t.Fatalf("unexpected completion: %v", r)
		}
	}

	summary, _ := f.GetRows(SummarySheet)
	if summary[2][1] != "1" {
		t.Errorf("expected 1 completed, got %v", summary[2])
	}
}
