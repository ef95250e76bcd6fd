// Package xlsxexport writes a learner's progress as a spreadsheet.
package xlsxexport

import (
	"fmt"

	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	ProgressSheet = "Progress"
	SummarySheet  = "Summary"
)

// ContentType is the MIME type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var progressHeader = []any{"Day", "Date", "Topic", "Concept", "Phase", "Has Content", "Completed", "Completed At"}

// Build lays out one row per item. dates renders the date cell for a day.
func Build(items []curriculum.Item, completed curriculum.Completions, dates func(int) string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ProgressSheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#B7410E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetRow(ProgressSheet, "A1", &progressHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ProgressSheet, "A1", "H1", header); err != nil {
		return nil, err
	}

	done := completed.Done

	for i, it := range items {
		completedAt := ""
		if at, ok := completed.At(it); ok && !at.IsZero() {
			completedAt = at.UTC().Format("2006-01-02 15:04")
		}
		row := []any{
			it.DayIndex,
			dates(it.DayIndex),
			it.Topic,
			it.Concept,
			it.Phase,
			yesNo(it.HasContent),
			yesNo(done(it)),
			completedAt,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ProgressSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	for col, width := range map[string]float64{"A": 6, "B": 12, "C": 60, "D": 18, "E": 7, "F": 12, "G": 11, "H": 18} {
		if err := f.SetColWidth(ProgressSheet, col, col, width); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(ProgressSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	if err := writeSummary(f, items, done, header); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, items []curriculum.Item, done func(curriculum.Item) bool, header int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	st := curriculum.ComputeStats(items, done)

	rows := [][]any{
		{"Metric", "Value"},
		{"Total days", st.Total},
		{"Completed", st.Completed},
		{"Remaining", st.Remaining},
		{"Percent complete", st.Percent},
		{"Estimated hours", st.EstimatedHours},
		{"Hours completed", st.HoursCompleted},
		{},
		{"Phase", "Completed", "Total", "Percent"},
	}
	for _, p := range curriculum.PhaseProgressOf(items, done) {
		name := fmt.Sprintf("Phase %d", p.Phase)
		if info, ok := curriculum.PhaseInfo(p.Phase); ok {
			name += ": " + info.Name
		}
		rows = append(rows, []any{name, p.Completed, p.Total, p.Percent})
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &r); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A9", "D9", header); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "A", 28)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
