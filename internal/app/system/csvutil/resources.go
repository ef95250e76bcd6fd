// internal/app/system/csvutil/resources.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/urlutil"
)

// ErrTooManyRows is returned when a file holds more than MaxRows data rows.
var ErrTooManyRows = fmt.Errorf("csv has more than %d rows", MaxRows)

// ResourceRow is one validated row of a resource import:
//
//	lesson_day_index,title,url[,image_url]
type ResourceRow struct {
	LessonDayIndex int    `json:"lesson_day_index"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	ImageURL       string `json:"image_url,omitempty"`

	// Line is where the row came from: the file line for CSV, the array
	// position for JSON.
	Line int `json:"-"`
}

// RowError reports a rejected row. Line is 1-based; for CSV it is the file
// line, header included.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ResourceResult is the outcome of ParseResourcesCSV.
type ResourceResult struct {
	Rows   []ResourceRow `json:"rows"`
	Errors []RowError    `json:"errors,omitempty"`
}

func (r *ResourceResult) HasErrors() bool { return len(r.Errors) > 0 }

// ParseResourcesCSV reads a resource import. A header row is skipped when
// its first cell is not a number. Blank rows are ignored. Nothing is
// written anywhere; callers persist Rows themselves.
func ParseResourcesCSV(r io.Reader) (ResourceResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var res ResourceResult
	first := true
	seen := make(map[string]int)

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Errors = append(res.Errors, RowError{Line: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return res, err
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			if isHeader(rec) {
				continue
			}
		}
		if blank(rec) {
			continue
		}
		if len(res.Rows)+len(res.Errors) >= MaxRows {
			return res, ErrTooManyRows
		}

		row, reason := parseRow(rec, line)
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: reason})
			continue
		}

		key := strconv.Itoa(row.LessonDayIndex) + "\x00" + strings.ToLower(row.Title)
		if prev, dup := seen[key]; dup {
			res.Errors = append(res.Errors, RowError{
				Line:   line,
				Reason: fmt.Sprintf("duplicate title for day %d (first on line %d)", row.LessonDayIndex, prev),
			})
			continue
		}
		seen[key] = line
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// ValidateResourceRow applies the CSV row rules to a row decoded some other
// way, trimming it in place. It returns "" when the row is usable.
func ValidateResourceRow(row *ResourceRow) string {
	row.Title = strings.TrimSpace(row.Title)
	row.URL = strings.TrimSpace(row.URL)
	row.ImageURL = strings.TrimSpace(row.ImageURL)
	switch {
	case row.LessonDayIndex < 1:
		return "lesson_day_index must be a positive number"
	case row.Title == "":
		return "missing title"
	case !urlutil.IsValidAbsHTTPURL(row.URL):
		return "url must be an absolute http(s) URL"
	case row.ImageURL != "" && !urlutil.IsValidAbsHTTPURL(row.ImageURL):
		return "image_url must be an absolute http(s) URL"
	}
	return ""
}

func parseRow(rec []string, line int) (ResourceRow, string) {
	if len(rec) < 3 {
		return ResourceRow{}, "expected lesson_day_index,title,url[,image_url]"
	}
	day, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return ResourceRow{}, "lesson_day_index must be a positive number"
	}
	row := ResourceRow{LessonDayIndex: day, Title: rec[1], URL: rec[2], Line: line}
	if len(rec) > 3 {
		row.ImageURL = rec[3]
	}
	return row, ValidateResourceRow(&row)
}

func isHeader(rec []string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	return err != nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
