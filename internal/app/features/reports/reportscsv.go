// internal/app/features/reports/reportscsv.go
package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/normalize"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeAdminCSV handles GET /api/admin/reports.csv?status= and streams every
// matching report, newest first.
func (h *Handler) ServeAdminCSV(w http.ResponseWriter, r *http.Request) {
	status := normalize.Status(normalize.Filter(query.Get(r, "status")))
	if status != "" && !models.IsValidReportStatus(status) {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var all []models.LessonReport
	for start := 1; ; {
		rows, hasNext, err := h.Reports.List(ctx, status, start)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "reports csv: list", err, "Failed to export reports.")
			return
		}
		all = append(all, rows...)
		if !hasNext {
			break
		}
		start += len(rows)
	}

	filename := fmt.Sprintf("lesson_reports_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Created", "Day", "Lesson", "Type", "Status", "Message", "Report ID"})
	for _, rep := range all {
		_ = cw.Write([]string{
			rep.CreatedAt.UTC().Format("2006-01-02 15:04"),
			fmt.Sprint(rep.DayNumber),
			rep.LessonTitle,
			rep.ReportType,
			rep.Status,
			rep.Message,
			rep.ID.Hex(),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Warn("reports csv: write", zap.Error(err))
	}
}
