// internal/app/features/contentadmin/handler.go
package contentadmin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	"github.com/dalemusser/learnrust/internal/app/store/audit"
	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	resourcestore "github.com/dalemusser/learnrust/internal/app/store/resources"
	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/csvutil"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Refresher rebuilds the curriculum snapshot.
type Refresher interface {
	Refresh(ctx context.Context) *catalog.Snapshot
}

// Handler serves the admin content imports. Imports are all-or-nothing at
// the validation stage: any bad row rejects the request before anything is
// written. Rows that already exist are skipped, not updated.
type Handler struct {
	Lessons   *lessonstore.Store
	Resources *resourcestore.Store
	Catalog   Refresher
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Audit     *auditlog.Logger
}

func NewHandler(db *mongo.Database, cat Refresher, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Lessons:   lessonstore.New(db),
		Resources: resourcestore.New(db),
		Catalog:   cat,
		Log:       logger,
		ErrLog:    errLog,
	}
}

// ImportResult is the body of a successful import.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// RejectedResponse lists the rows that blocked an import.
type RejectedResponse struct {
	Error  string             `json:"error"`
	Errors []csvutil.RowError `json:"errors"`
}

// RefreshResponse describes the snapshot after a refresh.
type RefreshResponse struct {
	Days         int       `json:"days"`
	ContentCount int       `json:"content_count"`
	Degraded     bool      `json:"degraded"`
	LoadedAt     time.Time `json:"loaded_at"`
}

type lessonRow struct {
	DayIndex             int                    `json:"day_index" validate:"required" label:"Day"`
	Title                string                 `json:"title" validate:"required,max=200" label:"Title"`
	TopicSlug            string                 `json:"topic_slug" validate:"max=200" label:"Topic slug"`
	EstimatedTimeMinutes int                    `json:"estimated_time_minutes"`
	Theory               string                 `json:"theory"`
	CoreExample          *models.CoreExample    `json:"core_example"`
	PitfallExample       *models.PitfallExample `json:"pitfall_example"`
	Challenge            *models.Challenge      `json:"challenge"`
}

func (row lessonRow) lesson() models.Lesson {
	slug := strings.TrimSpace(row.TopicSlug)
	if slug == "" {
		slug = curriculum.GenerateSlug(row.Title)
	}
	return models.Lesson{
		DayIndex:             row.DayIndex,
		Title:                strings.TrimSpace(row.Title),
		TopicSlug:            slug,
		EstimatedTimeMinutes: row.EstimatedTimeMinutes,
		Theory:               row.Theory,
		CoreExample:          row.CoreExample,
		PitfallExample:       row.PitfallExample,
		Challenge:            row.Challenge,
	}
}

// HandleImportLessons handles POST /api/admin/lessons/import with a JSON
// array of lessons.
func (h *Handler) HandleImportLessons(w http.ResponseWriter, r *http.Request) {
	var rows []lessonRow
	if err := httpjson.Decode(w, r, limits.MaxImportBodySize, &rows); err != nil {
		h.ErrLog.LogBadRequest(w, r, "contentadmin: decode lessons", err, "Body must be a JSON array of lessons.")
		return
	}
	if len(rows) == 0 {
		uierrors.Validation(w, "No lessons to import.", nil)
		return
	}

	var bad []csvutil.RowError
	days := make(map[int]int, len(rows))
	for i, row := range rows {
		n := i + 1
		if res := inputval.Validate(row); res.HasErrors() {
			bad = append(bad, csvutil.RowError{Line: n, Reason: res.All()})
			continue
		}
		if row.DayIndex < 1 {
			bad = append(bad, csvutil.RowError{Line: n, Reason: "Day must be a positive number."})
			continue
		}
		if prev, dup := days[row.DayIndex]; dup {
			bad = append(bad, csvutil.RowError{Line: n, Reason: fmt.Sprintf("Day %d repeats row %d.", row.DayIndex, prev)})
			continue
		}
		days[row.DayIndex] = n
	}
	if len(bad) > 0 {
		reject(w, bad)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var out ImportResult
	for _, row := range rows {
		inserted, err := h.Lessons.InsertIfAbsent(ctx, row.lesson())
		if err != nil {
			h.ErrLog.LogServerError(w, r, "contentadmin: insert lesson", err, "Failed to import lessons.")
			return
		}
		if inserted {
			out.Inserted++
		} else {
			out.Skipped++
		}
	}

	if out.Inserted > 0 && h.Catalog != nil {
		h.Catalog.Refresh(ctx)
	}
	h.Audit.Imported(ctx, r, audit.EventLessonsImported, actorHex(r), out.Inserted, out.Skipped)
	h.Log.Info("lessons imported", zap.Int("inserted", out.Inserted), zap.Int("skipped", out.Skipped))
	uierrors.WriteJSON(w, http.StatusOK, out)
}

// HandleImportResources handles POST /api/admin/resources/import. The body
// is a CSV upload (text/csv, or multipart with a "csv" file) or a JSON array
// of rows. Every row must name the day of a stored lesson.
func (h *Handler) HandleImportResources(w http.ResponseWriter, r *http.Request) {
	rows, bad, ok := h.readResourceRows(w, r)
	if !ok {
		return
	}
	if len(bad) > 0 {
		reject(w, bad)
		return
	}
	if len(rows) == 0 {
		uierrors.Validation(w, "No resources to import.", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	lessonIDs := make(map[int]primitive.ObjectID)
	missing := make(map[int]bool)
	for _, row := range rows {
		if _, seen := lessonIDs[row.LessonDayIndex]; seen {
			continue
		}
		if missing[row.LessonDayIndex] {
			bad = append(bad, csvutil.RowError{Line: row.Line, Reason: fmt.Sprintf("No lesson for day %d.", row.LessonDayIndex)})
			continue
		}
		l, err := h.Lessons.GetByDayIndex(ctx, row.LessonDayIndex)
		switch {
		case errors.Is(err, lessonstore.ErrNotFound):
			missing[row.LessonDayIndex] = true
			bad = append(bad, csvutil.RowError{Line: row.Line, Reason: fmt.Sprintf("No lesson for day %d.", row.LessonDayIndex)})
			continue
		case err != nil:
			h.ErrLog.LogServerError(w, r, "contentadmin: resolve lesson", err, "Failed to import resources.")
			return
		}
		lessonIDs[row.LessonDayIndex] = l.ID
	}
	if len(bad) > 0 {
		reject(w, bad)
		return
	}

	var out ImportResult
	for _, row := range rows {
		inserted, err := h.Resources.InsertIfAbsent(ctx, models.LessonResource{
			LessonID: lessonIDs[row.LessonDayIndex],
			Title:    row.Title,
			URL:      row.URL,
			ImageURL: row.ImageURL,
		})
		if err != nil {
			h.ErrLog.LogServerError(w, r, "contentadmin: insert resource", err, "Failed to import resources.")
			return
		}
		if inserted {
			out.Inserted++
		} else {
			out.Skipped++
		}
	}

	h.Audit.Imported(ctx, r, audit.EventResourcesImported, actorHex(r), out.Inserted, out.Skipped)
	h.Log.Info("resources imported", zap.Int("inserted", out.Inserted), zap.Int("skipped", out.Skipped))
	uierrors.WriteJSON(w, http.StatusOK, out)
}

// readResourceRows decodes the request in whichever form it came. ok is
// false when a response has already been written.
func (h *Handler) readResourceRows(w http.ResponseWriter, r *http.Request) (rows []csvutil.ResourceRow, bad []csvutil.RowError, ok bool) {
	ct := strings.ToLower(r.Header.Get("Content-Type"))

	switch {
	case strings.HasPrefix(ct, "text/csv"):
		r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
		return h.parseCSV(w, r, r.Body)

	case strings.HasPrefix(ct, "multipart/form-data"):
		r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
		file, _, err := r.FormFile("csv")
		if err != nil {
			msg := "CSV file is required."
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				msg = "CSV file is too large."
			}
			uierrors.Validation(w, msg, nil)
			return nil, nil, false
		}
		defer file.Close()
		return h.parseCSV(w, r, file)
	}

	if err := httpjson.Decode(w, r, limits.MaxImportBodySize, &rows); err != nil {
		h.ErrLog.LogBadRequest(w, r, "contentadmin: decode resources", err, "Body must be CSV or a JSON array of resources.")
		return nil, nil, false
	}
	for i := range rows {
		rows[i].Line = i + 1
		if reason := csvutil.ValidateResourceRow(&rows[i]); reason != "" {
			bad = append(bad, csvutil.RowError{Line: rows[i].Line, Reason: reason})
		}
	}
	return rows, bad, true
}

func (h *Handler) parseCSV(w http.ResponseWriter, r *http.Request, body io.Reader) ([]csvutil.ResourceRow, []csvutil.RowError, bool) {
	res, err := csvutil.ParseResourcesCSV(body)
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, csvutil.ErrTooManyRows):
		uierrors.Validation(w, err.Error(), nil)
		return nil, nil, false
	case errors.As(err, &mbe):
		uierrors.Validation(w, "CSV file is too large.", nil)
		return nil, nil, false
	case err != nil:
		h.ErrLog.LogBadRequest(w, r, "contentadmin: read csv", err, "CSV file could not be read.")
		return nil, nil, false
	}
	return res.Rows, res.Errors, true
}

// HandleRefresh handles POST /api/admin/curriculum/refresh.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	snap := h.Catalog.Refresh(ctx)
	h.Audit.CurriculumRefreshed(ctx, r, actorHex(r), len(snap.Curriculum.Items()), snap.Degraded())
	h.Log.Info("curriculum refreshed by admin",
		zap.Int("content_count", snap.Curriculum.ContentCount()),
		zap.Bool("degraded", snap.Degraded()))

	uierrors.WriteJSON(w, http.StatusOK, RefreshResponse{
		Days:         len(snap.Curriculum.Items()),
		ContentCount: snap.Curriculum.ContentCount(),
		Degraded:     snap.Degraded(),
		LoadedAt:     snap.LoadedAt,
	})
}

func actorHex(r *http.Request) string {
	id, ok := authz.UserID(r)
	if !ok {
		return ""
	}
	return id.Hex()
}

func reject(w http.ResponseWriter, bad []csvutil.RowError) {
	uierrors.WriteJSON(w, http.StatusBadRequest, RejectedResponse{
		Error:  fmt.Sprintf("Import rejected: %d invalid row(s). Nothing was imported.", len(bad)),
		Errors: bad,
	})
}
