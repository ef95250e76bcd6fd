// internal/app/features/progress/handler.go
package progress

import (
	"context"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	progressstore "github.com/dalemusser/learnrust/internal/app/store/progress"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/learner"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/app/system/xlsxexport"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ExportFilename is the download name of the progress workbook.
const ExportFilename = "rust_progress.xlsx"

// Source yields the current curriculum snapshot.
type Source interface {
	Current(ctx context.Context) *catalog.Snapshot
}

// Handler serves completion tracking and statistics.
type Handler struct {
	Progress *progressstore.Store
	Lessons  *lessonstore.Store
	Settings learner.SettingsGetter
	Catalog  Source
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Now      func() time.Time
}

// NewHandler wires the handler to the stores in db.
func NewHandler(db *mongo.Database, cat Source, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Progress: progressstore.New(db),
		Lessons:  lessonstore.New(db),
		Settings: usersettingsstore.New(db),
		Catalog:  cat,
		Log:      logger,
		ErrLog:   errLog,
		Now:      schedule.Today,
	}
}

// Response is the body of GET /api/progress.
type Response struct {
	Records  []models.Progress          `json:"records"`
	Stats    curriculum.Stats           `json:"stats"`
	Concepts []curriculum.ConceptCount  `json:"concepts"`
	Phases   []curriculum.PhaseProgress `json:"phases"`
	// CompletedDays lists completed day indexes in ascending order.
	CompletedDays []int  `json:"completed_days"`
	Error         string `json:"error,omitempty"`
}

type updateInput struct {
	Completed *bool `json:"completed" validate:"required"`
}

// ServeProgress handles GET /api/progress.
func (h *Handler) ServeProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap := h.Catalog.Current(ctx)
	items := snap.Curriculum.Items()

	resp := Response{Records: []models.Progress{}, CompletedDays: []int{}}
	if snap.Degraded() {
		resp.Error = "Failed to load lessons."
	}

	records, err := h.Progress.ListByUser(ctx, uid)
	completed := curriculum.NewCompletions()
	if err != nil {
		h.Log.Warn("progress: list", zap.String("user_id", uid.Hex()), zap.Error(err))
		resp.Error = "Failed to load progress."
	} else {
		resp.Records = records
		for _, p := range records {
			if p.Completed {
				completed.Add(p.LessonID.Hex(), p.DayIndex, time.Time{})
			}
		}
	}

	done := completed.Done
	resp.Stats = curriculum.ComputeStats(items, done)
	resp.Concepts = curriculum.ConceptDistribution(items, done)
	resp.Phases = curriculum.PhaseProgressOf(items, done)
	for _, it := range items {
		if done(it) {
			resp.CompletedDays = append(resp.CompletedDays, it.DayIndex)
		}
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /api/progress/{lessonID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}
	lessonID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "lessonID"))
	if err != nil {
		uierrors.NotFound(w, "Lesson not found.")
		return
	}

	var in updateInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "progress: decode body", err, "Invalid JSON body.")
		return
	}
	if in.Completed == nil {
		uierrors.Validation(w, "Completed is required.", map[string]string{"completed": "Completed is required."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	lesson, err := h.Lessons.GetByID(ctx, lessonID)
	if errors.Is(err, lessonstore.ErrNotFound) {
		uierrors.NotFound(w, "Lesson not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "progress: load lesson", err, "Failed to update progress.")
		return
	}

	plan, err := learner.Load(ctx, h.Settings, uid, h.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "progress: load settings", err, "Failed to update progress.")
		return
	}
	if plan.Locked(lesson.DayIndex) {
		h.ErrLog.LogForbidden(w, r, "progress: lesson locked", "This lesson is locked.")
		return
	}

	p, err := h.Progress.SetCompleted(ctx, uid, lessonID, lesson.DayIndex, *in.Completed)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "progress: save", err, "Failed to update progress.")
		return
	}
	h.Log.Info("progress updated",
		zap.String("user_id", uid.Hex()),
		zap.Int("day", lesson.DayIndex),
		zap.Bool("completed", p.Completed))
	uierrors.WriteJSON(w, http.StatusOK, p)
}

// ServeExport handles GET /api/progress/export.xlsx.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	completed, err := h.Progress.Completed(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "progress export: list completed", err, "Failed to export progress.")
		return
	}
	plan, err := learner.Load(ctx, h.Settings, uid, h.Now())
	if err != nil {
		h.Log.Warn("progress export: load settings", zap.Error(err))
	}

	snap := h.Catalog.Current(ctx)
	items := snap.Curriculum.Items()
	dates := func(day int) string {
		if d := plan.Date(day); d != "" {
			return d
		}
		return items[day-1].Date
	}

	f, err := xlsxexport.Build(items, completed, dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "progress export: build", err, "Failed to export progress.")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxexport.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	if err := f.Write(w); err != nil {
		h.Log.Warn("progress export: write", zap.Error(err))
	}
}
