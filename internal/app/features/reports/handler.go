// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	reportstore "github.com/dalemusser/learnrust/internal/app/store/reports"
	"github.com/dalemusser/learnrust/internal/app/system/auditlog"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/normalize"
	"github.com/dalemusser/learnrust/internal/app/system/paging"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns lesson problem reports: filing by learners and triage by
// admins.
type Handler struct {
	Reports *reportstore.Store
	Lessons *lessonstore.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Audit   *auditlog.Logger
}

// NewHandler constructs a reports Handler bound to the given Mongo
// database and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Reports: reportstore.New(db),
		Lessons: lessonstore.New(db),
		Log:     logger,
		ErrLog:  errLog,
	}
}

type createInput struct {
	LessonID   string `json:"lesson_id" validate:"required,objectid" label:"Lesson"`
	ReportType string `json:"report_type" validate:"required,reporttype" label:"Report type"`
	Message    string `json:"message" validate:"required,max=2000" label:"Message"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,reportstatus" label:"Status"`
}

// ListResponse is the body of the admin list.
type ListResponse struct {
	Reports []models.LessonReport `json:"reports"`
	Range   paging.Range          `json:"range"`
}

// ServeTypes handles GET /api/reports/types.
func (h *Handler) ServeTypes(w http.ResponseWriter, r *http.Request) {
	type option struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	out := make([]option, len(models.ReportTypes))
	for i, rt := range models.ReportTypes {
		out[i] = option{Value: rt.Value, Label: rt.Label}
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"types": out})
}

// HandleCreate handles POST /api/reports.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	var in createInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "reports: decode body", err, "Invalid JSON body.")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.Validation(w, res.First(), res.Fields())
		return
	}
	lessonID, _ := primitive.ObjectIDFromHex(in.LessonID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	lesson, err := h.Lessons.GetByID(ctx, lessonID)
	if errors.Is(err, lessonstore.ErrNotFound) {
		uierrors.NotFound(w, "Lesson not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reports: load lesson", err, "Failed to submit report.")
		return
	}

	rep, err := h.Reports.Create(ctx, models.LessonReport{
		LessonID:    lessonID,
		UserID:      uid,
		ReportType:  in.ReportType,
		Message:     in.Message,
		DayNumber:   lesson.DayIndex,
		LessonTitle: lesson.Title,
	})
	switch {
	case errors.Is(err, reportstore.ErrEmptyMessage):
		// Only markup was submitted.
		uierrors.Validation(w, "Message is required.", map[string]string{"message": "Message is required."})
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "reports: create", err, "Failed to submit report.")
		return
	}

	h.Log.Info("lesson report filed",
		zap.String("report_id", rep.ID.Hex()),
		zap.Int("day", rep.DayNumber),
		zap.String("type", rep.ReportType))
	uierrors.WriteJSON(w, http.StatusCreated, rep)
}

// ServeAdminList handles GET /api/admin/reports?status=&start=.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	status := normalize.Status(normalize.Filter(query.Get(r, "status")))
	if status != "" && !models.IsValidReportStatus(status) {
		uierrors.Write(w, http.StatusBadRequest, "Unknown status.")
		return
	}
	start := paging.ParseStart(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, hasNext, err := h.Reports.List(ctx, status, start)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reports: list", err, "Failed to load reports.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, ListResponse{
		Reports: rows,
		Range:   paging.ComputeRange(start, len(rows), hasNext),
	})
}

// HandleSetStatus handles PATCH /api/admin/reports/{id}.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.NotFound(w, "Report not found.")
		return
	}

	var in statusInput
	if err := httpjson.Decode(w, r, limits.MaxJSONBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "reports: decode status", err, "Invalid JSON body.")
		return
	}
	in.Status = normalize.Status(in.Status)
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.Validation(w, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rep, err := h.Reports.SetStatus(ctx, id, in.Status)
	if errors.Is(err, reportstore.ErrNotFound) {
		uierrors.NotFound(w, "Report not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reports: set status", err, "Failed to update report.")
		return
	}
	actor, _ := authz.UserID(r)
	h.Audit.ReportStatusChanged(ctx, r, actor.Hex(), id.Hex(), rep.Status)
	uierrors.WriteJSON(w, http.StatusOK, rep)
}
