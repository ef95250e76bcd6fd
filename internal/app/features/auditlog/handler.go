// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	"github.com/dalemusser/learnrust/internal/app/store/audit"
	"github.com/dalemusser/learnrust/internal/app/system/paging"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Audit  *audit.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Audit:  audit.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

// ListResponse is the body of GET /api/admin/audit.
type ListResponse struct {
	Events     []audit.Event `json:"events"`
	Total      int64         `json:"total"`
	Categories []string      `json:"categories"`
	Range      paging.Range  `json:"range"`
}

// ServeList handles GET /api/admin/audit. Filters: category, event_type,
// user_id, failed=1, start_date and end_date (YYYY-MM-DD, UTC, inclusive).
// Paging uses the 1-based start parameter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseFilter(r)
	if msg != "" {
		uierrors.Write(w, http.StatusBadRequest, msg)
		return
	}
	start := paging.ParseStart(r)
	filter.Limit = paging.LimitPlusOne()
	filter.Offset = paging.Skip(start)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "audit: query", err, "Failed to load the audit log.")
		return
	}
	total, err := h.Audit.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "audit: count", err, "Failed to load the audit log.")
		return
	}
	hasNext := paging.TrimPage(&events)

	uierrors.WriteJSON(w, http.StatusOK, ListResponse{
		Events:     events,
		Total:      total,
		Categories: audit.Categories,
		Range:      paging.ComputeRange(start, len(events), hasNext),
	})
}

func parseFilter(r *http.Request) (audit.QueryFilter, string) {
	f := audit.QueryFilter{
		Category:   strings.TrimSpace(query.Get(r, "category")),
		EventType:  strings.TrimSpace(query.Get(r, "event_type")),
		FailedOnly: query.Get(r, "failed") == "1",
	}

	if s := strings.TrimSpace(query.Get(r, "user_id")); s != "" {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return f, "user_id is not a valid id."
		}
		f.UserID = &id
	}
	if s := strings.TrimSpace(query.Get(r, "start_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, "start_date must be a date in YYYY-MM-DD form."
		}
		f.StartTime = &t
	}
	if s := strings.TrimSpace(query.Get(r, "end_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, "end_date must be a date in YYYY-MM-DD form."
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.EndTime = &end
	}
	return f, ""
}
