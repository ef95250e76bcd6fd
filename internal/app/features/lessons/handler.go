// internal/app/features/lessons/handler.go
package lessons

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	resourcestore "github.com/dalemusser/learnrust/internal/app/store/resources"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/learner"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MsgLoadFailed is reported when the store failed and fallback content is
// shown instead.
const MsgLoadFailed = "Failed to load lesson."

// ErrStartDateRequired is the error body when no schedule is configured.
const ErrStartDateRequired = "start_date_required"

// Source yields the current curriculum snapshot.
type Source interface {
	Current(ctx context.Context) *catalog.Snapshot
}

// ResourceLister lists a lesson's resources.
type ResourceLister interface {
	ListByLesson(ctx context.Context, lessonID primitive.ObjectID) ([]models.LessonResource, error)
}

// Handler serves lesson content to signed-in learners.
type Handler struct {
	Resolver  *Resolver
	Resources ResourceLister
	Settings  learner.SettingsGetter
	Catalog   Source
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Now       func() time.Time
}

// NewHandler wires the handler to the stores in db.
func NewHandler(db *mongo.Database, cat Source, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Resolver:  &Resolver{Lessons: lessonstore.New(db), Log: logger},
		Resources: resourcestore.New(db),
		Settings:  usersettingsstore.New(db),
		Catalog:   cat,
		Log:       logger,
		ErrLog:    errLog,
		Now:       schedule.Today,
	}
}

// Response is the body of the lesson endpoints. Exactly one of Lesson and
// Placeholder is set on success; neither is set when the day is locked.
type Response struct {
	Day         int                     `json:"day"`
	LessonID    string                  `json:"lesson_id,omitempty"`
	Kind        string                  `json:"kind,omitempty"`
	Lesson      *models.FullLesson      `json:"lesson,omitempty"`
	Placeholder *models.Placeholder     `json:"placeholder,omitempty"`
	Locked      bool                    `json:"locked"`
	UnlockDate  string                  `json:"unlock_date,omitempty"`
	Resources   []models.LessonResource `json:"resources"`
	Error       string                  `json:"error,omitempty"`
}

// plan loads the learner's schedule and writes the error response itself
// when the caller cannot continue.
func (h *Handler) plan(ctx context.Context, w http.ResponseWriter, r *http.Request) (learner.Plan, bool) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return learner.Plan{}, false
	}
	p, err := learner.Load(ctx, h.Settings, uid, h.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lessons: load settings", err, "Failed to load your settings.")
		return learner.Plan{}, false
	}
	if !p.Configured {
		uierrors.Write(w, http.StatusConflict, ErrStartDateRequired)
		return learner.Plan{}, false
	}
	return p, true
}

func (h *Handler) writeLocked(w http.ResponseWriter, day int, plan learner.Plan) {
	uierrors.WriteJSON(w, http.StatusForbidden, Response{
		Day:        day,
		Locked:     true,
		UnlockDate: plan.Date(day),
		Resources:  []models.LessonResource{},
		Error:      "This lesson is locked until " + plan.Date(day) + ".",
	})
}

// ServeDay handles GET /api/lessons/day/{day}.
func (h *Handler) ServeDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		uierrors.Write(w, http.StatusBadRequest, "Day must be a number.")
		return
	}
	if day < 1 || day > schedule.TotalDays {
		uierrors.NotFound(w, "No such day.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	plan, ok := h.plan(ctx, w, r)
	if !ok {
		return
	}
	if plan.Locked(day) {
		h.writeLocked(w, day, plan)
		return
	}
	h.write(ctx, w, h.Resolver.ByDay(ctx, day), plan)
}

// ServeSlug handles GET /api/lessons/slug/{slug}.
func (h *Handler) ServeSlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		uierrors.NotFound(w, "No such lesson.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	plan, ok := h.plan(ctx, w, r)
	if !ok {
		return
	}
	snap := h.Catalog.Current(ctx)
	res, found := h.Resolver.BySlug(ctx, slug, &snap.Curriculum)
	if !found {
		uierrors.NotFound(w, "No such lesson.")
		return
	}
	if plan.Locked(res.Day) {
		h.writeLocked(w, res.Day, plan)
		return
	}
	h.write(ctx, w, res, plan)
}

func (h *Handler) write(ctx context.Context, w http.ResponseWriter, res Resolution, plan learner.Plan) {
	resp := Response{
		Day:        res.Day,
		Kind:       res.Content.Kind(),
		UnlockDate: plan.Date(res.Day),
		Resources:  []models.LessonResource{},
	}
	if res.StoreErr != nil {
		resp.Error = MsgLoadFailed
	}

	switch c := res.Content.(type) {
	case models.FullLesson:
		resp.Lesson = &c
	case models.Placeholder:
		resp.Placeholder = &c
	}

	if !res.LessonID.IsZero() {
		resp.LessonID = res.LessonID.Hex()
		list, err := h.Resources.ListByLesson(ctx, res.LessonID)
		if err != nil {
			h.Log.Warn("lessons: list resources", zap.String("lesson_id", resp.LessonID), zap.Error(err))
		} else {
			resp.Resources = list
		}
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
