// internal/app/features/curriculum/handler.go
package curriculum

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/learner"
	"github.com/dalemusser/learnrust/internal/app/system/normalize"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Messages placed in the error field when a fetch degrades.
const (
	MsgLessonsUnavailable  = "Failed to load lessons."
	MsgSettingsUnavailable = "Failed to load your settings."
)

// Source yields the current curriculum snapshot.
type Source interface {
	Current(ctx context.Context) *catalog.Snapshot
}

// Handler serves the merged curriculum with per-user dates and lock state.
type Handler struct {
	Catalog  Source
	Settings learner.SettingsGetter
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Now      func() time.Time
}

// NewHandler wires the handler to the catalog and the settings store in db.
func NewHandler(db *mongo.Database, cat Source, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:  cat,
		Settings: usersettingsstore.New(db),
		Log:      logger,
		ErrLog:   errLog,
		Now:      schedule.Today,
	}
}

// ItemView is a curriculum item as seen by one user.
type ItemView struct {
	curriculum.Item
	// Date is the calendar date of the day (YYYY-MM-DD) once a start date
	// is set.
	Date   string             `json:"date,omitempty"`
	Status schedule.DayStatus `json:"status,omitempty"`
	Locked bool               `json:"locked"`
}

// ListResponse is the body of GET /api/curriculum.
type ListResponse struct {
	Items        []ItemView `json:"items"`
	Total        int        `json:"total"`
	ContentCount int        `json:"content_count"`
	HasStartDate bool       `json:"has_start_date"`
	CurrentDay   int        `json:"current_day,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// DayResponse is the body of the single-day endpoints.
type DayResponse struct {
	Item  ItemView          `json:"item"`
	Phase *curriculum.Phase `json:"phase,omitempty"`
	Error string            `json:"error,omitempty"`
}

// PhaseView is a phase with its item and content counts.
type PhaseView struct {
	curriculum.Phase
	Days         int `json:"days"`
	ContentCount int `json:"content_count"`
}

// view loads the snapshot and the user's plan. Failures on either side are
// logged and reported through errMsg; the caller still gets a usable
// curriculum and plan.
func (h *Handler) view(ctx context.Context, r *http.Request) (*catalog.Snapshot, learner.Plan, string) {
	snap := h.Catalog.Current(ctx)
	var errMsg string
	if snap.Degraded() {
		errMsg = MsgLessonsUnavailable
	}

	plan := learner.Plan{CurrentDay: 1}
	if uid, ok := authz.UserID(r); ok {
		p, err := learner.Load(ctx, h.Settings, uid, h.Now())
		if err != nil {
			h.Log.Warn("curriculum: load settings", zap.String("user_id", uid.Hex()), zap.Error(err))
			if errMsg == "" {
				errMsg = MsgSettingsUnavailable
			}
		} else {
			plan = p
		}
	}
	return snap, plan, errMsg
}

func itemView(it curriculum.Item, plan learner.Plan) ItemView {
	return ItemView{
		Item:   it,
		Date:   plan.Date(it.DayIndex),
		Status: plan.Status(it.DayIndex),
		Locked: plan.Locked(it.DayIndex),
	}
}

// ServeList handles GET /api/curriculum?q=&phase=&concept=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap, plan, errMsg := h.view(ctx, r)

	items := snap.Curriculum.Items()
	items = curriculum.FilterByPhase(items, normalize.Filter(query.Get(r, "phase")))
	items = curriculum.FilterByConcept(items, normalize.Filter(query.Get(r, "concept")))
	items = curriculum.Search(items, query.Get(r, "q"))

	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, itemView(it, plan))
	}

	resp := ListResponse{
		Items:        views,
		Total:        len(views),
		ContentCount: snap.Curriculum.ContentCount(),
		HasStartDate: plan.Configured,
		Error:        errMsg,
	}
	if plan.Configured {
		resp.CurrentDay = plan.Today()
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// ServeConcepts handles GET /api/curriculum/concepts.
func (h *Handler) ServeConcepts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap := h.Catalog.Current(ctx)
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"concepts": snap.Curriculum.Concepts()})
}

// ServePhases handles GET /api/curriculum/phases.
func (h *Handler) ServePhases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap := h.Catalog.Current(ctx)
	phases := curriculum.Phases()
	out := make([]PhaseView, 0, len(phases))
	for _, p := range phases {
		items := snap.Curriculum.ByPhase(p.Number)
		pv := PhaseView{Phase: p, Days: len(items)}
		for _, it := range items {
			if it.HasContent {
				pv.ContentCount++
			}
		}
		out = append(out, pv)
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"phases": out})
}

// ServeToday handles GET /api/curriculum/today. It needs a start date.
func (h *Handler) ServeToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap, plan, errMsg := h.view(ctx, r)
	if !plan.Configured {
		if errMsg == MsgSettingsUnavailable {
			uierrors.Write(w, http.StatusServiceUnavailable, errMsg)
			return
		}
		uierrors.Write(w, http.StatusConflict, "start_date_required")
		return
	}
	it, _ := snap.Curriculum.ByDayIndex(plan.Today())
	h.writeDay(w, it, plan, errMsg)
}

// ServeDay handles GET /api/curriculum/days/{day}.
func (h *Handler) ServeDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		uierrors.Write(w, http.StatusBadRequest, "Day must be a number.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap, plan, errMsg := h.view(ctx, r)
	it, ok := snap.Curriculum.ByDayIndex(day)
	if !ok {
		uierrors.NotFound(w, "No such day.")
		return
	}
	h.writeDay(w, it, plan, errMsg)
}

// ServeSlug handles GET /api/curriculum/slugs/{slug}.
func (h *Handler) ServeSlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	snap, plan, errMsg := h.view(ctx, r)
	it, ok := snap.Curriculum.BySlug(slug)
	if !ok {
		uierrors.NotFound(w, "No such topic.")
		return
	}
	h.writeDay(w, it, plan, errMsg)
}

func (h *Handler) writeDay(w http.ResponseWriter, it curriculum.Item, plan learner.Plan, errMsg string) {
	resp := DayResponse{Item: itemView(it, plan), Error: errMsg}
	if p, ok := curriculum.PhaseInfo(it.Phase); ok {
		resp.Phase = &p
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
