// internal/app/features/calendar/handler.go
package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	usersettingsstore "github.com/dalemusser/learnrust/internal/app/store/usersettings"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/ics"
	"github.com/dalemusser/learnrust/internal/app/system/learner"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Source interface {
	Current(ctx context.Context) *catalog.Snapshot
}

// Handler exports the learner's schedule as iCalendar.
type Handler struct {
	Catalog  Source
	Settings learner.SettingsGetter
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Now      func() time.Time
	// Clock stamps DTSTAMP.
	Clock func() time.Time
}

func NewHandler(db *mongo.Database, cat Source, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:  cat,
		Settings: usersettingsstore.New(db),
		Log:      logger,
		ErrLog:   errLog,
		Now:      schedule.Today,
		Clock:    time.Now,
	}
}

// DayFilename names the single-event download for day.
func DayFilename(day int) string { return fmt.Sprintf("rust_day_%d.ics", day) }

// ServeICS handles GET /api/calendar.ics and GET /api/calendar.ics?day=N.
// Days are dated from the user's start date when one is set and from the
// roster labels otherwise.
func (h *Handler) ServeICS(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	items, filename, ok := h.selectItems(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	plan, err := learner.Load(ctx, h.Settings, uid, h.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "calendar: load settings", err, "Failed to load your settings.")
		return
	}
	var start *time.Time
	if plan.Configured {
		start = &plan.StartDate
	}

	events := ics.EventsFor(items, start)
	if len(events) == 0 {
		uierrors.NotFound(w, "No calendar date for this day.")
		return
	}

	body := ics.Generate(events, h.Clock())
	h.Log.Debug("calendar exported",
		zap.String("user_id", uid.Hex()),
		zap.Int("events", len(events)),
		zap.Bool("start_date", plan.Configured))

	w.Header().Set("Content-Type", ics.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// selectItems resolves ?day= to the items to export, writing the error
// response itself when the day is unusable.
func (h *Handler) selectItems(w http.ResponseWriter, r *http.Request) ([]curriculum.Item, string, bool) {
	snap := h.Catalog.Current(r.Context())
	if snap.Degraded() {
		h.Log.Warn("calendar: exporting from roster only", zap.Error(snap.FetchErr))
	}

	raw := query.Get(r, "day")
	if raw == "" {
		return snap.Curriculum.Items(), ics.Filename, true
	}
	day, err := strconv.Atoi(raw)
	if err != nil {
		uierrors.Validation(w, "Day must be a number.", map[string]string{"day": "Day must be a number."})
		return nil, "", false
	}
	it, found := snap.Curriculum.ByDayIndex(day)
	if !found {
		uierrors.NotFound(w, "Day not found.")
		return nil, "", false
	}
	return []curriculum.Item{it}, DayFilename(day), true
}
