// Package catalog caches the merged curriculum. A snapshot is rebuilt from
// the lesson store and swapped in whole, so readers never see a partial
// curriculum.
package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.uber.org/zap"
)

// degradedRetry is how long a degraded snapshot is served before the next
// read retries the fetch.
const degradedRetry = 30 * time.Second

// LessonSource lists the summaries of all stored lessons.
type LessonSource interface {
	ListSummaries(ctx context.Context) ([]models.LessonSummary, error)
}

// Snapshot is one build of the curriculum.
type Snapshot struct {
	Curriculum curriculum.Curriculum
	// FetchErr is set when the lesson fetch failed. The curriculum is then
	// built from the roster alone.
	FetchErr error
	LoadedAt time.Time
}

// Degraded reports whether the snapshot was built without lesson data.
func (s *Snapshot) Degraded() bool { return s != nil && s.FetchErr != nil }

// Catalog holds the current snapshot.
type Catalog struct {
	src    LessonSource
	roster *curriculum.Roster
	maxAge time.Duration
	log    *zap.Logger
	now    func() time.Time

	cur atomic.Pointer[Snapshot]
}

// New builds an empty catalog. The first Current call loads it. maxAge <= 0
// disables age-based refresh.
func New(src LessonSource, roster *curriculum.Roster, maxAge time.Duration, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		src:    src,
		roster: roster,
		maxAge: maxAge,
		log:    logger,
		now:    time.Now,
	}
}

// Refresh fetches lessons, rebuilds, and publishes a new snapshot. It never
// fails: a fetch error yields a roster-only snapshot with FetchErr set.
//
// The snapshot is shared by every reader, so the fetch runs detached from
// ctx's cancellation under its own timeout. ctx only carries values.
func (c *Catalog) Refresh(ctx context.Context) *Snapshot {
	start := c.now()
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Medium())
	defer cancel()
	lessons, err := c.src.ListSummaries(fetchCtx)
	remote := map[int]models.LessonSummary{}
	if err != nil {
		c.log.Warn("lesson fetch failed; serving roster only", zap.Error(err))
	} else {
		remote = curriculum.IndexByDay(lessons)
	}

	snap := &Snapshot{
		Curriculum: curriculum.Build(c.roster, remote),
		FetchErr:   err,
		LoadedAt:   c.now(),
	}
	c.cur.Store(snap)

	c.log.Debug("curriculum refreshed",
		zap.Int("lessons", len(remote)),
		zap.Bool("degraded", err != nil),
		zap.Duration("took", snap.LoadedAt.Sub(start)))
	return snap
}

// Current returns the cached snapshot, refreshing first when there is none
// or it is older than maxAge. A degraded snapshot is retried sooner.
func (c *Catalog) Current(ctx context.Context) *Snapshot {
	snap := c.cur.Load()
	if snap == nil {
		return c.Refresh(ctx)
	}
	age := c.now().Sub(snap.LoadedAt)
	if (snap.Degraded() && age > degradedRetry) || (c.maxAge > 0 && age > c.maxAge) {
		return c.Refresh(ctx)
	}
	return snap
}

// Peek returns the cached snapshot without loading. It may be nil.
func (c *Catalog) Peek() *Snapshot { return c.cur.Load() }
