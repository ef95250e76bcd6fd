// internal/app/features/lessons/resolver.go
package lessons

import (
	"context"
	"errors"

	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LessonGetter reads stored lessons.
type LessonGetter interface {
	GetByDayIndex(ctx context.Context, day int) (*models.Lesson, error)
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
}

// Resolution is the content chosen for one day.
type Resolution struct {
	Day int
	// LessonID is zero unless the content came from the store.
	LessonID primitive.ObjectID
	Content  models.LessonContent
	// StoreErr is set when the store failed and a fallback was used.
	StoreErr error
}

// Resolver picks a day's content: the stored lesson, else the built-in
// sample, else the placeholder.
type Resolver struct {
	Lessons LessonGetter
	Log     *zap.Logger
}

// ByDay resolves content for day.
func (r *Resolver) ByDay(ctx context.Context, day int) Resolution {
	l, err := r.Lessons.GetByDayIndex(ctx, day)
	return r.resolve(day, l, err)
}

// BySlug resolves content for slug. The day comes from the stored lesson or,
// failing that, from the curriculum. ok is false when neither knows the slug.
func (r *Resolver) BySlug(ctx context.Context, slug string, cur *curriculum.Curriculum) (res Resolution, ok bool) {
	l, err := r.Lessons.GetBySlug(ctx, slug)
	if err == nil {
		return r.resolve(l.DayIndex, l, nil), true
	}
	it, found := cur.BySlug(slug)
	if !found {
		if !errors.Is(err, lessonstore.ErrNotFound) {
			r.Log.Warn("lesson lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		return Resolution{}, false
	}
	return r.resolve(it.DayIndex, nil, err), true
}

func (r *Resolver) resolve(day int, l *models.Lesson, err error) Resolution {
	res := Resolution{Day: day}
	switch {
	case err == nil && l != nil:
		res.LessonID = l.ID
		res.Content = l.Content()
		return res
	case err != nil && !errors.Is(err, lessonstore.ErrNotFound):
		r.Log.Warn("lesson lookup failed; using fallback", zap.Int("day", day), zap.Error(err))
		res.StoreErr = err
	}
	if s, ok := Sample(day); ok {
		res.Content = s
	} else {
		res.Content = models.DefaultPlaceholder
	}
	return res
}
