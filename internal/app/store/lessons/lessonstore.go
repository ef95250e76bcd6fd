// internal/app/store/lessons/lessonstore.go
package lessonstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no lesson matches.
var ErrNotFound = errors.New("lesson not found")

var errBadDay = errors.New("day_index must be positive")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lessons")}
}

// ListSummaries returns every lesson's summary fields ordered by day.
func (s *Store) ListSummaries(ctx context.Context) ([]models.LessonSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "day_index", Value: 1}}).
		SetProjection(bson.M{
			"_id":                    1,
			"day_index":              1,
			"title":                  1,
			"topic_slug":             1,
			"estimated_time_minutes": 1,
		})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer cur.Close(ctx)

	var rows []models.Lesson
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	out := make([]models.LessonSummary, 0, len(rows))
	for _, l := range rows {
		out = append(out, l.Summary())
	}
	return out, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Lesson, error) {
	var l models.Lesson
	if err := s.c.FindOne(ctx, filter).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetByDayIndex loads the lesson for a curriculum day.
func (s *Store) GetByDayIndex(ctx context.Context, day int) (*models.Lesson, error) {
	return s.findOne(ctx, bson.M{"day_index": day})
}

// GetBySlug loads the first lesson (by day) carrying slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	var l models.Lesson
	opts := options.FindOne().SetSort(bson.D{{Key: "day_index", Value: 1}})
	err := s.c.FindOne(ctx, bson.M{"topic_slug": strings.TrimSpace(slug)}, opts).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID loads a lesson by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// InsertIfAbsent stores l unless a lesson already exists for its day.
// It reports whether a document was inserted.
func (s *Store) InsertIfAbsent(ctx context.Context, l models.Lesson) (bool, error) {
	if l.DayIndex < 1 {
		return false, errBadDay
	}
	l.ID = primitive.NewObjectID()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"day_index": l.DayIndex},
		bson.M{"$setOnInsert": l},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("insert lesson day %d: %w", l.DayIndex, err)
	}
	return res.UpsertedCount > 0, nil
}
