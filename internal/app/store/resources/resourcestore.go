// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNoTitle = errors.New("title is required")
	errBadURL  = errors.New("url must be a valid http(s) URL")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lesson_resources")}
}

// ListByLesson returns a lesson's resources in insertion order.
func (s *Store) ListByLesson(ctx context.Context, lessonID primitive.ObjectID) ([]models.LessonResource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"lesson_id": lessonID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.LessonResource{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	return out, nil
}

// InsertIfAbsent stores r unless the lesson already has a resource with the
// same title. It reports whether a document was inserted.
func (s *Store) InsertIfAbsent(ctx context.Context, r models.LessonResource) (bool, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	if r.Title == "" {
		return false, errNoTitle
	}
	if !urlutil.IsValidAbsHTTPURL(r.URL) {
		return false, errBadURL
	}
	if r.ImageURL != "" && !urlutil.IsValidAbsHTTPURL(r.ImageURL) {
		return false, errBadURL
	}

	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"lesson_id": r.LessonID, "title": r.Title},
		bson.M{"$setOnInsert": r},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("insert resource %q: %w", r.Title, err)
	}
	return res.UpsertedCount > 0, nil
}
