// internal/app/store/progress/progressstore.go
package progressstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/curriculum"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_progress")}
}

// SetCompleted records the completion state of one lesson for a user.
// Marking complete stamps completed_at; marking incomplete clears it. The
// (user, lesson) pair is upserted, so repeated calls overwrite.
func (s *Store) SetCompleted(ctx context.Context, userID, lessonID primitive.ObjectID, dayIndex int, completed bool) (models.Progress, error) {
	now := time.Now().UTC()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	filter := bson.M{"user_id": userID, "lesson_id": lessonID}
	update := bson.M{
		"$set": bson.M{
			"day_index":    dayIndex,
			"completed":    completed,
			"completed_at": completedAt,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var p models.Progress
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		return models.Progress{}, fmt.Errorf("set progress: %w", err)
	}
	return p, nil
}

// ListByUser returns all of a user's progress records ordered by day.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Progress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day_index", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Progress{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return out, nil
}

// Completed returns every lesson the user has finished, indexed by lesson
// id and by day.
func (s *Store) Completed(ctx context.Context, userID primitive.ObjectID) (curriculum.Completions, error) {
	opts := options.Find().SetProjection(bson.M{"lesson_id": 1, "day_index": 1, "completed_at": 1})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "completed": true}, opts)
	if err != nil {
		return curriculum.Completions{}, fmt.Errorf("list completed: %w", err)
	}
	defer cur.Close(ctx)

	out := curriculum.NewCompletions()
	for cur.Next(ctx) {
		var row struct {
			LessonID    primitive.ObjectID `bson:"lesson_id"`
			DayIndex    int                `bson:"day_index"`
			CompletedAt *time.Time         `bson:"completed_at"`
		}
		if err := cur.Decode(&row); err != nil {
			return curriculum.Completions{}, fmt.Errorf("decode completed: %w", err)
		}
		var at time.Time
		if row.CompletedAt != nil {
			at = *row.CompletedAt
		}
		out.Add(row.LessonID.Hex(), row.DayIndex, at)
	}
	return out, cur.Err()
}
