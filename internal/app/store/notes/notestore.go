// internal/app/store/notes/notestore.go
package notestore

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

// MaxNoteLength bounds a note in characters.
const MaxNoteLength = 10000

var (
	ErrEmpty   = errors.New("note text is required")
	ErrTooLong = fmt.Errorf("note must be at most %d characters", MaxNoteLength)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lesson_notes")}
}

// Get returns the user's note on a lesson. found is false when there is none.
func (s *Store) Get(ctx context.Context, userID, lessonID primitive.ObjectID) (models.LessonNote, bool, error) {
	var n models.LessonNote
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.LessonNote{}, false, nil
	}
	if err != nil {
		return models.LessonNote{}, false, err
	}
	return n, true, nil
}

// Upsert saves text as the user's note on a lesson. Text is trimmed and
// stored as typed; rendering is the reader's concern.
func (s *Store) Upsert(ctx context.Context, userID, lessonID primitive.ObjectID, text string) (models.LessonNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.LessonNote{}, ErrEmpty
	}
	if len([]rune(text)) > MaxNoteLength {
		return models.LessonNote{}, ErrTooLong
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{"note_text": text, "updated_at": now},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var n models.LessonNote
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID, "lesson_id": lessonID}, update, opts).Decode(&n); err != nil {
		return models.LessonNote{}, fmt.Errorf("upsert note: %w", err)
	}
	return n, nil
}

// Delete removes the user's note on a lesson and reports whether one existed.
func (s *Store) Delete(ctx context.Context, userID, lessonID primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "lesson_id": lessonID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListWithLessons returns all of a user's notes joined with their lesson,
// newest first. Notes whose lesson is gone are labelled UnknownLessonTitle.
func (s *Store) ListWithLessons(ctx context.Context, userID primitive.ObjectID) ([]models.NoteWithLesson, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "lessons",
			"localField":   "lesson_id",
			"foreignField": "_id",
			"as":           "lesson",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$lesson", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"lesson_title": bson.M{"$ifNull": bson.A{"$lesson.title", models.UnknownLessonTitle}},
			"day_index":    bson.M{"$ifNull": bson.A{"$lesson.day_index", 0}},
			"topic_slug":   bson.M{"$ifNull": bson.A{"$lesson.topic_slug", ""}},
		}}},
		{{Key: "$project", Value: bson.M{"lesson": 0}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.NoteWithLesson{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return out, nil
}
