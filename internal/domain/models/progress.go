// internal/domain/models/progress.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is one (user, lesson) completion record. The pair is unique.
// DayIndex is copied from the lesson when the record is written so progress
// can be read without joining lessons.
type Progress struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	LessonID    primitive.ObjectID `bson:"lesson_id" json:"lesson_id"`
	DayIndex    int                `bson:"day_index" json:"day_index"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *time.Time         `bson:"completed_at" json:"completed_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
