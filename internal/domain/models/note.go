// internal/domain/models/note.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownLessonTitle labels notes whose lesson no longer exists.
const UnknownLessonTitle = "Unknown Lesson"

// LessonNote is a learner's private note on a lesson. One per (user, lesson).
type LessonNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	LessonID  primitive.ObjectID `bson:"lesson_id" json:"lesson_id"`
	NoteText  string             `bson:"note_text" json:"note_text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NoteWithLesson is a note joined with the lesson it belongs to.
type NoteWithLesson struct {
	LessonNote  `bson:",inline"`
	LessonTitle string `bson:"lesson_title" json:"lesson_title"`
	DayIndex    int    `bson:"day_index" json:"day_index"`
	TopicSlug   string `bson:"topic_slug" json:"topic_slug"`
}
