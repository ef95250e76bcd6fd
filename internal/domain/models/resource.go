// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LessonResource is an external link (article, video, book chapter) attached
// to a lesson.
type LessonResource struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LessonID primitive.ObjectID `bson:"lesson_id" json:"lesson_id"`
	Title    string             `bson:"title" json:"title"`
	URL      string             `bson:"url" json:"url"`
	ImageURL string             `bson:"image_url,omitempty" json:"image_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
