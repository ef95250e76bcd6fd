// internal/domain/models/usersettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSettings holds a learner's schedule. A missing document means no
// schedule has been configured yet.
type UserSettings struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	StartDate          string             `bson:"start_date" json:"start_date"` // YYYY-MM-DD
	AllowFutureLessons bool               `bson:"allow_future_lessons" json:"allow_future_lessons"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
