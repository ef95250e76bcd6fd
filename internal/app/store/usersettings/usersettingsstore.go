// internal/app/store/usersettings/usersettingsstore.go
package usersettingsstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the user_settings collection, one document per
// user.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_settings")}
}

// Get returns the settings for userID. found is false when the user has not
// configured a schedule yet.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (models.UserSettings, bool, error) {
	var us models.UserSettings
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&us)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserSettings{UserID: userID}, false, nil
	}
	if err != nil {
		return models.UserSettings{}, false, err
	}
	return us, true, nil
}

// SaveStartDate sets the learning start date (YYYY-MM-DD).
func (s *Store) SaveStartDate(ctx context.Context, userID primitive.ObjectID, startDate string) error {
	if _, err := schedule.ParseStartDate(startDate); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	return s.upsert(ctx, userID, bson.M{"start_date": startDate})
}

// SetAllowFuture toggles early access to locked lessons.
func (s *Store) SetAllowFuture(ctx context.Context, userID primitive.ObjectID, allow bool) error {
	return s.upsert(ctx, userID, bson.M{"allow_future_lessons": allow})
}

func (s *Store) upsert(ctx context.Context, userID primitive.ObjectID, set bson.M) error {
	now := time.Now().UTC()
	set["updated_at"] = now
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	return err
}
