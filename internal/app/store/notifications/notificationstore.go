// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/inputval"
	"github.com/dalemusser/learnrust/internal/app/system/timezones"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBadChannel  = errors.New("unknown notification channel")
	ErrBadTime     = errors.New("delivery time must be HH:MM")
	ErrBadTimezone = errors.New("unknown time zone")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_notifications")}
}

// ListByUser returns a user's preferences, one per configured channel.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationPreference, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "channel", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.NotificationPreference{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return out, nil
}

// Upsert writes the preference for (user, channel). An empty delivery time
// or timezone falls back to 09:00 UTC.
func (s *Store) Upsert(ctx context.Context, userID primitive.ObjectID, channel string, enabled bool, deliveryTime, timezone string) (models.NotificationPreference, error) {
	channel = strings.ToLower(strings.TrimSpace(channel))
	deliveryTime = strings.TrimSpace(deliveryTime)
	timezone = strings.TrimSpace(timezone)
	if deliveryTime == "" {
		deliveryTime = models.DefaultDeliveryTime
	}
	if timezone == "" {
		timezone = models.DefaultTimezone
	}

	if !models.IsValidChannel(channel) {
		return models.NotificationPreference{}, ErrBadChannel
	}
	if !inputval.IsValidHHMM(deliveryTime) {
		return models.NotificationPreference{}, ErrBadTime
	}
	if !timezones.Valid(timezone) {
		return models.NotificationPreference{}, ErrBadTimezone
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"enabled":       enabled,
			"delivery_time": deliveryTime,
			"timezone":      timezone,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var p models.NotificationPreference
	err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID, "channel": channel}, update, opts).Decode(&p)
	if err != nil {
		return models.NotificationPreference{}, fmt.Errorf("upsert notification: %w", err)
	}
	return p, nil
}

// ListEnabled returns every enabled preference for channel.
func (s *Store) ListEnabled(ctx context.Context, channel string) ([]models.NotificationPreference, error) {
	cur, err := s.c.Find(ctx, bson.M{"channel": channel, "enabled": true})
	if err != nil {
		return nil, fmt.Errorf("list enabled %s: %w", channel, err)
	}
	defer cur.Close(ctx)

	var out []models.NotificationPreference
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode enabled %s: %w", channel, err)
	}
	return out, nil
}

// MarkSent records the local date a reminder went out. It reports false when
// the preference was already marked for that date, which keeps two
// overlapping dispatch runs from both sending.
func (s *Store) MarkSent(ctx context.Context, id primitive.ObjectID, localDate string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "last_sent_on": bson.M{"$ne": localDate}},
		bson.M{"$set": bson.M{"last_sent_on": localDate, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("mark sent: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
