// internal/app/store/telegram/telegramstore.go
package telegramstore

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Activation codes are six digits.
const (
	MinCode = 100000
	MaxCode = 999999
)

// ErrInvalidCode is returned by Activate when no pending link has the code.
var ErrInvalidCode = errors.New("invalid or expired activation code")

type Store struct {
	c *mongo.Collection
	// code is swapped in tests for deterministic codes.
	code func() int
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:    db.Collection("user_telegram"),
		code: func() int { return MinCode + rand.IntN(MaxCode-MinCode+1) },
	}
}

// Get returns the user's link. found is false when the user never started
// linking.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (models.TelegramLink, bool, error) {
	var l models.TelegramLink
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TelegramLink{}, false, nil
	}
	if err != nil {
		return models.TelegramLink{}, false, err
	}
	return l, true, nil
}

// IssueCode (re)starts linking for a user: a fresh code, status pending and
// no chat. A code already held by another pending link is redrawn.
func (s *Store) IssueCode(ctx context.Context, userID primitive.ObjectID) (models.TelegramLink, error) {
	code, err := s.freeCode(ctx)
	if err != nil {
		return models.TelegramLink{}, err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"activation_code":  code,
			"status":           models.TelegramPending,
			"telegram_chat_id": nil,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var l models.TelegramLink
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&l); err != nil {
		return models.TelegramLink{}, fmt.Errorf("issue telegram code: %w", err)
	}
	return l, nil
}

func (s *Store) freeCode(ctx context.Context) (int, error) {
	for i := 0; i < 5; i++ {
		code := s.code()
		n, err := s.c.CountDocuments(ctx, bson.M{"activation_code": code, "status": models.TelegramPending})
		if err != nil {
			return 0, fmt.Errorf("check telegram code: %w", err)
		}
		if n == 0 {
			return code, nil
		}
	}
	return 0, errors.New("could not allocate a free activation code")
}

// Activate connects the pending link holding code to chatID.
func (s *Store) Activate(ctx context.Context, code int, chatID int64) (models.TelegramLink, error) {
	if code < MinCode || code > MaxCode {
		return models.TelegramLink{}, ErrInvalidCode
	}
	update := bson.M{"$set": bson.M{
		"telegram_chat_id": chatID,
		"status":           models.TelegramConnected,
		"updated_at":       time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var l models.TelegramLink
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"activation_code": code, "status": models.TelegramPending},
		update, opts,
	).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TelegramLink{}, ErrInvalidCode
	}
	if err != nil {
		return models.TelegramLink{}, fmt.Errorf("activate telegram: %w", err)
	}
	return l, nil
}

// Delete unlinks the user's Telegram account.
func (s *Store) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// ListConnected returns connected links for the given users, keyed by user.
func (s *Store) ListConnected(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]models.TelegramLink, error) {
	out := make(map[primitive.ObjectID]models.TelegramLink)
	if len(userIDs) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{
		"user_id":          bson.M{"$in": userIDs},
		"status":           models.TelegramConnected,
		"telegram_chat_id": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, fmt.Errorf("list telegram links: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var l models.TelegramLink
		if err := cur.Decode(&l); err != nil {
			return nil, fmt.Errorf("decode telegram link: %w", err)
		}
		out[l.UserID] = l
	}
	return out, cur.Err()
}
