package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/learnrust/internal/app/system/auth"
	"github.com/dalemusser/learnrust/internal/app/system/normalize"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh user data on each request.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchSessionUser reloads a user by hex id. Unknown, malformed and disabled
// ids report ok=false; a database error is returned so the caller can keep
// the cached identity.
func (f *Fetcher) FetchSessionUser(ctx context.Context, userID string) (*auth.SessionUser, bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"email":     1,
		"role":      1,
		"status":    1,
	})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if normalize.Status(u.Status) == models.StatusDisabled {
		return nil, false, nil
	}

	return SessionUserOf(&u), true, nil
}

// SessionUserOf builds the session identity for u.
func SessionUserOf(u *models.User) *auth.SessionUser {
	return &auth.SessionUser{
		ID:      u.ID.Hex(),
		Name:    u.FullName,
		LoginID: u.Email,
		Role:    normalize.Role(u.Role),
	}
}
