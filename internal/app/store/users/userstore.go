package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/normalize"
	"github.com/dalemusser/learnrust/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrInvalidCredentials covers unknown emails, wrong passwords and
	// accounts without a password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDisabled is returned by Authenticate for disabled accounts.
	ErrDisabled  = errors.New("account is disabled")
	errBadRole   = errors.New(`role must be "admin"|"member"`)
	errBadMethod = errors.New(`auth_method must be "password"|"google"`)
	errNoSecret  = errors.New("password users need a password")
)

// NewUser is the input to Create. Password is hashed and never stored.
type NewUser struct {
	FullName   string
	Email      string
	Password   string
	AuthMethod string
	GoogleID   string
	Role       string
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, in NewUser) (models.User, error) {
	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   normalize.Name(in.FullName),
		Email:      normalize.Email(in.Email),
		AuthMethod: normalize.AuthMethod(in.AuthMethod),
		Role:       normalize.Role(in.Role),
		Status:     models.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if u.FullName == "" {
		u.FullName = u.Email
	}
	u.FullNameCI = text.Fold(u.FullName)
	if u.AuthMethod == "" {
		u.AuthMethod = models.AuthMethodPassword
	}
	if u.Role == "" {
		u.Role = models.RoleMember
	}

	if u.Role != models.RoleAdmin && u.Role != models.RoleMember {
		return models.User{}, errBadRole
	}
	if !models.IsValidAuthMethod(u.AuthMethod) {
		return models.User{}, errBadMethod
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	} else if u.AuthMethod == models.AuthMethodPassword {
		return models.User{}, errNoSecret
	}
	if in.GoogleID != "" {
		gid := in.GoogleID
		u.GoogleID = &gid
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleID looks up the user linked to a Google subject id.
func (s *Store) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// LinkGoogleID attaches a Google subject id to an existing account.
func (s *Store) LinkGoogleID(ctx context.Context, id primitive.ObjectID, googleID string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"google_id":  googleID,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return fmt.Errorf("google account already linked to another user: %w", err)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Authenticate checks an email and password pair.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if normalize.Status(u.Status) == models.StatusDisabled {
		return nil, ErrDisabled
	}
	return u, nil
}

// EnsureAdmin promotes the account with email to admin. It reports whether a
// matching account existed. Accounts are never created here: the admin signs
// up like anyone else and is promoted on the next start.
func (s *Store) EnsureAdmin(ctx context.Context, email string) (bool, error) {
	email = normalize.Email(email)
	if email == "" {
		return false, nil
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": models.RoleAdmin, "status": models.StatusActive, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
