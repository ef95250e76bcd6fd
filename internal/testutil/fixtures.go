package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// TestPassword is the password of every user created by CreateUser.
const TestPassword = "correct-horse"

// CreateUser inserts an active password user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash test password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: string(hash),
		AuthMethod:   models.AuthMethodPassword,
		Role:         role,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin creates an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin)
}

// CreateMember creates a member user.
func (f *Fixtures) CreateMember(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleMember)
}

// CreateDisabledUser creates a member whose account is disabled.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	u := f.CreateMember(ctx, fullName, email)
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		map[string]any{"$set": map[string]any{"status": models.StatusDisabled}})
	if err != nil {
		f.t.Fatalf("failed to disable test user: %v", err)
	}
	u.Status = models.StatusDisabled
	return u
}

// CreateLesson inserts an authored lesson for day.
func (f *Fixtures) CreateLesson(ctx context.Context, day int, title, slug string) models.Lesson {
	f.t.Helper()

	l := models.Lesson{
		ID:                   primitive.NewObjectID(),
		DayIndex:             day,
		Title:                title,
		TopicSlug:            slug,
		EstimatedTimeMinutes: 10,
		Theory:               "Theory for " + title,
		CoreExample:          &models.CoreExample{Code: "fn main() {}", Explanation: "Entry point."},
		PitfallExample:       &models.PitfallExample{Code: "let x = 5; x = 6;", ErrorHint: "cannot assign twice"},
		Challenge:            &models.Challenge{Template: "fn main() {\n}", Instructions: "Print hello.", ExpectedOutput: "hello"},
		CreatedAt:            time.Now().UTC(),
	}
	if _, err := f.db.Collection("lessons").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test lesson: %v", err)
	}
	return l
}

// CreateResource attaches a resource to a lesson.
func (f *Fixtures) CreateResource(ctx context.Context, lessonID primitive.ObjectID, title, url string) models.LessonResource {
	f.t.Helper()

	r := models.LessonResource{
		ID:        primitive.NewObjectID(),
		LessonID:  lessonID,
		Title:     title,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("lesson_resources").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}
	return r
}

// SetStartDate stores a schedule for userID.
func (f *Fixtures) SetStartDate(ctx context.Context, userID primitive.ObjectID, startDate string, allowFuture bool) {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.UserSettings{
		ID:                 primitive.NewObjectID(),
		UserID:             userID,
		StartDate:          startDate,
		AllowFutureLessons: allowFuture,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := f.db.Collection("user_settings").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test settings: %v", err)
	}
}
