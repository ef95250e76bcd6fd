// internal/app/store/reports/reportstore.go
package reportstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnrust/internal/app/system/paging"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxMessageLength bounds a report message in characters.
const MaxMessageLength = 2000

var (
	ErrBadReportType = errors.New("unknown report type")
	ErrBadStatus     = errors.New(`status must be "open"|"resolved"|"dismissed"`)
	ErrEmptyMessage  = errors.New("message is required")
	ErrTooLong       = fmt.Errorf("message must be at most %d characters", MaxMessageLength)
	ErrNotFound      = errors.New("report not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lesson_reports")}
}

// Create files a new open report. Markup is stripped from the message.
func (s *Store) Create(ctx context.Context, r models.LessonReport) (models.LessonReport, error) {
	r.ReportType = strings.TrimSpace(r.ReportType)
	r.Message = strings.TrimSpace(htmlsanitize.StripTags(r.Message))
	if !models.IsValidReportType(r.ReportType) {
		return models.LessonReport{}, ErrBadReportType
	}
	if r.Message == "" {
		return models.LessonReport{}, ErrEmptyMessage
	}
	if len([]rune(r.Message)) > MaxMessageLength {
		return models.LessonReport{}, ErrTooLong
	}

	r.ID = primitive.NewObjectID()
	r.Status = models.ReportOpen
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.LessonReport{}, fmt.Errorf("insert report: %w", err)
	}
	return r, nil
}

// List returns one page of reports, newest first. An empty status lists all.
// start is the 1-based index of the first row.
func (s *Store) List(ctx context.Context, status string, start int) ([]models.LessonReport, bool, error) {
	filter := bson.M{}
	if status != "" {
		if !models.IsValidReportStatus(status) {
			return nil, false, ErrBadStatus
		}
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(paging.Skip(start)).
		SetLimit(paging.LimitPlusOne())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	rows := []models.LessonReport{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, false, fmt.Errorf("decode reports: %w", err)
	}
	hasNext := paging.TrimPage(&rows)
	return rows, hasNext, nil
}

// SetStatus moves a report to status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.LessonReport, error) {
	if !models.IsValidReportStatus(status) {
		return models.LessonReport{}, ErrBadStatus
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r models.LessonReport
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.LessonReport{}, ErrNotFound
	}
	if err != nil {
		return models.LessonReport{}, fmt.Errorf("set report status: %w", err)
	}
	return r, nil
}
