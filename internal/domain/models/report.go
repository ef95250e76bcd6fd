// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportType is an entry in the lesson report picker.
type ReportType struct {
	Value string
	Label string
}

// ReportTypes lists the kinds of problem a learner can report on a lesson.
var ReportTypes = []ReportType{
	{Value: "typo", Label: "Typo or grammar"},
	{Value: "incorrect_info", Label: "Incorrect information"},
	{Value: "missing_media", Label: "Missing image or code"},
	{Value: "suggestion", Label: "Suggestion"},
	{Value: "ux_issue", Label: "Layout or usability issue"},
	{Value: "other", Label: "Other"},
}

// IsValidReportType reports whether v is a known report type.
func IsValidReportType(v string) bool {
	for _, rt := range ReportTypes {
		if rt.Value == v {
			return true
		}
	}
	return false
}

// Report statuses.
const (
	ReportOpen      = "open"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

// IsValidReportStatus reports whether s is a known report status.
func IsValidReportStatus(s string) bool {
	return s == ReportOpen || s == ReportResolved || s == ReportDismissed
}

// LessonReport is a learner-submitted problem report about a lesson.
type LessonReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LessonID    primitive.ObjectID `bson:"lesson_id" json:"lesson_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	ReportType  string             `bson:"report_type" json:"report_type"`
	Message     string             `bson:"message" json:"message"`
	DayNumber   int                `bson:"day_number" json:"day_number"`
	LessonTitle string             `bson:"lesson_title" json:"lesson_title"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
