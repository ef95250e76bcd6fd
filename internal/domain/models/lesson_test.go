package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLessonSummary_DefaultsDuration(t *testing.T) {
	id := primitive.NewObjectID()
	l := Lesson{ID: id, DayIndex: 3, Title: "Mutability", TopicSlug: "mutability"}

	s := l.Summary()
	if s.ID != id.Hex() || s.DayIndex != 3 || s.Title != "Mutability" || s.TopicSlug != "mutability" {
		t.Errorf("Summary: got %+v", s)
	}
	if s.EstimatedTimeMinutes != DefaultEstimatedMinutes {
		t.Errorf("EstimatedTimeMinutes: got %d, want %d", s.EstimatedTimeMinutes, DefaultEstimatedMinutes)
	}

	l.EstimatedTimeMinutes = 25
	if got := l.Summary().EstimatedTimeMinutes; got != 25 {
		t.Errorf("EstimatedTimeMinutes: got %d, want 25", got)
	}
}

func TestLessonContent_FoldsLegacyFields(t *testing.T) {
	l := Lesson{
		DayIndex:       4,
		Title:          "Shadowing",
		Theory:         "text",
		PitfallExample: &PitfallExample{Code: "let x;", Reason: "legacy reason"},
		Challenge:      &Challenge{Template: "fn main() {}", Task: "legacy task", ExpectedOutput: "ok"},
	}

	fl := l.Content()
	if fl.Kind() != KindLesson {
		t.Errorf("Kind: got %q", fl.Kind())
	}
	if fl.PitfallExample.ErrorHint != "legacy reason" {
		t.Errorf("ErrorHint: got %q", fl.PitfallExample.ErrorHint)
	}
	if fl.Challenge.Instructions != "legacy task" {
		t.Errorf("Instructions: got %q", fl.Challenge.Instructions)
	}
	if fl.EstimatedTimeMinutes != DefaultEstimatedMinutes {
		t.Errorf("EstimatedTimeMinutes: got %d", fl.EstimatedTimeMinutes)
	}
}

func TestLessonContent_PrefersCurrentFields(t *testing.T) {
	l := Lesson{
		PitfallExample: &PitfallExample{ErrorHint: "E0384", Reason: "old"},
		Challenge:      &Challenge{Instructions: "new", Task: "old"},
	}
	fl := l.Content()
	if fl.PitfallExample.ErrorHint != "E0384" || fl.Challenge.Instructions != "new" {
		t.Errorf("Content: got %+v / %+v", fl.PitfallExample, fl.Challenge)
	}
}

func TestLessonContent_MissingSections(t *testing.T) {
	fl := Lesson{DayIndex: 9, Title: "t"}.Content()
	if fl.CoreExample != (CoreExample{}) || fl.PitfallExample != (PitfallContent{}) || fl.Challenge != (ChallengeContent{}) {
		t.Errorf("missing sections should be zero values, got %+v", fl)
	}
}

func TestPlaceholderKind(t *testing.T) {
	var c LessonContent = DefaultPlaceholder
	if c.Kind() != KindPlaceholder {
		t.Errorf("Kind: got %q", c.Kind())
	}
}

func TestIsValidChannel(t *testing.T) {
	for _, ch := range Channels {
		if !IsValidChannel(ch) {
			t.Errorf("IsValidChannel(%q) = false", ch)
		}
	}
	if IsValidChannel("sms") {
		t.Error("IsValidChannel(sms) = true")
	}
}

func TestReportValidation(t *testing.T) {
	if !IsValidReportType("typo") || IsValidReportType("spam") {
		t.Error("IsValidReportType mismatch")
	}
	if !IsValidReportStatus(ReportResolved) || IsValidReportStatus("closed") {
		t.Error("IsValidReportStatus mismatch")
	}
}

func TestIsValidAuthMethod(t *testing.T) {
	if !IsValidAuthMethod(" Google ") || IsValidAuthMethod("saml") {
		t.Error("IsValidAuthMethod mismatch")
	}
}
