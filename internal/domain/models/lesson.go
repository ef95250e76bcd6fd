// internal/domain/models/lesson.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultEstimatedMinutes is used when a lesson carries no duration.
const DefaultEstimatedMinutes = 10

// Lesson is an authored lesson as stored in the lessons collection. It is
// written by the content import and read-only everywhere else.
//
// Older content used "reason" for the pitfall hint and "task" for the
// challenge text; both spellings are accepted and folded by Content().
type Lesson struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayIndex             int                `bson:"day_index" json:"day_index"`
	Title                string             `bson:"title" json:"title"`
	TopicSlug            string             `bson:"topic_slug" json:"topic_slug"`
	EstimatedTimeMinutes int                `bson:"estimated_time_minutes,omitempty" json:"estimated_time_minutes,omitempty"`
	Theory               string             `bson:"theory" json:"theory"`
	CoreExample          *CoreExample       `bson:"core_example,omitempty" json:"core_example,omitempty"`
	PitfallExample       *PitfallExample    `bson:"pitfall_example,omitempty" json:"pitfall_example,omitempty"`
	Challenge            *Challenge         `bson:"challenge,omitempty" json:"challenge,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CoreExample is the worked example of a lesson.
type CoreExample struct {
	Code        string `bson:"code" json:"code"`
	Explanation string `bson:"explanation" json:"explanation"`
}

// PitfallExample shows code that fails and why.
type PitfallExample struct {
	Code      string `bson:"code" json:"code"`
	ErrorHint string `bson:"errorHint,omitempty" json:"errorHint,omitempty"`
	Reason    string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Challenge is the hands-on exercise closing a lesson.
type Challenge struct {
	Template       string `bson:"template,omitempty" json:"template,omitempty"`
	Instructions   string `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Task           string `bson:"task,omitempty" json:"task,omitempty"`
	Hint           string `bson:"hint,omitempty" json:"hint,omitempty"`
	ToolsUsed      string `bson:"tools_used,omitempty" json:"tools_used,omitempty"`
	ExpectedOutput string `bson:"expectedOutput,omitempty" json:"expectedOutput,omitempty"`
}

// LessonSummary is the slice of a stored lesson the curriculum needs.
type LessonSummary struct {
	ID                   string
	DayIndex             int
	Title                string
	TopicSlug            string
	EstimatedTimeMinutes int
}

// Summary projects l onto a LessonSummary, applying the default duration.
func (l Lesson) Summary() LessonSummary {
	mins := l.EstimatedTimeMinutes
	if mins <= 0 {
		mins = DefaultEstimatedMinutes
	}
	return LessonSummary{
		ID:                   l.ID.Hex(),
		DayIndex:             l.DayIndex,
		Title:                l.Title,
		TopicSlug:            l.TopicSlug,
		EstimatedTimeMinutes: mins,
	}
}

// Content converts a stored lesson into a FullLesson. Missing sections become
// empty values rather than nil.
func (l Lesson) Content() FullLesson {
	fl := FullLesson{
		Day:                  l.DayIndex,
		Title:                l.Title,
		TopicSlug:            l.TopicSlug,
		EstimatedTimeMinutes: l.EstimatedTimeMinutes,
		Theory:               l.Theory,
	}
	if fl.EstimatedTimeMinutes <= 0 {
		fl.EstimatedTimeMinutes = DefaultEstimatedMinutes
	}
	if l.CoreExample != nil {
		fl.CoreExample = *l.CoreExample
	}
	if p := l.PitfallExample; p != nil {
		fl.PitfallExample = PitfallContent{Code: p.Code, ErrorHint: firstNonEmpty(p.ErrorHint, p.Reason)}
	}
	if c := l.Challenge; c != nil {
		fl.Challenge = ChallengeContent{
			Template:       c.Template,
			Instructions:   firstNonEmpty(c.Instructions, c.Task),
			Hint:           c.Hint,
			ToolsUsed:      c.ToolsUsed,
			ExpectedOutput: c.ExpectedOutput,
		}
	}
	return fl
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| Lesson content: a full lesson or a placeholder                               |
*─────────────────────────────────────────────────────────────────────────────*/

// Content kinds as reported to clients.
const (
	KindLesson      = "lesson"
	KindPlaceholder = "placeholder"
)

// LessonContent is what a learner sees for a day. It is either a FullLesson
// or a Placeholder; switch on the concrete type:
//
//	switch c := content.(type) {
//	case models.FullLesson:
//	case models.Placeholder:
//	}
type LessonContent interface {
	Kind() string
	lessonContent()
}

// FullLesson is authored content for one day.
type FullLesson struct {
	Day                  int              `json:"day"`
	Title                string           `json:"title"`
	TopicSlug            string           `json:"topic_slug"`
	EstimatedTimeMinutes int              `json:"estimated_time_minutes"`
	Theory               string           `json:"theory"`
	CoreExample          CoreExample      `json:"core_example"`
	PitfallExample       PitfallContent   `json:"pitfall_example"`
	Challenge            ChallengeContent `json:"challenge"`
}

// PitfallContent is the normalized pitfall section.
type PitfallContent struct {
	Code      string `json:"code"`
	ErrorHint string `json:"error_hint"`
}

// ChallengeContent is the normalized challenge section.
type ChallengeContent struct {
	Template       string `json:"template"`
	Instructions   string `json:"instructions"`
	Hint           string `json:"hint,omitempty"`
	ToolsUsed      string `json:"tools_used,omitempty"`
	ExpectedOutput string `json:"expected_output"`
}

// Placeholder stands in for a day with no authored content.
type Placeholder struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// DefaultPlaceholder is shown when neither stored nor sample content exists.
var DefaultPlaceholder = Placeholder{
	Title: "Content Coming Soon...",
	Body:  "Check back tomorrow! New lessons are added daily.",
}

func (FullLesson) Kind() string  { return KindLesson }
func (Placeholder) Kind() string { return KindPlaceholder }

func (FullLesson) lessonContent()  {}
func (Placeholder) lessonContent() {}
