package domain

import (
	"fmt"
	"time"
)

// Variant tags the three kinds of weekly quiz.
type Variant string

const (
	VariantMain      Variant = "main"
	VariantRefresher Variant = "refresher"
	VariantDynamic   Variant = "dynamic"
)

// VariantSpec is the per-variant policy row.
type VariantSpec struct {
	// Repeatable variants accept unlimited submissions.
	Repeatable bool
	// Graded variants feed week-lock computation.
	Graded bool
	// PerStudent definitions are scoped to the requesting student.
	PerStudent bool
	// Shared definitions are generated once per (course, week) and reused.
	Shared bool
}

var variantSpecs = map[Variant]VariantSpec{
	VariantMain:      {Repeatable: false, Graded: true, PerStudent: false, Shared: true},
	VariantRefresher: {Repeatable: true, Graded: false, PerStudent: false, Shared: false},
	VariantDynamic:   {Repeatable: false, Graded: true, PerStudent: true, Shared: false},
}

// Variants lists all known variants in display order.
func Variants() []Variant {
	return []Variant{VariantMain, VariantRefresher, VariantDynamic}
}

// Spec returns the policy row for v.
func (v Variant) Spec() (VariantSpec, bool) {
	s, ok := variantSpecs[v]
	return s, ok
}

func (v Variant) Valid() bool {
	_, ok := variantSpecs[v]
	return ok
}

func (v Variant) String() string {
	return string(v)
}

// ParseVariant converts a wire value to a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", NewInvalidInputError(fmt.Sprintf("unknown quiz variant: %q", s))
	}
	return v, nil
}

// PerformanceLevel is a categorical bucket derived from a percentage.
type PerformanceLevel string

const (
	LevelStrong   PerformanceLevel = "strong"
	LevelModerate PerformanceLevel = "moderate"
	LevelWeak     PerformanceLevel = "weak"

	LevelModeratePlus  PerformanceLevel = "moderate_plus"
	LevelBelowModerate PerformanceLevel = "below_moderate"
	LevelFail          PerformanceLevel = "fail"
)

// PassingPercentage is the Main quiz score at or above which no remediation is needed.
const PassingPercentage = 60

// Question is one multiple choice item.
type Question struct {
	ID                 string   `json:"id" yaml:"id"`
	Text               string   `json:"text" yaml:"text"`
	Options            []string `json:"options" yaml:"options"`
	CorrectOptionIndex int      `json:"correct_option_index" yaml:"correct_option_index"`
	TopicID            string   `json:"topic_id,omitempty" yaml:"topic_id"`
	TopicTitle         string   `json:"topic_title,omitempty" yaml:"topic_title"`
	IsBonus            bool     `json:"is_bonus" yaml:"is_bonus"`
	Explanation        string   `json:"explanation,omitempty" yaml:"explanation"`
}

// Validate checks the structural rules of a question.
func (q Question) Validate() error {
	if q.ID == "" {
		return NewInvalidInputError("question id is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError(fmt.Sprintf("question %s must have at least 2 options", q.ID))
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return NewInvalidInputError(fmt.Sprintf("question %s has correct option index %d out of range", q.ID, q.CorrectOptionIndex))
	}
	return nil
}

// Answers maps question id to the chosen option index. Unanswered questions are absent.
type Answers map[string]int

// QuizDefinition is a generated or stored quiz for one course week.
type QuizDefinition struct {
	ID               string
	CourseID         string
	WeekNumber       int
	Variant          Variant
	StudentID        string // set only for per-student variants
	Title            string
	Questions        []Question
	MaxScore         int
	TimeLimitMinutes *int
	CreatedAt        time.Time
}

// Validate checks the definition and its questions, including id uniqueness.
func (q *QuizDefinition) Validate() error {
	if q.CourseID == "" {
		return NewInvalidInputError("course id is required")
	}
	if q.WeekNumber < 1 {
		return NewInvalidInputError("week number must be positive")
	}
	if !q.Variant.Valid() {
		return NewInvalidInputError(fmt.Sprintf("unknown quiz variant: %q", q.Variant))
	}
	if len(q.Questions) == 0 {
		return NewInvalidInputError("quiz must contain at least one question")
	}
	seen := make(map[string]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return err
		}
		if _, dup := seen[question.ID]; dup {
			return NewInvalidInputError(fmt.Sprintf("duplicate question id %s", question.ID))
		}
		seen[question.ID] = struct{}{}
	}
	return nil
}

// GradedQuestionCount counts the questions that make up the denominator.
func GradedQuestionCount(questions []Question) int {
	n := 0
	for _, q := range questions {
		if !q.IsBonus {
			n++
		}
	}
	return n
}

// TopicPerformance is the per-topic slice of a scoring result.
type TopicPerformance struct {
	TopicID          string           `json:"topic_id"`
	TopicTitle       string           `json:"topic_title,omitempty"`
	QuestionsCount   int              `json:"questions_count"`
	CorrectCount     int              `json:"correct_count"`
	IncorrectCount   int              `json:"incorrect_count"`
	Percentage       int              `json:"percentage"`
	PerformanceLevel PerformanceLevel `json:"performance_level"`
}

// QuizAttempt is an immutable graded submission.
type QuizAttempt struct {
	ID               string
	StudentID        string
	CourseID         string
	QuizID           string
	Variant          Variant
	WeekNumber       int
	Answers          Answers
	SubmittedAt      time.Time
	Score            int
	MaxScore         int
	Percentage       int
	PerformanceLevel PerformanceLevel
	TopicBreakdown   []TopicPerformance
}

// SlotKey identifies the non-repeatable slot an attempt occupies. Repeatable variants have none.
func (a *QuizAttempt) SlotKey() string {
	spec, ok := a.Variant.Spec()
	if !ok || spec.Repeatable {
		return ""
	}
	return fmt.Sprintf("%s|%s|%d|%s", a.StudentID, a.CourseID, a.WeekNumber, a.Variant)
}
