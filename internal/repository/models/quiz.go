package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"quiz-progression/internal/domain"
)

// jsonValue stores v as a JSON string so it fits both TEXT and CLOB columns.
func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// jsonScan decodes a JSON column. NULL, empty strings and the literal "null" leave dest untouched.
func jsonScan(value interface{}, dest interface{}, typeName string) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%s Scan: unsupported type %T", typeName, value)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// QuestionList is a JSON encoded list of questions.
type QuestionList []domain.Question

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	return jsonValue([]domain.Question(q))
}

func (q *QuestionList) Scan(value interface{}) error {
	*q = QuestionList{}
	return jsonScan(value, (*[]domain.Question)(q), "QuestionList")
}

// AnswerMap is a JSON encoded question id to option index map.
type AnswerMap map[string]int

func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	return jsonValue(map[string]int(a))
}

func (a *AnswerMap) Scan(value interface{}) error {
	*a = AnswerMap{}
	return jsonScan(value, (*map[string]int)(a), "AnswerMap")
}

// TopicBreakdown is a JSON encoded per-topic scoring result.
type TopicBreakdown []domain.TopicPerformance

func (t TopicBreakdown) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return jsonValue([]domain.TopicPerformance(t))
}

func (t *TopicBreakdown) Scan(value interface{}) error {
	*t = TopicBreakdown{}
	return jsonScan(value, (*[]domain.TopicPerformance)(t), "TopicBreakdown")
}

// QuizDefinition maps the quiz_definitions table.
type QuizDefinition struct {
	ID               string         `db:"id"`
	CourseID         string         `db:"course_id"`
	WeekNumber       int            `db:"week_number"`
	Variant          string         `db:"variant"`
	StudentID        sql.NullString `db:"student_id"`
	Title            sql.NullString `db:"title"`
	Questions        QuestionList   `db:"questions"`
	MaxScore         int            `db:"max_score"`
	TimeLimitMinutes sql.NullInt64  `db:"time_limit_minutes"`
	MainKey          sql.NullString `db:"main_key"` // "course|week" for main quizzes, NULL otherwise
	CreatedAt        time.Time      `db:"created_at"`
}

// QuizAttempt maps the quiz_attempts table.
type QuizAttempt struct {
	ID               string         `db:"id"`
	StudentID        string         `db:"student_id"`
	CourseID         string         `db:"course_id"`
	QuizID           string         `db:"quiz_id"`
	Variant          string         `db:"variant"`
	WeekNumber       int            `db:"week_number"`
	Answers          AnswerMap      `db:"answers"`
	SubmittedAt      time.Time      `db:"submitted_at"`
	Score            int            `db:"score"`
	MaxScore         int            `db:"max_score"`
	Percentage       int            `db:"percentage"`
	PerformanceLevel string         `db:"performance_level"`
	TopicBreakdown   TopicBreakdown `db:"topic_breakdown"`
	SlotKey          sql.NullString `db:"slot_key"` // NULL for repeatable variants
}
