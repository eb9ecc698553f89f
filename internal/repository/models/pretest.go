package models

import (
	"database/sql"
	"time"
)

// Pretest maps the pretests table.
type Pretest struct {
	ID               string         `db:"id"`
	CourseID         string         `db:"course_id"`
	Title            sql.NullString `db:"title"`
	Questions        QuestionList   `db:"questions"`
	MaxScore         int            `db:"max_score"`
	TimeLimitMinutes sql.NullInt64  `db:"time_limit_minutes"`
	CreatedAt        time.Time      `db:"created_at"`
}

// PretestAttempt maps the pretest_attempts table.
type PretestAttempt struct {
	ID               string         `db:"id"`
	StudentID        string         `db:"student_id"`
	CourseID         string         `db:"course_id"`
	PretestID        string         `db:"pretest_id"`
	Answers          AnswerMap      `db:"answers"`
	SubmittedAt      time.Time      `db:"submitted_at"`
	Score            int            `db:"score"`
	MaxScore         int            `db:"max_score"`
	Percentage       int            `db:"percentage"`
	PerformanceLevel string         `db:"performance_level"`
	TopicBreakdown   TopicBreakdown `db:"topic_breakdown"`
}

// CourseSettings maps the course_settings table. PretestRequired is stored as 0/1.
type CourseSettings struct {
	CourseID        string    `db:"course_id"`
	PretestRequired int       `db:"pretest_required"`
	UpdatedAt       time.Time `db:"updated_at"`
}
