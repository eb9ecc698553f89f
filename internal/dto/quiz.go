package dto

import (
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/progression"
)

// QuestionResponse is a question as shown to a student
// @Description Multiple choice question without the answer key
type QuestionResponse struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	TopicID    string   `json:"topic_id,omitempty"`
	TopicTitle string   `json:"topic_title,omitempty"`
	IsBonus    bool     `json:"is_bonus"`
}

// QuizResponse represents a quiz definition in the API response
// @Description Weekly quiz definition
type QuizResponse struct {
	ID               string             `json:"id"`
	CourseID         string             `json:"course_id"`
	WeekNumber       int                `json:"week_number"`
	Variant          string             `json:"variant"`
	Title            string             `json:"title"`
	Questions        []QuestionResponse `json:"questions"`
	MaxScore         int                `json:"max_score"`
	TimeLimitMinutes *int               `json:"time_limit_minutes"`
}

// SubmitQuizRequest represents a quiz submission
// @Description Request body for submitting a weekly quiz
type SubmitQuizRequest struct {
	StudentID string         `json:"student_id"`
	QuizID    string         `json:"quiz_id"`
	Variant   string         `json:"variant"`
	Answers   map[string]int `json:"answers"`
}

// QuizSubmissionResponse represents a graded quiz attempt
// @Description Graded quiz attempt with refreshed progression
type QuizSubmissionResponse struct {
	AttemptID        string                    `json:"attempt_id"`
	QuizID           string                    `json:"quiz_id"`
	CourseID         string                    `json:"course_id"`
	WeekNumber       int                       `json:"week_number"`
	Variant          string                    `json:"variant"`
	Score            int                       `json:"score"`
	MaxScore         int                       `json:"max_score"`
	Percentage       int                       `json:"percentage"`
	PerformanceLevel string                    `json:"performance_level"`
	CorrectCount     int                       `json:"correct_count"`
	IncorrectCount   int                       `json:"incorrect_count"`
	TopicBreakdown   []domain.TopicPerformance `json:"topic_breakdown"`
	SubmittedAt      time.Time                 `json:"submitted_at"`
	Availability     *progression.Availability `json:"availability,omitempty"`
	NextWeekLocked   *bool                     `json:"next_week_locked,omitempty"`
}

// WeekLockResponse reports whether a week is locked for a student
type WeekLockResponse struct {
	WeekNumber int  `json:"week_number"`
	IsLocked   bool `json:"is_locked"`
}

// CourseProgressResponse is the week-by-week state of a student in a course
type CourseProgressResponse struct {
	CourseID          string                   `json:"course_id"`
	CourseTitle       string                   `json:"course_title"`
	StudentID         string                   `json:"student_id"`
	PretestCompleted  bool                     `json:"pretest_completed"`
	PretestLocked     bool                     `json:"pretest_locked"`
	PretestConfigured bool                     `json:"pretest_configured"`
	Weeks             []progression.WeekStatus `json:"weeks"`
}

// TopicProgressResponse aggregates one topic across all attempts
type TopicProgressResponse struct {
	TopicID        string `json:"topic_id"`
	TopicTitle     string `json:"topic_title,omitempty"`
	QuestionsCount int    `json:"questions_count"`
	CorrectCount   int    `json:"correct_count"`
	Percentage     int    `json:"percentage"`
}

// PerformanceResponse lists a student's strong and weak topics
// @Description Performance profile of a student in a course
type PerformanceResponse struct {
	StudentID     string                  `json:"student_id"`
	CourseID      string                  `json:"course_id"`
	AttemptsCount int                     `json:"attempts_count"`
	Strengths     []string                `json:"strengths"`
	Weaknesses    []string                `json:"weaknesses"`
	Topics        []TopicProgressResponse `json:"topics"`
}

// CourseSettingsRequest updates the per-course flags
type CourseSettingsRequest struct {
	PretestRequired *bool `json:"pretest_required"`
}

// CourseSettingsResponse echoes the stored flags
type CourseSettingsResponse struct {
	CourseID        string `json:"course_id"`
	PretestRequired bool   `json:"pretest_required"`
}
