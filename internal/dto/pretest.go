package dto

import (
	"time"

	"quiz-progression/internal/domain"
)

// PretestResponse represents a course pretest in the API response
// @Description Course pretest without the answer key
type PretestResponse struct {
	ID               string             `json:"id"`
	CourseID         string             `json:"course_id"`
	Title            string             `json:"title"`
	Questions        []QuestionResponse `json:"questions"`
	MaxScore         int                `json:"max_score"`
	TimeLimitMinutes *int               `json:"time_limit_minutes"`
}

// PretestStatusResponse reports whether a student took the pretest
type PretestStatusResponse struct {
	Completed bool `json:"completed"`
}

// PretestAccessResponse is the outcome of the course entry gate
type PretestAccessResponse struct {
	Locked  bool             `json:"locked"`
	Pretest *PretestResponse `json:"pretest,omitempty"`
}

// SubmitPretestRequest represents a pretest submission
// @Description Request body for submitting a pretest
type SubmitPretestRequest struct {
	StudentID string         `json:"student_id"`
	PretestID string         `json:"pretest_id"`
	Answers   map[string]int `json:"answers"`
}

// PretestResultResponse is a graded pretest with its analysis
// @Description Pretest result with strengths, weaknesses and a recommendation
type PretestResultResponse struct {
	AttemptID        string                      `json:"attempt_id"`
	PretestID        string                      `json:"pretest_id"`
	CourseID         string                      `json:"course_id"`
	Score            int                         `json:"score"`
	MaxScore         int                         `json:"max_score"`
	Percentage       int                         `json:"percentage"`
	PerformanceLevel string                      `json:"performance_level"`
	TopicBreakdown   []domain.TopicPerformance   `json:"topic_breakdown"`
	SubmittedAt      time.Time                   `json:"submitted_at"`
	Analysis         domain.PretestAnalysis      `json:"analysis"`
	Recommendation   *domain.TopicRecommendation `json:"recommendation,omitempty"`
}

// QuestionInput is a question as authored, including the answer key
type QuestionInput struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	TopicID            string   `json:"topic_id"`
	TopicTitle         string   `json:"topic_title"`
	IsBonus            bool     `json:"is_bonus"`
	Explanation        string   `json:"explanation"`
}

// SavePretestRequest replaces a course pretest
// @Description Request body for saving a course pretest
type SavePretestRequest struct {
	Title            string          `json:"title"`
	TimeLimitMinutes *int            `json:"time_limit_minutes"`
	Questions        []QuestionInput `json:"questions"`
}
