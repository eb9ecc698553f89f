package domain

import "time"

// Pretest is the one-time diagnostic for a course.
type Pretest struct {
	ID               string
	CourseID         string
	Title            string
	Questions        []Question
	MaxScore         int
	TimeLimitMinutes *int
	CreatedAt        time.Time
}

// PretestAttempt is a student's graded pretest. At most one exists per (student, course).
type PretestAttempt struct {
	ID               string
	StudentID        string
	CourseID         string
	PretestID        string
	Answers          Answers
	SubmittedAt      time.Time
	Score            int
	MaxScore         int
	Percentage       int
	PerformanceLevel PerformanceLevel
	TopicBreakdown   []TopicPerformance
}

// PretestAnalysis summarises strengths and weaknesses from a pretest breakdown.
type PretestAnalysis struct {
	Score            int                `json:"score"`
	MaxScore         int                `json:"max_score"`
	Percentage       int                `json:"percentage"`
	PerformanceLevel PerformanceLevel   `json:"performance_level"`
	TopicBreakdown   []TopicPerformance `json:"topic_breakdown"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
}

// TopicRecommendation points a student at the weakest pretest topic.
type TopicRecommendation struct {
	TopicID        string `json:"topic_id"`
	TopicTitle     string `json:"topic_title"`
	Recommendation string `json:"recommendation"`
	ResourceURL    string `json:"resource_url,omitempty"`
	ResourceType   string `json:"resource_type,omitempty"`
	ResourceTitle  string `json:"resource_title,omitempty"`
}

// PretestResult is returned from a pretest submission.
type PretestResult struct {
	Attempt        *PretestAttempt
	Analysis       PretestAnalysis
	Recommendation *TopicRecommendation
}

// PretestAccess is the outcome of the course entry gate.
type PretestAccess struct {
	Locked  bool
	Pretest *Pretest
}

// CourseSettings holds explicit per-course configuration.
type CourseSettings struct {
	CourseID        string
	PretestRequired bool
	UpdatedAt       time.Time
}
