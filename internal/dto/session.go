package dto

import "time"

// StartSessionRequest opens a quiz session
// @Description Request body for starting a quiz session
type StartSessionRequest struct {
	StudentID  string `json:"student_id"`
	CourseID   string `json:"course_id"`
	WeekNumber int    `json:"week_number"`
	Variant    string `json:"variant"`
}

// SessionAnswerRequest records or clears one answer. A null option_index clears it.
type SessionAnswerRequest struct {
	QuestionID  string `json:"question_id"`
	OptionIndex *int   `json:"option_index"`
}

// NavigateRequest moves the session cursor
type NavigateRequest struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
}

// SessionResponse is the state of an in-progress quiz
// @Description Quiz session state
type SessionResponse struct {
	ID               string                  `json:"id"`
	State            string                  `json:"state"`
	Quiz             QuizResponse            `json:"quiz"`
	CurrentIndex     int                     `json:"current_index"`
	Answers          map[string]int          `json:"answers"`
	RemainingSeconds *int                    `json:"remaining_seconds"`
	Expired          bool                    `json:"expired"`
	Result           *QuizSubmissionResponse `json:"result,omitempty"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// HealthResponse reports dependency health
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
