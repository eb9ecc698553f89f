package service

import (
	"context"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/scoring"
)

const (
	profileStrengthAbove = 75
	profileWeaknessBelow = 50
)

// TopicProgress aggregates one topic across all of a student's attempts.
type TopicProgress struct {
	TopicID        string `json:"topic_id"`
	TopicTitle     string `json:"topic_title,omitempty"`
	QuestionsCount int    `json:"questions_count"`
	CorrectCount   int    `json:"correct_count"`
	Percentage     int    `json:"percentage"`
}

// PerformanceProfile lists a student's strong and weak topics in a course.
type PerformanceProfile struct {
	StudentID     string
	CourseID      string
	AttemptsCount int
	Strengths     []string // topic ids above 75%
	Weaknesses    []string // topic ids below 50%
	Topics        []TopicProgress
}

// PerformanceService derives performance profiles from stored attempts.
type PerformanceService interface {
	Profile(ctx context.Context, studentID, courseID string) (*PerformanceProfile, error)
}

type performanceService struct {
	attempts domain.QuizAttemptRepository
}

func NewPerformanceService(attempts domain.QuizAttemptRepository) PerformanceService {
	return &performanceService{attempts: attempts}
}

func (s *performanceService) Profile(ctx context.Context, studentID, courseID string) (*PerformanceProfile, error) {
	attempts, err := s.attempts.ListByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz attempts", err)
	}
	return BuildProfile(studentID, courseID, attempts), nil
}

// BuildProfile sums correct and attempted questions per topic over every
// attempt, in order of first appearance.
func BuildProfile(studentID, courseID string, attempts []*domain.QuizAttempt) *PerformanceProfile {
	profile := &PerformanceProfile{
		StudentID:     studentID,
		CourseID:      courseID,
		AttemptsCount: len(attempts),
		Strengths:     []string{},
		Weaknesses:    []string{},
		Topics:        []TopicProgress{},
	}

	index := make(map[string]int)
	for _, a := range attempts {
		for _, tp := range a.TopicBreakdown {
			i, ok := index[tp.TopicID]
			if !ok {
				i = len(profile.Topics)
				index[tp.TopicID] = i
				profile.Topics = append(profile.Topics, TopicProgress{TopicID: tp.TopicID, TopicTitle: tp.TopicTitle})
			}
			t := &profile.Topics[i]
			t.QuestionsCount += tp.QuestionsCount
			t.CorrectCount += tp.CorrectCount
			if t.TopicTitle == "" {
				t.TopicTitle = tp.TopicTitle
			}
		}
	}

	for i := range profile.Topics {
		t := &profile.Topics[i]
		t.Percentage = scoring.Percentage(t.CorrectCount, t.QuestionsCount)
		if t.QuestionsCount == 0 {
			continue
		}
		// Classification uses the unrounded ratio.
		raw := float64(t.CorrectCount) / float64(t.QuestionsCount) * 100
		switch {
		case raw > profileStrengthAbove:
			profile.Strengths = append(profile.Strengths, t.TopicID)
		case raw < profileWeaknessBelow:
			profile.Weaknesses = append(profile.Weaknesses, t.TopicID)
		}
	}
	return profile
}
