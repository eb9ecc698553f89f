package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/progression"
	"quiz-progression/internal/scoring"

	"go.uber.org/zap"
)

// QuizSubmission is a student's answers to one quiz definition. CourseID,
// WeekNumber and Variant are optional cross-checks against the definition.
type QuizSubmission struct {
	StudentID  string
	CourseID   string
	WeekNumber int
	Variant    domain.Variant
	QuizID     string
	Answers    domain.Answers
}

// SubmissionResult is a graded attempt plus the progression it unlocked.
type SubmissionResult struct {
	Attempt        *domain.QuizAttempt
	CorrectCount   int
	IncorrectCount int
	// Availability and NextWeekLocked are refreshed best effort and may be nil.
	Availability   *progression.Availability
	NextWeekLocked *bool
}

// QuizService records graded quiz attempts.
type QuizService interface {
	Submit(ctx context.Context, sub QuizSubmission) (*SubmissionResult, error)
}

type quizService struct {
	definitions domain.QuizDefinitionRepository
	attempts    domain.QuizAttemptRepository
	now         func() time.Time
}

func NewQuizService(definitions domain.QuizDefinitionRepository, attempts domain.QuizAttemptRepository) QuizService {
	return &quizService{
		definitions: definitions,
		attempts:    attempts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit grades answers against the stored definition and records the attempt.
// Main and Dynamic accept one attempt per student and week; Refresher is unlimited.
func (s *quizService) Submit(ctx context.Context, sub QuizSubmission) (*SubmissionResult, error) {
	l := logger.Get()

	quiz, err := s.definitions.GetByID(ctx, sub.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz %s not found", sub.QuizID))
	}
	if err := checkSubmissionTarget(quiz, sub); err != nil {
		return nil, err
	}

	if err := s.checkSlot(ctx, quiz, sub.StudentID); err != nil {
		return nil, err
	}

	res := scoring.Score(quiz.Questions, sub.Answers, scoring.QuizThresholds)
	attempt := &domain.QuizAttempt{
		StudentID:        sub.StudentID,
		CourseID:         quiz.CourseID,
		QuizID:           quiz.ID,
		Variant:          quiz.Variant,
		WeekNumber:       quiz.WeekNumber,
		Answers:          knownAnswers(quiz.Questions, sub.Answers),
		SubmittedAt:      s.now(),
		Score:            res.Score,
		MaxScore:         res.MaxScore,
		Percentage:       res.Percentage,
		PerformanceLevel: res.PerformanceLevel,
		TopicBreakdown:   res.TopicBreakdown,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, alreadySubmitted(quiz)
		}
		return nil, domain.NewInternalError("Failed to save quiz attempt", err)
	}

	l.Info("Quiz submitted",
		zap.String("student_id", sub.StudentID),
		zap.String("course_id", quiz.CourseID),
		zap.Int("week", quiz.WeekNumber),
		zap.String("variant", string(quiz.Variant)),
		zap.Int("percentage", attempt.Percentage))

	result := &SubmissionResult{
		Attempt:        attempt,
		CorrectCount:   res.CorrectCount,
		IncorrectCount: res.IncorrectCount,
	}
	s.refreshProgression(ctx, result)
	return result, nil
}

func checkSubmissionTarget(quiz *domain.QuizDefinition, sub QuizSubmission) error {
	if sub.CourseID != "" && sub.CourseID != quiz.CourseID {
		return domain.NewInvalidInputError("Quiz does not belong to this course")
	}
	if sub.WeekNumber != 0 && sub.WeekNumber != quiz.WeekNumber {
		return domain.NewInvalidInputError("Quiz does not belong to this week")
	}
	if sub.Variant != "" && sub.Variant != quiz.Variant {
		return domain.NewInvalidInputError(fmt.Sprintf("Quiz is a %s quiz, not %s", quiz.Variant, sub.Variant))
	}
	if spec, _ := quiz.Variant.Spec(); spec.PerStudent && quiz.StudentID != sub.StudentID {
		return domain.NewInvalidInputError("Quiz was issued to another student")
	}
	return nil
}

// checkSlot rejects a submission whose slot is taken, and Dynamic submissions
// that are not backed by a failed Main attempt.
func (s *quizService) checkSlot(ctx context.Context, quiz *domain.QuizDefinition, studentID string) error {
	spec, _ := quiz.Variant.Spec()
	if spec.Repeatable {
		return nil
	}

	if quiz.Variant == domain.VariantDynamic {
		mainAttempt, err := s.attempts.GetSlot(ctx, studentID, quiz.CourseID, quiz.WeekNumber, domain.VariantMain)
		if err != nil {
			return domain.NewInternalError("Failed to load main attempt", err)
		}
		dynamicAttempt, err := s.attempts.GetSlot(ctx, studentID, quiz.CourseID, quiz.WeekNumber, domain.VariantDynamic)
		if err != nil {
			return domain.NewInternalError("Failed to load dynamic attempt", err)
		}
		switch reason := progression.DynamicEligibility(progression.NewHistory([]*domain.QuizAttempt{mainAttempt, dynamicAttempt}), quiz.WeekNumber); reason {
		case "":
			return nil
		case domain.ReasonDynamicAlreadyTaken:
			return alreadySubmitted(quiz)
		default:
			return domain.NewIneligibleError(reason)
		}
	}

	existing, err := s.attempts.GetSlot(ctx, studentID, quiz.CourseID, quiz.WeekNumber, quiz.Variant)
	if err != nil {
		return domain.NewInternalError("Failed to load previous attempt", err)
	}
	if existing != nil {
		return alreadySubmitted(quiz)
	}
	return nil
}

func alreadySubmitted(quiz *domain.QuizDefinition) error {
	return domain.NewAlreadyCompletedError(fmt.Sprintf("%s quiz for week %d already submitted", quiz.Variant, quiz.WeekNumber)).
		WithContext("week_number", quiz.WeekNumber).
		WithContext("variant", string(quiz.Variant))
}

// refreshProgression attaches the submitted week's availability and the next
// week's lock. Failures are logged and leave the fields nil.
func (s *quizService) refreshProgression(ctx context.Context, result *SubmissionResult) {
	a := result.Attempt
	attempts, err := s.attempts.ListByStudentCourse(ctx, a.StudentID, a.CourseID)
	if err != nil {
		logger.Get().Warn("Failed to refresh progression after submission",
			zap.String("student_id", a.StudentID),
			zap.String("course_id", a.CourseID),
			zap.Error(err))
		return
	}
	history := progression.NewHistory(attempts)
	av := progression.WeeklyAvailability(history, a.WeekNumber)
	locked := progression.WeekLock(history, a.WeekNumber+1)
	result.Availability = &av
	result.NextWeekLocked = &locked
}
