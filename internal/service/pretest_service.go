package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-progression/internal/config"
	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/scoring"

	"go.uber.org/zap"
)

// PretestSubmission is one student's answers to a course pretest.
type PretestSubmission struct {
	StudentID string
	CourseID  string
	PretestID string
	Answers   domain.Answers
}

// PretestService gates course content behind the diagnostic pretest.
type PretestService interface {
	Status(ctx context.Context, studentID, courseID string) (bool, error)
	CheckAccess(ctx context.Context, studentID, courseID string) (*domain.PretestAccess, error)
	GetPretest(ctx context.Context, courseID string) (*domain.Pretest, error)
	Submit(ctx context.Context, sub PretestSubmission) (*domain.PretestResult, error)
	Result(ctx context.Context, studentID, courseID string) (*domain.PretestResult, error)
	SavePretest(ctx context.Context, pretest *domain.Pretest) error
	SaveCourseSettings(ctx context.Context, settings *domain.CourseSettings) error
}

type pretestService struct {
	pretests   domain.PretestRepository
	attempts   domain.PretestAttemptRepository
	settings   domain.CourseSettingsRepository
	curriculum domain.Curriculum
	cfg        config.AssessmentConfig
	now        func() time.Time
}

// NewPretestService creates a PretestService. curriculum may be nil, in which
// case recommendations carry no resource.
func NewPretestService(
	pretests domain.PretestRepository,
	attempts domain.PretestAttemptRepository,
	settings domain.CourseSettingsRepository,
	curriculum domain.Curriculum,
	cfg config.AssessmentConfig,
) PretestService {
	return &pretestService{
		pretests:   pretests,
		attempts:   attempts,
		settings:   settings,
		curriculum: curriculum,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Status reports whether the student has a pretest attempt for the course.
func (s *pretestService) Status(ctx context.Context, studentID, courseID string) (bool, error) {
	attempt, err := s.attempts.Get(ctx, studentID, courseID)
	if err != nil {
		return false, domain.NewInternalError("Failed to load pretest attempt", err)
	}
	return attempt != nil, nil
}

func (s *pretestService) pretestRequired(ctx context.Context, courseID string) (bool, error) {
	settings, err := s.settings.Get(ctx, courseID)
	if err != nil {
		return false, domain.NewInternalError("Failed to load course settings", err)
	}
	if settings == nil {
		return s.cfg.PretestRequiredDefault, nil
	}
	return settings.PretestRequired, nil
}

// CheckAccess decides whether course content is open to the student. A course
// that requires a pretest but has none configured is reported as NotFound.
func (s *pretestService) CheckAccess(ctx context.Context, studentID, courseID string) (*domain.PretestAccess, error) {
	required, err := s.pretestRequired(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !required {
		return &domain.PretestAccess{Locked: false}, nil
	}

	completed, err := s.Status(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if completed {
		return &domain.PretestAccess{Locked: false}, nil
	}

	pretest, err := s.pretests.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load pretest", err)
	}
	if pretest == nil {
		logger.Get().Warn("Course requires a pretest but none is configured", zap.String("course_id", courseID))
		return nil, domain.NewNotFoundError(domain.ReasonPretestNotConfigured).WithContext("course_id", courseID)
	}
	return &domain.PretestAccess{Locked: true, Pretest: pretest}, nil
}

func (s *pretestService) GetPretest(ctx context.Context, courseID string) (*domain.Pretest, error) {
	pretest, err := s.pretests.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load pretest", err)
	}
	if pretest == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No pretest found for course %s", courseID))
	}
	return pretest, nil
}

// Submit grades the student's only pretest attempt for a course.
func (s *pretestService) Submit(ctx context.Context, sub PretestSubmission) (*domain.PretestResult, error) {
	l := logger.Get()

	pretest, err := s.GetPretest(ctx, sub.CourseID)
	if err != nil {
		return nil, err
	}
	if sub.PretestID != pretest.ID {
		return nil, domain.NewInvalidInputError("Pretest id does not match the course pretest").
			WithContext("pretest_id", sub.PretestID)
	}

	existing, err := s.attempts.Get(ctx, sub.StudentID, sub.CourseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load pretest attempt", err)
	}
	if existing != nil {
		return nil, domain.NewAlreadyCompletedError("Pretest already completed")
	}

	res := scoring.Score(pretest.Questions, sub.Answers, scoring.PretestThresholds)
	attempt := &domain.PretestAttempt{
		StudentID:        sub.StudentID,
		CourseID:         sub.CourseID,
		PretestID:        pretest.ID,
		Answers:          knownAnswers(pretest.Questions, sub.Answers),
		SubmittedAt:      s.now(),
		Score:            res.Score,
		MaxScore:         res.MaxScore,
		Percentage:       res.Percentage,
		PerformanceLevel: res.PerformanceLevel,
		TopicBreakdown:   res.TopicBreakdown,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewAlreadyCompletedError("Pretest already completed")
		}
		return nil, domain.NewInternalError("Failed to save pretest attempt", err)
	}

	l.Info("Pretest submitted",
		zap.String("student_id", sub.StudentID),
		zap.String("course_id", sub.CourseID),
		zap.Int("percentage", attempt.Percentage),
		zap.String("level", string(attempt.PerformanceLevel)))

	return s.buildResult(attempt), nil
}

// Result re-derives the analysis and recommendation of a stored attempt.
func (s *pretestService) Result(ctx context.Context, studentID, courseID string) (*domain.PretestResult, error) {
	attempt, err := s.attempts.Get(ctx, studentID, courseID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load pretest attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("Pretest not completed")
	}
	return s.buildResult(attempt), nil
}

func (s *pretestService) buildResult(attempt *domain.PretestAttempt) *domain.PretestResult {
	analysis := domain.PretestAnalysis{
		Score:            attempt.Score,
		MaxScore:         attempt.MaxScore,
		Percentage:       attempt.Percentage,
		PerformanceLevel: attempt.PerformanceLevel,
		TopicBreakdown:   attempt.TopicBreakdown,
		Strengths:        scoring.Strengths(attempt.TopicBreakdown),
		Weaknesses:       scoring.Weaknesses(attempt.TopicBreakdown),
	}
	if analysis.TopicBreakdown == nil {
		analysis.TopicBreakdown = []domain.TopicPerformance{}
	}

	result := &domain.PretestResult{Attempt: attempt, Analysis: analysis}
	if attempt.PerformanceLevel != domain.LevelModeratePlus {
		result.Recommendation = s.recommend(attempt.CourseID, attempt.TopicBreakdown)
	}
	return result
}

// recommend points at the weakest topic and its first curriculum resource.
func (s *pretestService) recommend(courseID string, breakdown []domain.TopicPerformance) *domain.TopicRecommendation {
	weakest, ok := scoring.Weakest(breakdown)
	if !ok {
		return nil
	}
	title := weakest.TopicTitle
	if title == "" {
		title = weakest.TopicID
	}
	rec := &domain.TopicRecommendation{
		TopicID:    weakest.TopicID,
		TopicTitle: title,
		Recommendation: fmt.Sprintf("You scored %d out of %d (%d%%) on %s. Review this topic before starting the course.",
			weakest.CorrectCount, weakest.QuestionsCount, weakest.Percentage, title),
	}

	if s.curriculum == nil {
		return rec
	}
	course, err := s.curriculum.Course(courseID)
	if err != nil {
		logger.Get().Debug("No curriculum for recommendation", zap.String("course_id", courseID), zap.Error(err))
		return rec
	}
	if topic, ok := course.FindTopic(weakest.TopicID); ok && len(topic.Resources) > 0 {
		res := topic.Resources[0]
		rec.ResourceURL = res.URL
		rec.ResourceType = res.Type
		rec.ResourceTitle = res.Title
	}
	return rec
}

// SavePretest validates and stores a course pretest, replacing any previous one.
func (s *pretestService) SavePretest(ctx context.Context, pretest *domain.Pretest) error {
	if pretest.CourseID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("course_id")}
	}
	if len(pretest.Questions) == 0 {
		return domain.ValidationErrors{domain.NewMissingFieldError("questions")}
	}
	seen := make(map[string]struct{}, len(pretest.Questions))
	for _, q := range pretest.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.ID]; dup {
			return domain.NewInvalidInputError(fmt.Sprintf("duplicate question id %s", q.ID))
		}
		seen[q.ID] = struct{}{}
	}
	pretest.MaxScore = domain.GradedQuestionCount(pretest.Questions)
	pretest.ID = ""
	pretest.CreatedAt = s.now()

	if err := s.pretests.Upsert(ctx, pretest); err != nil {
		return domain.NewInternalError("Failed to save pretest", err)
	}
	logger.Get().Info("Pretest saved", zap.String("course_id", pretest.CourseID), zap.Int("questions", len(pretest.Questions)))
	return nil
}

func (s *pretestService) SaveCourseSettings(ctx context.Context, settings *domain.CourseSettings) error {
	if settings.CourseID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("course_id")}
	}
	if err := s.settings.Upsert(ctx, settings); err != nil {
		return domain.NewInternalError("Failed to save course settings", err)
	}
	return nil
}

// knownAnswers drops answers to question ids the quiz does not contain.
func knownAnswers(questions []domain.Question, answers domain.Answers) domain.Answers {
	out := make(domain.Answers, len(answers))
	for _, q := range questions {
		if v, ok := answers[q.ID]; ok {
			out[q.ID] = v
		}
	}
	return out
}
