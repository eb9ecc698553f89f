package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quiz-progression/internal/cache"
	"quiz-progression/internal/config"
	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/progression"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResolveRequest identifies the quiz a student asks for.
type ResolveRequest struct {
	CourseID   string
	WeekNumber int
	Variant    domain.Variant
	StudentID  string
}

// QuizCatalog resolves the quiz definition to serve for a course week and variant.
type QuizCatalog interface {
	Resolve(ctx context.Context, req ResolveRequest) (*domain.QuizDefinition, error)
}

type resolveFunc func(ctx context.Context, req ResolveRequest, course *domain.Course, week *domain.Week) (*domain.QuizDefinition, error)

type quizCatalog struct {
	definitions       domain.QuizDefinitionRepository
	attempts          domain.QuizAttemptRepository
	generator         domain.QuizGenerator
	cache             domain.Cache
	curriculum        domain.Curriculum
	cfg               config.AssessmentConfig
	generationTimeout time.Duration

	mainGroup singleflight.Group
	resolvers map[domain.Variant]resolveFunc
}

// NewQuizCatalog creates a QuizCatalog. cache may be nil.
func NewQuizCatalog(
	definitions domain.QuizDefinitionRepository,
	attempts domain.QuizAttemptRepository,
	generator domain.QuizGenerator,
	cache domain.Cache,
	curriculum domain.Curriculum,
	cfg *config.Config,
) QuizCatalog {
	c := &quizCatalog{
		definitions:       definitions,
		attempts:          attempts,
		generator:         generator,
		cache:             cache,
		curriculum:        curriculum,
		cfg:               cfg.Assessment,
		generationTimeout: cfg.LLM.GenerationTimeout,
	}
	c.resolvers = map[domain.Variant]resolveFunc{
		domain.VariantMain:      c.resolveMain,
		domain.VariantRefresher: c.resolveRefresher,
		domain.VariantDynamic:   c.resolveDynamic,
	}
	return c
}

// Resolve returns the Main quiz shared by the week, a fresh Refresher, or a
// Dynamic quiz tailored to the student's Main attempt.
func (c *quizCatalog) Resolve(ctx context.Context, req ResolveRequest) (*domain.QuizDefinition, error) {
	resolve, ok := c.resolvers[req.Variant]
	if !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown quiz variant: %q", req.Variant))
	}
	if req.WeekNumber < 1 {
		return nil, domain.NewInvalidInputError("week number must be positive")
	}
	if spec, _ := req.Variant.Spec(); spec.PerStudent && req.StudentID == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("student_id")}
	}

	course, err := c.curriculum.Course(req.CourseID)
	if err != nil {
		return nil, err
	}
	week, ok := course.Week(req.WeekNumber)
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Week %d not found in course %s", req.WeekNumber, req.CourseID))
	}
	return resolve(ctx, req, course, week)
}

func (c *quizCatalog) resolveMain(ctx context.Context, req ResolveRequest, course *domain.Course, week *domain.Week) (*domain.QuizDefinition, error) {
	l := logger.Get()
	key := cache.MainQuizKey(course.ID, week.Number)

	if quiz := c.cachedMain(ctx, key); quiz != nil {
		return quiz, nil
	}

	stored, err := c.definitions.GetMain(ctx, course.ID, week.Number)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load main quiz", err)
	}
	if stored != nil {
		c.cacheMain(ctx, key, stored)
		return stored, nil
	}

	// Concurrent first requests for a week share one generation. The work runs
	// detached from any single caller so a disconnect does not fail the others.
	v, err, _ := c.mainGroup.Do(course.ID+"|"+strconv.Itoa(week.Number), func() (interface{}, error) {
		genCtx := context.WithoutCancel(ctx)
		if c.generationTimeout > 0 {
			var cancel context.CancelFunc
			genCtx, cancel = context.WithTimeout(genCtx, c.generationTimeout)
			defer cancel()
		}

		if again, err := c.definitions.GetMain(genCtx, course.ID, week.Number); err != nil {
			return nil, domain.NewInternalError("Failed to load main quiz", err)
		} else if again != nil {
			return again, nil
		}

		genReq := domain.GenerationRequest{
			CourseID:      course.ID,
			CourseTitle:   course.Title,
			WeekNumber:    week.Number,
			Variant:       domain.VariantMain,
			Topics:        week.Topics,
			QuestionCount: c.cfg.MainQuestions,
		}
		if prev, ok := course.Week(week.Number - 1); ok && len(prev.Topics) > 0 {
			genReq.BonusTopics = prev.Topics
			genReq.BonusCount = c.cfg.MainBonusQuestions
		}

		quiz, err := c.generate(genCtx, genReq, week, "")
		if err != nil {
			return nil, err
		}
		if err := c.definitions.Create(genCtx, quiz); err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				// Another instance stored the week's Main quiz first.
				existing, getErr := c.definitions.GetMain(genCtx, course.ID, week.Number)
				if getErr != nil || existing == nil {
					return nil, domain.NewInternalError("Failed to load main quiz", getErr)
				}
				return existing, nil
			}
			return nil, domain.NewInternalError("Failed to save main quiz", err)
		}
		l.Info("Main quiz generated",
			zap.String("course_id", course.ID),
			zap.Int("week", week.Number),
			zap.String("quiz_id", quiz.ID))
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}

	quiz := v.(*domain.QuizDefinition)
	c.cacheMain(ctx, key, quiz)
	return quiz, nil
}

func (c *quizCatalog) cachedMain(ctx context.Context, key string) *domain.QuizDefinition {
	if c.cache == nil {
		return nil
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Main quiz cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var quiz domain.QuizDefinition
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		logger.Get().Warn("Discarding undecodable cached main quiz", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &quiz
}

func (c *quizCatalog) cacheMain(ctx context.Context, key string, quiz *domain.QuizDefinition) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Warn("Failed to encode main quiz for cache", zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.cfg.QuizCacheTTL); err != nil {
		logger.Get().Warn("Main quiz cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *quizCatalog) resolveRefresher(ctx context.Context, req ResolveRequest, course *domain.Course, week *domain.Week) (*domain.QuizDefinition, error) {
	quiz, err := c.generate(ctx, domain.GenerationRequest{
		CourseID:      course.ID,
		CourseTitle:   course.Title,
		WeekNumber:    week.Number,
		Variant:       domain.VariantRefresher,
		Topics:        week.Topics,
		QuestionCount: c.cfg.RefresherQuestions,
		Nonce:         uuid.NewString(),
	}, week, "")
	if err != nil {
		return nil, err
	}
	if err := c.definitions.Create(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save refresher quiz", err)
	}
	return quiz, nil
}

func (c *quizCatalog) resolveDynamic(ctx context.Context, req ResolveRequest, course *domain.Course, week *domain.Week) (*domain.QuizDefinition, error) {
	mainAttempt, err := c.attempts.GetSlot(ctx, req.StudentID, course.ID, week.Number, domain.VariantMain)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load main attempt", err)
	}
	dynamicAttempt, err := c.attempts.GetSlot(ctx, req.StudentID, course.ID, week.Number, domain.VariantDynamic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load dynamic attempt", err)
	}
	history := progression.NewHistory([]*domain.QuizAttempt{mainAttempt, dynamicAttempt})
	if reason := progression.DynamicEligibility(history, week.Number); reason != "" {
		return nil, domain.NewIneligibleError(reason)
	}

	quiz, err := c.generate(ctx, domain.GenerationRequest{
		CourseID:      course.ID,
		CourseTitle:   course.Title,
		WeekNumber:    week.Number,
		Variant:       domain.VariantDynamic,
		Topics:        focusTopics(course, week, mainAttempt.TopicBreakdown),
		QuestionCount: c.cfg.DynamicQuestions,
		Nonce:         uuid.NewString(),
	}, week, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := c.definitions.Create(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save dynamic quiz", err)
	}
	if err := c.definitions.DeleteDynamicExcept(ctx, course.ID, week.Number, req.StudentID, quiz.ID); err != nil {
		logger.Get().Warn("Failed to remove superseded dynamic quizzes", zap.String("student_id", req.StudentID), zap.Error(err))
	}
	return quiz, nil
}

// focusTopics picks the Main attempt's weak topics, then anything not strong,
// then the whole week.
func focusTopics(course *domain.Course, week *domain.Week, breakdown []domain.TopicPerformance) []domain.Topic {
	pick := func(keep func(domain.PerformanceLevel) bool) []domain.Topic {
		var out []domain.Topic
		for _, tp := range breakdown {
			if !keep(tp.PerformanceLevel) {
				continue
			}
			if t, ok := course.FindTopic(tp.TopicID); ok {
				out = append(out, *t)
			} else {
				out = append(out, domain.Topic{ID: tp.TopicID, Title: tp.TopicTitle})
			}
		}
		return out
	}
	if weak := pick(func(l domain.PerformanceLevel) bool { return l == domain.LevelWeak }); len(weak) > 0 {
		return weak
	}
	if notStrong := pick(func(l domain.PerformanceLevel) bool { return l != domain.LevelStrong }); len(notStrong) > 0 {
		return notStrong
	}
	return week.Topics
}

// generate calls the content generator and wraps the questions in a definition.
func (c *quizCatalog) generate(ctx context.Context, req domain.GenerationRequest, week *domain.Week, studentID string) (*domain.QuizDefinition, error) {
	questions, err := c.generator.GenerateQuestions(ctx, req)
	if err != nil {
		logger.Get().Error("Quiz generation failed",
			zap.String("course_id", req.CourseID),
			zap.Int("week", req.WeekNumber),
			zap.String("variant", string(req.Variant)),
			zap.Error(err))
		return nil, domain.NewGenerationFailureError(err)
	}

	quiz := &domain.QuizDefinition{
		CourseID:   req.CourseID,
		WeekNumber: req.WeekNumber,
		Variant:    req.Variant,
		StudentID:  studentID,
		Title:      quizTitle(req.Variant, week),
		Questions:  questions,
		MaxScore:   domain.GradedQuestionCount(questions),
	}
	if limit := c.cfg.TimeLimitFor(string(req.Variant)); limit > 0 {
		quiz.TimeLimitMinutes = &limit
	}
	if err := quiz.Validate(); err != nil {
		return nil, domain.NewGenerationFailureError(err)
	}
	if quiz.MaxScore == 0 {
		return nil, domain.NewGenerationFailureError(errors.New("generated quiz has no graded questions"))
	}
	return quiz, nil
}

func quizTitle(variant domain.Variant, week *domain.Week) string {
	var suffix string
	switch variant {
	case domain.VariantRefresher:
		suffix = " (Refresher)"
	case domain.VariantDynamic:
		suffix = " (Review)"
	}
	if week.Title == "" {
		return fmt.Sprintf("Week %d Quiz%s", week.Number, suffix)
	}
	return fmt.Sprintf("Week %d: %s%s", week.Number, week.Title, suffix)
}
