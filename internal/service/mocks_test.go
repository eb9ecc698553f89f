package service

import (
	"context"
	"time"

	"quiz-progression/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizDefinitionRepository ---
type MockQuizDefinitionRepository struct {
	mock.Mock
}

func (m *MockQuizDefinitionRepository) Create(ctx context.Context, quiz *domain.QuizDefinition) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizDefinitionRepository) GetByID(ctx context.Context, id string) (*domain.QuizDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDefinition), args.Error(1)
}

func (m *MockQuizDefinitionRepository) GetMain(ctx context.Context, courseID string, weekNumber int) (*domain.QuizDefinition, error) {
	args := m.Called(ctx, courseID, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDefinition), args.Error(1)
}

func (m *MockQuizDefinitionRepository) DeleteDynamicExcept(ctx context.Context, courseID string, weekNumber int, studentID, keepID string) error {
	args := m.Called(ctx, courseID, weekNumber, studentID, keepID)
	return args.Error(0)
}

// --- MockQuizAttemptRepository ---
type MockQuizAttemptRepository struct {
	mock.Mock
}

func (m *MockQuizAttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockQuizAttemptRepository) GetSlot(ctx context.Context, studentID, courseID string, weekNumber int, variant domain.Variant) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, studentID, courseID, weekNumber, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockQuizAttemptRepository) ListByStudentCourse(ctx context.Context, studentID, courseID string) ([]*domain.QuizAttempt, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizAttempt), args.Error(1)
}

// --- MockPretestRepository ---
type MockPretestRepository struct {
	mock.Mock
}

func (m *MockPretestRepository) Upsert(ctx context.Context, pretest *domain.Pretest) error {
	args := m.Called(ctx, pretest)
	return args.Error(0)
}

func (m *MockPretestRepository) GetByCourse(ctx context.Context, courseID string) (*domain.Pretest, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pretest), args.Error(1)
}

// --- MockPretestAttemptRepository ---
type MockPretestAttemptRepository struct {
	mock.Mock
}

func (m *MockPretestAttemptRepository) Create(ctx context.Context, attempt *domain.PretestAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockPretestAttemptRepository) Get(ctx context.Context, studentID, courseID string) (*domain.PretestAttempt, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PretestAttempt), args.Error(1)
}

// --- MockCourseSettingsRepository ---
type MockCourseSettingsRepository struct {
	mock.Mock
}

func (m *MockCourseSettingsRepository) Get(ctx context.Context, courseID string) (*domain.CourseSettings, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseSettings), args.Error(1)
}

func (m *MockCourseSettingsRepository) Upsert(ctx context.Context, settings *domain.CourseSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) ([]domain.Question, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockPretestService ---
type MockPretestService struct {
	mock.Mock
}

func (m *MockPretestService) Status(ctx context.Context, studentID, courseID string) (bool, error) {
	args := m.Called(ctx, studentID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPretestService) CheckAccess(ctx context.Context, studentID, courseID string) (*domain.PretestAccess, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PretestAccess), args.Error(1)
}

func (m *MockPretestService) GetPretest(ctx context.Context, courseID string) (*domain.Pretest, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pretest), args.Error(1)
}

func (m *MockPretestService) Submit(ctx context.Context, sub PretestSubmission) (*domain.PretestResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PretestResult), args.Error(1)
}

func (m *MockPretestService) Result(ctx context.Context, studentID, courseID string) (*domain.PretestResult, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PretestResult), args.Error(1)
}

func (m *MockPretestService) SavePretest(ctx context.Context, pretest *domain.Pretest) error {
	args := m.Called(ctx, pretest)
	return args.Error(0)
}

func (m *MockPretestService) SaveCourseSettings(ctx context.Context, settings *domain.CourseSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- MockQuizCatalog ---
type MockQuizCatalog struct {
	mock.Mock
}

func (m *MockQuizCatalog) Resolve(ctx context.Context, req ResolveRequest) (*domain.QuizDefinition, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDefinition), args.Error(1)
}

// --- MockQuizService ---
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Submit(ctx context.Context, sub QuizSubmission) (*SubmissionResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubmissionResult), args.Error(1)
}

// --- fixtures ---

func intPtr(v int) *int { return &v }

func testCourse() domain.Course {
	return domain.Course{
		ID:    "algebra-101",
		Title: "Algebra I",
		Weeks: []domain.Week{
			{Number: 1, Title: "Numbers", Topics: []domain.Topic{
				{ID: "integers", Title: "Integers", Resources: []domain.Resource{{Type: "video", Title: "Integer basics", URL: "https://example.com/integers"}}},
				{ID: "fractions", Title: "Fractions"},
			}},
			{Number: 2, Title: "Equations", Topics: []domain.Topic{
				{ID: "linear", Title: "Linear equations"},
				{ID: "slope", Title: "Slope"},
			}},
			{Number: 3, Title: "Functions", Topics: []domain.Topic{
				{ID: "functions", Title: "Functions"},
			}},
		},
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "Solve 2x = 4", Options: []string{"1", "2", "3", "4"}, CorrectOptionIndex: 1, TopicID: "linear", TopicTitle: "Linear equations"},
		{ID: "q2", Text: "Solve x + 1 = 3", Options: []string{"2", "3"}, CorrectOptionIndex: 0, TopicID: "linear", TopicTitle: "Linear equations"},
		{ID: "q3", Text: "Slope of y = 3x", Options: []string{"1", "3"}, CorrectOptionIndex: 1, TopicID: "slope", TopicTitle: "Slope"},
		{ID: "q4", Text: "Slope of y = -x", Options: []string{"-1", "1"}, CorrectOptionIndex: 0, TopicID: "slope", TopicTitle: "Slope"},
		{ID: "b1", Text: "What is -2 + 5?", Options: []string{"3", "-3"}, CorrectOptionIndex: 0, TopicID: "integers", TopicTitle: "Integers", IsBonus: true},
	}
}

func mainAttempt(week, percentage int) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:          "main-attempt",
		StudentID:   "student-1",
		CourseID:    "algebra-101",
		Variant:     domain.VariantMain,
		WeekNumber:  week,
		Percentage:  percentage,
		SubmittedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		TopicBreakdown: []domain.TopicPerformance{
			{TopicID: "linear", TopicTitle: "Linear equations", QuestionsCount: 2, CorrectCount: 0, PerformanceLevel: domain.LevelWeak},
			{TopicID: "slope", TopicTitle: "Slope", QuestionsCount: 2, CorrectCount: 2, Percentage: 100, PerformanceLevel: domain.LevelStrong},
		},
	}
}

func dynamicAttempt(week int) *domain.QuizAttempt {
	return &domain.QuizAttempt{
		ID:          "dynamic-attempt",
		StudentID:   "student-1",
		CourseID:    "algebra-101",
		Variant:     domain.VariantDynamic,
		WeekNumber:  week,
		Percentage:  70,
		SubmittedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}
