package service

import (
	"context"
	"errors"
	"testing"

	"quiz-progression/internal/curriculum"
	"quiz-progression/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProgressionFixture(t *testing.T) (*MockQuizAttemptRepository, *MockPretestService, ProgressionService) {
	t.Helper()
	cur, err := curriculum.NewStatic(testCourse())
	require.NoError(t, err)
	attempts := new(MockQuizAttemptRepository)
	pretests := new(MockPretestService)
	return attempts, pretests, NewProgressionService(attempts, pretests, cur)
}

func TestProgressionService_WeekLockAndAvailability(t *testing.T) {
	attempts, _, svc := newProgressionFixture(t)
	ctx := context.Background()
	attempts.On("ListByStudentCourse", mock.Anything, "student-1", "algebra-101").Return([]*domain.QuizAttempt{
		mainAttempt(1, 40),
	}, nil)

	locked, err := svc.WeekLock(ctx, "student-1", "algebra-101", 1)
	require.NoError(t, err)
	assert.False(t, locked)

	locked, err = svc.WeekLock(ctx, "student-1", "algebra-101", 2)
	require.NoError(t, err)
	assert.True(t, locked)

	av, err := svc.WeeklyAvailability(ctx, "student-1", "algebra-101", 1)
	require.NoError(t, err)
	assert.True(t, av.MainCompleted)
	require.NotNil(t, av.MainScore)
	assert.Equal(t, 40, *av.MainScore)
	assert.True(t, av.DynamicAvailable)
}

func TestProgressionService_HistoryError(t *testing.T) {
	attempts, _, svc := newProgressionFixture(t)
	attempts.On("ListByStudentCourse", mock.Anything, "student-1", "algebra-101").Return(nil, errors.New("db down"))

	_, err := svc.WeekLock(context.Background(), "student-1", "algebra-101", 2)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestProgressionService_CourseProgress(t *testing.T) {
	attempts, pretests, svc := newProgressionFixture(t)
	attempts.On("ListByStudentCourse", mock.Anything, "student-1", "algebra-101").Return([]*domain.QuizAttempt{
		mainAttempt(1, 40),
		dynamicAttempt(1),
		mainAttempt(2, 90),
	}, nil)
	pretests.On("Status", mock.Anything, "student-1", "algebra-101").Return(true, nil)
	pretests.On("CheckAccess", mock.Anything, "student-1", "algebra-101").Return(&domain.PretestAccess{Locked: false}, nil)

	progress, err := svc.CourseProgress(context.Background(), "student-1", "algebra-101")
	require.NoError(t, err)
	assert.Equal(t, "Algebra I", progress.CourseTitle)
	assert.True(t, progress.PretestCompleted)
	assert.False(t, progress.PretestLocked)
	assert.True(t, progress.PretestConfigured)

	require.Len(t, progress.Weeks, 3)
	assert.False(t, progress.Weeks[0].IsLocked)
	assert.True(t, progress.Weeks[0].DynamicCompleted)
	assert.False(t, progress.Weeks[1].IsLocked, "failed main plus completed dynamic unlocks week 2")
	assert.False(t, progress.Weeks[2].IsLocked, "passed main unlocks week 3")
	assert.Equal(t, "Equations", progress.Weeks[1].Title)
}

func TestProgressionService_CourseProgress_PretestLocked(t *testing.T) {
	attempts, pretests, svc := newProgressionFixture(t)
	attempts.On("ListByStudentCourse", mock.Anything, "student-1", "algebra-101").Return([]*domain.QuizAttempt{}, nil)
	pretests.On("Status", mock.Anything, "student-1", "algebra-101").Return(false, nil)
	pretests.On("CheckAccess", mock.Anything, "student-1", "algebra-101").Return(&domain.PretestAccess{Locked: true, Pretest: &domain.Pretest{ID: "p"}}, nil)

	progress, err := svc.CourseProgress(context.Background(), "student-1", "algebra-101")
	require.NoError(t, err)
	assert.True(t, progress.PretestLocked)
	assert.False(t, progress.Weeks[0].IsLocked)
	assert.True(t, progress.Weeks[1].IsLocked)
	assert.True(t, progress.Weeks[2].IsLocked)
}

func TestProgressionService_CourseProgress_PretestNotConfigured(t *testing.T) {
	attempts, pretests, svc := newProgressionFixture(t)
	attempts.On("ListByStudentCourse", mock.Anything, "student-1", "algebra-101").Return([]*domain.QuizAttempt{
		mainAttempt(1, 100),
	}, nil)
	pretests.On("Status", mock.Anything, "student-1", "algebra-101").Return(false, nil)
	pretests.On("CheckAccess", mock.Anything, "student-1", "algebra-101").
		Return(nil, domain.NewNotFoundError(domain.ReasonPretestNotConfigured))

	progress, err := svc.CourseProgress(context.Background(), "student-1", "algebra-101")
	require.NoError(t, err)
	assert.True(t, progress.PretestLocked)
	assert.False(t, progress.PretestConfigured)
	assert.True(t, progress.Weeks[1].IsLocked, "passing week 1 does not bypass the pretest gate")
}

func TestProgressionService_CourseProgress_Errors(t *testing.T) {
	_, _, svc := newProgressionFixture(t)
	_, err := svc.CourseProgress(context.Background(), "student-1", "history-101")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	attempts, pretests, svc := newProgressionFixture(t)
	attempts.On("ListByStudentCourse", mock.Anything, "student-1", "algebra-101").Return([]*domain.QuizAttempt{}, nil)
	pretests.On("Status", mock.Anything, "student-1", "algebra-101").Return(false, nil)
	pretests.On("CheckAccess", mock.Anything, "student-1", "algebra-101").
		Return(nil, domain.NewInternalError("Failed to load course settings", errors.New("db down")))

	_, err = svc.CourseProgress(context.Background(), "student-1", "algebra-101")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
