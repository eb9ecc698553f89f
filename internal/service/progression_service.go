package service

import (
	"context"
	"errors"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/progression"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CourseProgress is the week-by-week state of one student in a course.
type CourseProgress struct {
	CourseID          string
	CourseTitle       string
	PretestCompleted  bool
	PretestLocked     bool
	PretestConfigured bool
	Weeks             []progression.WeekStatus
}

// ProgressionService answers lock and availability queries from one history load.
type ProgressionService interface {
	WeekLock(ctx context.Context, studentID, courseID string, week int) (bool, error)
	WeeklyAvailability(ctx context.Context, studentID, courseID string, week int) (progression.Availability, error)
	CourseProgress(ctx context.Context, studentID, courseID string) (*CourseProgress, error)
}

type progressionService struct {
	attempts   domain.QuizAttemptRepository
	pretests   PretestService
	curriculum domain.Curriculum
}

func NewProgressionService(attempts domain.QuizAttemptRepository, pretests PretestService, curriculum domain.Curriculum) ProgressionService {
	return &progressionService{attempts: attempts, pretests: pretests, curriculum: curriculum}
}

func (s *progressionService) history(ctx context.Context, studentID, courseID string) (progression.History, error) {
	attempts, err := s.attempts.ListByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		return progression.History{}, domain.NewInternalError("Failed to load quiz attempts", err)
	}
	return progression.NewHistory(attempts), nil
}

func (s *progressionService) WeekLock(ctx context.Context, studentID, courseID string, week int) (bool, error) {
	h, err := s.history(ctx, studentID, courseID)
	if err != nil {
		return false, err
	}
	return progression.WeekLock(h, week), nil
}

func (s *progressionService) WeeklyAvailability(ctx context.Context, studentID, courseID string, week int) (progression.Availability, error) {
	h, err := s.history(ctx, studentID, courseID)
	if err != nil {
		return progression.Availability{}, err
	}
	return progression.WeeklyAvailability(h, week), nil
}

// CourseProgress projects every curriculum week. History and pretest state
// are loaded concurrently. A required but unconfigured pretest keeps every
// week after the first locked.
func (s *progressionService) CourseProgress(ctx context.Context, studentID, courseID string) (*CourseProgress, error) {
	course, err := s.curriculum.Course(courseID)
	if err != nil {
		return nil, err
	}

	var (
		h         progression.History
		access    *domain.PretestAccess
		completed bool
		accessErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		h, err = s.history(gctx, studentID, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.pretests.Status(gctx, studentID, courseID)
		return err
	})
	g.Go(func() error {
		access, accessErr = s.pretests.CheckAccess(gctx, studentID, courseID)
		if accessErr != nil && !errors.Is(accessErr, domain.ErrNotFound) {
			return accessErr
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progress := &CourseProgress{
		CourseID:          course.ID,
		CourseTitle:       course.Title,
		PretestCompleted:  completed,
		PretestConfigured: true,
	}
	if accessErr != nil {
		logger.Get().Warn("Pretest required but not configured, locking course weeks", zap.String("course_id", courseID))
		progress.PretestLocked = true
		progress.PretestConfigured = false
	} else {
		progress.PretestLocked = access.Locked
	}
	progress.Weeks = progression.Overview(h, course.Weeks, progress.PretestLocked)
	return progress, nil
}
