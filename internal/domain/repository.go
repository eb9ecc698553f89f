package domain

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned by repositories when a unique constraint rejects a write.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// Repositories return (nil, nil) when a single-row lookup finds nothing.

// QuizDefinitionRepository persists generated weekly quizzes.
type QuizDefinitionRepository interface {
	// Create stores a definition. A second Main definition for the same
	// (course, week) fails with ErrDuplicateKey.
	Create(ctx context.Context, quiz *QuizDefinition) error
	GetByID(ctx context.Context, id string) (*QuizDefinition, error)
	GetMain(ctx context.Context, courseID string, weekNumber int) (*QuizDefinition, error)
	// DeleteDynamicExcept removes a student's older dynamic definitions for a week.
	DeleteDynamicExcept(ctx context.Context, courseID string, weekNumber int, studentID, keepID string) error
}

// QuizAttemptRepository persists graded quiz submissions.
type QuizAttemptRepository interface {
	// Create stores an attempt. A second attempt in a non-repeatable slot
	// fails with ErrDuplicateKey.
	Create(ctx context.Context, attempt *QuizAttempt) error
	GetSlot(ctx context.Context, studentID, courseID string, weekNumber int, variant Variant) (*QuizAttempt, error)
	ListByStudentCourse(ctx context.Context, studentID, courseID string) ([]*QuizAttempt, error)
}

// PretestRepository persists the diagnostic definition of each course.
type PretestRepository interface {
	Upsert(ctx context.Context, pretest *Pretest) error
	GetByCourse(ctx context.Context, courseID string) (*Pretest, error)
}

// PretestAttemptRepository persists graded pretests.
type PretestAttemptRepository interface {
	// Create fails with ErrDuplicateKey when the student already has an attempt for the course.
	Create(ctx context.Context, attempt *PretestAttempt) error
	Get(ctx context.Context, studentID, courseID string) (*PretestAttempt, error)
}

// CourseSettingsRepository persists explicit per-course flags.
type CourseSettingsRepository interface {
	Get(ctx context.Context, courseID string) (*CourseSettings, error)
	Upsert(ctx context.Context, settings *CourseSettings) error
}
