package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/repository/models"
	"quiz-progression/internal/util"

	"github.com/jmoiron/sqlx"
)

const quizAttemptColumns = `id, student_id, course_id, quiz_id, variant, week_number, answers, submitted_at, score, max_score, percentage, performance_level, topic_breakdown, slot_key`

type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

// NewQuizAttemptRepository creates a sqlx backed domain.QuizAttemptRepository.
func NewQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainQuizAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	return &domain.QuizAttempt{
		ID:               m.ID,
		StudentID:        m.StudentID,
		CourseID:         m.CourseID,
		QuizID:           m.QuizID,
		Variant:          domain.Variant(m.Variant),
		WeekNumber:       m.WeekNumber,
		Answers:          domain.Answers(m.Answers),
		SubmittedAt:      m.SubmittedAt,
		Score:            m.Score,
		MaxScore:         m.MaxScore,
		Percentage:       m.Percentage,
		PerformanceLevel: domain.PerformanceLevel(m.PerformanceLevel),
		TopicBreakdown:   []domain.TopicPerformance(m.TopicBreakdown),
	}
}

func fromDomainQuizAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	return &models.QuizAttempt{
		ID:               a.ID,
		StudentID:        a.StudentID,
		CourseID:         a.CourseID,
		QuizID:           a.QuizID,
		Variant:          string(a.Variant),
		WeekNumber:       a.WeekNumber,
		Answers:          models.AnswerMap(a.Answers),
		SubmittedAt:      a.SubmittedAt,
		Score:            a.Score,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		PerformanceLevel: string(a.PerformanceLevel),
		TopicBreakdown:   models.TopicBreakdown(a.TopicBreakdown),
		SlotKey:          util.StringToNullString(a.SlotKey()),
	}
}

// Create inserts an attempt. The slot_key unique index rejects a second
// attempt in a non-repeatable slot with domain.ErrDuplicateKey.
func (r *sqlxQuizAttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = time.Now().UTC()
	}
	m := fromDomainQuizAttempt(attempt)

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO quiz_attempts (` + quizAttemptColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, query,
		m.ID, m.StudentID, m.CourseID, m.QuizID, m.Variant, m.WeekNumber, m.Answers,
		m.SubmittedAt, m.Score, m.MaxScore, m.Percentage, m.PerformanceLevel, m.TopicBreakdown, m.SlotKey)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetSlot returns the earliest attempt for a (student, course, week, variant).
func (r *sqlxQuizAttemptRepository) GetSlot(ctx context.Context, studentID, courseID string, weekNumber int, variant domain.Variant) (*domain.QuizAttempt, error) {
	db := GetExecutor(ctx, r.db)
	var rows []models.QuizAttempt
	query := db.Rebind(`SELECT ` + quizAttemptColumns + ` FROM quiz_attempts
		WHERE student_id = ? AND course_id = ? AND week_number = ? AND variant = ?
		ORDER BY submitted_at, id`)
	if err := db.SelectContext(ctx, &rows, query, studentID, courseID, weekNumber, string(variant)); err != nil {
		return nil, fmt.Errorf("failed to get %s attempt for week %d: %w", variant, weekNumber, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toDomainQuizAttempt(&rows[0]), nil
}

// ListByStudentCourse returns every attempt of a student in a course, oldest first.
func (r *sqlxQuizAttemptRepository) ListByStudentCourse(ctx context.Context, studentID, courseID string) ([]*domain.QuizAttempt, error) {
	db := GetExecutor(ctx, r.db)
	var rows []models.QuizAttempt
	query := db.Rebind(`SELECT ` + quizAttemptColumns + ` FROM quiz_attempts
		WHERE student_id = ? AND course_id = ?
		ORDER BY submitted_at, id`)
	if err := db.SelectContext(ctx, &rows, query, studentID, courseID); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	out := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuizAttempt(&rows[i]))
	}
	return out, nil
}
