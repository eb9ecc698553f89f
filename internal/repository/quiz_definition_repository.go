package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/repository/models"
	"quiz-progression/internal/util"

	"github.com/jmoiron/sqlx"
)

const quizDefinitionColumns = `id, course_id, week_number, variant, student_id, title, questions, max_score, time_limit_minutes, main_key, created_at`

type sqlxQuizDefinitionRepository struct {
	db *sqlx.DB
}

// NewQuizDefinitionRepository creates a sqlx backed domain.QuizDefinitionRepository.
func NewQuizDefinitionRepository(db *sqlx.DB) domain.QuizDefinitionRepository {
	return &sqlxQuizDefinitionRepository{db: db}
}

// mainKey is the unique key that allows a single Main quiz per course week.
func mainKey(courseID string, weekNumber int) string {
	return fmt.Sprintf("%s|%d", courseID, weekNumber)
}

func toDomainQuizDefinition(m *models.QuizDefinition) *domain.QuizDefinition {
	if m == nil {
		return nil
	}
	return &domain.QuizDefinition{
		ID:               m.ID,
		CourseID:         m.CourseID,
		WeekNumber:       m.WeekNumber,
		Variant:          domain.Variant(m.Variant),
		StudentID:        m.StudentID.String,
		Title:            m.Title.String,
		Questions:        []domain.Question(m.Questions),
		MaxScore:         m.MaxScore,
		TimeLimitMinutes: util.NullInt64ToIntPtr(m.TimeLimitMinutes),
		CreatedAt:        m.CreatedAt,
	}
}

func fromDomainQuizDefinition(q *domain.QuizDefinition) *models.QuizDefinition {
	if q == nil {
		return nil
	}
	m := &models.QuizDefinition{
		ID:               q.ID,
		CourseID:         q.CourseID,
		WeekNumber:       q.WeekNumber,
		Variant:          string(q.Variant),
		StudentID:        util.StringToNullString(q.StudentID),
		Title:            util.StringToNullString(q.Title),
		Questions:        models.QuestionList(q.Questions),
		MaxScore:         q.MaxScore,
		TimeLimitMinutes: util.IntPtrToNullInt64(q.TimeLimitMinutes),
		CreatedAt:        q.CreatedAt,
	}
	if q.Variant == domain.VariantMain {
		m.MainKey = util.StringToNullString(mainKey(q.CourseID, q.WeekNumber))
	}
	return m
}

// Create inserts a definition, assigning an id and creation time when missing.
func (r *sqlxQuizDefinitionRepository) Create(ctx context.Context, quiz *domain.QuizDefinition) error {
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	m := fromDomainQuizDefinition(quiz)

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO quiz_definitions (` + quizDefinitionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, query,
		m.ID, m.CourseID, m.WeekNumber, m.Variant, m.StudentID, m.Title,
		m.Questions, m.MaxScore, m.TimeLimitMinutes, m.MainKey, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create quiz definition: %w", err)
	}
	return nil
}

func (r *sqlxQuizDefinitionRepository) GetByID(ctx context.Context, id string) (*domain.QuizDefinition, error) {
	db := GetExecutor(ctx, r.db)
	var m models.QuizDefinition
	query := db.Rebind(`SELECT ` + quizDefinitionColumns + ` FROM quiz_definitions WHERE id = ?`)
	if err := db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz definition %s: %w", id, err)
	}
	return toDomainQuizDefinition(&m), nil
}

func (r *sqlxQuizDefinitionRepository) GetMain(ctx context.Context, courseID string, weekNumber int) (*domain.QuizDefinition, error) {
	db := GetExecutor(ctx, r.db)
	var m models.QuizDefinition
	query := db.Rebind(`SELECT ` + quizDefinitionColumns + ` FROM quiz_definitions WHERE main_key = ?`)
	if err := db.GetContext(ctx, &m, query, mainKey(courseID, weekNumber)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get main quiz for %s week %d: %w", courseID, weekNumber, err)
	}
	return toDomainQuizDefinition(&m), nil
}

// DeleteDynamicExcept removes superseded dynamic definitions that no attempt references.
func (r *sqlxQuizDefinitionRepository) DeleteDynamicExcept(ctx context.Context, courseID string, weekNumber int, studentID, keepID string) error {
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`DELETE FROM quiz_definitions
		WHERE course_id = ? AND week_number = ? AND variant = ? AND student_id = ? AND id <> ?
		AND NOT EXISTS (SELECT 1 FROM quiz_attempts a WHERE a.quiz_id = quiz_definitions.id)`)
	if _, err := db.ExecContext(ctx, query, courseID, weekNumber, string(domain.VariantDynamic), studentID, keepID); err != nil {
		return fmt.Errorf("failed to delete stale dynamic quizzes: %w", err)
	}
	return nil
}
