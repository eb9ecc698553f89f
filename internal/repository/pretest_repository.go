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

const (
	pretestColumns        = `id, course_id, title, questions, max_score, time_limit_minutes, created_at`
	pretestAttemptColumns = `id, student_id, course_id, pretest_id, answers, submitted_at, score, max_score, percentage, performance_level, topic_breakdown`
)

type sqlxPretestRepository struct {
	db *sqlx.DB
}

// NewPretestRepository creates a sqlx backed domain.PretestRepository.
func NewPretestRepository(db *sqlx.DB) domain.PretestRepository {
	return &sqlxPretestRepository{db: db}
}

func toDomainPretest(m *models.Pretest) *domain.Pretest {
	if m == nil {
		return nil
	}
	return &domain.Pretest{
		ID:               m.ID,
		CourseID:         m.CourseID,
		Title:            m.Title.String,
		Questions:        []domain.Question(m.Questions),
		MaxScore:         m.MaxScore,
		TimeLimitMinutes: util.NullInt64ToIntPtr(m.TimeLimitMinutes),
		CreatedAt:        m.CreatedAt,
	}
}

// Upsert replaces the course's pretest definition, inserting it when none exists.
func (r *sqlxPretestRepository) Upsert(ctx context.Context, p *domain.Pretest) error {
	if p.ID == "" {
		p.ID = util.NewULID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	questions := models.QuestionList(p.Questions)
	title := util.StringToNullString(p.Title)
	limit := util.IntPtrToNullInt64(p.TimeLimitMinutes)

	db := GetExecutor(ctx, r.db)
	update := db.Rebind(`UPDATE pretests SET id = ?, title = ?, questions = ?, max_score = ?, time_limit_minutes = ?, created_at = ?
		WHERE course_id = ?`)
	res, err := db.ExecContext(ctx, update, p.ID, title, questions, p.MaxScore, limit, p.CreatedAt, p.CourseID)
	if err != nil {
		return fmt.Errorf("failed to update pretest: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	insert := db.Rebind(`INSERT INTO pretests (` + pretestColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := db.ExecContext(ctx, insert, p.ID, p.CourseID, title, questions, p.MaxScore, limit, p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert pretest: %w", err)
	}
	return nil
}

func (r *sqlxPretestRepository) GetByCourse(ctx context.Context, courseID string) (*domain.Pretest, error) {
	db := GetExecutor(ctx, r.db)
	var m models.Pretest
	query := db.Rebind(`SELECT ` + pretestColumns + ` FROM pretests WHERE course_id = ?`)
	if err := db.GetContext(ctx, &m, query, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pretest for course %s: %w", courseID, err)
	}
	return toDomainPretest(&m), nil
}

type sqlxPretestAttemptRepository struct {
	db *sqlx.DB
}

// NewPretestAttemptRepository creates a sqlx backed domain.PretestAttemptRepository.
func NewPretestAttemptRepository(db *sqlx.DB) domain.PretestAttemptRepository {
	return &sqlxPretestAttemptRepository{db: db}
}

func toDomainPretestAttempt(m *models.PretestAttempt) *domain.PretestAttempt {
	if m == nil {
		return nil
	}
	return &domain.PretestAttempt{
		ID:               m.ID,
		StudentID:        m.StudentID,
		CourseID:         m.CourseID,
		PretestID:        m.PretestID,
		Answers:          domain.Answers(m.Answers),
		SubmittedAt:      m.SubmittedAt,
		Score:            m.Score,
		MaxScore:         m.MaxScore,
		Percentage:       m.Percentage,
		PerformanceLevel: domain.PerformanceLevel(m.PerformanceLevel),
		TopicBreakdown:   []domain.TopicPerformance(m.TopicBreakdown),
	}
}

// Create inserts the student's only pretest attempt for the course.
func (r *sqlxPretestAttemptRepository) Create(ctx context.Context, a *domain.PretestAttempt) error {
	if a.ID == "" {
		a.ID = util.NewULID()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now().UTC()
	}

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO pretest_attempts (` + pretestAttemptColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, query,
		a.ID, a.StudentID, a.CourseID, a.PretestID, models.AnswerMap(a.Answers), a.SubmittedAt,
		a.Score, a.MaxScore, a.Percentage, string(a.PerformanceLevel), models.TopicBreakdown(a.TopicBreakdown))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create pretest attempt: %w", err)
	}
	return nil
}

func (r *sqlxPretestAttemptRepository) Get(ctx context.Context, studentID, courseID string) (*domain.PretestAttempt, error) {
	db := GetExecutor(ctx, r.db)
	var m models.PretestAttempt
	query := db.Rebind(`SELECT ` + pretestAttemptColumns + ` FROM pretest_attempts WHERE student_id = ? AND course_id = ?`)
	if err := db.GetContext(ctx, &m, query, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pretest attempt: %w", err)
	}
	return toDomainPretestAttempt(&m), nil
}
