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

type sqlxCourseSettingsRepository struct {
	db *sqlx.DB
}

// NewCourseSettingsRepository creates a sqlx backed domain.CourseSettingsRepository.
func NewCourseSettingsRepository(db *sqlx.DB) domain.CourseSettingsRepository {
	return &sqlxCourseSettingsRepository{db: db}
}

func (r *sqlxCourseSettingsRepository) Get(ctx context.Context, courseID string) (*domain.CourseSettings, error) {
	db := GetExecutor(ctx, r.db)
	var m models.CourseSettings
	query := db.Rebind(`SELECT course_id, pretest_required, updated_at FROM course_settings WHERE course_id = ?`)
	if err := db.GetContext(ctx, &m, query, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course settings: %w", err)
	}
	return &domain.CourseSettings{
		CourseID:        m.CourseID,
		PretestRequired: m.PretestRequired == 1,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func (r *sqlxCourseSettingsRepository) Upsert(ctx context.Context, s *domain.CourseSettings) error {
	s.UpdatedAt = time.Now().UTC()
	required := util.BoolToInt(s.PretestRequired)

	db := GetExecutor(ctx, r.db)
	res, err := db.ExecContext(ctx,
		db.Rebind(`UPDATE course_settings SET pretest_required = ?, updated_at = ? WHERE course_id = ?`),
		required, s.UpdatedAt, s.CourseID)
	if err != nil {
		return fmt.Errorf("failed to update course settings: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = db.ExecContext(ctx,
		db.Rebind(`INSERT INTO course_settings (course_id, pretest_required, updated_at) VALUES (?, ?, ?)`),
		s.CourseID, required, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert course settings: %w", err)
	}
	return nil
}
