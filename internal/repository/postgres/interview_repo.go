package postgres

import (
	"context"
	"errors"

	"hirehub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	query := `INSERT INTO interviews (application_id, status, scheduled_at, duration_minutes,
                  location, feedback, rating, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRow(ctx, query,
		iv.ApplicationID, iv.Status, iv.ScheduledAt, iv.DurationMinutes,
		iv.Location, iv.Feedback, iv.Rating, iv.CreatedAt, iv.UpdatedAt,
	).Scan(&iv.ID)
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `SELECT id, application_id, status, scheduled_at, duration_minutes,
                  location, feedback, rating, created_at, updated_at
              FROM interviews WHERE id = $1`
	var iv domain.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.ApplicationID, &iv.Status, &iv.ScheduledAt, &iv.DurationMinutes,
		&iv.Location, &iv.Feedback, &iv.Rating, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) GetByApplicationID(ctx context.Context, applicationID int64) ([]domain.Interview, error) {
	query := `SELECT id, application_id, status, scheduled_at, duration_minutes,
                  location, feedback, rating, created_at, updated_at
              FROM interviews WHERE application_id = $1
              ORDER BY scheduled_at DESC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(
			&iv.ID, &iv.ApplicationID, &iv.Status, &iv.ScheduledAt, &iv.DurationMinutes,
			&iv.Location, &iv.Feedback, &iv.Rating, &iv.CreatedAt, &iv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (r *interviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	query := `UPDATE interviews SET
		status = $2,
		scheduled_at = $3,
		feedback = $4,
		rating = $5,
		updated_at = $6
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		iv.ID, iv.Status, iv.ScheduledAt, iv.Feedback, iv.Rating, iv.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
