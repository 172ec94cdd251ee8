package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	tags, err := json.Marshal(orEmpty(app.Tags))
	if err != nil {
		return err
	}
	query := `INSERT INTO applications (job_id, candidate_id, resume_url, cover_letter, status, source,
                  score, tags, notes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateID, app.ResumeURL, app.CoverLetter, app.Status, app.Source,
		app.Score, tags, app.Notes, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)

	if err != nil {
		// The unique constraint on (job_id, candidate_id) serializes
		// concurrent duplicate applies into one success and N conflicts.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("You have already applied to this job")
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.status, a.source,
                  a.score, a.tags, a.notes, a.created_at, a.updated_at,
                  u.name, u.email, j.title
              FROM applications a
              JOIN users u ON a.candidate_id = u.id
              JOIN jobs j ON a.job_id = j.id
              WHERE a.id = $1`
	var app domain.Application
	var tags []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter,
		&app.Status, &app.Source, &app.Score, &tags, &app.Notes,
		&app.CreatedAt, &app.UpdatedAt,
		&app.CandidateName, &app.CandidateEmail, &app.JobTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(tags, &app.Tags); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.status, a.source,
                  a.score, a.tags, a.notes, a.created_at, a.updated_at,
                  u.name, u.email
              FROM applications a
              JOIN users u ON a.candidate_id = u.id
              WHERE a.job_id = $1
              ORDER BY a.created_at DESC`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		var tags []byte
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter,
			&app.Status, &app.Source, &app.Score, &tags, &app.Notes,
			&app.CreatedAt, &app.UpdatedAt,
			&app.CandidateName, &app.CandidateEmail,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &app.Tags); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.status, a.source,
                  a.score, a.tags, a.notes, a.created_at, a.updated_at,
                  j.title
              FROM applications a
              JOIN jobs j ON a.job_id = j.id
              WHERE a.candidate_id = $1
              ORDER BY a.created_at DESC`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		var tags []byte
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter,
			&app.Status, &app.Source, &app.Score, &tags, &app.Notes,
			&app.CreatedAt, &app.UpdatedAt,
			&app.JobTitle,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &app.Tags); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&total)
	return total, err
}

func (r *applicationRepo) RecentByJobID(ctx context.Context, jobID int64, limit int) ([]domain.Application, error) {
	query := `SELECT a.id, a.status, a.created_at, u.name
              FROM applications a
              JOIN users u ON a.candidate_id = u.id
              WHERE a.job_id = $1
              ORDER BY a.created_at DESC
              LIMIT $2`
	rows, err := r.db.Query(ctx, query, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.ID, &app.Status, &app.CreatedAt, &app.CandidateName); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	tags, err := json.Marshal(orEmpty(app.Tags))
	if err != nil {
		return err
	}
	query := `UPDATE applications SET
		status = $2,
		score = $3,
		tags = $4,
		notes = $5,
		updated_at = $6
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		app.ID, app.Status, app.Score, tags, app.Notes, app.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
