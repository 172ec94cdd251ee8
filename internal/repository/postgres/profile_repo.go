package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"hirehub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetCandidate(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	query := `SELECT user_id, headline, summary, education, experience, created_at, updated_at
              FROM candidate_profiles WHERE user_id = $1`
	var p domain.CandidateProfile
	var education, experience []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Headline, &p.Summary, &education, &experience,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) UpsertCandidate(ctx context.Context, p *domain.CandidateProfile) error {
	education, err := json.Marshal(p.Education)
	if err != nil {
		return err
	}
	experience, err := json.Marshal(p.Experience)
	if err != nil {
		return err
	}

	query := `INSERT INTO candidate_profiles (user_id, headline, summary, education, experience, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (user_id) DO UPDATE SET
                  headline = EXCLUDED.headline,
                  summary = EXCLUDED.summary,
                  education = EXCLUDED.education,
                  experience = EXCLUDED.experience,
                  updated_at = EXCLUDED.updated_at`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Headline, p.Summary, education, experience, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *profileRepo) GetRecruiter(ctx context.Context, userID int64) (*domain.RecruiterProfile, error) {
	query := `SELECT user_id, company, position, about, created_at, updated_at
              FROM recruiter_profiles WHERE user_id = $1`
	var p domain.RecruiterProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Company, &p.Position, &p.About, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) UpsertRecruiter(ctx context.Context, p *domain.RecruiterProfile) error {
	query := `INSERT INTO recruiter_profiles (user_id, company, position, about, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (user_id) DO UPDATE SET
                  company = EXCLUDED.company,
                  position = EXCLUDED.position,
                  about = EXCLUDED.about,
                  updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, p.UserID, p.Company, p.Position, p.About, p.CreatedAt, p.UpdatedAt)
	return err
}
