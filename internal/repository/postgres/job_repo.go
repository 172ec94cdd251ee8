package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"hirehub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, recruiter_id, title, description, location, job_type, remote, international,
	salary_min, salary_max, responsibilities, requirements, qualifications,
	skills_required, skills_preferred, status, created_at, updated_at`

// jobJSON bundles the JSONB column payloads for a row.
type jobJSON struct {
	responsibilities []byte
	requirements     []byte
	qualifications   []byte
	skillsRequired   []byte
	skillsPreferred  []byte
}

func marshalJobJSON(job *domain.Job) (*jobJSON, error) {
	var j jobJSON
	var err error
	if j.responsibilities, err = json.Marshal(orEmpty(job.Responsibilities)); err != nil {
		return nil, err
	}
	if j.requirements, err = json.Marshal(orEmpty(job.Requirements)); err != nil {
		return nil, err
	}
	if j.qualifications, err = json.Marshal(orEmpty(job.Qualifications)); err != nil {
		return nil, err
	}
	if j.skillsRequired, err = json.Marshal(orEmptySkills(job.SkillsRequired)); err != nil {
		return nil, err
	}
	if j.skillsPreferred, err = json.Marshal(orEmptySkills(job.SkillsPreferred)); err != nil {
		return nil, err
	}
	return &j, nil
}

func (j *jobJSON) unmarshalInto(job *domain.Job) error {
	if err := json.Unmarshal(j.responsibilities, &job.Responsibilities); err != nil {
		return err
	}
	if err := json.Unmarshal(j.requirements, &job.Requirements); err != nil {
		return err
	}
	if err := json.Unmarshal(j.qualifications, &job.Qualifications); err != nil {
		return err
	}
	if err := json.Unmarshal(j.skillsRequired, &job.SkillsRequired); err != nil {
		return err
	}
	return json.Unmarshal(j.skillsPreferred, &job.SkillsPreferred)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptySkills(s []domain.SkillWeight) []domain.SkillWeight {
	if s == nil {
		return []domain.SkillWeight{}
	}
	return s
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var j jobJSON
	err := row.Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Location,
		&job.JobType, &job.Remote, &job.International, &job.SalaryMin, &job.SalaryMax,
		&j.responsibilities, &j.requirements, &j.qualifications,
		&j.skillsRequired, &j.skillsPreferred,
		&job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := j.unmarshalInto(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	j, err := marshalJobJSON(job)
	if err != nil {
		return err
	}
	query := `INSERT INTO jobs (recruiter_id, title, description, location, job_type, remote, international,
                  salary_min, salary_max, responsibilities, requirements, qualifications,
                  skills_required, skills_preferred, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
              RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.RecruiterID, job.Title, job.Description, job.Location, job.JobType,
		job.Remote, job.International, job.SalaryMin, job.SalaryMax,
		j.responsibilities, j.requirements, j.qualifications,
		j.skillsRequired, j.skillsPreferred,
		job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

func (r *jobRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) FetchByRecruiterID(ctx context.Context, recruiterID int64, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recruiterID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE recruiter_id = $1`, recruiterID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		var j jobJSON
		if err := rows.Scan(
			&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Location,
			&job.JobType, &job.Remote, &job.International, &job.SalaryMin, &job.SalaryMax,
			&j.responsibilities, &j.requirements, &j.qualifications,
			&j.skillsRequired, &j.skillsPreferred,
			&job.Status, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := j.unmarshalInto(&job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	j, err := marshalJobJSON(job)
	if err != nil {
		return err
	}
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		location = $4,
		job_type = $5,
		remote = $6,
		international = $7,
		salary_min = $8,
		salary_max = $9,
		responsibilities = $10,
		requirements = $11,
		qualifications = $12,
		skills_required = $13,
		skills_preferred = $14,
		status = $15,
		updated_at = $16
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.JobType,
		job.Remote, job.International, job.SalaryMin, job.SalaryMax,
		j.responsibilities, j.requirements, j.qualifications,
		j.skillsRequired, j.skillsPreferred,
		job.Status, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
