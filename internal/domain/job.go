package domain

import (
	"context"
	"time"

	"hirehub-backend/pkg/patch"
)

// Job lifecycle states. DRAFT is the only entry state; publish moves
// DRAFT → PUBLISHED, close moves PUBLISHED → CLOSED, reopen moves
// CLOSED → PUBLISHED. There is no way back to DRAFT.
const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
	JobStatusClosed    = "CLOSED"
)

// SkillWeight is one entry of a weighted skill set, weight 0-100.
type SkillWeight struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

type Job struct {
	ID              int64         `json:"id"`
	RecruiterID     *int64        `json:"recruiter_id"` // nil after recruiter deletion
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Location        string        `json:"location,omitempty"`
	JobType         string        `json:"job_type,omitempty"` // FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP
	Remote          bool          `json:"remote"`
	International   bool          `json:"international"`
	SalaryMin       *float64      `json:"salary_min,omitempty"`
	SalaryMax       *float64      `json:"salary_max,omitempty"`
	Responsibilities []string     `json:"responsibilities"`
	Requirements    []string      `json:"requirements"`
	Qualifications  []string      `json:"qualifications"`
	SkillsRequired  []SkillWeight `json:"skills_required"`
	SkillsPreferred []SkillWeight `json:"skills_preferred"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// JobPatch carries a partial update. Each field distinguishes absent,
// explicit null and set-to-value so "not provided" never collides with
// "cleared". Outside DRAFT only Status may be set.
type JobPatch struct {
	Title            patch.Field[string]        `json:"title"`
	Description      patch.Field[string]        `json:"description"`
	Location         patch.Field[string]        `json:"location"`
	JobType          patch.Field[string]        `json:"job_type"`
	Remote           patch.Field[bool]          `json:"remote"`
	International    patch.Field[bool]          `json:"international"`
	SalaryMin        patch.Field[float64]       `json:"salary_min"`
	SalaryMax        patch.Field[float64]       `json:"salary_max"`
	Responsibilities patch.Field[[]string]      `json:"responsibilities"`
	Requirements     patch.Field[[]string]      `json:"requirements"`
	Qualifications   patch.Field[[]string]      `json:"qualifications"`
	SkillsRequired   patch.Field[[]SkillWeight] `json:"skills_required"`
	SkillsPreferred  patch.Field[[]SkillWeight] `json:"skills_preferred"`
	Status           patch.Field[string]        `json:"status"`
}

// HasNonStatusField reports whether the patch touches anything besides
// Status. Non-DRAFT jobs reject such patches with a conflict.
func (p *JobPatch) HasNonStatusField() bool {
	return p.Title.Set || p.Description.Set || p.Location.Set || p.JobType.Set ||
		p.Remote.Set || p.International.Set || p.SalaryMin.Set || p.SalaryMax.Set ||
		p.Responsibilities.Set || p.Requirements.Set || p.Qualifications.Set ||
		p.SkillsRequired.Set || p.SkillsPreferred.Set
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, status string, limit, offset int) ([]Job, int64, error)
	FetchByRecruiterID(ctx context.Context, recruiterID int64, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, recruiterID int64, job *Job) (*Job, error)
	GetJobDetails(ctx context.Context, recruiterID, id int64) (*Job, error)
	GetPublishedJob(ctx context.Context, id int64) (*Job, error)
	ListPublishedJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID int64, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, recruiterID, id int64, p *JobPatch) (*Job, error)
	Publish(ctx context.Context, recruiterID, id int64) (*Job, error)
	Close(ctx context.Context, recruiterID, id int64) (*Job, error)
	Reopen(ctx context.Context, recruiterID, id int64) (*Job, error)
	DeleteJob(ctx context.Context, recruiterID, id int64) error
}
