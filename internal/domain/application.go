package domain

import (
	"context"
	"time"

	"hirehub-backend/pkg/patch"
)

// Application status constants
const (
	ApplicationStatusApplied = "APPLIED"
	ApplicationStatusPassed  = "PASSED"
	ApplicationStatusFailed  = "FAILED"
)

// Application source constants. APPLY is a self-service apply; the rest are
// recruiter-added provenance tags.
const (
	ApplicationSourceApply      = "APPLY"
	ApplicationSourceAdded      = "ADDED"
	ApplicationSourceReferred   = "REFERRED"
	ApplicationSourceDiscovered = "DISCOVERED"
)

// Application represents a candidate's application to a job. At most one
// exists per (job, candidate) pair, enforced by a storage-level unique
// constraint.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID int64     `json:"candidate_id"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	Score       *int      `json:"score,omitempty"` // 0-100
	Tags        []string  `json:"tags"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for recruiter-facing lists
	CandidateName  *string `json:"candidate_name,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
}

// ApplicationPatch is a partial status/score/tags/notes update. An empty
// patch is a no-op, never an error.
type ApplicationPatch struct {
	Status patch.Field[string]   `json:"status"`
	Score  patch.Field[int]      `json:"score"`
	Tags   patch.Field[[]string] `json:"tags"`
	Notes  patch.Field[string]   `json:"notes"`
}

func (p *ApplicationPatch) Empty() bool {
	return !p.Status.Set && !p.Score.Set && !p.Tags.Set && !p.Notes.Set
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByCandidateID(ctx context.Context, candidateID int64) ([]Application, error)
	CountByJobID(ctx context.Context, jobID int64) (int64, error)
	RecentByJobID(ctx context.Context, jobID int64, limit int) ([]Application, error)
	Update(ctx context.Context, app *Application) error
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID, jobID int64, resumeURL, coverLetter string) (*Application, error)
	GetMyApplications(ctx context.Context, candidateID int64) ([]Application, error)
	GetMyApplication(ctx context.Context, candidateID, id int64) (*Application, error)

	// Recruiter operations
	AddCandidate(ctx context.Context, recruiterID, jobID, candidateID int64, source string) (*Application, error)
	ListByJobID(ctx context.Context, recruiterID, jobID int64) ([]Application, error)
	GetApplicationDetail(ctx context.Context, recruiterID, id int64) (*Application, error)
	UpdateApplication(ctx context.Context, recruiterID, id int64, p *ApplicationPatch) (*Application, error)
	ExportByJobID(ctx context.Context, recruiterID, jobID int64) ([]byte, error)
}
