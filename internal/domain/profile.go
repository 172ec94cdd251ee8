package domain

import (
	"context"
	"time"
)

// EducationEntry is one record in a candidate's ordered education history.
// Stored verbatim in a JSONB column.
type EducationEntry struct {
	School    string `json:"school" validate:"required"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartYear int    `json:"start_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	EndYear   int    `json:"end_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// ExperienceEntry is one record in a candidate's ordered work history.
type ExperienceEntry struct {
	Company     string `json:"company" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type CandidateProfile struct {
	UserID     int64             `json:"user_id"`
	Headline   string            `json:"headline,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type RecruiterProfile struct {
	UserID    int64     `json:"user_id"`
	Company   string    `json:"company"`
	Position  string    `json:"position,omitempty"`
	About     string    `json:"about,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileRepository interface {
	GetCandidate(ctx context.Context, userID int64) (*CandidateProfile, error)
	UpsertCandidate(ctx context.Context, p *CandidateProfile) error
	GetRecruiter(ctx context.Context, userID int64) (*RecruiterProfile, error)
	UpsertRecruiter(ctx context.Context, p *RecruiterProfile) error
}

type ProfileUsecase interface {
	GetCandidateProfile(ctx context.Context, userID int64) (*CandidateProfile, error)
	UpdateCandidateProfile(ctx context.Context, p *CandidateProfile) (*CandidateProfile, error)
	GetRecruiterProfile(ctx context.Context, userID int64) (*RecruiterProfile, error)
	UpdateRecruiterProfile(ctx context.Context, p *RecruiterProfile) (*RecruiterProfile, error)
}
