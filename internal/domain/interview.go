package domain

import (
	"context"
	"time"

	"hirehub-backend/pkg/patch"
)

// Interview status constants
const (
	InterviewStatusScheduled = "SCHEDULED"
	InterviewStatusCompleted = "COMPLETED"
	InterviewStatusCanceled  = "CANCELED"
)

type Interview struct {
	ID              int64     `json:"id"`
	ApplicationID   int64     `json:"application_id"`
	Status          string    `json:"status"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Location        string    `json:"location,omitempty"` // meeting link or address
	Feedback        *string   `json:"feedback,omitempty"`
	Rating          *int      `json:"rating,omitempty"` // 0-5
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InterviewPatch updates status, feedback, rating or reschedules.
type InterviewPatch struct {
	Status      patch.Field[string]    `json:"status"`
	ScheduledAt patch.Field[time.Time] `json:"scheduled_at"`
	Feedback    patch.Field[string]    `json:"feedback"`
	Rating      patch.Field[int]       `json:"rating"`
}

func (p *InterviewPatch) Empty() bool {
	return !p.Status.Set && !p.ScheduledAt.Set && !p.Feedback.Set && !p.Rating.Set
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	GetByApplicationID(ctx context.Context, applicationID int64) ([]Interview, error)
	Update(ctx context.Context, iv *Interview) error
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, recruiterID, applicationID int64, iv *Interview) (*Interview, error)
	ListByApplication(ctx context.Context, recruiterID, applicationID int64) ([]Interview, error)
	UpdateInterview(ctx context.Context, recruiterID, id int64, p *InterviewPatch) (*Interview, error)
}
