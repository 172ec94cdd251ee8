package usecase

import (
	"context"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/notify"
	"hirehub-backend/pkg/apperror"
)

type interviewUsecase struct {
	interviewRepo   domain.InterviewRepository
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	notifier        *notify.Notifier
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	notifier *notify.Notifier,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo:   interviewRepo,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		notifier:        notifier,
	}
}

// Schedule creates an interview for an application the recruiter owns.
// There is deliberately no application-status precondition: interviews can
// be scheduled for any application. The candidate notification carries the
// schedule time and is not awaited.
func (uc *interviewUsecase) Schedule(ctx context.Context, recruiterID, applicationID int64, iv *domain.Interview) (*domain.Interview, error) {
	app, err := uc.ownedApplication(ctx, recruiterID, applicationID)
	if err != nil {
		return nil, err
	}

	if iv.ScheduledAt.IsZero() {
		return nil, apperror.BadRequest("scheduled_at is required")
	}
	if iv.Rating != nil {
		return nil, apperror.BadRequest("rating can only be set after the interview")
	}

	iv.ApplicationID = app.ID
	iv.Status = domain.InterviewStatusScheduled
	iv.CreatedAt = time.Now()
	iv.UpdatedAt = time.Now()

	if err := uc.interviewRepo.Create(ctx, iv); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifier.InterviewScheduled(app, iv)

	return iv, nil
}

func (uc *interviewUsecase) ListByApplication(ctx context.Context, recruiterID, applicationID int64) ([]domain.Interview, error) {
	if _, err := uc.ownedApplication(ctx, recruiterID, applicationID); err != nil {
		return nil, err
	}
	return uc.interviewRepo.GetByApplicationID(ctx, applicationID)
}

// UpdateInterview patches status, feedback, rating or the schedule. An
// empty patch is a no-op.
func (uc *interviewUsecase) UpdateInterview(ctx context.Context, recruiterID, id int64, p *domain.InterviewPatch) (*domain.Interview, error) {
	iv, err := uc.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Interview not found")
	}
	if _, err := uc.ownedApplication(ctx, recruiterID, iv.ApplicationID); err != nil {
		return nil, err
	}

	if p.Empty() {
		return iv, nil
	}

	if p.Status.Set {
		if !p.Status.HasValue() {
			return nil, apperror.BadRequest("status cannot be null")
		}
		switch p.Status.Value {
		case domain.InterviewStatusScheduled, domain.InterviewStatusCompleted, domain.InterviewStatusCanceled:
		default:
			return nil, apperror.BadRequest("status must be SCHEDULED, COMPLETED or CANCELED")
		}
		iv.Status = p.Status.Value
	}
	if p.ScheduledAt.HasValue() {
		iv.ScheduledAt = p.ScheduledAt.Value
	}
	if p.Feedback.Set {
		iv.Feedback = p.Feedback.Ptr()
	}
	if p.Rating.Set {
		if p.Rating.Null {
			iv.Rating = nil
		} else {
			if p.Rating.Value < 0 || p.Rating.Value > 5 {
				return nil, apperror.BadRequest("rating must be between 0 and 5")
			}
			iv.Rating = p.Rating.Ptr()
		}
	}

	iv.UpdatedAt = time.Now()
	if err := uc.interviewRepo.Update(ctx, iv); err != nil {
		return nil, mapRepoErr(err, "Interview not found")
	}
	return iv, nil
}

// ownedApplication walks application → job → recruiter to enforce
// ownership.
func (uc *interviewUsecase) ownedApplication(ctx context.Context, recruiterID, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterID == nil || *job.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return app, nil
}
