package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/email"
)

// Notifier composes and persists the notification records triggered by
// domain events. Every public method only submits work to the dispatcher;
// the caller is never blocked and never sees a failure.
type Notifier struct {
	dispatcher       *Dispatcher
	notificationRepo domain.NotificationRepository
	applicationRepo  domain.ApplicationRepository
	userRepo         domain.UserRepository
	mail             *email.Service
	log              *slog.Logger
}

func NewNotifier(
	dispatcher *Dispatcher,
	notificationRepo domain.NotificationRepository,
	applicationRepo domain.ApplicationRepository,
	userRepo domain.UserRepository,
	mail *email.Service,
	log *slog.Logger,
) *Notifier {
	return &Notifier{
		dispatcher:       dispatcher,
		notificationRepo: notificationRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		mail:             mail,
		log:              log,
	}
}

// JobPublished notifies the owning recruiter that their job went live.
// Fired on publish and on create-as-published.
func (n *Notifier) JobPublished(job *domain.Job) {
	if job.RecruiterID == nil {
		return
	}
	recruiterID := *job.RecruiterID
	title := job.Title
	jobID := job.ID

	n.dispatcher.Submit(Task{
		Name: "job-published",
		Run: func(ctx context.Context) error {
			return n.create(ctx, &domain.Notification{
				UserID:  recruiterID,
				Type:    domain.NotificationTypeJob,
				Title:   "Job published",
				Message: fmt.Sprintf("Your job %q is now live and visible to candidates.", title),
				Data:    map[string]any{"job_id": jobID},
			})
		},
	})
}

// ApplicationReceived fires the two apply-side notifications concurrently:
// a confirmation to the candidate and a digest to the recruiter. Neither is
// awaited by the apply request, and the recruiter digest degrades to a
// generic message when its best-effort sub-queries fail. The counts it
// reports are re-queried snapshots and may already be stale; that is
// accepted, not corrected.
func (n *Notifier) ApplicationReceived(job *domain.Job, app *domain.Application, path string) {
	candidateID := app.CandidateID
	appID := app.ID
	jobID := job.ID
	jobTitle := job.Title

	n.dispatcher.Submit(Task{
		Name: "application-received-candidate",
		Run: func(ctx context.Context) error {
			return n.create(ctx, &domain.Notification{
				UserID:  candidateID,
				Type:    domain.NotificationTypeApplication,
				Title:   "Application received",
				Message: fmt.Sprintf("Your application for %q was received.", jobTitle),
				Data:    map[string]any{"application_id": appID, "job_id": jobID, "path": path},
			})
		},
	})

	if job.RecruiterID == nil {
		return
	}
	recruiterID := *job.RecruiterID

	n.dispatcher.Submit(Task{
		Name: "application-received-recruiter",
		Run: func(ctx context.Context) error {
			message := fmt.Sprintf("A new application arrived for %q.", jobTitle)
			data := map[string]any{"application_id": appID, "job_id": jobID}

			// Best-effort enrichment; each sub-query failure degrades the
			// message instead of failing the notification.
			if total, err := n.applicationRepo.CountByJobID(ctx, jobID); err == nil {
				message = fmt.Sprintf("A new application arrived for %q (%d total).", jobTitle, total)
				data["total_applications"] = total
			} else {
				n.log.Warn("applicant count unavailable", "job_id", jobID, "error", err)
			}

			if recent, err := n.applicationRepo.RecentByJobID(ctx, jobID, 5); err == nil {
				names := make([]string, 0, len(recent))
				for _, a := range recent {
					if a.CandidateName != nil {
						names = append(names, *a.CandidateName)
					}
				}
				if len(names) > 0 {
					message += " Recent applicants: " + strings.Join(names, ", ") + "."
					data["recent_applicants"] = names
				}
			} else {
				n.log.Warn("recent applicants unavailable", "job_id", jobID, "error", err)
			}

			return n.create(ctx, &domain.Notification{
				UserID:  recruiterID,
				Type:    domain.NotificationTypeApplication,
				Title:   "New application",
				Message: message,
				Data:    data,
			})
		},
	})
}

// ApplicationStatusChanged notifies the candidate that a recruiter moved
// their application to a new status.
func (n *Notifier) ApplicationStatusChanged(app *domain.Application, newStatus string) {
	candidateID := app.CandidateID
	appID := app.ID
	jobTitle := ""
	if app.JobTitle != nil {
		jobTitle = *app.JobTitle
	}

	n.dispatcher.Submit(Task{
		Name: "application-status-changed",
		Run: func(ctx context.Context) error {
			message := fmt.Sprintf("Your application status changed to %s.", newStatus)
			if jobTitle != "" {
				message = fmt.Sprintf("Your application for %q changed to %s.", jobTitle, newStatus)
			}
			return n.create(ctx, &domain.Notification{
				UserID:  candidateID,
				Type:    domain.NotificationTypeApplication,
				Title:   "Application status updated",
				Message: message,
				Data:    map[string]any{"application_id": appID, "status": newStatus},
			})
		},
	})
}

// InterviewScheduled notifies the candidate of a newly scheduled interview.
func (n *Notifier) InterviewScheduled(app *domain.Application, iv *domain.Interview) {
	candidateID := app.CandidateID
	when := iv.ScheduledAt
	ivID := iv.ID
	appID := app.ID

	n.dispatcher.Submit(Task{
		Name: "interview-scheduled",
		Run: func(ctx context.Context) error {
			return n.create(ctx, &domain.Notification{
				UserID:  candidateID,
				Type:    domain.NotificationTypeInterview,
				Title:   "Interview scheduled",
				Message: fmt.Sprintf("An interview has been scheduled for %s.", when.Format(time.RFC1123)),
				Data:    map[string]any{"interview_id": ivID, "application_id": appID, "scheduled_at": when.Format(time.RFC3339)},
			})
		},
	})
}

// create persists the notification row and sends a best-effort email copy.
// Email failure never fails the task once the row is written.
func (n *Notifier) create(ctx context.Context, notification *domain.Notification) error {
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	if n.mail != nil && n.mail.IsConfigured() {
		if user, err := n.userRepo.GetByID(ctx, notification.UserID); err == nil {
			if err := n.mail.SendNotification(user.Email, notification.Title, notification.Message); err != nil {
				n.log.Warn("notification email failed", "user_id", notification.UserID, "error", err)
			}
		}
	}
	return nil
}
