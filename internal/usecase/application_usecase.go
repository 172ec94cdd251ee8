package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/notify"
	"hirehub-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	interviewRepo   domain.InterviewRepository
	userRepo        domain.UserRepository
	notifier        *notify.Notifier
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	interviewRepo domain.InterviewRepository,
	userRepo domain.UserRepository,
	notifier *notify.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		interviewRepo:   interviewRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// Apply creates a self-service application against a PUBLISHED job. The two
// resulting notifications run in the background; the response never waits
// for them and their failure never rolls back the application row.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateID, jobID int64, resumeURL, coverLetter string) (*domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.NotFound("Job not found")
	}

	var coverLetterPtr *string
	if coverLetter != "" {
		coverLetterPtr = &coverLetter
	}

	app := &domain.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		ResumeURL:   resumeURL,
		CoverLetter: coverLetterPtr,
		Status:      domain.ApplicationStatusApplied,
		Source:      domain.ApplicationSourceApply,
		Tags:        []string{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	// The unique constraint is the duplicate gate; a violation surfaces as
	// a Conflict from the repository, never as a crash.
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, mapRepoErr(err, "Job not found")
	}

	uc.notifier.ApplicationReceived(job, app, ApplicationPath(app.ID))

	return app, nil
}

// ApplicationPath is the candidate-facing location of an application.
func ApplicationPath(id int64) string {
	return fmt.Sprintf("/candidates/applications/%d", id)
}

// AddCandidate lets a recruiter attach a candidate to their own job with a
// non-APPLY provenance tag. Unlike self-service applies the job does not
// have to be PUBLISHED, but ownership is required.
func (uc *applicationUsecase) AddCandidate(ctx context.Context, recruiterID, jobID, candidateID int64, source string) (*domain.Application, error) {
	switch source {
	case domain.ApplicationSourceAdded, domain.ApplicationSourceReferred, domain.ApplicationSourceDiscovered:
	default:
		return nil, apperror.BadRequest("source must be ADDED, REFERRED or DISCOVERED")
	}

	job, err := uc.ownedJob(ctx, recruiterID, jobID)
	if err != nil {
		return nil, err
	}

	candidate, err := uc.userRepo.GetByID(ctx, candidateID)
	if err != nil || candidate.Role != domain.RoleCandidate {
		return nil, apperror.NotFound("Candidate not found")
	}

	app := &domain.Application{
		JobID:       job.ID,
		CandidateID: candidateID,
		Status:      domain.ApplicationStatusApplied,
		Source:      source,
		Tags:        []string{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, mapRepoErr(err, "Job not found")
	}
	return app, nil
}

func (uc *applicationUsecase) GetMyApplications(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	return uc.applicationRepo.GetByCandidateID(ctx, candidateID)
}

// GetMyApplication returns an application to its owning candidate only.
func (uc *applicationUsecase) GetMyApplication(ctx context.Context, candidateID, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if app.CandidateID != candidateID {
		return nil, apperror.Forbidden("You do not own this application")
	}
	return app, nil
}

func (uc *applicationUsecase) ListByJobID(ctx context.Context, recruiterID, jobID int64) ([]domain.Application, error) {
	if _, err := uc.ownedJob(ctx, recruiterID, jobID); err != nil {
		return nil, err
	}
	return uc.applicationRepo.GetByJobID(ctx, jobID)
}

func (uc *applicationUsecase) GetApplicationDetail(ctx context.Context, recruiterID, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if _, err := uc.ownedJob(ctx, recruiterID, app.JobID); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateApplication patches any subset of status/score/tags/notes. An empty
// patch is a no-op returning the current row. A status change schedules a
// candidate notification without awaiting it.
func (uc *applicationUsecase) UpdateApplication(ctx context.Context, recruiterID, id int64, p *domain.ApplicationPatch) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if _, err := uc.ownedJob(ctx, recruiterID, app.JobID); err != nil {
		return nil, err
	}

	if p.Empty() {
		return app, nil
	}

	statusChanged := false
	if p.Status.Set {
		if !p.Status.HasValue() {
			return nil, apperror.BadRequest("status cannot be null")
		}
		switch p.Status.Value {
		case domain.ApplicationStatusApplied, domain.ApplicationStatusPassed, domain.ApplicationStatusFailed:
		default:
			return nil, apperror.BadRequest("status must be APPLIED, PASSED or FAILED")
		}
		statusChanged = app.Status != p.Status.Value
		app.Status = p.Status.Value
	}
	if p.Score.Set {
		if p.Score.Null {
			app.Score = nil
		} else {
			if p.Score.Value < 0 || p.Score.Value > 100 {
				return nil, apperror.BadRequest("score must be between 0 and 100")
			}
			app.Score = p.Score.Ptr()
		}
	}
	if p.Tags.Set {
		if p.Tags.Null {
			app.Tags = []string{}
		} else {
			app.Tags = p.Tags.Value
		}
	}
	if p.Notes.Set {
		app.Notes = p.Notes.Ptr()
	}

	app.UpdatedAt = time.Now()
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, mapRepoErr(err, "Application not found")
	}

	if statusChanged {
		uc.notifier.ApplicationStatusChanged(app, app.Status)
	}

	return app, nil
}

// ExportByJobID renders the applications of a recruiter-owned job to an
// XLSX workbook.
func (uc *applicationUsecase) ExportByJobID(ctx context.Context, recruiterID, jobID int64) ([]byte, error) {
	job, err := uc.ownedJob(ctx, recruiterID, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	f := excelize.NewFile()
	sheet := "Applications"
	f.SetSheetName("Sheet1", sheet)

	columns := []string{"Candidate", "Email", "Status", "Source", "Score", "Tags", "Applied At"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for i, app := range apps {
		row := i + 2
		name, emailAddr := "", ""
		if app.CandidateName != nil {
			name = *app.CandidateName
		}
		if app.CandidateEmail != nil {
			emailAddr = *app.CandidateEmail
		}
		score := ""
		if app.Score != nil {
			score = fmt.Sprintf("%d", *app.Score)
		}
		values := []any{
			name, emailAddr, app.Status, app.Source, score,
			strings.Join(app.Tags, ", "), app.CreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "G", 22)
	_ = f.SetCellValue(sheet, "I1", "Job")
	_ = f.SetCellValue(sheet, "I2", job.Title)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(err)
	}
	return buf.Bytes(), nil
}

// ownedJob enforces job ownership for recruiter-side application access.
func (uc *applicationUsecase) ownedJob(ctx context.Context, recruiterID, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterID == nil || *job.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}
