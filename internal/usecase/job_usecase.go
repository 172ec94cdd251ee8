package usecase

import (
	"context"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/notify"
	"hirehub-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	notifier *notify.Notifier
}

func NewJobUsecase(jobRepo domain.JobRepository, notifier *notify.Notifier) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		notifier: notifier,
	}
}

// CreateJob inserts a job in its explicit initial state. DRAFT and
// PUBLISHED are the only accepted entry states; creating directly as
// PUBLISHED fires the job-published notification just like publish().
func (u *jobUsecase) CreateJob(ctx context.Context, recruiterID int64, job *domain.Job) (*domain.Job, error) {
	if job.Status != domain.JobStatusDraft && job.Status != domain.JobStatusPublished {
		return nil, apperror.BadRequest("Initial status must be DRAFT or PUBLISHED")
	}
	if job.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperror.BadRequest("salary_min cannot be greater than salary_max")
	}
	if err := validateSkillWeights(job.SkillsRequired, job.SkillsPreferred); err != nil {
		return nil, err
	}

	job.RecruiterID = &recruiterID
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	if job.Status == domain.JobStatusPublished {
		u.notifier.JobPublished(job)
	}

	return job, nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, recruiterID, id int64) (*domain.Job, error) {
	return u.ownedJob(ctx, recruiterID, id)
}

// GetPublishedJob is the candidate/public view: anything not PUBLISHED is
// reported as not found rather than revealing drafts.
func (u *jobUsecase) GetPublishedJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListPublishedJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := paginate(page, pageSize)
	return u.jobRepo.Fetch(ctx, domain.JobStatusPublished, limit, offset)
}

func (u *jobUsecase) ListJobsByRecruiter(ctx context.Context, recruiterID int64, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := paginate(page, pageSize)
	return u.jobRepo.FetchByRecruiterID(ctx, recruiterID, limit, offset)
}

// UpdateJob applies a partial update. Outside DRAFT only the status field
// may appear in the patch; anything else is a conflict and the job stays
// unchanged. Status changes through PATCH accept the same transitions the
// explicit operations do.
func (u *jobUsecase) UpdateJob(ctx context.Context, recruiterID, id int64, p *domain.JobPatch) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, recruiterID, id)
	if err != nil {
		return nil, err
	}

	if job.Status != domain.JobStatusDraft && p.HasNonStatusField() {
		return nil, apperror.Conflict("Only the status field may be changed once a job leaves DRAFT")
	}

	if job.Status == domain.JobStatusDraft {
		mergeJobPatch(job, p)
		if job.Title == "" {
			return nil, apperror.BadRequest("Title is required")
		}
		if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
			return nil, apperror.BadRequest("salary_min cannot be greater than salary_max")
		}
		if err := validateSkillWeights(job.SkillsRequired, job.SkillsPreferred); err != nil {
			return nil, err
		}
	}

	if p.Status.Set {
		if !p.Status.HasValue() {
			return nil, apperror.BadRequest("status cannot be null")
		}
		next := p.Status.Value
		if err := validateTransition(job.Status, next); err != nil {
			return nil, err
		}
		wasPublished := job.Status == domain.JobStatusPublished
		job.Status = next
		job.UpdatedAt = time.Now()
		if err := u.jobRepo.Update(ctx, job); err != nil {
			return nil, mapRepoErr(err, "Job not found")
		}
		if next == domain.JobStatusPublished && !wasPublished {
			u.notifier.JobPublished(job)
		}
		return job, nil
	}

	job.UpdatedAt = time.Now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, mapRepoErr(err, "Job not found")
	}
	return job, nil
}

// Publish moves DRAFT → PUBLISHED. Publishing an already-PUBLISHED job is
// an idempotent no-op returning the current row.
func (u *jobUsecase) Publish(ctx context.Context, recruiterID, id int64) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, recruiterID, id)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusPublished {
		return job, nil
	}
	if job.Status != domain.JobStatusDraft {
		return nil, apperror.Conflict("Only DRAFT jobs can be published")
	}
	if err := u.setStatus(ctx, job, domain.JobStatusPublished); err != nil {
		return nil, err
	}
	u.notifier.JobPublished(job)
	return job, nil
}

// Close moves PUBLISHED → CLOSED.
func (u *jobUsecase) Close(ctx context.Context, recruiterID, id int64) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, recruiterID, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.Conflict("Only PUBLISHED jobs can be closed")
	}
	if err := u.setStatus(ctx, job, domain.JobStatusClosed); err != nil {
		return nil, err
	}
	return job, nil
}

// Reopen moves CLOSED → PUBLISHED.
func (u *jobUsecase) Reopen(ctx context.Context, recruiterID, id int64) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, recruiterID, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusClosed {
		return nil, apperror.Conflict("Only CLOSED jobs can be reopened")
	}
	if err := u.setStatus(ctx, job, domain.JobStatusPublished); err != nil {
		return nil, err
	}
	u.notifier.JobPublished(job)
	return job, nil
}

// DeleteJob is permitted from any state; applications and interviews go
// with it via foreign-key cascade.
func (u *jobUsecase) DeleteJob(ctx context.Context, recruiterID, id int64) error {
	if _, err := u.ownedJob(ctx, recruiterID, id); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "Job not found")
	}
	return nil
}

// ownedJob loads a job and enforces recruiter ownership before any
// mutating or detail-revealing read.
func (u *jobUsecase) ownedJob(ctx context.Context, recruiterID, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterID == nil || *job.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}

func (u *jobUsecase) setStatus(ctx context.Context, job *domain.Job, status string) error {
	if err := u.jobRepo.UpdateStatus(ctx, job.ID, status); err != nil {
		return mapRepoErr(err, "Job not found")
	}
	job.Status = status
	job.UpdatedAt = time.Now()
	return nil
}

// validateTransition mirrors the explicit operations for status-only PATCH:
// DRAFT→PUBLISHED, PUBLISHED→CLOSED, CLOSED→PUBLISHED, plus the idempotent
// same-state case.
func validateTransition(current, next string) error {
	if next != domain.JobStatusDraft && next != domain.JobStatusPublished && next != domain.JobStatusClosed {
		return apperror.BadRequest("status must be DRAFT, PUBLISHED or CLOSED")
	}
	if current == next {
		return nil
	}
	switch {
	case current == domain.JobStatusDraft && next == domain.JobStatusPublished:
		return nil
	case current == domain.JobStatusPublished && next == domain.JobStatusClosed:
		return nil
	case current == domain.JobStatusClosed && next == domain.JobStatusPublished:
		return nil
	}
	return apperror.Conflict("Invalid status transition " + current + " -> " + next)
}

func validateSkillWeights(sets ...[]domain.SkillWeight) error {
	for _, set := range sets {
		for _, s := range set {
			if s.Weight < 0 || s.Weight > 100 {
				return apperror.BadRequest("skill weight must be between 0 and 100")
			}
		}
	}
	return nil
}

func mergeJobPatch(job *domain.Job, p *domain.JobPatch) {
	if p.Title.HasValue() {
		job.Title = p.Title.Value
	}
	if p.Description.Set {
		job.Description = stringOrZero(p.Description.Ptr())
	}
	if p.Location.Set {
		job.Location = stringOrZero(p.Location.Ptr())
	}
	if p.JobType.Set {
		job.JobType = stringOrZero(p.JobType.Ptr())
	}
	if p.Remote.HasValue() {
		job.Remote = p.Remote.Value
	}
	if p.International.HasValue() {
		job.International = p.International.Value
	}
	if p.SalaryMin.Set {
		job.SalaryMin = p.SalaryMin.Ptr()
	}
	if p.SalaryMax.Set {
		job.SalaryMax = p.SalaryMax.Ptr()
	}
	if p.Responsibilities.Set {
		job.Responsibilities = sliceOrEmpty(p.Responsibilities.Ptr())
	}
	if p.Requirements.Set {
		job.Requirements = sliceOrEmpty(p.Requirements.Ptr())
	}
	if p.Qualifications.Set {
		job.Qualifications = sliceOrEmpty(p.Qualifications.Ptr())
	}
	if p.SkillsRequired.Set {
		job.SkillsRequired = skillsOrEmpty(p.SkillsRequired.Ptr())
	}
	if p.SkillsPreferred.Set {
		job.SkillsPreferred = skillsOrEmpty(p.SkillsPreferred.Ptr())
	}
}

func stringOrZero(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sliceOrEmpty(s *[]string) []string {
	if s == nil {
		return []string{}
	}
	return *s
}

func skillsOrEmpty(s *[]domain.SkillWeight) []domain.SkillWeight {
	if s == nil {
		return []domain.SkillWeight{}
	}
	return *s
}

func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
