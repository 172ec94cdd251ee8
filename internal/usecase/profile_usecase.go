package usecase

import (
	"context"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	validate    *validator.Validate
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo, validate: validate}
}

func (u *profileUsecase) GetCandidateProfile(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	p, err := u.profileRepo.GetCandidate(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("Profile not found")
	}
	return p, nil
}

// UpdateCandidateProfile upserts the caller's own profile. Education and
// experience lists are stored verbatim as ordered JSON payloads.
func (u *profileUsecase) UpdateCandidateProfile(ctx context.Context, p *domain.CandidateProfile) (*domain.CandidateProfile, error) {
	if p.Education == nil {
		p.Education = []domain.EducationEntry{}
	}
	if p.Experience == nil {
		p.Experience = []domain.ExperienceEntry{}
	}
	for _, e := range p.Education {
		if err := u.validate.Struct(e); err != nil {
			return nil, apperror.BadRequest("Invalid education entry: " + err.Error())
		}
	}
	for _, e := range p.Experience {
		if err := u.validate.Struct(e); err != nil {
			return nil, apperror.BadRequest("Invalid experience entry: " + err.Error())
		}
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	if err := u.profileRepo.UpsertCandidate(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (u *profileUsecase) GetRecruiterProfile(ctx context.Context, userID int64) (*domain.RecruiterProfile, error) {
	p, err := u.profileRepo.GetRecruiter(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("Profile not found")
	}
	return p, nil
}

func (u *profileUsecase) UpdateRecruiterProfile(ctx context.Context, p *domain.RecruiterProfile) (*domain.RecruiterProfile, error) {
	if p.Company == "" {
		return nil, apperror.BadRequest("Company is required")
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	if err := u.profileRepo.UpsertRecruiter(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}
