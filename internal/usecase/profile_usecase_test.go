package usecase_test

import (
	"context"
	"testing"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetCandidate(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}
func (m *MockProfileRepo) UpsertCandidate(ctx context.Context, p *domain.CandidateProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) GetRecruiter(ctx context.Context, userID int64) (*domain.RecruiterProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruiterProfile), args.Error(1)
}
func (m *MockProfileRepo) UpsertRecruiter(ctx context.Context, p *domain.RecruiterProfile) error {
	return m.Called(ctx, p).Error(0)
}

func TestUpdateCandidateProfile(t *testing.T) {
	t.Run("nil histories become empty lists", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validator.New())
		repo.On("UpsertCandidate", mock.Anything, mock.Anything).Return(nil)

		p, err := uc.UpdateCandidateProfile(context.Background(), &domain.CandidateProfile{UserID: 7})
		require.NoError(t, err)
		assert.NotNil(t, p.Education)
		assert.NotNil(t, p.Experience)
	})

	t.Run("education entry without a school is rejected", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validator.New())

		_, err := uc.UpdateCandidateProfile(context.Background(), &domain.CandidateProfile{
			UserID:    7,
			Education: []domain.EducationEntry{{Degree: "BSc"}},
		})
		assert.Equal(t, 400, appErrCode(t, err))
		repo.AssertNotCalled(t, "UpsertCandidate")
	})

	t.Run("implausible years are rejected", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validator.New())

		_, err := uc.UpdateCandidateProfile(context.Background(), &domain.CandidateProfile{
			UserID:    7,
			Education: []domain.EducationEntry{{School: "MIT", StartYear: 222}},
		})
		assert.Equal(t, 400, appErrCode(t, err))
	})
}

func TestUpdateRecruiterProfile(t *testing.T) {
	t.Run("company is required", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validator.New())

		_, err := uc.UpdateRecruiterProfile(context.Background(), &domain.RecruiterProfile{UserID: 7})
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("upserts on repeat updates", func(t *testing.T) {
		repo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(repo, validator.New())
		repo.On("UpsertRecruiter", mock.Anything, mock.Anything).Return(nil)

		p, err := uc.UpdateRecruiterProfile(context.Background(), &domain.RecruiterProfile{UserID: 7, Company: "Acme"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", p.Company)
	})
}
