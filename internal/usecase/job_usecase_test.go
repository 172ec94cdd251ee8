package usecase_test

import (
	"context"
	"testing"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/usecase"
	"hirehub-backend/pkg/apperror"
	"hirehub-backend/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJobUsecase(t *testing.T, jobRepo *MockJobRepo) (domain.JobUsecase, *MockNotificationRepo) {
	t.Helper()
	notifRepo := new(MockNotificationRepo)
	appRepo := new(MockApplicationRepo)
	userRepo := new(MockUserRepo)
	notifier, dispatcher := testNotifier(notifRepo, appRepo, userRepo)
	t.Cleanup(dispatcher.Close)
	return usecase.NewJobUsecase(jobRepo, notifier), notifRepo
}

func draftJob(recruiterID int64) *domain.Job {
	return &domain.Job{
		ID:          42,
		RecruiterID: int64Ptr(recruiterID),
		Title:       "Backend Engineer",
		Status:      domain.JobStatusDraft,
	}
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestCreateJob(t *testing.T) {
	t.Run("rejects unknown initial status", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		_, err := uc.CreateJob(context.Background(), 1, &domain.Job{Title: "X", Status: domain.JobStatusClosed})
		assert.Equal(t, 400, appErrCode(t, err))
		jobRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects salary_min above salary_max", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		_, err := uc.CreateJob(context.Background(), 1, &domain.Job{
			Title:     "X",
			Status:    domain.JobStatusDraft,
			SalaryMin: float64Ptr(90000),
			SalaryMax: float64Ptr(60000),
		})
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("create as DRAFT does not notify", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, notifRepo := newJobUsecase(t, jobRepo)
		jobRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		job, err := uc.CreateJob(context.Background(), 1, &domain.Job{Title: "X", Status: domain.JobStatusDraft})
		require.NoError(t, err)
		assert.Equal(t, int64(1), *job.RecruiterID)
		notifRepo.AssertNotCalled(t, "Create")
	})

	t.Run("create as PUBLISHED notifies the recruiter", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, notifRepo := newJobUsecase(t, jobRepo)
		jobRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		created := make(chan *domain.Notification, 1)
		notifRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created <- args.Get(1).(*domain.Notification)
		}).Return(nil)

		_, err := uc.CreateJob(context.Background(), 1, &domain.Job{Title: "X", Status: domain.JobStatusPublished})
		require.NoError(t, err)

		select {
		case n := <-created:
			assert.Equal(t, int64(1), n.UserID)
			assert.Equal(t, domain.NotificationTypeJob, n.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a job-published notification")
		}
	})
}

func TestJobLifecycle(t *testing.T) {
	t.Run("publish moves DRAFT to PUBLISHED", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, notifRepo := newJobUsecase(t, jobRepo)
		notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(draftJob(1), nil)
		jobRepo.On("UpdateStatus", mock.Anything, int64(42), domain.JobStatusPublished).Return(nil)

		job, err := uc.Publish(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.Status)
	})

	t.Run("publish is idempotent on PUBLISHED", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		published := draftJob(1)
		published.Status = domain.JobStatusPublished
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(published, nil)

		job, err := uc.Publish(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.Status)
		jobRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("publish from CLOSED conflicts", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		closed := draftJob(1)
		closed.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(closed, nil)

		_, err := uc.Publish(context.Background(), 1, 42)
		assert.Equal(t, 409, appErrCode(t, err))
	})

	t.Run("close requires PUBLISHED", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(draftJob(1), nil)

		_, err := uc.Close(context.Background(), 1, 42)
		assert.Equal(t, 409, appErrCode(t, err))
	})

	t.Run("reopen requires CLOSED", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		published := draftJob(1)
		published.Status = domain.JobStatusPublished
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(published, nil)

		_, err := uc.Reopen(context.Background(), 1, 42)
		assert.Equal(t, 409, appErrCode(t, err))
	})

	t.Run("reopen moves CLOSED back to PUBLISHED", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, notifRepo := newJobUsecase(t, jobRepo)
		notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

		closed := draftJob(1)
		closed.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(closed, nil)
		jobRepo.On("UpdateStatus", mock.Anything, int64(42), domain.JobStatusPublished).Return(nil)

		job, err := uc.Reopen(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.Status)
	})

	t.Run("operations on another recruiter's job are forbidden", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(draftJob(1), nil)

		_, err := uc.Publish(context.Background(), 99, 42)
		assert.Equal(t, 403, appErrCode(t, err))
	})

	t.Run("orphaned job is not owned by anyone", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		orphan := draftJob(1)
		orphan.RecruiterID = nil
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(orphan, nil)

		_, err := uc.Publish(context.Background(), 1, 42)
		assert.Equal(t, 403, appErrCode(t, err))
	})
}

func TestUpdateJob(t *testing.T) {
	t.Run("field patch outside DRAFT conflicts and changes nothing", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		published := draftJob(1)
		published.Status = domain.JobStatusPublished
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(published, nil)

		p := &domain.JobPatch{}
		p.Title.Set = true
		p.Title.Value = "New title"

		_, err := uc.UpdateJob(context.Background(), 1, 42, p)
		assert.Equal(t, 409, appErrCode(t, err))
		jobRepo.AssertNotCalled(t, "Update")
	})

	t.Run("explicit null clears an optional field on a draft", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		job := draftJob(1)
		job.SalaryMin = float64Ptr(50000)
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(job, nil)
		jobRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p := &domain.JobPatch{}
		p.SalaryMin.Set = true
		p.SalaryMin.Null = true

		updated, err := uc.UpdateJob(context.Background(), 1, 42, p)
		require.NoError(t, err)
		assert.Nil(t, updated.SalaryMin)
	})

	t.Run("status patch to PUBLISHED behaves like publish", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, notifRepo := newJobUsecase(t, jobRepo)

		created := make(chan *domain.Notification, 1)
		notifRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created <- args.Get(1).(*domain.Notification)
		}).Return(nil)

		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(draftJob(1), nil)
		jobRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p := &domain.JobPatch{Status: patch.Field[string]{Set: true, Value: domain.JobStatusPublished}}
		job, err := uc.UpdateJob(context.Background(), 1, 42, p)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.Status)

		select {
		case <-created:
		case <-time.After(2 * time.Second):
			t.Fatal("expected a job-published notification")
		}
	})

	t.Run("invalid transition via status patch conflicts", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		published := draftJob(1)
		published.Status = domain.JobStatusPublished
		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(published, nil)

		p := &domain.JobPatch{Status: patch.Field[string]{Set: true, Value: domain.JobStatusDraft}}
		_, err := uc.UpdateJob(context.Background(), 1, 42, p)
		assert.Equal(t, 409, appErrCode(t, err))
	})
}

func TestGetPublishedJob(t *testing.T) {
	t.Run("hides drafts from the public view", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(42)).Return(draftJob(1), nil)

		_, err := uc.GetPublishedJob(context.Background(), 42)
		assert.Equal(t, 404, appErrCode(t, err))
	})

	t.Run("missing job is 404", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _ := newJobUsecase(t, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetPublishedJob(context.Background(), 7)
		assert.Equal(t, 404, appErrCode(t, err))
	})
}
