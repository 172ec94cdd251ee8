package usecase_test

import (
	"context"
	"testing"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/usecase"
	"hirehub-backend/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type interviewFixture struct {
	uc        domain.InterviewUsecase
	ivRepo    *MockInterviewRepo
	appRepo   *MockApplicationRepo
	jobRepo   *MockJobRepo
	notifRepo *MockNotificationRepo
}

func newInterviewFixture(t *testing.T) *interviewFixture {
	t.Helper()
	f := &interviewFixture{
		ivRepo:    new(MockInterviewRepo),
		appRepo:   new(MockApplicationRepo),
		jobRepo:   new(MockJobRepo),
		notifRepo: new(MockNotificationRepo),
	}
	userRepo := new(MockUserRepo)
	notifier, dispatcher := testNotifier(f.notifRepo, f.appRepo, userRepo)
	t.Cleanup(dispatcher.Close)
	f.uc = usecase.NewInterviewUsecase(f.ivRepo, f.appRepo, f.jobRepo, notifier)
	return f
}

func (f *interviewFixture) withOwnedApplication() {
	f.appRepo.On("GetByID", mock.Anything, int64(100)).
		Return(&domain.Application{ID: 100, JobID: 42, CandidateID: 7}, nil)
	f.jobRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&domain.Job{ID: 42, RecruiterID: int64Ptr(1), Title: "Backend Engineer"}, nil)
}

func TestScheduleInterview(t *testing.T) {
	t.Run("requires a schedule time", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()

		_, err := f.uc.Schedule(context.Background(), 1, 100, &domain.Interview{})
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("rejects a rating at creation", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()

		rating := 5
		iv := &domain.Interview{ScheduledAt: time.Now().Add(48 * time.Hour), Rating: &rating}
		_, err := f.uc.Schedule(context.Background(), 1, 100, iv)
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("creates as SCHEDULED and notifies the candidate", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()
		f.ivRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		created := make(chan *domain.Notification, 1)
		f.notifRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			created <- args.Get(1).(*domain.Notification)
		}).Return(nil)

		iv, err := f.uc.Schedule(context.Background(), 1, 100, &domain.Interview{
			ScheduledAt: time.Now().Add(48 * time.Hour),
			Location:    "https://meet.example/abc",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
		assert.Equal(t, int64(100), iv.ApplicationID)

		select {
		case n := <-created:
			assert.Equal(t, int64(7), n.UserID)
			assert.Equal(t, domain.NotificationTypeInterview, n.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("expected an interview-scheduled notification")
		}
	})

	t.Run("requires ownership of the job behind the application", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()

		_, err := f.uc.Schedule(context.Background(), 99, 100, &domain.Interview{ScheduledAt: time.Now()})
		assert.Equal(t, 403, appErrCode(t, err))
	})
}

func TestUpdateInterview(t *testing.T) {
	stored := func() *domain.Interview {
		return &domain.Interview{ID: 5, ApplicationID: 100, Status: domain.InterviewStatusScheduled}
	}

	t.Run("empty patch is a no-op", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()
		f.ivRepo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)

		iv, err := f.uc.UpdateInterview(context.Background(), 1, 5, &domain.InterviewPatch{})
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
		f.ivRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rating outside 0-5 is rejected", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()
		f.ivRepo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)

		p := &domain.InterviewPatch{Rating: patch.Field[int]{Set: true, Value: 6}}
		_, err := f.uc.UpdateInterview(context.Background(), 1, 5, p)
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("completes with feedback and rating", func(t *testing.T) {
		f := newInterviewFixture(t)
		f.withOwnedApplication()
		f.ivRepo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
		f.ivRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		p := &domain.InterviewPatch{
			Status:   patch.Field[string]{Set: true, Value: domain.InterviewStatusCompleted},
			Feedback: patch.Field[string]{Set: true, Value: "Strong systems background"},
			Rating:   patch.Field[int]{Set: true, Value: 4},
		}
		iv, err := f.uc.UpdateInterview(context.Background(), 1, 5, p)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, iv.Status)
		require.NotNil(t, iv.Rating)
		assert.Equal(t, 4, *iv.Rating)
	})
}
