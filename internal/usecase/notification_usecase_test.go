package usecase_test

import (
	"context"
	"testing"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkRead(t *testing.T) {
	t.Run("sets read_at once", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo)

		repo.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.Notification{ID: 9, UserID: 7}, nil)
		repo.On("MarkRead", mock.Anything, int64(9), mock.Anything).Return(nil)

		n, err := uc.MarkRead(context.Background(), 7, 9)
		require.NoError(t, err)
		assert.True(t, n.Read)
		assert.NotNil(t, n.ReadAt)
	})

	t.Run("second call keeps the original timestamp", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo)

		readAt := time.Now().Add(-time.Hour)
		repo.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.Notification{ID: 9, UserID: 7, Read: true, ReadAt: &readAt}, nil)

		n, err := uc.MarkRead(context.Background(), 7, 9)
		require.NoError(t, err)
		assert.Equal(t, readAt, *n.ReadAt)
		repo.AssertNotCalled(t, "MarkRead")
	})

	t.Run("someone else's notification is forbidden", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo)

		repo.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.Notification{ID: 9, UserID: 7}, nil)

		_, err := uc.MarkRead(context.Background(), 8, 9)
		assert.Equal(t, 403, appErrCode(t, err))
	})
}
