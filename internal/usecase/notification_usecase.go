package usecase

import (
	"context"
	"time"

	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/apperror"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

func (u *notificationUsecase) ListMyNotifications(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error) {
	limit, offset := paginate(page, pageSize)
	return u.notificationRepo.GetByUserID(ctx, userID, limit, offset)
}

// MarkRead is idempotent: read_at is written once, a second call merely
// returns the already-read notification.
func (u *notificationUsecase) MarkRead(ctx context.Context, userID, id int64) (*domain.Notification, error) {
	n, err := u.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Notification not found")
	}
	if n.UserID != userID {
		return nil, apperror.Forbidden("You do not own this notification")
	}
	if n.ReadAt != nil {
		return n, nil
	}

	now := time.Now()
	if err := u.notificationRepo.MarkRead(ctx, id, now); err != nil {
		return nil, apperror.Internal(err)
	}
	n.ReadAt = &now
	n.Read = true
	n.UpdatedAt = now
	return n, nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID int64) error {
	if err := u.notificationRepo.MarkAllRead(ctx, userID, time.Now()); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
