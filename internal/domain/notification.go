package domain

import (
	"context"
	"time"
)

// Notification type tags
const (
	NotificationTypeJob         = "JOB"
	NotificationTypeApplication = "APPLICATION"
	NotificationTypeInterview   = "INTERVIEW"
)

// Notification is created by the orchestrator as a side effect of apply,
// publish, status-change and interview events. Users only ever mark them
// read.
type Notification struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	Read      bool           `json:"read"` // derived: read_at != nil
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id int64) (*Notification, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id int64, at time.Time) error
	MarkAllRead(ctx context.Context, userID int64, at time.Time) error
}

type NotificationUsecase interface {
	ListMyNotifications(ctx context.Context, userID int64, page, pageSize int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, userID, id int64) (*Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}
