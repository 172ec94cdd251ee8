package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hirehub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (user_id, type, title, message, data, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRow(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, payload, n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID)
}

func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	query := `SELECT id, user_id, type, title, message, data, read_at, created_at, updated_at
              FROM notifications WHERE id = $1`
	var n domain.Notification
	var data []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data,
		&n.ReadAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &n.Data); err != nil {
		return nil, err
	}
	n.Read = n.ReadAt != nil
	return &n, nil
}

func (r *notificationRepo) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, error) {
	query := `SELECT id, user_id, type, title, message, data, read_at, created_at, updated_at
              FROM notifications WHERE user_id = $1
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var data []byte
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data,
			&n.ReadAt, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, 0, err
		}
		n.Read = n.ReadAt != nil
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead sets read_at only when it is still null, so a second call leaves
// the original timestamp untouched.
func (r *notificationRepo) MarkRead(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read_at = $2, updated_at = $2 WHERE id = $1 AND read_at IS NULL`,
		id, at)
	return err
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read_at = $2, updated_at = $2 WHERE user_id = $1 AND read_at IS NULL`,
		userID, at)
	return err
}
