package postgres

import (
	"context"
	"time"

	"go-unhired-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

// Create inserts a new notification
func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, body, read, shareable, type, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	n.CreatedAt = time.Now()

	return r.db.QueryRow(ctx, query,
		n.UserID,
		n.Title,
		n.Body,
		n.Read,
		n.Shareable,
		n.Type,
		n.Priority,
		n.CreatedAt,
	).Scan(&n.ID)
}

// GetByID retrieves a notification by ID
func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	query := `
		SELECT id, user_id, title, body, read, shareable, shared_at, type, priority, created_at
		FROM notifications
		WHERE id = $1`

	var n domain.Notification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.Shareable,
		&n.SharedAt, &n.Type, &n.Priority, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByUserID retrieves the user's notifications, highest priority and
// newest first
func (r *notificationRepo) GetByUserID(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, title, body, read, shareable, shared_at, type, priority, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY priority DESC, created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.Shareable,
			&n.SharedAt, &n.Type, &n.Priority, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks one of the user's notifications as read
func (r *notificationRepo) MarkRead(ctx context.Context, id int64, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkShared records the first share of a notification
func (r *notificationRepo) MarkShared(ctx context.Context, id int64, userID string) error {
	query := `UPDATE notifications SET shared_at = $3 WHERE id = $1 AND user_id = $2 AND shared_at IS NULL`
	result, err := r.db.Exec(ctx, query, id, userID, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountSharedByUser counts the notifications the user has shared
func (r *notificationRepo) CountSharedByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND shared_at IS NOT NULL`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
