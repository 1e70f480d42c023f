package domain

import (
	"context"
	"time"
)

// Notification type tags
const (
	NotificationTypeApplication = "application"
	NotificationTypeRejection   = "rejection"
	NotificationTypeBadge       = "badge"
)

// Notification priorities; rejections rank above ordinary submission notices.
const (
	NotificationPriorityNormal = 0
	NotificationPriorityHigh   = 1
)

// Notification is an in-app message for a user
type Notification struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Read      bool       `json:"read"`
	Shareable bool       `json:"shareable"`
	SharedAt  *time.Time `json:"shared_at,omitempty"`
	Type      string     `json:"type"`
	Priority  int        `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationRepository defines data access methods for notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id int64) (*Notification, error)
	GetByUserID(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id int64, userID string) error
	MarkShared(ctx context.Context, id int64, userID string) error
	CountSharedByUser(ctx context.Context, userID string) (int, error)
}

// NotificationUsecase defines business logic for notifications
type NotificationUsecase interface {
	List(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, userID string, id int64) error
	// Share marks a shareable notification as shared and feeds the share
	// badge counter.
	Share(ctx context.Context, userID string, id int64) error
}
