package domain

import (
	"context"
	"time"
)

// User is the minimal read-side view of an account. Account management is
// handled by the auth provider; this backend only needs identity and an
// address for outbound mail.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"` // candidate | employer | admin
	CreatedAt   time.Time `json:"created_at"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
