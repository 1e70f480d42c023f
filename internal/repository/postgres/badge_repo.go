package postgres

import (
	"context"
	"time"

	"go-unhired-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type badgeRepo struct {
	db *pgxpool.Pool
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *pgxpool.Pool) domain.BadgeRepository {
	return &badgeRepo{db: db}
}

// GetByUserID retrieves all badges earned by a user
func (r *badgeRepo) GetByUserID(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	query := `
		SELECT id, user_id, badge_name, category, threshold, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY earned_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.UserBadge
	for rows.Next() {
		var b domain.UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeName, &b.Category, &b.Threshold, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// Create inserts an awarded badge. The table has a unique constraint on
// (user_id, badge_name) as the last line of defense against double awards.
func (r *badgeRepo) Create(ctx context.Context, badge *domain.UserBadge) error {
	query := `
		INSERT INTO user_badges (id, user_id, badge_name, category, threshold, earned_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, badge_name) DO NOTHING`

	if badge.EarnedAt.IsZero() {
		badge.EarnedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, query,
		badge.ID,
		badge.UserID,
		badge.BadgeName,
		badge.Category,
		badge.Threshold,
		badge.EarnedAt,
	)
	return err
}
