package domain

import (
	"context"
	"time"
)

// BadgeCategory is an independent counter axis for achievement thresholds.
type BadgeCategory string

const (
	BadgeCategoryRejection BadgeCategory = "rejection"
	BadgeCategoryShare     BadgeCategory = "share"
	BadgeCategoryJobPost   BadgeCategory = "job_post"
)

// BadgeDefinition is one row of the static achievement table.
type BadgeDefinition struct {
	Category    BadgeCategory `json:"category"`
	Threshold   int           `json:"threshold"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// badgeDefinitions is the immutable achievement table, thresholds ascending
// per category. Award order within one check follows this order.
var badgeDefinitions = map[BadgeCategory][]BadgeDefinition{
	BadgeCategoryRejection: {
		{BadgeCategoryRejection, 1, "First Rejection", "Received your very first rejection."},
		{BadgeCategoryRejection, 5, "Getting Used To It", "Rejected five times."},
		{BadgeCategoryRejection, 10, "Double Digits", "Rejected ten times."},
		{BadgeCategoryRejection, 25, "Seasoned Reject", "Rejected twenty-five times."},
		{BadgeCategoryRejection, 50, "Halfway To Oblivion", "Rejected fifty times."},
		{BadgeCategoryRejection, 100, "Centurion Of Rejection", "Rejected one hundred times."},
	},
	BadgeCategoryShare: {
		{BadgeCategoryShare, 1, "Proud Oversharer", "Shared a rejection for the first time."},
		{BadgeCategoryShare, 10, "Serial Broadcaster", "Shared ten rejections."},
		{BadgeCategoryShare, 25, "Rejection Influencer", "Shared twenty-five rejections."},
	},
	BadgeCategoryJobPost: {
		{BadgeCategoryJobPost, 1, "First Opening", "Posted your first job."},
		{BadgeCategoryJobPost, 10, "Prolific Poster", "Posted ten jobs."},
		{BadgeCategoryJobPost, 50, "Job Machine", "Posted fifty jobs."},
	},
}

// BadgeDefinitionsFor returns the definitions for a category, thresholds
// ascending. The returned slice must not be mutated.
func BadgeDefinitionsFor(category BadgeCategory) []BadgeDefinition {
	return badgeDefinitions[category]
}

// UserBadge is an awarded badge instance. At most one exists per
// (user_id, badge_name) pair.
type UserBadge struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	BadgeName string        `json:"badge_name"`
	Category  BadgeCategory `json:"category"`
	Threshold int           `json:"threshold"`
	EarnedAt  time.Time     `json:"earned_at"`
}

// BadgeRepository defines data access methods for awarded badges
type BadgeRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]UserBadge, error)
	Create(ctx context.Context, badge *UserBadge) error
}

// BadgeUsecase defines the achievement awarding logic
type BadgeUsecase interface {
	// CheckAndAward awards every definition of the category whose threshold
	// is covered by count and not already held. Safe to call repeatedly.
	CheckAndAward(ctx context.Context, userID string, category BadgeCategory, count int) error
	GetUserBadges(ctx context.Context, userID string) ([]UserBadge, error)
}
