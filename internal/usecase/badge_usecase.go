package usecase

import (
	"context"
	"fmt"
	"time"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/pkg/logger"

	"github.com/google/uuid"
)

type badgeUsecase struct {
	badgeRepo        domain.BadgeRepository
	notificationRepo domain.NotificationRepository
}

// NewBadgeUsecase creates the achievement awarding engine
func NewBadgeUsecase(badgeRepo domain.BadgeRepository, notificationRepo domain.NotificationRepository) domain.BadgeUsecase {
	return &badgeUsecase{
		badgeRepo:        badgeRepo,
		notificationRepo: notificationRepo,
	}
}

// CheckAndAward awards every definition of the category whose threshold is
// covered by count and not already held by the user. Definitions are checked
// in ascending threshold order, so award order is deterministic. Re-running
// with the same or a higher count never duplicates a badge.
func (uc *badgeUsecase) CheckAndAward(ctx context.Context, userID string, category domain.BadgeCategory, count int) error {
	defs := domain.BadgeDefinitionsFor(category)
	if len(defs) == 0 || count <= 0 {
		return nil
	}

	existing, err := uc.badgeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch user badges: %w", err)
	}
	held := make(map[string]bool, len(existing))
	for _, b := range existing {
		held[b.BadgeName] = true
	}

	for _, def := range defs {
		if def.Threshold > count {
			// Thresholds ascend; nothing further qualifies.
			break
		}
		if held[def.Name] {
			continue
		}

		badge := &domain.UserBadge{
			ID:        uuid.NewString(),
			UserID:    userID,
			BadgeName: def.Name,
			Category:  def.Category,
			Threshold: def.Threshold,
			EarnedAt:  time.Now(),
		}
		if err := uc.badgeRepo.Create(ctx, badge); err != nil {
			return fmt.Errorf("create badge %q: %w", def.Name, err)
		}

		logger.Log.Info("badge awarded", "user_id", userID, "badge", def.Name, "threshold", def.Threshold)

		n := &domain.Notification{
			UserID:    userID,
			Title:     fmt.Sprintf("Badge earned: %s", def.Name),
			Body:      def.Description,
			Shareable: true,
			Type:      domain.NotificationTypeBadge,
			Priority:  domain.NotificationPriorityNormal,
		}
		if err := uc.notificationRepo.Create(ctx, n); err != nil {
			// The badge itself is already awarded; a missing notice is not
			// worth failing the whole check.
			logger.Log.Warn("failed to create badge notification", "user_id", userID, "badge", def.Name, "error", err)
		}
	}

	return nil
}

// GetUserBadges returns all badges earned by the user
func (uc *badgeUsecase) GetUserBadges(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	return uc.badgeRepo.GetByUserID(ctx, userID)
}
