package usecase

import (
	"context"
	"errors"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/pkg/apperror"
	"go-unhired-backend/pkg/logger"
)

const notificationListLimit = 50

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
	badgeUC          domain.BadgeUsecase
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo domain.NotificationRepository, badgeUC domain.BadgeUsecase) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo, badgeUC: badgeUC}
}

// List returns the user's most recent notifications
func (uc *notificationUsecase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return uc.notificationRepo.GetByUserID(ctx, userID, notificationListLimit)
}

// MarkRead marks one of the user's notifications as read
func (uc *notificationUsecase) MarkRead(ctx context.Context, userID string, id int64) error {
	if err := uc.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// Share marks a shareable notification as shared and feeds the share badge
// counter. Sharing the same notification twice is a no-op.
func (uc *notificationUsecase) Share(ctx context.Context, userID string, id int64) error {
	// 1. Ownership and shareability checks
	n, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Notification not found")
	}
	if n.UserID != userID {
		return apperror.Forbidden("You can only share your own notifications")
	}
	if !n.Shareable {
		return apperror.BadRequest("This notification cannot be shared")
	}
	if n.SharedAt != nil {
		return nil
	}

	// 2. Record the share
	if err := uc.notificationRepo.MarkShared(ctx, id, userID); err != nil {
		return apperror.Internal(err)
	}

	// 3. Badge check; failure must not fail the share
	count, err := uc.notificationRepo.CountSharedByUser(ctx, userID)
	if err != nil {
		logger.Log.Warn("failed to count shares for badges", "user_id", userID, "error", err)
		return nil
	}
	if err := uc.badgeUC.CheckAndAward(ctx, userID, domain.BadgeCategoryShare, count); err != nil {
		logger.Log.Warn("failed to award share badges", "user_id", userID, "error", err)
	}

	return nil
}
