package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/internal/usecase"
	"go-unhired-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShare(t *testing.T) {
	shareable := &domain.Notification{
		ID:        5,
		UserID:    "user1",
		Title:     "Your application for Senior Gopher was rejected",
		Shareable: true,
		Type:      domain.NotificationTypeRejection,
	}

	t.Run("Marks the notification shared and feeds the share counter", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		badgeUC := new(MockBadgeUsecase)
		uc := usecase.NewNotificationUsecase(noteRepo, badgeUC)

		noteRepo.On("GetByID", mock.Anything, int64(5)).Return(shareable, nil)
		noteRepo.On("MarkShared", mock.Anything, int64(5), "user1").Return(nil)
		noteRepo.On("CountSharedByUser", mock.Anything, "user1").Return(1, nil)
		badgeUC.On("CheckAndAward", mock.Anything, "user1", domain.BadgeCategoryShare, 1).Return(nil)

		err := uc.Share(context.Background(), "user1", 5)
		require.NoError(t, err)
		badgeUC.AssertCalled(t, "CheckAndAward", mock.Anything, "user1", domain.BadgeCategoryShare, 1)
	})

	t.Run("Sharing twice is a no-op", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		badgeUC := new(MockBadgeUsecase)
		uc := usecase.NewNotificationUsecase(noteRepo, badgeUC)

		sharedAt := time.Now()
		already := *shareable
		already.SharedAt = &sharedAt
		noteRepo.On("GetByID", mock.Anything, int64(5)).Return(&already, nil)

		err := uc.Share(context.Background(), "user1", 5)
		require.NoError(t, err)
		noteRepo.AssertNotCalled(t, "MarkShared", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cannot share someone else's notification", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		badgeUC := new(MockBadgeUsecase)
		uc := usecase.NewNotificationUsecase(noteRepo, badgeUC)

		noteRepo.On("GetByID", mock.Anything, int64(5)).Return(shareable, nil)

		err := uc.Share(context.Background(), "intruder", 5)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Cannot share a non-shareable notification", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		badgeUC := new(MockBadgeUsecase)
		uc := usecase.NewNotificationUsecase(noteRepo, badgeUC)

		plain := *shareable
		plain.Shareable = false
		noteRepo.On("GetByID", mock.Anything, int64(5)).Return(&plain, nil)

		err := uc.Share(context.Background(), "user1", 5)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("Maps a missing notification to 404", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(noteRepo, new(MockBadgeUsecase))

		noteRepo.On("MarkRead", mock.Anything, int64(9), "user1").Return(domain.ErrNotFound)

		err := uc.MarkRead(context.Background(), "user1", 9)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}
