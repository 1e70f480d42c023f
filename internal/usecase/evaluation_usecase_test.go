package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func pendingApplication() *domain.Application {
	due := time.Now().Add(-time.Minute)
	return &domain.Application{
		ID:              42,
		UserID:          "user1",
		JobID:           7,
		JobTitle:        "Senior Gopher",
		Status:          domain.ApplicationStatusPending,
		Answers:         map[string]string{"why_us": "I like rejection."},
		CVText:          strPtr("Ten years of Go."),
		AIConsent:       true,
		EvaluationDueAt: &due,
		AppliedAt:       time.Now().Add(-time.Hour),
	}
}

type evalFixture struct {
	appRepo  *MockApplicationRepo
	jobRepo  *MockJobRepo
	noteRepo *MockNotificationRepo
	userRepo *MockUserRepo
	badgeUC  *MockBadgeUsecase
	aiClient *stubAIClient
	uc       domain.EvaluationUsecase
}

func newEvalFixture(aiClient *stubAIClient) *evalFixture {
	f := &evalFixture{
		appRepo:  new(MockApplicationRepo),
		jobRepo:  new(MockJobRepo),
		noteRepo: new(MockNotificationRepo),
		userRepo: new(MockUserRepo),
		badgeUC:  new(MockBadgeUsecase),
		aiClient: aiClient,
	}
	f.uc = usecase.NewEvaluationUsecase(
		f.appRepo, f.jobRepo, f.noteRepo, f.userRepo, f.badgeUC,
		f.aiClient, nil, fixedPolicy{retry: 15 * time.Second},
	)
	return f
}

func TestEvaluateSuccess(t *testing.T) {
	f := newEvalFixture(&stubAIClient{text: "X"})
	app := pendingApplication()

	f.jobRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, Title: "Senior Gopher", CompanyName: "Acme"}, nil)

	var saved *domain.Application
	f.appRepo.On("Save", mock.Anything, app).Return(nil).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Application)
	})
	f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	f.appRepo.On("CountRejectedByUser", mock.Anything, "user1").Return(3, nil)
	f.badgeUC.On("CheckAndAward", mock.Anything, "user1", domain.BadgeCategoryRejection, 3).Return(nil)

	f.uc.Evaluate(context.Background(), app)

	t.Run("Applies the full rejection mutation with privacy wipe", func(t *testing.T) {
		require.NotNil(t, saved)
		assert.Equal(t, domain.ApplicationStatusRejected, saved.Status)
		require.NotNil(t, saved.Feedback)
		assert.Equal(t, "X", *saved.Feedback)
		assert.Empty(t, saved.Answers)
		assert.Nil(t, saved.CVText)
		assert.False(t, saved.AIConsent)
		assert.Nil(t, saved.EvaluationDueAt)
		assert.Nil(t, saved.NextEvaluationAt)
		assert.Nil(t, saved.LastEvaluationError)
		assert.Equal(t, 1, saved.EvaluationAttempts)
	})

	t.Run("Creates exactly one high-priority rejection notification", func(t *testing.T) {
		f.noteRepo.AssertNumberOfCalls(t, "Create", 1)
		n := f.noteRepo.Calls[0].Arguments.Get(1).(*domain.Notification)
		assert.Equal(t, "user1", n.UserID)
		assert.Equal(t, domain.NotificationTypeRejection, n.Type)
		assert.Equal(t, domain.NotificationPriorityHigh, n.Priority)
		assert.True(t, n.Shareable)
		assert.Equal(t, "X", n.Body)
	})

	t.Run("Feeds the rejection badge counter", func(t *testing.T) {
		f.badgeUC.AssertCalled(t, "CheckAndAward", mock.Anything, "user1", domain.BadgeCategoryRejection, 3)
	})
}

func TestEvaluateIdempotence(t *testing.T) {
	t.Run("A rejected application is never touched again", func(t *testing.T) {
		f := newEvalFixture(&stubAIClient{text: "X"})
		app := pendingApplication()
		app.Status = domain.ApplicationStatusRejected
		app.Feedback = strPtr("already done")

		f.uc.Evaluate(context.Background(), app)

		assert.Zero(t, f.aiClient.calls)
		f.appRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("A pending application with feedback is treated as resolved", func(t *testing.T) {
		f := newEvalFixture(&stubAIClient{text: "X"})
		app := pendingApplication()
		app.Feedback = strPtr("stale feedback")

		f.uc.Evaluate(context.Background(), app)

		assert.Zero(t, f.aiClient.calls)
		f.appRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestEvaluateFailure(t *testing.T) {
	f := newEvalFixture(&stubAIClient{err: assert.AnError})
	app := pendingApplication()
	before := time.Now()

	f.jobRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7}, nil)

	var saved *domain.Application
	f.appRepo.On("Save", mock.Anything, app).Return(nil).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Application)
	})

	f.uc.Evaluate(context.Background(), app)

	t.Run("Applies the failure mutation and schedules a bounded retry", func(t *testing.T) {
		require.NotNil(t, saved)
		assert.Equal(t, domain.ApplicationStatusPending, saved.Status)
		assert.Nil(t, saved.Feedback)
		assert.Equal(t, 1, saved.EvaluationAttempts)
		require.NotNil(t, saved.LastEvaluationError)
		assert.NotEmpty(t, *saved.LastEvaluationError)
		require.NotNil(t, saved.NextEvaluationAt)
		assert.True(t, saved.NextEvaluationAt.After(before))
		assert.WithinDuration(t, before.Add(15*time.Second), *saved.NextEvaluationAt, 2*time.Second)
	})

	t.Run("Sends no notification and awards no badge", func(t *testing.T) {
		f.noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.badgeUC.AssertNotCalled(t, "CheckAndAward", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEvaluateDegradedJobContext(t *testing.T) {
	t.Run("Missing job context does not block evaluation", func(t *testing.T) {
		f := newEvalFixture(&stubAIClient{text: "still no"})
		app := pendingApplication()

		f.jobRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)
		f.appRepo.On("Save", mock.Anything, app).Return(nil)
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.appRepo.On("CountRejectedByUser", mock.Anything, "user1").Return(1, nil)
		f.badgeUC.On("CheckAndAward", mock.Anything, "user1", domain.BadgeCategoryRejection, 1).Return(nil)

		f.uc.Evaluate(context.Background(), app)

		assert.Equal(t, 1, f.aiClient.calls)
		assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
	})
}

func TestEvaluatePersistenceFailure(t *testing.T) {
	t.Run("A failed save suppresses all side effects", func(t *testing.T) {
		f := newEvalFixture(&stubAIClient{text: "X"})
		app := pendingApplication()

		f.jobRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7}, nil)
		f.appRepo.On("Save", mock.Anything, app).Return(assert.AnError)

		f.uc.Evaluate(context.Background(), app)

		f.noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.badgeUC.AssertNotCalled(t, "CheckAndAward", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
