package usecase

import (
	"context"
	"time"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/internal/timing"
	"go-unhired-backend/pkg/apperror"
	"go-unhired-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo  domain.ApplicationRepository
	jobRepo          domain.JobRepository
	notificationRepo domain.NotificationRepository
	policy           timing.Policy
	validate         *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	notificationRepo domain.NotificationRepository,
	policy timing.Policy,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo:  applicationRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
		policy:           policy,
		validate:         validate,
	}
}

// Submit creates a pending application and schedules its first evaluation
func (uc *applicationUsecase) Submit(ctx context.Context, userID string, input *domain.SubmitApplicationInput) (*domain.Application, error) {
	// 1. Validate payload
	if err := uc.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	// 2. Validate job exists
	job, err := uc.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}

	// 3. Check for duplicate application
	exists, err := uc.applicationRepo.CheckExists(ctx, input.JobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this job")
	}

	// 4. Create application; the CV is only stored with explicit consent
	var cvText *string
	if input.AIConsent && input.CVText != "" {
		cvText = &input.CVText
	}
	dueAt := time.Now().Add(uc.policy.InitialDelay())

	app := &domain.Application{
		UserID:          userID,
		JobID:           job.ID,
		JobTitle:        job.Title,
		JobSlug:         &job.Slug,
		Status:          domain.ApplicationStatusPending,
		Answers:         input.Answers,
		CVText:          cvText,
		AIConsent:       input.AIConsent,
		EvaluationDueAt: &dueAt,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	// 5. Submission notice; failure must not fail the submission
	n := &domain.Notification{
		UserID:   userID,
		Title:    "Application received",
		Body:     "Your application for " + job.Title + " is in review. We will be in touch.",
		Type:     domain.NotificationTypeApplication,
		Priority: domain.NotificationPriorityNormal,
	}
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		logger.Log.Warn("failed to create submission notification", "application_id", app.ID, "error", err)
	}

	return app, nil
}

// GetMyApplications returns all applications for the current user
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	return uc.applicationRepo.GetByUserID(ctx, userID)
}
