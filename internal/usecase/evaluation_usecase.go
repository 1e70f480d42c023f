package usecase

import (
	"context"
	"fmt"
	"time"

	"go-unhired-backend/internal/ai"
	"go-unhired-backend/internal/domain"
	"go-unhired-backend/internal/timing"
	"go-unhired-backend/pkg/email"
	"go-unhired-backend/pkg/logger"
)

// RejectionMailer sends the final decision by email. Satisfied by
// pkg/email.EmailService.
type RejectionMailer interface {
	SendRejectionEmail(data email.RejectionEmailData) error
	IsConfigured() bool
}

type evaluationUsecase struct {
	applicationRepo  domain.ApplicationRepository
	jobRepo          domain.JobRepository
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	badgeUC          domain.BadgeUsecase
	aiClient         ai.Client
	mailer           RejectionMailer
	policy           timing.Policy
}

// NewEvaluationUsecase creates the evaluator that resolves pending
// applications into rejections
func NewEvaluationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	badgeUC domain.BadgeUsecase,
	aiClient ai.Client,
	mailer RejectionMailer,
	policy timing.Policy,
) domain.EvaluationUsecase {
	return &evaluationUsecase{
		applicationRepo:  applicationRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		badgeUC:          badgeUC,
		aiClient:         aiClient,
		mailer:           mailer,
		policy:           policy,
	}
}

// Evaluate runs one evaluation attempt. It never returns an error: success
// and failure are both recorded as state mutations on the application.
func (uc *evaluationUsecase) Evaluate(ctx context.Context, app *domain.Application) {
	// 1. Idempotence guard: a resolved application is never touched again
	if app.Status != domain.ApplicationStatusPending || app.Feedback != nil {
		return
	}

	// 2. Best-effort job context; the prompt degrades to the stored title
	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		logger.Log.Debug("job context unavailable for evaluation", "application_id", app.ID, "job_id", app.JobID, "error", err)
		job = nil
	}

	// 3. Ask the model for the decision
	prompt := ai.BuildRejectionPrompt(app, job)
	feedback, err := uc.aiClient.Generate(ctx, prompt)
	if err != nil {
		uc.recordFailure(ctx, app, err)
		return
	}

	uc.recordSuccess(ctx, app, feedback)
}

// recordSuccess applies the terminal rejection mutation: status, feedback,
// privacy wipe, attempt counter. Side effects run only after the transition
// is persisted.
func (uc *evaluationUsecase) recordSuccess(ctx context.Context, app *domain.Application, feedback string) {
	app.Status = domain.ApplicationStatusRejected
	app.Feedback = &feedback
	app.Answers = map[string]string{}
	app.CVText = nil
	app.AIConsent = false
	app.LastEvaluationError = nil
	app.EvaluationDueAt = nil
	app.NextEvaluationAt = nil
	app.EvaluationAttempts++

	if err := uc.applicationRepo.Save(ctx, app); err != nil {
		// The application stays due in the store; the next tick retries it.
		logger.Log.Error("failed to persist rejection", "application_id", app.ID, "error", err)
		return
	}

	logger.Log.Info("application rejected", "application_id", app.ID, "user_id", app.UserID, "attempts", app.EvaluationAttempts)

	uc.notifyRejection(ctx, app, feedback)
	go uc.emailRejection(app.UserID, app.JobTitle, feedback)
	uc.awardRejectionBadges(ctx, app.UserID)
}

// recordFailure schedules a retry: attempt counter, error message, next
// eligibility from the timing policy. Status and feedback stay untouched.
func (uc *evaluationUsecase) recordFailure(ctx context.Context, app *domain.Application, cause error) {
	msg := cause.Error()
	next := uc.policy.RetryDelay(time.Now())

	app.EvaluationAttempts++
	app.LastEvaluationError = &msg
	app.NextEvaluationAt = &next

	if err := uc.applicationRepo.Save(ctx, app); err != nil {
		logger.Log.Error("failed to persist evaluation failure", "application_id", app.ID, "error", err)
		return
	}

	logger.Log.Warn("evaluation failed, retry scheduled",
		"application_id", app.ID,
		"attempts", app.EvaluationAttempts,
		"next_evaluation_at", next,
		"error", msg,
	)
}

func (uc *evaluationUsecase) notifyRejection(ctx context.Context, app *domain.Application, feedback string) {
	n := &domain.Notification{
		UserID:    app.UserID,
		Title:     fmt.Sprintf("Your application for %s was rejected", app.JobTitle),
		Body:      feedback,
		Shareable: true,
		Type:      domain.NotificationTypeRejection,
		Priority:  domain.NotificationPriorityHigh,
	}
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		logger.Log.Error("failed to create rejection notification", "application_id", app.ID, "error", err)
	}
}

// emailRejection is fire-and-forget: it runs after the state transition
// committed and its failure is only logged, never retried. Uses a fresh
// context because the triggering tick may be long gone.
func (uc *evaluationUsecase) emailRejection(userID, jobTitle, feedback string) {
	if uc.mailer == nil || !uc.mailer.IsConfigured() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Warn("cannot resolve user for rejection email", "user_id", userID, "error", err)
		return
	}

	err = uc.mailer.SendRejectionEmail(email.RejectionEmailData{
		ToEmail:  user.Email,
		Name:     user.DisplayName,
		JobTitle: jobTitle,
		Feedback: feedback,
	})
	if err != nil {
		logger.Log.Warn("rejection email not sent", "user_id", userID, "error", err)
	}
}

func (uc *evaluationUsecase) awardRejectionBadges(ctx context.Context, userID string) {
	count, err := uc.applicationRepo.CountRejectedByUser(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to count rejections for badges", "user_id", userID, "error", err)
		return
	}
	if err := uc.badgeUC.CheckAndAward(ctx, userID, domain.BadgeCategoryRejection, count); err != nil {
		logger.Log.Error("failed to award rejection badges", "user_id", userID, "error", err)
	}
}
