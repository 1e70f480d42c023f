package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusRejected = "rejected"
)

// Application represents a job application submitted by a user.
// Status moves pending → rejected exactly once and never reverses;
// there is no accepted state.
type Application struct {
	ID                  int64             `json:"id"`
	UserID              string            `json:"user_id"`
	JobID               int64             `json:"job_id"`
	JobTitle            string            `json:"job_title"`
	JobSlug             *string           `json:"job_slug,omitempty"`
	Status              string            `json:"status"` // pending → rejected
	Answers             map[string]string `json:"answers"`
	CVText              *string           `json:"cv_text,omitempty"`
	AIConsent           bool              `json:"ai_consent"`
	Feedback            *string           `json:"feedback,omitempty"`
	EvaluationDueAt     *time.Time        `json:"evaluation_due_at,omitempty"`
	NextEvaluationAt    *time.Time        `json:"next_evaluation_at,omitempty"`
	EvaluationAttempts  int               `json:"evaluation_attempts"`
	LastEvaluationError *string           `json:"last_evaluation_error,omitempty"`
	AppliedAt           time.Time         `json:"applied_at"`
}

// IsDue reports whether the application is eligible for evaluation at the
// given instant. Mirrors the repository due-query so the scheduler can skip
// records that were resolved between fetch and processing.
func (a *Application) IsDue(now time.Time) bool {
	if a.Status != ApplicationStatusPending || a.Feedback != nil {
		return false
	}
	if a.NextEvaluationAt != nil {
		return !a.NextEvaluationAt.After(now)
	}
	return a.EvaluationDueAt != nil && !a.EvaluationDueAt.After(now)
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, userID string) (bool, error)
	// FindDue returns pending applications whose due-time or retry-time has
	// passed, ordered by applied_at ascending, capped at limit.
	FindDue(ctx context.Context, now time.Time, limit int) ([]Application, error)
	// Save persists the evaluation-owned fields of an existing application.
	Save(ctx context.Context, app *Application) error
	CountRejectedByUser(ctx context.Context, userID string) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	Submit(ctx context.Context, userID string, input *SubmitApplicationInput) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
}

// SubmitApplicationInput is the payload for submitting an application
type SubmitApplicationInput struct {
	JobID     int64             `validate:"required,gt=0"`
	Answers   map[string]string `validate:"required,min=1"`
	CVText    string
	AIConsent bool
}

// EvaluationUsecase runs the asynchronous rejection pipeline for one
// application. It never returns an error: every outcome is persisted as a
// state change on the application record.
type EvaluationUsecase interface {
	Evaluate(ctx context.Context, app *Application)
}
