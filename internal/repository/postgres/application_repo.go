package postgres

import (
	"context"
	"time"

	"go-unhired-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (
			user_id, job_id, job_title, job_slug, status, answers, cv_text,
			ai_consent, evaluation_due_at, evaluation_attempts, applied_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	app.AppliedAt = time.Now()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	if app.Answers == nil {
		app.Answers = map[string]string{}
	}

	return r.db.QueryRow(ctx, query,
		app.UserID,
		app.JobID,
		app.JobTitle,
		app.JobSlug,
		app.Status,
		app.Answers,
		app.CVText,
		app.AIConsent,
		app.EvaluationDueAt,
		app.EvaluationAttempts,
		app.AppliedAt,
	).Scan(&app.ID)
}

const applicationColumns = `
	id, user_id, job_id, job_title, job_slug, status, answers, cv_text,
	ai_consent, feedback, evaluation_due_at, next_evaluation_at,
	evaluation_attempts, last_evaluation_error, applied_at`

func scanApplication(row interface{ Scan(...any) error }, app *domain.Application) error {
	return row.Scan(
		&app.ID, &app.UserID, &app.JobID, &app.JobTitle, &app.JobSlug,
		&app.Status, &app.Answers, &app.CVText, &app.AIConsent, &app.Feedback,
		&app.EvaluationDueAt, &app.NextEvaluationAt, &app.EvaluationAttempts,
		&app.LastEvaluationError, &app.AppliedAt,
	)
}

// GetByID retrieves an application by ID
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var app domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, query, id), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByUserID retrieves all applications for a user, newest first
func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY applied_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/user combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, userID).Scan(&exists)
	return exists, err
}

// FindDue returns the batch of applications eligible for evaluation: still
// pending, no feedback yet, and either first-due or retry-due. Oldest
// submissions first so nobody waits forever.
func (r *applicationRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE status = $1
		  AND feedback IS NULL
		  AND (
		      (evaluation_due_at <= $2 AND next_evaluation_at IS NULL)
		      OR next_evaluation_at <= $2
		  )
		ORDER BY applied_at ASC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, domain.ApplicationStatusPending, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// Save persists the evaluation-owned fields of an existing application
func (r *applicationRepo) Save(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications SET
			status = $2,
			answers = $3,
			cv_text = $4,
			ai_consent = $5,
			feedback = $6,
			evaluation_due_at = $7,
			next_evaluation_at = $8,
			evaluation_attempts = $9,
			last_evaluation_error = $10
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		app.ID,
		app.Status,
		app.Answers,
		app.CVText,
		app.AIConsent,
		app.Feedback,
		app.EvaluationDueAt,
		app.NextEvaluationAt,
		app.EvaluationAttempts,
		app.LastEvaluationError,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountRejectedByUser counts the user's rejected applications
func (r *applicationRepo) CountRejectedByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM applications WHERE user_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRow(ctx, query, userID, domain.ApplicationStatusRejected).Scan(&count)
	return count, err
}

// CountByUser counts all applications submitted by the user
func (r *applicationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM applications WHERE user_id = $1`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
